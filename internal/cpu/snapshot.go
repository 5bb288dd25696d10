package cpu

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"codeberg.org/mutker/cpuleds/internal/errors"
)

const (
	// DefaultStatPath is the kernel CPU accounting file
	DefaultStatPath = "/proc/stat"

	idleField    = 3
	minNumFields = idleField + 1
)

// Snapshot holds cumulative CPU time counters read at one point in time.
type Snapshot struct {
	Total uint64
	Idle  uint64
}

// Source yields fresh snapshots
type Source interface {
	Read() (Snapshot, error)
}

// StatFile reads snapshots from the first line of a /proc/stat style file.
type StatFile struct {
	Path string
}

// NewStatFile returns a Source for path, or DefaultStatPath when path is empty.
func NewStatFile(path string) *StatFile {
	if path == "" {
		path = DefaultStatPath
	}

	return &StatFile{Path: path}
}

func (f *StatFile) Read() (Snapshot, error) {
	return ReadSnapshot(f.Path)
}

// ReadSnapshot reads and parses the aggregate line of the accounting file.
func ReadSnapshot(path string) (Snapshot, error) {
	errFactory := errors.New()

	file, err := os.Open(path)
	if err != nil {
		return Snapshot{}, errFactory.Wrap(errors.ErrReadSample, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Snapshot{}, errFactory.Wrap(errors.ErrReadSample, err)
		}
		return Snapshot{}, errFactory.WithData(errors.ErrMalformedSample, "empty file "+path)
	}

	return ParseStatLine(scanner.Text())
}

// ParseStatLine parses "label v0 v1 v2 v3 ..." into a Snapshot. Total is the
// sum of every numeric field; Idle is field 3 after the label.
func ParseStatLine(line string) (Snapshot, error) {
	errFactory := errors.New()

	fields := strings.Fields(line)
	if len(fields) < 1+minNumFields {
		return Snapshot{}, errFactory.WithData(errors.ErrMalformedSample, struct {
			Fields int
			Need   int
		}{
			Fields: max(len(fields)-1, 0),
			Need:   minNumFields,
		})
	}

	var s Snapshot
	for i, field := range fields[1:] {
		v, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return Snapshot{}, errFactory.Wrap(errors.ErrMalformedSample, err).WithData(struct {
				Field int
				Value string
			}{
				Field: i,
				Value: field,
			})
		}
		if i == idleField {
			s.Idle = v
		}
		s.Total += v
	}

	return s, nil
}
