package cpu_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/cpuleds/internal/cpu"
	"codeberg.org/mutker/cpuleds/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want cpu.Snapshot
	}{
		{
			name: "full kernel line",
			line: "cpu  4705 356 584 3699 23 23 0 0 0 0",
			want: cpu.Snapshot{Total: 4705 + 356 + 584 + 3699 + 23 + 23, Idle: 3699},
		},
		{
			name: "minimum fields",
			line: "cpu 1 2 3 4",
			want: cpu.Snapshot{Total: 10, Idle: 4},
		},
		{
			name: "extra whitespace",
			line: "\tcpu0   10  0\t0  90  \n",
			want: cpu.Snapshot{Total: 100, Idle: 90},
		},
		{
			name: "all zero",
			line: "cpu 0 0 0 0 0 0 0",
			want: cpu.Snapshot{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cpu.ParseStatLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatLineMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"label only", "cpu"},
		{"three fields", "cpu 1 2 3"},
		{"not a number", "cpu 1 2 x 4"},
		{"negative", "cpu 1 -2 3 4"},
		{"fractional", "cpu 1 2 3 4.5"},
		{"overflow", "cpu 1 2 3 18446744073709551616"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cpu.ParseStatLine(tt.line)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrMalformedSample), "got %v", err)
		})
	}
}

func TestStatFileRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stat")
	content := "cpu  100 0 50 800 50 0 0 0 0 0\ncpu0 50 0 25 400 25 0 0 0 0 0\nintr 12345\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	got, err := cpu.NewStatFile(path).Read()
	require.NoError(t, err)
	assert.Equal(t, cpu.Snapshot{Total: 1000, Idle: 800}, got)
}

func TestReadSnapshotErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := cpu.ReadSnapshot(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrReadSample))

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = cpu.ReadSnapshot(empty)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrMalformedSample))
}

func TestNewStatFileDefaultPath(t *testing.T) {
	assert.Equal(t, cpu.DefaultStatPath, cpu.NewStatFile("").Path)
}
