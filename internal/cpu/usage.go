package cpu

// Reading is the state carried from one sampling cycle into the next.
// The zero value seeds the first cycle with a (0, 0) snapshot, so the first
// usage covers everything since boot. That reading is only shown for one
// cycle.
type Reading struct {
	Snapshot Snapshot
	Usage    int

	// Held is set when the total delta was zero and Usage was carried over.
	Held bool
	// Clamped is set when the raw usage fell outside [0, 100].
	Clamped bool
}

// First reports whether r is the zero seed reading.
func (r Reading) First() bool {
	return r.Snapshot == Snapshot{}
}

// Delta computes the busy percentage between prev and cur, truncated toward
// zero and clamped into [0, 100].
func Delta(prev Reading, cur Snapshot) Reading {
	// Signed deltas so wrapped or reset counters show up as negative.
	diffIdle := int64(cur.Idle - prev.Snapshot.Idle)
	diffTotal := int64(cur.Total - prev.Snapshot.Total)

	next := Reading{Snapshot: cur}
	if diffTotal == 0 {
		next.Usage = prev.Usage
		next.Held = true
		return next
	}

	usage := (diffTotal - diffIdle) * 100 / diffTotal
	next.Usage = int(clamp(usage, 0, 100))
	next.Clamped = int64(next.Usage) != usage

	return next
}

func clamp(value, minValue, maxValue int64) int64 {
	if value < minValue {
		return minValue
	}

	if value > maxValue {
		return maxValue
	}

	return value
}
