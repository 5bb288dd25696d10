package led

const maxUsage = 100

// LEDCount maps a usage percentage onto the number of lit LEDs on a strip
// of n. The range is split into n buckets of 100/n points each; strips
// longer than 100 fall back to usage*n/100.
func LEDCount(usage, n int) int {
	if n <= 0 {
		return 0
	}

	usage = clamp(usage, 0, maxUsage)

	bucketWidth := maxUsage / n
	if bucketWidth == 0 {
		return usage * n / maxUsage
	}

	return min(usage/bucketWidth, n)
}

// NewStrip returns an unlit buffer of n LEDs.
func NewStrip(n int) []Color {
	return make([]Color, max(n, 0))
}

// Fill lights buf[:count] with the active color and blanks the rest.
func Fill(buf []Color, count int, p Palette) {
	count = clamp(count, 0, len(buf))

	for i := range buf[:count] {
		buf[i] = p.Active
	}
	for i := range buf[count:] {
		buf[count+i] = p.Off
	}
}

func clamp(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}

	if value > maxValue {
		return maxValue
	}

	return value
}
