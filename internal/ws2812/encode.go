package ws2812

import (
	"codeberg.org/mutker/cpuleds/internal/errors"
	"codeberg.org/mutker/cpuleds/internal/led"
)

const (
	// BitsPerBit is the number of SPI bits sent per data bit.
	BitsPerBit = 3
	// BytesPerChannel is the encoded size of one color byte.
	BytesPerChannel = 8 * BitsPerBit / 8
	// BytesPerLED is the encoded size of one color.
	BytesPerLED = 3 * BytesPerChannel
	// ClockHz is the default SPI clock: one data bit per microsecond, which
	// keeps the 0 and 1 high times inside the WS2812 tolerances.
	ClockHz = 3_000_000

	zeroPattern = 0b100
	onePattern  = 0b110
	patternMask = 0b111
)

// EncodeByte expands b into its 24-bit waveform, data bit 7 first.
func EncodeByte(b byte) [BytesPerChannel]byte {
	var v uint32
	for i := 7; i >= 0; i-- {
		v <<= BitsPerBit
		if b&(1<<i) != 0 {
			v |= onePattern
		} else {
			v |= zeroPattern
		}
	}

	return [BytesPerChannel]byte{byte(v >> 16), byte(v >> 8), byte(v)}
}

// DecodeByte reverses EncodeByte.
func DecodeByte(p [BytesPerChannel]byte) (byte, error) {
	v := uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])

	var b byte
	for i := 7; i >= 0; i-- {
		b <<= 1
		switch group := (v >> (i * BitsPerBit)) & patternMask; group {
		case onePattern:
			b |= 1
		case zeroPattern:
		default:
			return 0, errors.New().WithData(errors.ErrInvalidPattern, struct {
				Bit     int
				Pattern uint32
			}{
				Bit:     i,
				Pattern: group,
			})
		}
	}

	return b, nil
}

// EncodeColor encodes c in the strip's green, red, blue order.
func EncodeColor(c led.Color) [BytesPerLED]byte {
	var out [BytesPerLED]byte
	for i, ch := range [3]byte{c.G, c.R, c.B} {
		enc := EncodeByte(ch)
		copy(out[i*BytesPerChannel:], enc[:])
	}

	return out
}

// DecodeColor reverses EncodeColor.
func DecodeColor(p [BytesPerLED]byte) (led.Color, error) {
	var ch [3]byte
	for i := range ch {
		b, err := DecodeByte([BytesPerChannel]byte(p[i*BytesPerChannel : (i+1)*BytesPerChannel]))
		if err != nil {
			return led.Color{}, err
		}
		ch[i] = b
	}

	return led.Color{G: ch[0], R: ch[1], B: ch[2]}, nil
}

// EncodeFrame encodes leds in strip order into one bus frame of
// BytesPerLED*len(leds) bytes.
func EncodeFrame(leds []led.Color) []byte {
	frame := make([]byte, 0, len(leds)*BytesPerLED)
	for _, c := range leds {
		enc := EncodeColor(c)
		frame = append(frame, enc[:]...)
	}

	return frame
}

// DecodeFrame reverses EncodeFrame.
func DecodeFrame(frame []byte) ([]led.Color, error) {
	if len(frame)%BytesPerLED != 0 {
		return nil, errors.New().WithData(errors.ErrInvalidPattern, struct {
			Length int
		}{
			Length: len(frame),
		})
	}

	leds := make([]led.Color, 0, len(frame)/BytesPerLED)
	for off := 0; off < len(frame); off += BytesPerLED {
		c, err := DecodeColor([BytesPerLED]byte(frame[off : off+BytesPerLED]))
		if err != nil {
			return nil, err
		}
		leds = append(leds, c)
	}

	return leds, nil
}
