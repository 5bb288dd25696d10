package led

import (
	"fmt"

	"codeberg.org/mutker/cpuleds/internal/errors"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is one LED's channel intensities.
type Color struct {
	R, G, B uint8
}

// Off is the all-zero color.
var Off = Color{}

func (c Color) IsOff() bool {
	return c == Off
}

// Hex formats c as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses a #rrggbb string.
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.New().Wrap(errors.ErrInvalidColor, err).WithData(s)
	}

	r, g, b := c.RGB255()

	return Color{R: r, G: g, B: b}, nil
}

// Palette holds the colors for lit and unlit positions. Off is always
// all-zero.
type Palette struct {
	Active Color
	Off    Color
}

// DefaultPalette is a dim red bar.
func DefaultPalette() Palette {
	return NewPalette(Color{R: 5})
}

func NewPalette(active Color) Palette {
	return Palette{Active: active, Off: Off}
}

// Validate checks that lit and unlit positions can be told apart.
func (p Palette) Validate() error {
	errFactory := errors.New()

	if !p.Off.IsOff() {
		return errFactory.WithData(errors.ErrInvalidColor, "off color must be "+Off.Hex())
	}
	if p.Active.IsOff() {
		return errFactory.WithData(errors.ErrInvalidColor, "active color must not be "+Off.Hex())
	}

	return nil
}
