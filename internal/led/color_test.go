package led_test

import (
	"testing"

	"codeberg.org/mutker/cpuleds/internal/errors"
	"codeberg.org/mutker/cpuleds/internal/led"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want led.Color
	}{
		{"#050000", led.Color{R: 5}},
		{"#00ff00", led.Color{G: 255}},
		{"#0a141e", led.Color{R: 10, G: 20, B: 30}},
		{"#FFFFFF", led.Color{R: 255, G: 255, B: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := led.ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, mustParse(t, got.Hex()))
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "red", "#gg0000", "050000"} {
		_, err := led.ParseColor(in)
		require.Error(t, err, in)
		assert.True(t, errors.HasCode(err, errors.ErrInvalidColor), in)
	}
}

func TestPaletteValidate(t *testing.T) {
	require.NoError(t, led.DefaultPalette().Validate())
	assert.Equal(t, led.Color{R: 5}, led.DefaultPalette().Active)

	err := led.NewPalette(led.Off).Validate()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidColor))

	err = led.Palette{Active: led.Color{G: 1}, Off: led.Color{B: 1}}.Validate()
	require.Error(t, err)
}

func mustParse(t *testing.T, s string) led.Color {
	t.Helper()
	c, err := led.ParseColor(s)
	require.NoError(t, err)
	return c
}
