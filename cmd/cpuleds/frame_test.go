package main

import (
	"bytes"
	"strings"
	"testing"

	"codeberg.org/mutker/cpuleds/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigFile, "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestFrameCommand(t *testing.T) {
	out, err := execute(t, "frame", "47", "--leds", "20")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 21)
	assert.Equal(t, "usage 47%, 9 of 20 LEDs lit, 180 bytes", lines[0])
	// Default color #050000: green 0x00, red 0x05, blue 0x00.
	assert.Equal(t, "  0 #050000 9249249249a6924924", lines[1])
	assert.Equal(t, "  8 #050000 9249249249a6924924", lines[9])
	assert.Equal(t, "  9 #000000 924924924924924924", lines[10])
}

func TestFrameCommandColor(t *testing.T) {
	out, err := execute(t, "frame", "100", "--leds", "1", "--color", "#ff0000")
	require.NoError(t, err)
	assert.Contains(t, out, "  0 #ff0000 924924db6db6924924")
}

func TestFrameCommandInvalidUsage(t *testing.T) {
	_, err := execute(t, "frame", "lots")
	require.Error(t, err)
}
