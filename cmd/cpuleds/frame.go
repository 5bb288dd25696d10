package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"codeberg.org/mutker/cpuleds/internal/config"
	"codeberg.org/mutker/cpuleds/internal/errors"
	"codeberg.org/mutker/cpuleds/internal/led"
	"codeberg.org/mutker/cpuleds/internal/ws2812"
	"github.com/spf13/cobra"
)

func newFrameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "frame <usage>",
		Short: "Print the SPI frame for a utilization percentage",
		Long: `Renders the bar for the given utilization percentage and prints the
encoded bytes of every LED, without touching the SPI bus.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			usage, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.New().Wrap(errors.ErrInvalidArgument, err)
			}

			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			palette, err := cfg.Palette()
			if err != nil {
				return err
			}

			return printFrame(cmd, usage, cfg.LEDs, palette)
		},
	}
}

func printFrame(cmd *cobra.Command, usage, n int, palette led.Palette) error {
	strip := led.NewStrip(n)
	count := led.LEDCount(usage, n)
	led.Fill(strip, count, palette)

	frame := ws2812.EncodeFrame(strip)

	decoded, err := ws2812.DecodeFrame(frame)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "usage %d%%, %d of %d LEDs lit, %d bytes\n", usage, count, n, len(frame))
	for i, c := range decoded {
		enc := frame[i*ws2812.BytesPerLED : (i+1)*ws2812.BytesPerLED]
		fmt.Fprintf(out, "%3d %s %s\n", i, c.Hex(), hex.EncodeToString(enc))
	}

	return nil
}
