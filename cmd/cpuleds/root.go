package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/cpuleds/internal/config"
	"codeberg.org/mutker/cpuleds/internal/cpu"
	"codeberg.org/mutker/cpuleds/internal/errors"
	"codeberg.org/mutker/cpuleds/internal/logger"
	"codeberg.org/mutker/cpuleds/internal/meter"
	"codeberg.org/mutker/cpuleds/internal/pid"
	"codeberg.org/mutker/cpuleds/internal/spi"
	"codeberg.org/mutker/cpuleds/internal/systemd"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cpuleds",
		Short: "Show CPU utilization on a WS2812 LED strip",
		Long: `cpuleds samples /proc/stat on a fixed interval and lights a bar of LEDs
proportional to CPU utilization. The strip is driven over SPI.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())
	cmd.AddCommand(newFrameCmd())

	return cmd
}

func run(cmd *cobra.Command) error {
	errFactory := errors.New()

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.LogLevel, logger.IsService()); err != nil {
		return err
	}
	logger.Debug().Str("file", cfg.File()).Msg("Config loaded")

	pidFile := pid.New("")
	if err := pidFile.Write(); err != nil {
		return err
	}
	defer func() {
		if err := pidFile.Remove(); err != nil {
			logger.Error().Err(err).Msg("failed to remove PID file")
		}
	}()

	tx, err := openTransmitter(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := tx.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close transmitter")
		}
	}()

	palette, err := cfg.Palette()
	if err != nil {
		return err
	}

	notifier := systemd.NewNotifier()
	m, err := meter.New(cpu.NewStatFile(cfg.StatPath), tx, meter.Options{
		Interval: cfg.Interval,
		LEDs:     cfg.LEDs,
		Palette:  palette,
		Watchdog: notifier,
	}, logger.Default())
	if err != nil {
		return errFactory.Wrap(errors.ErrInitApp, err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go handleSignals(ctx, cancel)

	cfg.Watch(ctx, func(c *config.Config) {
		if p, err := c.Palette(); err == nil {
			m.SetPalette(p)
		}
		if err := logger.SetLevel(c.LogLevel); err != nil {
			logger.Warn().Err(err).Msg("failed to apply log level")
		}
	})

	if err := notifier.Ready(); err != nil {
		logger.Debug().Err(err).Msg("systemd notification failed")
	}

	logger.Info().
		Dur("interval", cfg.Interval).
		Int("leds", cfg.LEDs).
		Str("color", palette.Active.Hex()).
		Bool("dry_run", cfg.DryRun).
		Msg("Starting CPU meter")

	err = m.Run(ctx)
	if err != nil {
		logger.Error().Err(err).Str("error_code", string(errors.CodeOf(err))).Msg("error in main loop")
	}

	if err := notifier.Stopping(); err != nil {
		logger.Debug().Err(err).Msg("systemd notification failed")
	}
	logger.Info().Msg("Exiting...")

	return err
}

func openTransmitter(cfg *config.Config) (spi.Transmitter, error) {
	if cfg.DryRun {
		return spi.NewDryRun(logger.Default()), nil
	}

	return spi.Open(spi.Config{
		Device:     cfg.SPIDevice,
		ClockHz:    cfg.SPIClock,
		LatchBytes: cfg.LatchBytes,
	}, logger.Default())
}

func handleSignals(ctx context.Context, cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case <-sigs:
		logger.Info().Msg("Received termination signal.")
		cancel()
	case <-ctx.Done():
	}
}
