package meter

import (
	"context"
	"sync/atomic"
	"time"

	"codeberg.org/mutker/cpuleds/internal/cpu"
	"codeberg.org/mutker/cpuleds/internal/errors"
	"codeberg.org/mutker/cpuleds/internal/led"
	"codeberg.org/mutker/cpuleds/internal/logger"
	"codeberg.org/mutker/cpuleds/internal/spi"
	"codeberg.org/mutker/cpuleds/internal/ws2812"
)

// Watchdog is pinged once per cycle
type Watchdog interface {
	Alive() error
}

type Options struct {
	Interval time.Duration
	LEDs     int
	Palette  led.Palette
	Watchdog Watchdog
}

// Meter renders CPU utilization as a bar on an LED strip.
type Meter struct {
	src      cpu.Source
	tx       spi.Transmitter
	interval time.Duration
	watchdog Watchdog
	logger   logger.Logger

	palette atomic.Pointer[led.Palette]
	strip   []led.Color
	reading cpu.Reading
	lit     int
}

func New(src cpu.Source, tx spi.Transmitter, opts Options, log logger.Logger) (*Meter, error) {
	errFactory := errors.New()

	if opts.Interval <= 0 {
		return nil, errFactory.WithData(errors.ErrInvalidInterval, opts.Interval)
	}
	if opts.LEDs <= 0 {
		return nil, errFactory.WithData(errors.ErrInvalidLEDCount, opts.LEDs)
	}
	if err := opts.Palette.Validate(); err != nil {
		return nil, err
	}

	m := &Meter{
		src:      src,
		tx:       tx,
		interval: opts.Interval,
		watchdog: opts.Watchdog,
		logger:   log,
		strip:    led.NewStrip(opts.LEDs),
	}
	m.SetPalette(opts.Palette)

	return m, nil
}

// SetPalette replaces the colors used from the next cycle on. Safe for
// concurrent use.
func (m *Meter) SetPalette(p led.Palette) {
	m.palette.Store(&p)
}

func (m *Meter) Palette() led.Palette {
	return *m.palette.Load()
}

// State returns the reading of the last completed cycle
func (m *Meter) State() cpu.Reading {
	return m.reading
}

// Lit returns the number of LEDs lit by the last completed cycle
func (m *Meter) Lit() int {
	return m.lit
}

// Run draws a frame immediately and then once per interval until ctx is
// cancelled. The strip is blanked on return.
func (m *Meter) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	defer m.blank()

	if err := m.Step(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := m.Step(ctx); err != nil {
				return err
			}
		}
	}
}

// Step runs one sample, map, encode and transmit cycle. A bad sample skips
// the cycle and leaves the strip as it was; only transmit failures are
// returned.
func (m *Meter) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return nil
	}

	m.ping()

	snapshot, err := m.src.Read()
	if err != nil {
		var appErr errors.Error
		if errors.As(err, &appErr) {
			m.logger.ErrorWithCode(appErr).Msg("Skipping cycle")
		} else {
			m.logger.Error().Err(err).Msg("Skipping cycle")
		}
		return nil
	}

	first := m.reading.First()
	reading := cpu.Delta(m.reading, snapshot)
	if first {
		m.logger.Debug().Int("usage", reading.Usage).Msg("First reading covers time since boot")
	}

	count := led.LEDCount(reading.Usage, len(m.strip))
	led.Fill(m.strip, count, m.Palette())

	if err := m.tx.Transmit(ws2812.EncodeFrame(m.strip)); err != nil {
		return errors.New().Wrap(errors.ErrMainLoop, err)
	}

	m.reading = reading
	m.lit = count

	m.logger.Debug().
		Int("usage", reading.Usage).
		Int("leds", count).
		Bool("held", reading.Held).
		Bool("clamped", reading.Clamped).
		Uint64("total", snapshot.Total).
		Uint64("idle", snapshot.Idle).
		Msg("")

	return nil
}

func (m *Meter) ping() {
	if m.watchdog == nil {
		return
	}
	if err := m.watchdog.Alive(); err != nil {
		m.logger.Warn().Err(err).Msg("Watchdog ping failed")
	}
}

func (m *Meter) blank() {
	led.Fill(m.strip, 0, m.Palette())
	if err := m.tx.Transmit(ws2812.EncodeFrame(m.strip)); err != nil {
		m.logger.Error().Err(err).Msg("Failed to blank strip")
		return
	}
	m.lit = 0
}
