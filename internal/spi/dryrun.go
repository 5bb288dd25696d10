package spi

import (
	"encoding/hex"

	"codeberg.org/mutker/cpuleds/internal/logger"
)

type dryRunTransmitter struct {
	logger logger.Logger
	frames int
}

// NewDryRun returns a Transmitter that logs frames instead of sending them.
func NewDryRun(log logger.Logger) Transmitter {
	log.Info().Msg("Dry run: frames will be logged, not transmitted")

	return &dryRunTransmitter{logger: log}
}

func (t *dryRunTransmitter) Transmit(frame []byte) error {
	t.frames++
	t.logger.Debug().
		Int("frame", t.frames).
		Int("bytes", len(frame)).
		Str("data", hex.EncodeToString(frame)).
		Msg("Frame")

	return nil
}

func (t *dryRunTransmitter) Close() error {
	t.logger.Debug().Int("frames", t.frames).Msg("Dry run finished")

	return nil
}
