package spi

import (
	"sync"

	"codeberg.org/mutker/cpuleds/internal/errors"
	"codeberg.org/mutker/cpuleds/internal/logger"
	"periph.io/x/conn/v3/physic"
	spiconn "periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

var hostInit = sync.OnceValue(func() error {
	_, err := host.Init()
	return err
})

// port abstracts the periph port for testing
type port interface {
	Connect(f physic.Frequency, mode spiconn.Mode, bits int) (spiconn.Conn, error)
	Close() error
}

type periphTransmitter struct {
	port   port
	conn   spiconn.Conn
	buf    []byte
	latch  int
	logger logger.Logger
}

// Open initializes the host drivers and connects to the configured port in
// mode 0 with 8 bit words.
func Open(cfg Config, log logger.Logger) (Transmitter, error) {
	errFactory := errors.New()

	if err := hostInit(); err != nil {
		return nil, errFactory.Wrap(errors.ErrSPIOpen, err).WithData("host init")
	}

	p, err := spireg.Open(cfg.Device)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrSPIOpen, err).WithData(portName(cfg.Device))
	}

	t, err := newPeriphTransmitter(p, cfg, log)
	if err != nil {
		p.Close()
		return nil, err
	}

	log.Info().
		Str("device", portName(cfg.Device)).
		Int64("clock_hz", cfg.ClockHz).
		Int("latch_bytes", cfg.LatchBytes).
		Msg("SPI port opened")

	return t, nil
}

func newPeriphTransmitter(p port, cfg Config, log logger.Logger) (*periphTransmitter, error) {
	errFactory := errors.New()

	if cfg.ClockHz <= 0 || cfg.LatchBytes < 0 {
		return nil, errFactory.WithData(errors.ErrInvalidConfig, struct {
			ClockHz    int64
			LatchBytes int
		}{
			ClockHz:    cfg.ClockHz,
			LatchBytes: cfg.LatchBytes,
		})
	}

	conn, err := p.Connect(physic.Frequency(cfg.ClockHz)*physic.Hertz, spiconn.Mode0, 8)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrSPIOpen, err).WithData(portName(cfg.Device))
	}

	return &periphTransmitter{
		port:   p,
		conn:   conn,
		latch:  cfg.LatchBytes,
		logger: log,
	}, nil
}

func (t *periphTransmitter) Transmit(frame []byte) error {
	w := frame
	if t.latch > 0 {
		t.buf = append(t.buf[:0], make([]byte, t.latch)...)
		t.buf = append(t.buf, frame...)
		w = t.buf
	}

	if err := t.conn.Tx(w, nil); err != nil {
		return errors.New().Wrap(errors.ErrSPITransmit, err)
	}

	return nil
}

func (t *periphTransmitter) Close() error {
	if err := t.port.Close(); err != nil {
		return errors.New().Wrap(errors.ErrSPIClose, err)
	}
	t.logger.Debug().Msg("SPI port closed")

	return nil
}

func portName(device string) string {
	if device == "" {
		return "default"
	}

	return device
}
