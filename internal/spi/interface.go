package spi

// Transmitter sends complete bus frames to the strip
type Transmitter interface {
	Transmit(frame []byte) error
	Close() error
}

// Config describes the SPI port used to drive the strip
type Config struct {
	// Device is the periph port name, e.g. "/dev/spidev0.0" or "SPI0.0".
	// Empty selects the first available port.
	Device string
	// ClockHz is the bus clock in Hz.
	ClockHz int64
	// LatchBytes zero bytes are sent ahead of every frame so the line is
	// held low long enough for the strip to latch the previous one.
	LatchBytes int
}
