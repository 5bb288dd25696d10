// Package ws2812 encodes LED colors for WS2812-class one-wire strips driven
// from an SPI MOSI line.
//
// The strip expects each data bit as a high pulse followed by a low pulse,
// with a short high for 0 and a long high for 1. Clocking SPI at three times
// the strip's bit rate lets each data bit be sent as three SPI bits: 100 for
// a 0 and 110 for a 1. One color byte therefore becomes 24 SPI bits, packed
// most significant bit first into three bytes with no gaps.
//
// Colors go out green, red, blue. Frames carry no reset or latch padding;
// the transmitter is responsible for holding the line low between frames.
package ws2812
