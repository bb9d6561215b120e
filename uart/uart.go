package uart

import "io"

// UART is a serial port. Writes are blocking and always send every byte.
type UART interface {
	io.Writer

	// Read returns the next received byte. The second return value is false if no data is waiting;
	// Read never blocks.
	Read() (byte, bool)
}
