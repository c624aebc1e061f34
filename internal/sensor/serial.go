package sensor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"

	"github.com/banshee-data/swarm.pilot/internal/swarm"
)

// DefaultBaudRate matches the reference lidar bridge firmware.
const DefaultBaudRate = 115200

// SerialScanner reads full-revolution scans from a serial-attached range
// sensor. The wire format is one CSV line of distances per revolution,
// newline terminated, most recent line wins.
type SerialScanner struct {
	port   Porter
	reader *bufio.Reader
}

// OpenSerialScanner opens the serial device at path and wraps it in a
// SerialScanner. A zero baud rate uses DefaultBaudRate.
func OpenSerialScanner(path string, baudRate int) (*SerialScanner, error) {
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}
	port, err := serial.Open(path, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("failed to open sensor port %s: %w", path, err)
	}
	// Bounded read timeout so an idle sensor reads as unavailable rather
	// than stalling the control tick.
	if err := port.SetReadTimeout(50 * time.Millisecond); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to set sensor read timeout: %w", err)
	}
	return NewSerialScanner(port), nil
}

// NewSerialScanner wraps an already-open port. Used directly by tests.
func NewSerialScanner(port Porter) *SerialScanner {
	return &SerialScanner{
		port:   port,
		reader: bufio.NewReader(port),
	}
}

// Scan reads the next scan line from the port. A timeout, EOF, or blank
// line yields (nil, nil): the sensor is simply unavailable this tick.
// Only transport failures surface as errors.
func (s *SerialScanner) Scan() (swarm.RangeSample, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			// Partial line before EOF still parses; an empty one is nil.
			return ParseScanLine(line), nil
		}
		return nil, fmt.Errorf("failed to read scan line: %w", err)
	}
	return ParseScanLine(line), nil
}

// Close releases the underlying port.
func (s *SerialScanner) Close() error {
	return s.port.Close()
}
