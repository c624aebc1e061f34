// Package actuator provides differential-drive outputs for the steering
// pipeline: a serial-attached motor bridge and test/demo stand-ins.
package actuator

import (
	"fmt"
	"io"
	"sync"

	"go.bug.st/serial"

	"github.com/banshee-data/swarm.pilot/internal/monitoring"
)

// DefaultBaudRate matches the reference motor bridge firmware.
const DefaultBaudRate = 115200

// Porter is the minimal transport interface for the motor bridge.
type Porter interface {
	io.Writer
	io.Closer
}

// SerialActuator writes wheel velocity commands to a serial-attached motor
// bridge, one "left,right" line per command. Commands persist on the bridge
// until the next line; there is no acknowledgment.
type SerialActuator struct {
	mu   sync.Mutex
	port Porter
}

// OpenSerialActuator opens the serial device at path. A zero baud rate
// uses DefaultBaudRate.
func OpenSerialActuator(path string, baudRate int) (*SerialActuator, error) {
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}
	port, err := serial.Open(path, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("failed to open actuator port %s: %w", path, err)
	}
	return NewSerialActuator(port), nil
}

// NewSerialActuator wraps an already-open port. Used directly by tests.
func NewSerialActuator(port Porter) *SerialActuator {
	return &SerialActuator{port: port}
}

// SetVelocities writes one wheel command line.
func (a *SerialActuator) SetVelocities(left, right float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, err := fmt.Fprintf(a.port, "%.3f,%.3f\n", left, right); err != nil {
		return fmt.Errorf("failed to write drive command: %w", err)
	}
	return nil
}

// Close releases the underlying port.
func (a *SerialActuator) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.port.Close()
}

// LogActuator discards commands after logging them at debug level. Used
// when no motor hardware is attached.
type LogActuator struct {
	Name string
}

// SetVelocities logs the command and succeeds.
func (a LogActuator) SetVelocities(left, right float64) error {
	monitoring.Debugf("[%s] drive command left=%.2f right=%.2f", a.Name, left, right)
	return nil
}
