package transport

import (
	"time"

	"github.com/mohsinyousufi/wio-pc-monitor/internal/errors"
	"go.bug.st/serial"
)

// readTimeout keeps port reads effectively non-blocking: a read with no
// pending bytes returns 0 almost immediately instead of stalling the loop.
const readTimeout = time.Millisecond

// SerialPort is the subset of go.bug.st/serial.Port the transport needs
// (and the seam for mocking in tests).
type SerialPort interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	SetReadTimeout(t time.Duration) error
	Close() error
}

// SerialPortFactory opens a serial port connection.
type SerialPortFactory func(path string, mode *serial.Mode) (SerialPort, error)

// DefaultSerialPortFactory opens real serial ports.
func DefaultSerialPortFactory(path string, mode *serial.Mode) (SerialPort, error) {
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, errors.New().Wrap(ErrOpenFailed, err).WithData(path)
	}
	return port, nil
}

// Serial carries the line protocol over a byte-stream port: the USB wire,
// or an RFCOMM device when acting as the legacy Bluetooth-serial fallback.
type Serial struct {
	port SerialPort
	name string
	echo bool
}

// OpenSerial opens the wired host link. The wire is host→device only, so
// Notify is a no-op.
func OpenSerial(path string, baud int) (*Serial, error) {
	return openSerial("serial", path, baud, false, DefaultSerialPortFactory)
}

// OpenBluetoothSerial opens a legacy Bluetooth RFCOMM device. Snapshots
// echo back over the same stream.
func OpenBluetoothSerial(path string, baud int) (*Serial, error) {
	return openSerial("btserial", path, baud, true, DefaultSerialPortFactory)
}

func openSerial(name, path string, baud int, echo bool, factory SerialPortFactory) (*Serial, error) {
	port, err := factory(path, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, err
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, errors.New().Wrap(ErrOpenFailed, err).WithData(path)
	}
	return &Serial{port: port, name: name, echo: echo}, nil
}

func (s *Serial) Name() string {
	return s.name
}

func (*Serial) Available() bool {
	return true
}

func (s *Serial) TryRead(p []byte) (int, error) {
	return s.port.Read(p)
}

func (s *Serial) Notify(payload []byte) error {
	if !s.echo {
		return nil
	}
	if _, err := s.port.Write(append(payload, '\n')); err != nil {
		return errors.New().Wrap(errors.ErrOperationFailed, err)
	}
	return nil
}

func (s *Serial) Close() error {
	return s.port.Close()
}
