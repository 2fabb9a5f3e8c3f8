package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

type mockPort struct {
	pending     []byte
	written     []byte
	readTimeout time.Duration
	closed      bool
}

func (m *mockPort) Read(p []byte) (int, error) {
	n := copy(p, m.pending)
	m.pending = m.pending[n:]
	return n, nil
}

func (m *mockPort) Write(p []byte) (int, error) {
	m.written = append(m.written, p...)
	return len(p), nil
}

func (m *mockPort) SetReadTimeout(t time.Duration) error {
	m.readTimeout = t
	return nil
}

func (m *mockPort) Close() error {
	m.closed = true
	return nil
}

func mockFactory(port *mockPort) SerialPortFactory {
	return func(_ string, _ *serial.Mode) (SerialPort, error) {
		return port, nil
	}
}

func TestSerial_TryReadDrainsPendingBytes(t *testing.T) {
	port := &mockPort{pending: []byte("12.5,40,")}
	s, err := openSerial("serial", "/dev/ttyACM0", 115200, false, mockFactory(port))
	require.NoError(t, err)

	assert.NotZero(t, port.readTimeout, "a read timeout keeps the poll loop from stalling")

	buf := make([]byte, 4)
	n, err := s.TryRead(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("12.5"), buf[:n])

	n, err = s.TryRead(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte(",40,"), buf[:n])

	n, err = s.TryRead(buf)
	require.NoError(t, err)
	assert.Zero(t, n, "an idle port reads zero bytes, not an error")
}

func TestSerial_WiredLinkDoesNotEcho(t *testing.T) {
	port := &mockPort{}
	s, err := openSerial("serial", "/dev/ttyACM0", 115200, false, mockFactory(port))
	require.NoError(t, err)

	require.NoError(t, s.Notify([]byte("CPU:1.00")))
	assert.Empty(t, port.written, "the USB wire is inbound only")
}

func TestSerial_BluetoothLinkEchoesWithTerminator(t *testing.T) {
	port := &mockPort{}
	s, err := openSerial("btserial", "/dev/rfcomm0", 115200, true, mockFactory(port))
	require.NoError(t, err)

	require.NoError(t, s.Notify([]byte("CPU:1.00,TEMP:2.00")))
	assert.Equal(t, "CPU:1.00,TEMP:2.00\n", string(port.written))
}

func TestSerial_CloseReleasesPort(t *testing.T) {
	port := &mockPort{}
	s, err := openSerial("serial", "/dev/ttyACM0", 115200, false, mockFactory(port))
	require.NoError(t, err)

	require.NoError(t, s.Close())
	assert.True(t, port.closed)
}

func TestStub_IsNeverAvailable(t *testing.T) {
	var s Stub

	assert.Equal(t, "none", s.Name())
	assert.False(t, s.Available())

	n, err := s.TryRead(make([]byte, 8))
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.NoError(t, s.Notify([]byte("x")))
	assert.NoError(t, s.Close())
}
