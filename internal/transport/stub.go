package transport

// Stub is the no-Bluetooth fallback: never available, reads nothing,
// notifies nowhere. Selecting it degrades the device to serial-only
// operation without special-casing the control loop.
type Stub struct{}

func (Stub) Name() string {
	return "none"
}

func (Stub) Available() bool {
	return false
}

func (Stub) TryRead([]byte) (int, error) {
	return 0, nil
}

func (Stub) Notify([]byte) error {
	return nil
}

func (Stub) Close() error {
	return nil
}
