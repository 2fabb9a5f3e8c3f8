package transport

// Transport is an independent byte channel carrying the line protocol.
// Implementations must never block the control loop: TryRead drains only
// what is already buffered and Notify is fire-and-forget.
type Transport interface {
	Name() string

	// Available reports whether the channel is usable at all. An
	// unavailable transport (the Bluetooth stub) reads nothing and
	// notifies nowhere; the status line reflects it.
	Available() bool

	// TryRead copies pending inbound bytes into p without blocking,
	// returning 0 when nothing is buffered.
	TryRead(p []byte) (int, error)

	// Notify pushes an outbound payload to a subscribed peer, if any.
	// Failures are swallowed; the echo is best-effort by design.
	Notify(payload []byte) error

	Close() error
}
