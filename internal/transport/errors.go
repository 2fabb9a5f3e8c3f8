package transport

import "github.com/mohsinyousufi/wio-pc-monitor/internal/errors"

const (
	ErrOpenFailed    = errors.ErrorCode("transport_open_failed")
	ErrBluetoothInit = errors.ErrorCode("transport_bluetooth_init_failed")
)
