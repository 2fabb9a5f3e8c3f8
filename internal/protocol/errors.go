package protocol

import "github.com/mohsinyousufi/wio-pc-monitor/internal/errors"

const (
	// ErrMalformedRecord rejects a line with fewer than five fields.
	ErrMalformedRecord = errors.ErrorCode("protocol_malformed_record")
)
