package wire

import (
	"fmt"
)

const (
	ErrShortFrame       = LogicError("message frame too short")
	ErrBadMagic         = LogicError("message frame missing '##' magic")
	ErrFrameTooLarge    = LogicError("message frame exceeds maximum size")
	ErrTruncatedFrame   = LogicError("message frame shorter than its declared length")
	ErrBadReport        = LogicError("report missing '?' marker")
	ErrMalformedPayload = LogicError("malformed message payload")
)

// LogicError is the error type for a protocol error arising from an
// invalid message received from the host.
type LogicError string

// Error implements [error.Error].
func (e LogicError) Error() string {
	return string(e)
}

func Errorf(msg string, v ...any) LogicError {
	return LogicError(fmt.Sprintf(msg, v...))
}
