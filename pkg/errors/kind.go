package errors

import (
	"context"
	"errors"
)

// Kind classifies an error into the small set of outcomes a caller acts on.
type Kind int

const (
	// KindNone means the operation succeeded.
	KindNone Kind = iota
	// KindNotFound means the addressed lesson or file does not exist.
	KindNotFound
	// KindValidation means the input was rejected before any I/O.
	KindValidation
	// KindConflict means the resource already exists.
	KindConflict
	// KindUnauthorized means a credential check failed.
	KindUnauthorized
	// KindNoDevice means no removable device is available.
	KindNoDevice
	// KindCanceled means the caller canceled the operation.
	KindCanceled
	// KindIO means a filesystem or serialization failure.
	KindIO
	// KindUnknown is anything not covered above.
	KindUnknown
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "ok"
	case KindNotFound:
		return "not-found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindNoDevice:
		return "no-device"
	case KindCanceled:
		return "canceled"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// KindOf reports the kind of err. Checks run from most to least specific,
// so a ResourceError wrapping a NotFoundError is still KindNotFound.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrAlreadyExists):
		return KindConflict
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrNoDevice):
		return KindNoDevice
	case errors.Is(err, ErrCanceled), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, ErrIO):
		return KindIO
	default:
		return KindUnknown
	}
}
