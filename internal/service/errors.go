package service

import "errors"

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindCapacity
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindCapacity:
		return "capacity"
	default:
		return "internal"
	}
}

// Error is a failure the caller can act on. Message is safe to show to
// clients; Err, when set, is the underlying cause and is only logged.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind and message, so a wrapped
// internal error still satisfies errors.Is(err, ErrInternal).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

var (
	ErrMissingFields      = &Error{Kind: KindValidation, Message: "missing required fields"}
	ErrInvalidEmail       = &Error{Kind: KindValidation, Message: "invalid customer email"}
	ErrInvalidPartySize   = &Error{Kind: KindValidation, Message: "number of people must be a positive integer"}
	ErrPromoCodeRequired  = &Error{Kind: KindValidation, Message: "promo code is required"}
	ErrSlotNotFound       = &Error{Kind: KindNotFound, Message: "slot not found"}
	ErrExperienceNotFound = &Error{Kind: KindNotFound, Message: "experience not found"}
	ErrBookingNotFound    = &Error{Kind: KindNotFound, Message: "booking not found"}
	ErrPromoNotFound      = &Error{Kind: KindNotFound, Message: "invalid or expired promo code"}
	ErrNotEnoughSpots     = &Error{Kind: KindCapacity, Message: "not enough available spots"}
	ErrInternal           = &Error{Kind: KindInternal, Message: "internal error"}
)

func internalError(cause error) error {
	return &Error{Kind: KindInternal, Message: ErrInternal.Message, Err: cause}
}

// KindOf classifies err. Anything that is not an *Error is internal.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
