package catalog

import (
	"errors"
	"fmt"
)

// Kind classifies what went wrong with a catalog call, mirroring the states
// the storefront distinguishes when deciding what to show the user.
type Kind int

const (
	KindNetwork  Kind = iota + 1 // transport failed outright
	KindHTTP                     // non-2xx status from the backend
	KindTimeout                  // our own deadline fired first
	KindContract                 // response did not match the envelope
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindTimeout:
		return "timeout"
	case KindContract:
		return "contract"
	case KindValidation:
		return "validation"
	}
	return "unknown"
}

// Error is the single error type the catalog client returns.
type Error struct {
	Kind    Kind
	Status  int // set for KindHTTP
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Kind == KindHTTP {
		return fmt.Sprintf("catalog: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("catalog: %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("catalog: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf extracts the Kind of err, or zero when err is not a catalog error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

func IsTimeout(err error) bool  { return KindOf(err) == KindTimeout }
func IsContract(err error) bool { return KindOf(err) == KindContract }
