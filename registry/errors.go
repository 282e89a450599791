package registry

import "errors"

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindNotFound    ErrKind = iota // missing key or value
	ErrKindType                       // value exists but is not readable as a string
	ErrKindAccess                     // the store refused access
	ErrKindFormat                     // the backing file is malformed
	ErrKindUnsupported                // backend not available on this platform
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not found"
	case ErrKindType:
		return "type mismatch"
	case ErrKindAccess:
		return "access denied"
	case ErrKindFormat:
		return "bad format"
	case ErrKindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// works regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrNotFound     = &Error{Kind: ErrKindNotFound, Msg: "registry: not found"}
	ErrTypeMismatch = &Error{Kind: ErrKindType, Msg: "registry: value is not a string"}
	ErrAccess       = &Error{Kind: ErrKindAccess, Msg: "registry: access denied"}
	ErrFormat       = &Error{Kind: ErrKindFormat, Msg: "registry: malformed store"}
	ErrUnsupported  = &Error{Kind: ErrKindUnsupported, Msg: "registry: backend unsupported on this platform"}
)

func newError(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

func notFound(what string) *Error {
	return newError(ErrKindNotFound, "registry: "+what+" not found", nil)
}
