package client

import "fmt"

// Kind classifies failures at the client boundary.
type Kind uint8

const (
	// KindInvalidURI covers URI parse and address resolution failures.
	KindInvalidURI Kind = iota + 1
	// KindConnectionFailed covers transport establishment failures.
	KindConnectionFailed
	// KindUnknown covers write and response-decoding failures.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindInvalidURI:
		return "invalid uri"
	case KindConnectionFailed:
		return "connection failed"
	case KindUnknown:
		return "unknown error"
	}
	return "unclassified"
}

// Error tags a lower-level failure with a [Kind]. The cause stays
// reachable through Unwrap, so a caller can still match the specific
// uri, wire or transport error underneath.
type Error struct {
	Kind  Kind
	cause error
}

func newError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }
func (e *Error) Cause() error  { return e.cause }
