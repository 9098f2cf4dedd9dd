// Package errors defines the failure kinds a connection can end with.
package errors

import "fmt"

// Kind classifies why a connection could not be served.
type Kind int

const (
	// ReadFailure means the request could not be read from the socket.
	ReadFailure Kind = iota
	// WriteFailure means the response could not be written to the socket.
	WriteFailure
	// ConnectionClosed means the peer reset or closed the connection mid-exchange.
	ConnectionClosed
	// HandlerPanic means the handler panicked and was recovered.
	HandlerPanic
	// AcceptFailure means the listener failed to accept a connection.
	AcceptFailure
)

// Error returns a short description of the kind.
func (k Kind) Error() string {
	switch k {
	case ReadFailure:
		return "socket read failed"
	case WriteFailure:
		return "socket write failed"
	case ConnectionClosed:
		return "connection closed by peer"
	case HandlerPanic:
		return "handler panicked"
	case AcceptFailure:
		return "accept failed"
	default:
		return fmt.Sprintf("unknown connection error: %d", int(k))
	}
}

// Error pairs a Kind with the underlying cause.
type Error struct {
	Kind       Kind
	underlying error
}

// New creates an Error of the given kind wrapping underlying, which may be nil.
func New(kind Kind, underlying error) *Error {
	return &Error{Kind: kind, underlying: underlying}
}

// Error returns the kind's description followed by the underlying cause, if any.
func (e *Error) Error() string {
	if e.underlying != nil {
		return fmt.Sprintf("%s: %v", e.Kind.Error(), e.underlying)
	}
	return e.Kind.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.underlying
}

// Is reports whether target is the same Kind as e, so that
// errors.Is(err, ReadFailure) works on wrapped values.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}
