package staticfile

import "fmt"

// DecodeKind distinguishes the ways percent-decoding a candidate path can fail.
type DecodeKind int

const (
	// DecodeMalformedEscape marks a malformed %XX escape sequence.
	DecodeMalformedEscape DecodeKind = iota
	// DecodeInvalidUTF8 marks escapes that decoded to bytes which are not
	// valid UTF-8.
	DecodeInvalidUTF8
)

// DecodeError reports that a request path could not be percent-decoded into
// UTF-8 text. It is a client error: the request is answered with a 400 and
// never retried.
type DecodeError struct {
	Kind  DecodeKind
	Input string
	cause error
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case DecodeInvalidUTF8:
		return fmt.Sprintf("request path %q does not decode to valid UTF-8", e.Input)
	default:
		return fmt.Sprintf("request path %q contains a malformed percent-escape", e.Input)
	}
}

// Unwrap exposes the underlying unescape error, if any.
func (e *DecodeError) Unwrap() error { return e.cause }
