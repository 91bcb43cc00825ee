package staticfile

import (
	"net/url"
	"unicode/utf8"
)

// percentDecode reverses %XX escaping in the candidate path and interprets
// the resulting bytes as UTF-8.
//
// Decoding happens on the byte level before UTF-8 interpretation: an escape
// sequence that decodes to a non-UTF-8 byte sequence fails rather than being
// passed through raw. Both failure modes surface as a *DecodeError so the
// caller can answer with a client error.
func percentDecode(s string) (string, error) {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return "", &DecodeError{Kind: DecodeMalformedEscape, Input: s, cause: err}
	}
	if !utf8.ValidString(decoded) {
		return "", &DecodeError{Kind: DecodeInvalidUTF8, Input: s}
	}
	return decoded, nil
}
