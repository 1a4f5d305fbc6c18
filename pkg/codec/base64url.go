// Package codec provides the text encodings used by gglas links: unpadded
// base64url for payloads and signatures, and a minimal URI query parser.
package codec

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeError is returned when input cannot be decoded.
type DecodeError struct {
	// Input is the offending input, truncated for display.
	Input string

	// Reason describes why decoding failed.
	Reason string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %s", e.Input, e.Reason)
}

func newDecodeError(input, reason string) *DecodeError {
	if len(input) > 32 {
		input = input[:32] + "..."
	}
	return &DecodeError{Input: input, Reason: reason}
}

// strict rejects non-zero trailing bits so each byte string has exactly one encoding.
var strict = base64.URLEncoding.Strict()

// Encode returns the base64url form of data: standard base64 with '+' and '/'
// replaced by '-' and '_' and all '=' padding removed.
func Encode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode reverses Encode. The input is re-padded to a multiple of four
// characters before decoding; a length of 1 modulo 4 can never be produced by
// Encode and is rejected, as is any character outside the base64url alphabet.
func Decode(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if !isAlphabet(s[i]) {
			return nil, newDecodeError(s, fmt.Sprintf("invalid character %q at offset %d", s[i], i))
		}
	}

	switch len(s) % 4 {
	case 1:
		return nil, newDecodeError(s, "truncated input")
	case 2:
		s += "=="
	case 3:
		s += "="
	}

	data, err := strict.DecodeString(s)
	if err != nil {
		return nil, newDecodeError(s, err.Error())
	}
	return data, nil
}

func isAlphabet(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}

// IsURLSafe reports whether s contains none of the characters that would need
// escaping inside a query value ('+', '/', '=').
func IsURLSafe(s string) bool {
	return !strings.ContainsAny(s, "+/=")
}
