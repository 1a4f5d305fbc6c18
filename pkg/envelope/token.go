// Package envelope issues and verifies HMAC-SHA256 signed gglas links.
//
// A link has the form
//
//	<scheme>://<path>?payload=<p64>&sig=<sig>
//
// where p64 is the unpadded base64url encoding of the payload's canonical JSON
// and sig is the base64url HMAC-SHA256 of the p64 string itself. Signing the
// encoded string means verification never re-serializes the payload.
//
// Issue and Verify are pure functions of their inputs and are safe for
// concurrent use.
package envelope

import (
	"fmt"
	"net/url"

	"github.com/gglas/gglas-linker/pkg/codec"
)

// Defaults applied when Issue is given an empty scheme or path.
const (
	DefaultScheme = "gglas"
	DefaultPath   = "agent/new"
)

// Query parameter names.
const (
	ParamPayload   = "payload"
	ParamSignature = "sig"
)

// Token is the parsed form of a gglas link.
type Token struct {
	Scheme string
	Path   string

	// Payload is the base64url-encoded payload JSON, exactly as signed.
	Payload string

	// Signature is the base64url-encoded HMAC-SHA256 of Payload.
	Signature string
}

// String assembles the link. Payload and Signature are base64url and need no
// further escaping.
func (t *Token) String() string {
	return fmt.Sprintf("%s://%s?%s=%s&%s=%s", t.Scheme, t.Path, ParamPayload, t.Payload, ParamSignature, t.Signature)
}

// ParseToken extracts the payload and signature fields from a link. Only the
// query component is consulted; scheme and path are reported but carry no
// meaning for verification.
func ParseToken(uri string) (*Token, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, WrapError(ErrCodeMalformedToken, "failed to parse URI", err)
	}
	if !u.IsAbs() {
		return nil, NewError(ErrCodeMalformedToken, "URI is not absolute")
	}

	params, err := codec.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, WrapError(ErrCodeMalformedToken, "failed to parse query", err)
	}

	payload, ok := params[ParamPayload]
	if !ok {
		return nil, NewError(ErrCodeMalformedToken, "missing payload parameter")
	}
	sig, ok := params[ParamSignature]
	if !ok {
		return nil, NewError(ErrCodeMalformedToken, "missing sig parameter")
	}

	path := u.Host + u.Path
	if u.Opaque != "" {
		path = u.Opaque
	}

	return &Token{
		Scheme:    u.Scheme,
		Path:      path,
		Payload:   payload,
		Signature: sig,
	}, nil
}
