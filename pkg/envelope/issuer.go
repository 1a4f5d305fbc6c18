package envelope

import (
	"fmt"
	"strings"

	"github.com/gglas/gglas-linker/pkg/agent"
	"github.com/gglas/gglas-linker/pkg/codec"
	"github.com/gglas/gglas-linker/pkg/crypto"
)

// Sign returns the base64url HMAC-SHA256 of the encoded payload string.
func Sign(p64 string, secret []byte) string {
	return codec.Encode(crypto.SignString(secret, p64))
}

// Issue creates a signed link for the payload. An empty scheme or path falls
// back to DefaultScheme or DefaultPath. The payload is not modified.
func Issue(payload *agent.Payload, secret []byte, scheme, path string) (string, error) {
	token, err := IssueToken(payload, secret, scheme, path)
	if err != nil {
		return "", err
	}
	return token.String(), nil
}

// IssueToken is like Issue but returns the token fields. A scheme or path that
// would not parse back from the link fails with ErrMalformedToken.
func IssueToken(payload *agent.Payload, secret []byte, scheme, path string) (*Token, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	if payload == nil {
		return nil, ErrMissingPayloadSource
	}
	if scheme == "" {
		scheme = DefaultScheme
	}
	if path == "" {
		path = DefaultPath
	}

	if err := checkLinkPrefix(scheme, path); err != nil {
		return nil, err
	}

	// 1. Canonical JSON
	data, err := payload.CanonicalJSON()
	if err != nil {
		return nil, WrapError(ErrCodeMalformedPayload, "failed to encode payload", err)
	}

	// 2. Encode and sign the encoded string
	p64 := codec.Encode(data)

	return &Token{
		Scheme:    scheme,
		Path:      path,
		Payload:   p64,
		Signature: Sign(p64, secret),
	}, nil
}

// checkLinkPrefix rejects a scheme or path that does not come back unchanged
// from ParseToken.
func checkLinkPrefix(scheme, path string) error {
	sample := &Token{Scheme: scheme, Path: path, Payload: "e30", Signature: "e30"}
	parsed, err := ParseToken(sample.String())
	if err != nil {
		return WrapError(ErrCodeMalformedToken, fmt.Sprintf("invalid scheme or path %q", scheme+"://"+path), err)
	}
	if !strings.EqualFold(parsed.Scheme, scheme) || parsed.Path != path {
		return NewError(ErrCodeMalformedToken, fmt.Sprintf("invalid scheme or path %q", scheme+"://"+path))
	}
	return nil
}
