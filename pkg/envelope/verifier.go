package envelope

import (
	"time"

	"github.com/gglas/gglas-linker/pkg/agent"
	"github.com/gglas/gglas-linker/pkg/codec"
	"github.com/gglas/gglas-linker/pkg/crypto"
)

// Status is the outcome of verifying a well-formed link.
type Status int

const (
	// StatusValid means the signature matched and the payload has not expired.
	StatusValid Status = iota

	// StatusInvalidSignature means the signature does not match the payload
	// under the given secret (wrong secret or tampered link).
	StatusInvalidSignature

	// StatusExpired means the signature matched but the payload's exp has passed.
	StatusExpired
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalidSignature:
		return "invalid_signature"
	case StatusExpired:
		return "expired"
	}
	return "unknown"
}

// VerifyOptions configures verification.
type VerifyOptions struct {
	// Now overrides the current time (for testing).
	Now func() time.Time
}

// Result is the outcome of verifying a link.
type Result struct {
	// Status is the verification outcome.
	Status Status

	// Token holds the parsed link fields.
	Token *Token

	// Payload is the decoded claim set. It is nil for StatusInvalidSignature.
	Payload *agent.Payload

	// JSON is the decoded payload exactly as it was signed.
	JSON []byte
}

// Valid reports whether the link was accepted.
func (r *Result) Valid() bool {
	return r.Status == StatusValid
}

// Err returns nil for a valid result and the matching sentinel otherwise.
func (r *Result) Err() error {
	switch r.Status {
	case StatusValid:
		return nil
	case StatusExpired:
		return ErrExpired
	default:
		return ErrSignatureInvalid
	}
}

// Verify checks a link against the secret using the current time.
func Verify(uri string, secret []byte) (*Result, error) {
	return VerifyWithOptions(uri, secret, VerifyOptions{})
}

// VerifyWithOptions checks a link against the secret.
//
// A returned error always means the input could not be evaluated: a missing
// secret or a malformed link. A wrong signature or an expired payload is a
// normal outcome and is reported through Result.Status with a nil error.
func VerifyWithOptions(uri string, secret []byte, opts VerifyOptions) (*Result, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}

	// Step 1: Extract payload and sig
	token, err := ParseToken(uri)
	if err != nil {
		return nil, err
	}

	// Step 2: Recompute the signature over the received encoded payload
	expected := crypto.SignString(secret, token.Payload)

	// Step 3: Decode the received signature
	received, err := codec.Decode(token.Signature)
	if err != nil {
		return nil, WrapError(ErrCodeMalformedToken, "failed to decode signature", err)
	}

	// Step 4: Compare
	if !crypto.ConstantTimeEqual(received, expected) {
		return &Result{Status: StatusInvalidSignature, Token: token}, nil
	}

	// Step 5: Decode the payload
	data, err := codec.Decode(token.Payload)
	if err != nil {
		return nil, WrapError(ErrCodeMalformedToken, "failed to decode payload", err)
	}
	payload, err := agent.Parse(data)
	if err != nil {
		return nil, WrapError(ErrCodeMalformedToken, "failed to parse payload JSON", err)
	}

	result := &Result{
		Status:  StatusValid,
		Token:   token,
		Payload: payload,
		JSON:    data,
	}

	// Step 6: Expiry
	if payload.IsExpired(now()) {
		result.Status = StatusExpired
	}

	return result, nil
}
