package crypto

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-jose/go-jose/v4"
)

// DefaultKeySize is the size of generated secrets (256 bits, the HMAC-SHA256 block output size).
const DefaultKeySize = 32

var (
	// ErrNotSymmetricKey is returned when a JWK holds something other than an octet sequence.
	ErrNotSymmetricKey = errors.New("JWK is not a symmetric (kty=oct) key")

	// ErrEmptyKey is returned when a symmetric JWK carries no key material.
	ErrEmptyKey = errors.New("JWK key material is empty")
)

// NewSymmetricJWK wraps a shared secret as an HS256 JSON Web Key.
func NewSymmetricJWK(secret []byte, kid string) jose.JSONWebKey {
	return jose.JSONWebKey{
		Key:       secret,
		KeyID:     kid,
		Algorithm: string(jose.HS256),
		Use:       "sig",
	}
}

// GenerateSymmetricJWK creates a random shared secret of the given size and
// returns it as a JWK. A size <= 0 selects DefaultKeySize.
func GenerateSymmetricJWK(size int, kid string) (jose.JSONWebKey, error) {
	if size <= 0 {
		size = DefaultKeySize
	}

	secret := make([]byte, size)
	if _, err := rand.Read(secret); err != nil {
		return jose.JSONWebKey{}, fmt.Errorf("failed to generate secret: %w", err)
	}
	return NewSymmetricJWK(secret, kid), nil
}

// ParseSymmetricJWK extracts the shared secret from a JSON-encoded JWK.
func ParseSymmetricJWK(data []byte) ([]byte, error) {
	var jwk jose.JSONWebKey
	if err := json.Unmarshal(data, &jwk); err != nil {
		return nil, fmt.Errorf("failed to parse JWK: %w", err)
	}

	secret, ok := jwk.Key.([]byte)
	if !ok {
		return nil, ErrNotSymmetricKey
	}
	if len(secret) == 0 {
		return nil, ErrEmptyKey
	}
	return secret, nil
}
