// Package source resolves the inputs of the envelope engine: the shared
// secret and the payload to sign. All I/O happens here, once, before the
// engine is called.
package source

import (
	"bytes"
	"fmt"
	"os"

	"github.com/gglas/gglas-linker/pkg/crypto"
	"github.com/gglas/gglas-linker/pkg/envelope"
)

// SecretSource names where a secret may come from. The first non-empty field
// in the order Literal, File, Env is used.
type SecretSource struct {
	// Literal is the secret itself.
	Literal string

	// File is a path whose trimmed contents are the secret. A file holding a
	// symmetric (kty=oct) JWK yields the key bytes instead.
	File string

	// Env is the name of an environment variable holding the secret.
	Env string
}

// ResolveSecret returns the secret named by src. It returns
// envelope.ErrMissingSecret when no source is given or the resolved secret is
// blank.
func ResolveSecret(src SecretSource) ([]byte, error) {
	var secret []byte

	switch {
	case src.Literal != "":
		secret = []byte(src.Literal)

	case src.File != "":
		data, err := os.ReadFile(src.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read secret file: %w", err)
		}
		secret = bytes.TrimSpace(data)
		// Anything that is not a symmetric JWK is used as text.
		if bytes.HasPrefix(secret, []byte("{")) {
			if key, err := crypto.ParseSymmetricJWK(secret); err == nil {
				secret = key
			}
		}

	case src.Env != "":
		secret = []byte(os.Getenv(src.Env))

	default:
		return nil, envelope.ErrMissingSecret
	}

	if len(bytes.TrimSpace(secret)) == 0 {
		return nil, envelope.ErrMissingSecret
	}
	return secret, nil
}
