// Package gateway enforces gglas links in front of an HTTP service.
//
// The gateway is a relying party: it verifies each request's link with the
// envelope engine and applies its own scope policy before proxying upstream.
package gateway

import (
	"time"

	"github.com/gglas/gglas-linker/internal/logging"
	"github.com/tryfix/log"
)

// Config configures the gateway and its middleware.
type Config struct {
	// Secret is the shared HMAC secret.
	Secret []byte

	// TargetURL is the upstream service that verified requests are proxied to.
	TargetURL string

	// RequiredScopes must all be present in a link's scopes for a request to pass.
	RequiredScopes []string

	// Logger receives verification failures. Defaults to an info-level logger.
	Logger log.Logger

	// Now overrides the current time (for testing).
	Now func() time.Time
}

func (c *Config) logger() log.Logger {
	if c.Logger == nil {
		c.Logger = logging.New(logging.DefaultLevel)
	}
	return c.Logger
}
