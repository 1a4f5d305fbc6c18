package gateway

import (
	"context"
	"net/http"
	"strings"

	"github.com/gglas/gglas-linker/pkg/agent"
	"github.com/gglas/gglas-linker/pkg/envelope"
)

// Headers read and written by the gateway.
const (
	HeaderLink      = "X-Gglas-Link"
	HeaderAgentName = "X-Gglas-Agent-Name"
	HeaderAgentRole = "X-Gglas-Agent-Role"
	HeaderScopes    = "X-Gglas-Scopes"
	HeaderNonce     = "X-Gglas-Nonce"

	// LinkQueryParam is the query parameter checked when no header carries a link.
	LinkQueryParam = "link"

	authScheme = "Gglas "
)

type contextKey string

const contextKeyPayload contextKey = "gglas-payload"

// PayloadFromContext returns the verified payload stored by the middleware.
func PayloadFromContext(ctx context.Context) *agent.Payload {
	p, _ := ctx.Value(contextKeyPayload).(*agent.Payload)
	return p
}

// NewAuthMiddleware creates a middleware that only lets requests carrying a
// valid link through to next. Verified identity is forwarded as X-Gglas-*
// headers and stored in the request context.
func NewAuthMiddleware(cfg Config, next http.Handler) http.Handler {
	logger := cfg.logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Never trust identity headers supplied by the client.
		stripIdentityHeaders(r.Header)

		link := ExtractLink(r)
		if link == "" {
			http.Error(w, "Missing gglas link", http.StatusUnauthorized)
			return
		}

		result, err := envelope.VerifyWithOptions(link, cfg.Secret, envelope.VerifyOptions{Now: cfg.Now})
		if err != nil {
			logger.Debug("malformed link", err)
			http.Error(w, "Malformed gglas link", http.StatusBadRequest)
			return
		}
		if !result.Valid() {
			logger.Info("link rejected", result.Status.String(), r.URL.Path)
			http.Error(w, "Invalid gglas link", http.StatusUnauthorized)
			return
		}

		payload := result.Payload
		for _, scope := range cfg.RequiredScopes {
			if !payload.HasScope(scope) {
				logger.Info("link lacks required scope", scope, payload.Name())
				http.Error(w, "Insufficient scope", http.StatusForbidden)
				return
			}
		}

		r.Header.Set(HeaderAgentName, payload.Name())
		r.Header.Set(HeaderAgentRole, payload.Role())
		r.Header.Set(HeaderScopes, strings.Join(payload.Scopes, ","))
		r.Header.Set(HeaderNonce, payload.Nonce)

		ctx := context.WithValue(r.Context(), contextKeyPayload, payload)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ExtractLink retrieves the link from, in order, the X-Gglas-Link header, an
// "Authorization: Gglas <link>" header, or the link query parameter.
func ExtractLink(r *http.Request) string {
	if link := r.Header.Get(HeaderLink); link != "" {
		return link
	}

	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, authScheme) {
		return strings.TrimSpace(strings.TrimPrefix(auth, authScheme))
	}

	return r.URL.Query().Get(LinkQueryParam)
}

func stripIdentityHeaders(h http.Header) {
	h.Del(HeaderAgentName)
	h.Del(HeaderAgentRole)
	h.Del(HeaderScopes)
	h.Del(HeaderNonce)
}
