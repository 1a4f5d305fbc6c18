package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gglas/gglas-linker/pkg/envelope"
)

// Gateway verifies gglas links and proxies accepted requests upstream.
type Gateway struct {
	target  *url.URL
	handler http.Handler
}

// NewGateway creates a new Gateway instance.
func NewGateway(cfg Config) (*Gateway, error) {
	if len(cfg.Secret) == 0 {
		return nil, envelope.ErrMissingSecret
	}

	target, err := url.Parse(cfg.TargetURL)
	if err != nil {
		return nil, fmt.Errorf("invalid target URL: %w", err)
	}
	if !target.IsAbs() {
		return nil, fmt.Errorf("invalid target URL: %q is not absolute", cfg.TargetURL)
	}

	proxy := httputil.NewSingleHostReverseProxy(target)

	originalDirector := proxy.Director
	proxy.Director = func(req *http.Request) {
		originalDirector(req)
		req.Header.Set("X-Forwarded-Host", req.Host)
		req.Host = target.Host
	}

	return &Gateway{
		target:  target,
		handler: NewAuthMiddleware(cfg, proxy),
	}, nil
}

// Target returns the upstream URL.
func (g *Gateway) Target() *url.URL {
	return g.target
}

// ServeHTTP implements the http.Handler interface.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.handler.ServeHTTP(w, r)
}
