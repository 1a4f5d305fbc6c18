package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/gglas/gglas-linker/pkg/agent"
	"github.com/gglas/gglas-linker/pkg/envelope"
	"github.com/gorilla/mux"
)

// VerifyEndpoint reports the verification outcome of a link without proxying.
const VerifyEndpoint = "/gglas/verify"

// VerifyResponse is the JSON body returned by VerifyEndpoint.
type VerifyResponse struct {
	Status  string         `json:"status"`
	Code    string         `json:"code,omitempty"`
	Payload *agent.Payload `json:"payload,omitempty"`
}

// NewRouter builds the gateway's HTTP routes: VerifyEndpoint, and a catch-all
// that proxies verified requests to cfg.TargetURL.
func NewRouter(cfg Config) (*mux.Router, error) {
	cfg.logger()

	gw, err := NewGateway(cfg)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.HandleFunc(VerifyEndpoint, verifyHandler(cfg)).Methods(http.MethodGet, http.MethodPost)
	router.PathPrefix("/").Handler(gw)
	return router, nil
}

func verifyHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link := ExtractLink(r)
		if link == "" {
			writeJSON(w, http.StatusBadRequest, VerifyResponse{
				Status: "malformed",
				Code:   envelope.ErrCodeMalformedToken,
			})
			return
		}

		result, err := envelope.VerifyWithOptions(link, cfg.Secret, envelope.VerifyOptions{Now: cfg.Now})
		if err != nil {
			cfg.Logger.Debug("verify endpoint: malformed link", err)
			writeJSON(w, http.StatusBadRequest, VerifyResponse{
				Status: "malformed",
				Code:   envelope.GetErrorCode(err),
			})
			return
		}

		resp := VerifyResponse{
			Status:  result.Status.String(),
			Code:    envelope.GetErrorCode(result.Err()),
			Payload: result.Payload,
		}
		status := http.StatusOK
		if !result.Valid() {
			status = http.StatusUnauthorized
		}
		writeJSON(w, status, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
