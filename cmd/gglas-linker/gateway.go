package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gglas/gglas-linker/pkg/agent"
	"github.com/gglas/gglas-linker/pkg/gateway"
	"github.com/gglas/gglas-linker/pkg/source"
	"github.com/spf13/cobra"
)

var (
	gatewayPort          int
	gatewayTarget        string
	gatewayRequireScopes string
)

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Run an HTTP gateway that enforces gglas links",
}

var gatewayStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the gateway server",
	Long: `Start a reverse proxy that admits only requests carrying a valid link
(X-Gglas-Link header, "Authorization: Gglas <link>", or ?link=).

Verified identity is forwarded upstream in X-Gglas-Agent-Name,
X-Gglas-Agent-Role and X-Gglas-Scopes. GET /gglas/verify?link=... reports
the verification outcome as JSON.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		logger := newLogger()

		secret, err := source.ResolveSecret(secretSrc)
		if err != nil {
			return err
		}

		cfg := gateway.Config{
			Secret:    secret,
			TargetURL: gatewayTarget,
			Logger:    logger,
		}
		if gatewayRequireScopes != "" {
			cfg.RequiredScopes = agent.ParseScopes(gatewayRequireScopes)
		}

		router, err := gateway.NewRouter(cfg)
		if err != nil {
			return err
		}

		addr := fmt.Sprintf(":%d", gatewayPort)
		logger.Info(fmt.Sprintf("gateway listening on %s -> %s", addr, gatewayTarget))

		server := &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		return server.ListenAndServe()
	},
}

func init() {
	rootCmd.AddCommand(gatewayCmd)
	gatewayCmd.AddCommand(gatewayStartCmd)

	gatewayStartCmd.Flags().IntVar(&gatewayPort, "port", 8080, "Port to listen on")
	gatewayStartCmd.Flags().StringVar(&gatewayTarget, "target", "http://localhost:3000", "Upstream target URL")
	gatewayStartCmd.Flags().StringVar(&gatewayRequireScopes, "require-scopes", "", "Comma-separated scopes every link must carry")
	addSecretFlags(gatewayStartCmd)
}
