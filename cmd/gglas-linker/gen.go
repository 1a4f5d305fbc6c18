package main

import (
	"fmt"

	"github.com/gglas/gglas-linker/pkg/envelope"
	"github.com/gglas/gglas-linker/pkg/source"
	"github.com/spf13/cobra"
)

var (
	genPayloadFile string
	genFlags       source.PayloadFlags
	genScheme      string
	genPath        string
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a signed link",
	Long: `Generate a signed gglas link for an agent.

The payload comes either from --payload-file (JSON, "-" for stdin) or from
the individual --name, --role, --scopes and --exp flags.`,
	Example: `  export GGLAS_SECRET=mysupersecret
  gglas-linker gen --name Alice --role research --scopes web,files --exp 2025-12-31T23:59:59Z --secret-env GGLAS_SECRET

  # Payload from a file, custom scheme
  gglas-linker gen --payload-file agent.json --secret-file secret.jwk --scheme myapp --path agents/connect`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()

		// 1. Secret
		secret, err := source.ResolveSecret(secretSrc)
		if err != nil {
			return err
		}

		// 2. Payload
		flags := genFlags
		flags.ScopesSet = cmd.Flags().Changed("scopes")
		payload, err := source.ResolvePayload(genPayloadFile, flags)
		if err != nil {
			return err
		}
		logger.Debug("issuing link", payload.Name(), payload.Nonce)

		// 3. Issue
		link, err := envelope.Issue(payload, secret, genScheme, genPath)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), link)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genCmd)

	genCmd.Flags().StringVar(&genFlags.Name, "name", "", "Agent name")
	genCmd.Flags().StringVar(&genFlags.Role, "role", "", "Agent role")
	genCmd.Flags().StringVar(&genFlags.Scopes, "scopes", "", "Comma-separated scopes")
	genCmd.Flags().StringVar(&genFlags.Exp, "exp", "", "Expiry as ISO-8601 timestamp (e.g. 2025-12-31T23:59:59Z)")
	genCmd.Flags().StringVar(&genPayloadFile, "payload-file", "", "Path to a JSON payload file (\"-\" for stdin)")
	genCmd.Flags().StringVar(&genScheme, "scheme", envelope.DefaultScheme, "URI scheme of the link")
	genCmd.Flags().StringVar(&genPath, "path", envelope.DefaultPath, "URI path of the link")
	addSecretFlags(genCmd)
}
