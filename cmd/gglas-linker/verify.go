package main

import (
	"errors"
	"fmt"

	"github.com/gglas/gglas-linker/pkg/envelope"
	"github.com/gglas/gglas-linker/pkg/source"
	"github.com/spf13/cobra"
)

var verifyURL string

var verifyCmd = &cobra.Command{
	Use:   "verify [url]",
	Short: "Verify a signed link",
	Long: `Verify a gglas link against the shared secret.

On success prints OK followed by the decoded payload JSON. A wrong
signature or an expired payload exits with status 1.`,
	Example: `  gglas-linker verify --url "gglas://agent/new?payload=...&sig=..." --secret-env GGLAS_SECRET`,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		link := verifyURL
		if len(args) == 1 {
			link = args[0]
		}
		if link == "" {
			return errors.New("provide the link as an argument or with --url")
		}

		secret, err := source.ResolveSecret(secretSrc)
		if err != nil {
			return err
		}

		result, err := envelope.Verify(link, secret)
		if err != nil {
			return err
		}
		if !result.Valid() {
			logger.Debug("link rejected", result.Status.String())
			return result.Err()
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "OK")
		fmt.Fprintln(out, string(result.JSON))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyURL, "url", "", "Link to verify")
	addSecretFlags(verifyCmd)
}
