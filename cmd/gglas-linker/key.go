package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gglas/gglas-linker/pkg/crypto"
	"github.com/spf13/cobra"
)

var (
	keyOut  string
	keyID   string
	keySize int
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage shared secrets",
}

var keyGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a random shared secret",
	Long: `Generate a random shared secret and save it as a symmetric JWK
(kty "oct", alg HS256). Pass the file to gen, verify or gateway with
--secret-file.`,
	Example: `  gglas-linker key gen --out secret.jwk
  gglas-linker gen --name Alice --secret-file secret.jwk`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		jwk, err := crypto.GenerateSymmetricJWK(keySize, keyID)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(jwk, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(keyOut, data, 0600); err != nil {
			return fmt.Errorf("failed to write secret: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Secret saved to %s\n", keyOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keyGenCmd)

	keyGenCmd.Flags().StringVar(&keyOut, "out", "secret.jwk", "Output path for the secret (JWK format)")
	keyGenCmd.Flags().StringVar(&keyID, "kid", "gglas", "Key ID written into the JWK")
	keyGenCmd.Flags().IntVar(&keySize, "size", crypto.DefaultKeySize, "Secret size in bytes")
}
