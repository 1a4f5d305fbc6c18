// Package main is the entry point for the gglas-linker CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gglas/gglas-linker/internal/logging"
	"github.com/gglas/gglas-linker/pkg/source"
	"github.com/spf13/cobra"
	"github.com/tryfix/log"
)

// Exit codes.
const (
	exitOK         = 0
	exitRejected   = 1
	exitUnexpected = 2
)

var (
	logLevel string

	// Secret flags are shared by every command that needs the secret.
	secretSrc source.SecretSource
)

var rootCmd = &cobra.Command{
	Use:   "gglas-linker",
	Short: "Generate and verify signed gglas:// agent links",
	Long: `Generate and verify signed gglas:// agent links.

A link carries an agent payload (name, role, scopes, expiry) encoded as
base64url JSON, plus an HMAC-SHA256 signature made with a shared secret:

  gglas://agent/new?payload=<base64url-json>&sig=<base64url-hmac>`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and maps the outcome to a process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(stderr, describeError(err))
	}
	return exitCode(err)
}

func newLogger() log.Logger {
	return logging.New(logLevel)
}

func addSecretFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&secretSrc.Literal, "secret", "", "Shared secret")
	cmd.Flags().StringVar(&secretSrc.File, "secret-file", "", "Path to a file holding the secret (plain text or symmetric JWK)")
	cmd.Flags().StringVar(&secretSrc.Env, "secret-env", "", "Name of an environment variable holding the secret")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "Log level: trace, debug, info, warn, error")
}
