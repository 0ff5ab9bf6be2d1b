// Command fuzzyrubyserver runs the go-to-definition/document-highlight
// backend for a Ruby-like source tongue, either as an LSP server over
// stdio (serve) or as a one-shot workspace sweep (index).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errorHandled is set by a subcommand that has already printed a
// user-facing error, so main doesn't print it a second time.
var errorHandled bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var (
	flagLogLevel       string
	flagTopKDefinition int
	flagTopKHighlight  int
)

var rootCmd = &cobra.Command{
	Use:           "fuzzyrubyserver",
	Short:         "Go-to-definition and document-highlight backend for a Ruby-like language",
	Long:          "fuzzyrubyserver parses source files with tree-sitter, indexes their symbols in an in-memory full-text store, and answers go-to-definition and document-highlight queries over LSP.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error (default: from config/env, else info)")
	rootCmd.PersistentFlags().IntVar(&flagTopKDefinition, "top-k-definition", 0, "go-to-definition result cap (default: from config/env, else 50)")
	rootCmd.PersistentFlags().IntVar(&flagTopKHighlight, "top-k-highlight", 0, "document-highlight result cap (default: from config/env, else 100)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(indexCmd)
}
