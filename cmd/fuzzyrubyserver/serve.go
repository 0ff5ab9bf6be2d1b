package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	fuzzyruby "github.com/GMGilson/fuzzy-ruby-server"
	"github.com/GMGilson/fuzzy-ruby-server/internal/lspserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the language server over stdio",
	Long:  "serve speaks LSP over stdin/stdout. Every log line goes to stderr, since stdout is reserved for JSON-RPC framing.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := fuzzyruby.LoadConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	engine, err := fuzzyruby.New(cfg.EngineOptions()...)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	defer engine.Close()

	logger := logger(cfg)
	server := lspserver.New(engine, logger)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("serving LSP over stdio")
	if err := server.Serve(ctx, stdio{}); err != nil && ctx.Err() == nil {
		errorHandled = true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	return nil
}

// stdio combines os.Stdin and os.Stdout into the io.ReadWriteCloser a
// jsonrpc2.Stream expects; closing it closes stdout only, since a process
// exiting also reclaims stdin.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdio) Close() error                { return os.Stdout.Close() }

var _ io.ReadWriteCloser = stdio{}
