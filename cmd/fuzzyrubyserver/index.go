package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	fuzzyruby "github.com/GMGilson/fuzzy-ruby-server"
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Index a workspace without a live editor connection",
	Long:  "index parses every .rb file under path, extracts and commits their symbol records, and reports a summary. It exercises the same pipeline serve uses per-file, as a one-shot sweep for sanity-checking a workspace. The index lives in memory only and is discarded when the command exits.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	start := time.Now()

	targetDir, err := resolveTargetDir(args)
	if err != nil {
		return err
	}

	cfg, err := fuzzyruby.LoadConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	opts := append(cfg.EngineOptions(), fuzzyruby.WithWorkspaceRoot(targetDir))
	engine, err := fuzzyruby.New(opts...)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	defer engine.Close()

	if err := engine.IndexWorkspace(cmd.Context(), targetDir); err != nil {
		return fmt.Errorf("indexing: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %s in %s\n", targetDir, time.Since(start).Round(time.Millisecond))
	return nil
}

// resolveTargetDir returns the absolute path of the directory to index,
// defaulting to the current directory.
func resolveTargetDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("directory not found: %s", abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	return abs, nil
}
