// Package cmd contains all CLI command definitions.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fitz/cockpit/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cockpit",
	Short: "Cockpit - status board engine with linked elements",
	Long: `Cockpit maintains a status board: domains, categories, elements and
sub-elements, each carrying a health status. Elements and sub-elements that
share a name can be linked so that edits to one reach all of them, and an
element can inherit the worst status found beneath it.

The tree is edited through MCP tools and persisted in SQLite or Neo4j.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("dir", "d", ".", "Project directory holding the local .env")
}

// exitWithError prints an error message and exits with code 1.
func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func projectDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("dir")
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid directory: %w", err)
	}
	return absDir, nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, err := projectDir(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'cockpit config list' to inspect the resolved values", err)
	}
	return cfg, nil
}

// newLogger writes JSON to stderr; stdout belongs to the MCP stdio transport.
func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.Level()
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
