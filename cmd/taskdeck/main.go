package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aghostraa/task-extractor-app/internal/config"
	"github.com/Aghostraa/task-extractor-app/internal/core"
	"github.com/Aghostraa/task-extractor-app/internal/extraction"
	"github.com/Aghostraa/task-extractor-app/internal/storage"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "taskdeck",
		Short:   "Taskdeck - turn free text into organized tasks",
		Version: Version,
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(extractCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildEngine wires the store and extraction client. The caller closes the
// returned store.
func buildEngine(cfg *config.Config) (*core.Engine, *storage.Store, error) {
	store, err := storage.NewStore(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	client := extraction.NewClient(cfg.AnthropicAPIKey, cfg.Model)
	return core.NewEngine(store, client), store, nil
}
