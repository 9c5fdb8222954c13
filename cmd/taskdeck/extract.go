package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aghostraa/task-extractor-app/internal/config"
)

var (
	extractFolder string
	extractJSON   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [text]",
	Short: "Extract tasks from free text and save them",
	Long: `Extract tasks from free text and save them.

Reads from stdin when no argument is given:
  taskdeck extract "ship the release notes by friday, book dentist"
  pbpaste | taskdeck extract`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractFolder, "folder", "f", "", "folder id to file tasks under")
	extractCmd.Flags().BoolVarP(&extractJSON, "json", "j", false, "output as JSON")
}

func runExtract(cmd *cobra.Command, args []string) error {
	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text to extract from")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	engine, store, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var folderID *string
	if extractFolder != "" {
		folderID = &extractFolder
	}

	tasks, err := engine.ExtractAndSave(cmd.Context(), text, folderID)
	if err != nil {
		return err
	}

	if extractJSON {
		out, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if len(tasks) == 0 {
		fmt.Println("No actionable tasks found.")
		return nil
	}

	fmt.Printf("Created %d task(s):\n", len(tasks))
	for _, t := range tasks {
		fmt.Printf("  [P%d] %s (%s)\n", t.Priority, t.Text, t.Category)
	}
	return nil
}
