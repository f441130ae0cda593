package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashfall/worldcore/pkg/savemigrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Args:  cobra.ExactArgs(1),
	Short: "Migrate a save file to the current version",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().String("output", "", "output path (empty = overwrite input)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	path := args[0]
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = path
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	result := savemigrate.MigrateSave(string(data))
	if !result.Success {
		return fmt.Errorf("migration failed: %s", result.Err.Error())
	}

	fmt.Printf("migrated %s: v%d -> v%d\n", path, result.OriginalVersion, result.FinalVersion)
	for _, step := range result.StepsApplied {
		fmt.Printf("  - %s\n", step)
	}

	out, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal migrated save: %w", err)
	}
	if err := os.WriteFile(output, out, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	return nil
}
