package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sigreer/biosctl/internal/db"
	"github.com/sigreer/biosctl/internal/report"
)

var historyCmd = &cobra.Command{
	Use:   "history [SETTING]",
	Short: "Show settings changed with biosctl",
	Long: `Show the changes recorded by 'set' for the selected device, newest first.

The history lives in a local SQLite database (default
/var/lib/biosctl/history.db) and only knows about changes made through
biosctl.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 50, "Maximum number of changes to show")
	historyCmd.Flags().Bool("json", false, "Output as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOut, _ := cmd.Flags().GetBool("json")

	attribute := ""
	if len(args) == 1 {
		attribute = args[0]
	}

	database, err := db.New(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("error opening history database: %w", err)
	}
	defer database.Close()

	changes, err := database.GetChanges(cfg.Device, attribute, limit)
	if err != nil {
		return err
	}

	if jsonOut {
		return report.WriteJSON(os.Stdout, changes)
	}

	if len(changes) == 0 {
		fmt.Println("No recorded changes.")
		return nil
	}

	report.WriteHistory(os.Stdout, changes)
	return nil
}
