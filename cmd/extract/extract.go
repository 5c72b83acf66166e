// Package extract handles the snapshot-to-CSV command
package extract

import (
	"github.com/spf13/cobra"

	"jvillar/bankinter-csv/cmd/common"
	"jvillar/bankinter-csv/cmd/root"
	"jvillar/bankinter-csv/internal/export"
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract movements from a session snapshot into a CSV file",
	Long: `Extract runs the four-strategy extraction pipeline over a saved session
page and writes the deduplicated movements to a CSV file for inspection.`,
	Run: extractFunc,
}

func extractFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Extract command called")
	root.Log.Infof("Snapshot HTML: %s", root.SharedFlags.HTMLFile)
	root.Log.Infof("Output CSV file: %s", root.SharedFlags.Output)

	output := root.SharedFlags.Output
	if output == "" {
		output = "movements.csv"
	}

	page, err := common.LoadSnapshot(root.SharedFlags.HTMLFile, root.SharedFlags.TextFile)
	if err != nil {
		root.Log.Fatalf("Error loading snapshot: %v", err)
	}

	start, end, err := common.ResolveRange(root.SharedFlags.From, root.SharedFlags.To, root.SharedFlags.All)
	if err != nil {
		root.Log.Fatalf("Error resolving date range: %v", err)
	}

	transactions, err := common.RunPipeline(page, root.Cfg, start, end, root.Log)
	if err != nil {
		root.Log.Fatalf("Error extracting movements: %v", err)
	}

	if err := export.WriteTransactionsToCSV(transactions, output); err != nil {
		root.Log.Fatalf("Error writing CSV: %v", err)
	}
	root.Log.Info("Snapshot to CSV conversion completed successfully!")
}
