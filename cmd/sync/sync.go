// Package sync handles the snapshot-to-local-ledger command
package sync

import (
	"github.com/spf13/cobra"

	"jvillar/bankinter-csv/cmd/common"
	"jvillar/bankinter-csv/cmd/root"
	"jvillar/bankinter-csv/internal/store"
)

// Cmd represents the sync command
var Cmd = &cobra.Command{
	Use:   "sync",
	Short: "Extract movements and mirror them into the local sqlite ledger",
	Long: `Sync runs the extraction pipeline over a saved session page and inserts
the movements into the local sqlite ledger. The ledger's unique index makes
re-syncing an overlapping window a no-op for movements it already holds.`,
	Run: syncFunc,
}

func syncFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Sync command called")
	root.Log.Infof("Ledger file: %s", root.Cfg.Store.Path)

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

	db, err := store.NewDatabase(root.Cfg.Store.Path)
	if err != nil {
		root.Log.Fatalf("Error opening ledger: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			root.Log.Warnf("Failed to close ledger: %v", err)
		}
	}()

	created, duplicates, err := db.SaveTransactions(transactions)
	if err != nil {
		root.Log.Fatalf("Error saving movements: %v", err)
	}
	root.Log.Infof("Sync finished: %d created, %d already present", created, duplicates)
}
