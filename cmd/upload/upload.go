// Package upload handles the snapshot-to-backend command
package upload

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"jvillar/bankinter-csv/cmd/common"
	"jvillar/bankinter-csv/cmd/root"
	"jvillar/bankinter-csv/internal/export"
)

// Cmd represents the upload command
var Cmd = &cobra.Command{
	Use:   "upload",
	Short: "Extract movements and upload them to the bookkeeping backend",
	Long: `Upload runs the extraction pipeline over a saved session page and posts
each movement to the backend. Movements the backend already holds come back
as duplicates, not errors, so re-running over an overlapping window is safe.`,
	Run: uploadFunc,
}

func uploadFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Upload command called")

	if root.Cfg.API.BaseURL == "" {
		root.Log.Fatal("No backend configured: set api.base_url or BANKINTER_API_BASE_URL")
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

	uploader := export.NewUploader(
		root.Cfg.API.BaseURL,
		root.Cfg.API.Token,
		time.Duration(root.Cfg.API.TimeoutSeconds)*time.Second,
	)

	summary, err := uploader.UploadAll(context.Background(), transactions)
	if err != nil {
		root.Log.Fatalf("Upload aborted: %v", err)
	}

	root.Log.Infof("Upload finished: %d created, %d duplicates, %d failed",
		summary.Created, summary.Duplicates, summary.Failed)
	if summary.Failed > 0 {
		root.Log.Warn("Some movements failed to upload; see the log above")
	}
}
