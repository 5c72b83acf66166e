// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jvillar/bankinter-csv/internal/config"
	"jvillar/bankinter-csv/internal/export"
	"jvillar/bankinter-csv/internal/logging"
	"jvillar/bankinter-csv/internal/pipeline"
)

// CommonFlags represents the flags shared by the extraction commands.
type CommonFlags struct {
	HTMLFile string
	TextFile string
	Output   string
	From     string
	To       string
	All      bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration, available after
	// PersistentPreRun.
	Cfg *config.Config

	// SharedFlags are accessible to all commands
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "bankinter-csv",
		Short: "Extract bank movements from Bankinter session snapshots.",
		Long: `bankinter-csv turns saved Bankinter session pages (HTML and rendered
text) into a clean, deduplicated list of movements, then exports them to
CSV, uploads them to the bookkeeping backend, or mirrors them into a local
sqlite ledger.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to bankinter-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Error loading configuration: %v", err)
			}
			Cfg = cfg

			adapter := logging.NewLogrusAdapterFromLogger(Log)
			logging.SetDefaultLogger(adapter)
			pipeline.SetLogger(adapter)
			export.SetLogger(adapter)

			if Cfg.CSV.Delimiter != "" {
				export.SetDelimiter([]rune(Cfg.CSV.Delimiter)[0])
			}
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.HTMLFile, "html", "i", "", "Snapshot HTML file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.TextFile, "text", "t", "", "Snapshot rendered-text file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVar(&SharedFlags.From, "from", "", "Range start, inclusive (e.g. 01/08/2025); defaults to the first of the current month")
	Cmd.PersistentFlags().StringVar(&SharedFlags.To, "to", "", "Range end, inclusive; defaults to today")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.All, "all", false, "Disable the date window and keep every movement")
}
