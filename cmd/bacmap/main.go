package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bacmap/internal/config"
	"bacmap/internal/logging"
	"bacmap/internal/store"
	"bacmap/internal/trio"
	"bacmap/internal/types"
)

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool
	jsonOutput bool

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bacmap",
	Short: "bacmap - BACnet point catalog and equipment mapping engine",
	Long: `bacmap normalizes raw BACnet point names into human-readable catalog
entries, builds matching signatures, maps discovered equipment onto the
CxAlloy catalog, and applies point templates to mapped equipment.

Point exports are accepted as Haystack trio files or CSV with a header row.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if dbPath != "" {
			cfg.Storage.DatabasePath = dbPath
		}
		return logging.Initialize(cfg.Logging)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".bacmap/config.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of tables")
}

// openStore opens the configured SQLite repository. Callers own the close.
func openStore() (*store.Store, error) {
	return store.NewStore(cfg.Storage.DatabasePath)
}

// loadPoints reads a point export, picking the parser from the file
// extension. Per-record rejections are reported on stderr and skipped.
func loadPoints(path string) ([]types.RawPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open points file: %w", err)
	}
	defer f.Close()

	var res *trio.Result
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		res, err = trio.ParseCSV(f)
	} else {
		res, err = trio.ParseTrio(f)
	}
	if err != nil {
		return nil, err
	}
	for _, perr := range res.Errors {
		fmt.Fprintf(os.Stderr, "skipped: %v\n", perr)
	}
	return res.Points, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
