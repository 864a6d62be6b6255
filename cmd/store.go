package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/internal/evalstore"
	"github.com/huangsam/appraise/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without the roster or rule book.
func storeSetup(initStore bool) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.StoreBackend(strings.ToLower(viper.GetString("store-backend")))
	if backend == "" {
		backend = schema.BlobBackend
	}
	if _, ok := schema.ValidStoreBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be blob, sqlite, none", backend)
	}
	path := viper.GetString("store-path")
	if path == "" && backend != schema.NoneBackend {
		path = contract.GetStoreFilePath(backend)
	}
	cfg.StoreBackend = backend
	cfg.StorePath = path

	if !initStore {
		return nil
	}
	if err := evalstore.InitStores(backend, path); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup(true)
}

// storeCmd focused on store management.
//
// Note: store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by the scoring commands.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the evaluation store",
	Long: `Manage the store that keeps raw evaluation inputs between runs.

Supported backends: blob (default, one JSON file), sqlite, or none (in-memory)

Subcommands:
  status  - Show store statistics and location
  clear   - Remove every stored evaluation
  export  - Write the stored evaluations as JSON or Parquet
  import  - Merge evaluations from a JSON or Parquet file
  migrate - Run sqlite schema migrations

Examples:
  # Check store status
  appraise store status

  # Back up the store
  appraise store export --output-file backup.json`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and location",
	Long: `Show the backend, location, number of stored evaluations, last update time and size.

Examples:
  appraise store status
  appraise store status --store-backend sqlite`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := storeManager.GetEvaluationStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		evalstore.PrintStoreStatus(os.Stdout, status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every stored evaluation",
	Long: `Delete the store file of the configured backend. Every task goes back to its
seeded defaults on the next run.

Examples:
  appraise store clear
  APPRAISE_STORE_BACKEND=sqlite appraise store clear`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return storeSetup(false)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := evalstore.ClearStore(cfg.StoreBackend, cfg.StorePath); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeExportCmd exports the store.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored evaluations to JSON or Parquet",
	Long: `Write every stored evaluation.

JSON uses the same layout as the blob store and can be imported again.
Parquet writes one row per task and metric and requires --output-file.

Examples:
  # JSON to stdout
  appraise store export

  # Parquet file for analytics tools
  appraise store export --format parquet --output-file evaluations.parquet`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		format := strings.ToLower(viper.GetString("format"))
		outputFile := viper.GetString("output-file")
		if err := evalstore.ExecuteExport(rootCtx, storeManager.GetEvaluationStore(), format, outputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export store", err)
		}
	},
}

// storeImportCmd merges a file into the store.
var storeImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge evaluations from a JSON or Parquet file",
	Long: `Load evaluations written by 'store export' and merge them into the store.
Entries with the same key are replaced. Qualitative scores are clamped to 0-100.

Examples:
  appraise store import backup.json
  appraise store import evaluations.parquet --store-backend sqlite`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		n, err := evalstore.ExecuteImport(rootCtx, storeManager.GetEvaluationStore(), args[0])
		if err != nil {
			contract.LogFatal("Failed to import evaluations", err)
		}
		fmt.Printf("Imported %d evaluations from: %s\n", n, args[0])
	},
}

// storeMigrateCmd runs the sqlite migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run sqlite store schema migrations",
	Long: `Migrate the sqlite store schema to the latest version or to a target version.

Only the sqlite backend has a schema. The store is migrated automatically when
it is opened, so this is mostly useful for rolling back.

Examples:
  # Migrate to latest
  appraise store migrate --store-backend sqlite

  # Roll back everything
  appraise store migrate --store-backend sqlite --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return storeSetup(false)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.StoreBackend != schema.SQLiteBackend {
			contract.LogFatal("Cannot migrate store", fmt.Errorf("migrations only apply to the sqlite backend (got %s)", cfg.StoreBackend))
		}
		if err := evalstore.MigrateStore(cfg.StorePath, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to migrate store", err)
		}
	},
}
