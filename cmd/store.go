package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/covidash/core"
	"github.com/huangsam/covidash/internal/contract"
	"github.com/huangsam/covidash/internal/iostore"
	"github.com/huangsam/covidash/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// When open is set the global store is initialized, which also migrates it.
func storeSetup(open bool) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ValidateStoreBackend(viper.GetString("store-backend"), viper.GetString("store-db-connect"))
	if err != nil {
		return err
	}
	connStr := viper.GetString("store-db-connect")

	if open {
		if err := iostore.InitStores(backend, connStr); err != nil {
			return fmt.Errorf("failed to initialize dataset store: %w", err)
		}
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup(true)
}

// storeMigrateSetupWrapper prepares the migrate command without opening the store,
// so migrations can run on a fresh database.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	if err := storeSetup(false); err != nil {
		return err
	}
	if cfg.StoreBackend == schema.SQLiteBackend && cfg.StoreDBConnect == "" {
		cfg.StoreDBConnect = iostore.GetDBFilePath()
	}
	return nil
}

// storeCmd focused on dataset store management.
//
// Note: status, clear and migrate use minimal initialization instead of the
// full sharedSetup, so they never need a dataset file.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the dataset store",
	Long: `Manage the database that holds an imported dataset.

Importing once lets every command read the dataset with --source store instead
of parsing the CSV or XLSX file again. The store holds a single dataset; an
import replaces the previous one.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  import  - Replace the stored dataset with a file
  status  - Show store statistics and connection info
  clear   - Remove the stored dataset
  migrate - Run database schema migrations

Examples:
  # Import a dataset and query it
  covidash store import covid_19_clean_complete.csv
  covidash summary --source store

  # Use PostgreSQL (set connection string via env variable)
  COVIDASH_STORE_BACKEND=postgresql COVIDASH_STORE_DB_CONNECT="host=... dbname=..." covidash store status`,
}

// storeImportCmd replaces the stored dataset.
var storeImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the stored dataset with a CSV or XLSX file",
	Long: `Read a dataset file and replace the dataset held by the store in one transaction.

Examples:
  covidash store import covid_19_clean_complete.csv
  covidash store import covid.xlsx --store-backend mysql`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, cmd, args, true)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStoreImport(rootCtx, cfg, datasetManager); err != nil {
			contract.LogFatal("Cannot import dataset", err)
		}
	},
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show the backend, connection state, record count, date bounds and source
of the stored dataset.

Examples:
  covidash store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iostore.Manager.GetDatasetStore()
		if store == nil {
			contract.LogFatal("Failed to get store status", fmt.Errorf("dataset store is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iostore.PrintStoreStatus(os.Stdout, status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored dataset",
	Long: `Delete the stored dataset from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the store tables and their migration history

Examples:
  # Clear SQLite store (default)
  covidash store clear

  # Clear MySQL store (set connection string via env variable)
  COVIDASH_STORE_BACKEND=mysql COVIDASH_STORE_DB_CONNECT="..." covidash store clear`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return storeSetup(false)
	},
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := iostore.GetDBFilePath()
		if cfg.StoreBackend == schema.SQLiteBackend && cfg.StoreDBConnect != "" {
			dbFilePath = cfg.StoreDBConnect
		}
		if err := iostore.ClearStore(cfg.StoreBackend, dbFilePath, cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeMigrateCmd runs the store schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations of the store",
	Long: `Migrate the store schema up or down.

--target-version -1 migrates to the latest version, 0 rolls back every
migration, and any other number migrates to that version.

Examples:
  covidash store migrate
  covidash store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to migrate store", err)
		}
	},
}
