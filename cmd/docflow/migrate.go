package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/docflow-io/docflow/internal/config"
	"github.com/docflow-io/docflow/internal/doctype"
	"github.com/docflow-io/docflow/internal/modules"
	"github.com/docflow-io/docflow/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables for every document type",
	Long: `Reads the configured database and ensures a table exists for each
registered document type, plus the series counter table used for
sequential naming. Existing tables are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load("")
		if err != nil {
			return err
		}

		log, err := newLogger(cfg.Log.Level)
		if err != nil {
			return err
		}
		defer log.Sync()

		registry := doctype.NewRegistry()
		if err := modules.RegisterAll(registry); err != nil {
			return err
		}

		db, dialect, err := openDatabase(cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		st := store.New(db, dialect, registry, store.WithLogger(log))
		if err := st.Migrate(cmd.Context()); err != nil {
			return err
		}

		success := color.New(color.FgGreen, color.Bold)
		success.Printf("Migrated %d document types\n", registry.Count())
		return nil
	},
}
