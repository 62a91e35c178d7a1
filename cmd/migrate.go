package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/sciencelabshs/neonlink/config"
	"github.com/sciencelabshs/neonlink/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	Run:   runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// New runs the migrations as part of opening the database.
	if _, err := database.New(cfg.Database.Path); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	log.Info("database migrated", "path", cfg.Database.Path)
}
