package main

import (
	"github.com/khatabook/number-change-portal/internal/db"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		url, err := dbURL()
		if err != nil {
			return err
		}
		return db.RunMigrations(url, viper.GetString("db.schema"))
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the applied state of every migration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		url, err := dbURL()
		if err != nil {
			return err
		}
		return db.MigrationStatus(url, viper.GetString("db.schema"))
	},
}

func init() {
	migrateCmd.AddCommand(migrateStatusCmd)
}
