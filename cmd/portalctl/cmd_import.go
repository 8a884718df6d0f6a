package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/khatabook/number-change-portal/internal/agents"
	"github.com/khatabook/number-change-portal/internal/auditlog"
	"github.com/khatabook/number-change-portal/internal/db"
	"github.com/khatabook/number-change-portal/internal/db/sqlc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var importFlags struct {
	agentsFile string
	logsFile   string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import legacy agents.json and logs.json data",
	Long: "Import copies the file-backed data of the previous deployment into the\n" +
		"database. A collection is skipped when its table already has rows. Each\n" +
		"collection is imported in one transaction.",
	RunE: runImport,
}

func init() {
	f := importCmd.Flags()
	f.StringVar(&importFlags.agentsFile, "agents", "", "Path to a legacy agents.json")
	f.StringVar(&importFlags.logsFile, "logs", "", "Path to a legacy logs.json")
	importCmd.MarkFlagsOneRequired("agents", "logs")
}

func runImport(cmd *cobra.Command, _ []string) error {
	url, err := dbURL()
	if err != nil {
		return err
	}
	schema := viper.GetString("db.schema")
	if err := db.RunMigrations(url, schema); err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := db.Open(ctx, db.Config{Driver: db.DriverPostgres, Url: url, Schema: schema})
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if importFlags.agentsFile != "" {
		var legacy []agents.LegacyAgent
		if err := readJSON(importFlags.agentsFile, &legacy); err != nil {
			return err
		}
		var n int
		var skipped bool
		err := store.InTx(ctx, func(q sqlc.Querier) error {
			var err error
			n, skipped, err = agents.NewService(q).ImportLegacy(ctx, legacy)
			return err
		})
		if err != nil {
			return fmt.Errorf("import agents, nothing written: %w", err)
		}
		if skipped {
			fmt.Fprintln(out, "Agents: table not empty, skipped")
		} else {
			fmt.Fprintf(out, "Agents: imported %d\n", n)
		}
	}

	if importFlags.logsFile != "" {
		var legacy []auditlog.LegacyEntry
		if err := readJSON(importFlags.logsFile, &legacy); err != nil {
			return err
		}
		var n int
		var skipped bool
		err := store.InTx(ctx, func(q sqlc.Querier) error {
			var err error
			n, skipped, err = auditlog.NewService(q).ImportLegacy(ctx, legacy)
			return err
		})
		if err != nil {
			return fmt.Errorf("import logs, nothing written: %w", err)
		}
		if skipped {
			fmt.Fprintln(out, "Logs: table not empty, skipped")
		} else {
			fmt.Fprintf(out, "Logs: imported %d\n", n)
		}
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
