package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	dbURL    string
	dbSchema string
	verbose  bool
}

var rootCmd = &cobra.Command{
	Use:   "portalctl",
	Short: "Administrative tasks for the number change portal",
	Long:  "portalctl migrates the portal database, imports legacy JSON data\nand produces password hashes for configuration.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := slog.LevelInfo
		if rootFlags.verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	_ = godotenv.Load()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.dbURL, "db-url", "", "PostgreSQL connection URL (env DB_URL)")
	f.StringVar(&rootFlags.dbSchema, "db-schema", "", "PostgreSQL schema (env DB_SCHEMA)")
	f.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable debug logging")
	_ = viper.BindPFlag("db.url", f.Lookup("db-url"))
	_ = viper.BindPFlag("db.schema", f.Lookup("db-schema"))

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.Version = version
}

// dbURL resolves the connection URL from the flag or the environment.
func dbURL() (string, error) {
	url := viper.GetString("db.url")
	if url == "" {
		return "", fmt.Errorf("database URL is required (--db-url or DB_URL)")
	}
	return url, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
