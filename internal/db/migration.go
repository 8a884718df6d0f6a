package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// RunMigrations applies every pending migration to the configured schema.
func RunMigrations(dbURL string, schema string) error {
	slog.Info("Running database migrations...")

	db, err := openMigrationDB(dbURL, schema)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	slog.Info("Database migrations completed successfully")
	return nil
}

// MigrationStatus logs the applied state of every embedded migration.
func MigrationStatus(dbURL string, schema string) error {
	db, err := openMigrationDB(dbURL, schema)
	if err != nil {
		return err
	}
	defer db.Close()

	return goose.Status(db, "migrations")
}

func openMigrationDB(dbURL string, schema string) (*sql.DB, error) {
	if schema == "" {
		schema = "public"
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := ensureSchemaExists(db, schema); err != nil {
		db.Close()
		return nil, err
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchemaExists(db *sql.DB, schema string) error {
	ident := pgx.Identifier{schema}.Sanitize()
	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + ident); err != nil {
		return err
	}
	slog.Info("Schema is ready", "schema", schema)

	// search_path is per connection, so pin goose to a single one.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("SET search_path TO " + ident); err != nil {
		return err
	}
	return nil
}
