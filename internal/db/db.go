package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var (
	DB *sqlx.DB
)

const (
	connectAttempts = 10
	connectInterval = 2 * time.Second
)

// opens a PostgreSQL connection, retrying while the database starts up, and
// assigns it to DB.
func Init(databaseURL string) error {
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		DB, err = sqlx.Connect("postgres", databaseURL)
		if err == nil {
			DB.SetMaxOpenConns(10)
			DB.SetConnMaxIdleTime(5 * time.Minute)
			log.Info().Int("attempt", attempt).Msg("connected to database")
			return nil
		}

		log.Error().Err(err).
			Int("attempt", attempt).
			Msgf("database not reachable, retrying in %s", connectInterval)
		time.Sleep(connectInterval)
	}

	return fmt.Errorf("could not connect to database after %d attempts: %w", connectAttempts, err)
}

const schemaMigrations = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    name       TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// applies every "*.up.sql" in migrationsPath that schema_migrations has not
// recorded yet, in name order, one transaction per file.
func RunMigrations(migrationsPath string) error {
	files, err := filepath.Glob(filepath.Join(migrationsPath, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to glob migrations: %w", err)
	}
	if len(files) == 0 {
		return nil
	}
	sort.Strings(files)

	ctx := context.Background()
	if _, err := DB.ExecContext(ctx, schemaMigrations); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	var done []string
	if err := DB.SelectContext(ctx, &done, `SELECT name FROM schema_migrations`); err != nil {
		return fmt.Errorf("list applied migrations: %w", err)
	}
	applied := make(map[string]bool, len(done))
	for _, name := range done {
		applied[name] = true
	}

	for _, file := range files {
		name := filepath.Base(file)
		if applied[name] {
			continue
		}
		if err := applyMigration(ctx, file, name); err != nil {
			return err
		}
		log.Info().Str("migration", name).Msg("migration applied")
	}
	return nil
}

func applyMigration(ctx context.Context, file, name string) error {
	sqlBytes, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("could not read migration %q: %w", name, err)
	}

	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %q: %w", name, err)
	}
	if stmt := strings.TrimSpace(string(sqlBytes)); stmt != "" {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("error executing migration %q: %w", name, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %q: %w", name, err)
	}
	return tx.Commit()
}
