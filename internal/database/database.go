package database

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Pragmas applied to every connection. Snapshot saves rewrite whole rows, so
// WAL plus a busy timeout is enough; there is no concurrent-writer tuning to
// do beyond that.
var pragmas = []string{
	"_journal_mode=WAL",
	"_busy_timeout=5000",
	"_foreign_keys=on",
}

// Open opens the motiday database at path and migrates it to the current
// schema. Pass ":memory:" for an ephemeral database in tests.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?"+strings.Join(pragmas, "&"))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// The state store serializes all writes already; a single connection
	// keeps an in-memory database from vanishing between pool checkouts.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
