package main

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/docflow-io/docflow/internal/store"
)

// openDatabase connects to the configured database. URLs of the form
// "sqlite://<path>" use the embedded sqlite driver; anything else is treated
// as a postgres connection string.
func openDatabase(url string) (*sql.DB, store.Dialect, error) {
	if path, ok := strings.CutPrefix(url, "sqlite://"); ok {
		db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
		if err != nil {
			return nil, 0, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// sqlite allows one writer at a time; serializing through a
		// single connection avoids SQLITE_BUSY under load.
		db.SetMaxOpenConns(1)
		return db, store.DialectSQLite, nil
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, store.DialectPostgres, nil
}

func newLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	return cfg.Build()
}
