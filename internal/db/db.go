// Package db owns the SQLite connection lifecycle, schema and migrations.
//
// The handle is opened once at process start by the composition root and
// passed to every repository; there is no package-level connection.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Open opens the database at path, creating parent directories as needed,
// and brings the schema up to date.
func Open(path string, logger *zap.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite3", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path == MemoryPath {
		// every pooled connection would otherwise see its own empty database
		database.SetMaxOpenConns(1)
	}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := InitSchema(database, logger); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("database ready", zap.String("path", path))
	return database, nil
}

// DSN builds a go-sqlite3 connection string. Foreign keys are a
// per-connection setting, so they go in the DSN rather than a one-off PRAGMA.
func DSN(path string) string {
	params := "_foreign_keys=on&_busy_timeout=5000"
	if path != MemoryPath {
		params += "&_journal_mode=WAL"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + params
}

// DefaultPath returns ~/.enscope/enscope.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".enscope", "enscope.db"), nil
}
