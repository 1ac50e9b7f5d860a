package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// FileName is the database file kept inside the data directory.
const FileName = "easel.db"

// Path returns the database path for a data directory.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Open opens the database at path, creating its directory if needed, and
// brings the schema up to date.
func Open(path string, log *zap.Logger) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer keeps read-old-then-write-new sequences from interleaving.
	conn.SetMaxOpenConns(1)

	if err := InitSchema(conn, log); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return conn, nil
}
