// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/logging"
)

// DB is the DuckDB-backed Store. A single embedded database file holds the
// spot catalog; there is no external database server.
type DB struct {
	conn *sql.DB
}

// Options configure the DuckDB connection.
type Options struct {
	// Path is the database file location. Empty means in-memory.
	Path string

	// Threads limits DuckDB's worker threads; 0 uses runtime.NumCPU().
	Threads int
}

// New opens (creating if needed) the DuckDB database and initializes the
// schema.
func New(opts Options) (*DB, error) {
	threads := opts.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	if opts.Path != "" {
		dir := filepath.Dir(opts.Path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create database directory %s: %w", dir, err)
			}
		}
	}

	dsn := fmt.Sprintf("%s?threads=%d", opts.Path, threads)
	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	logging.Info().Str("path", opts.Path).Int("threads", threads).Msg("database opened")
	return db, nil
}

// initSchema creates the catalog tables when missing.
func (db *DB) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS spots (
			id            VARCHAR PRIMARY KEY,
			name          VARCHAR NOT NULL,
			capacity      INTEGER NOT NULL DEFAULT 0,
			latitude      DOUBLE NOT NULL,
			longitude     DOUBLE NOT NULL,
			elevation     DOUBLE,
			etag          VARCHAR NOT NULL,
			last_modified TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS spot_extended_info (
			spot_id VARCHAR NOT NULL,
			key     VARCHAR NOT NULL,
			value   VARCHAR NOT NULL,
			PRIMARY KEY (spot_id, key)
		)`,
		`CREATE TABLE IF NOT EXISTS spot_windows (
			id        VARCHAR PRIMARY KEY,
			spot_id   VARCHAR NOT NULL,
			day       TINYINT NOT NULL,
			start_sec INTEGER NOT NULL,
			end_sec   INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS spot_items (
			id          VARCHAR PRIMARY KEY,
			spot_id     VARCHAR NOT NULL,
			name        VARCHAR NOT NULL,
			category    VARCHAR,
			subcategory VARCHAR
		)`,
		`CREATE INDEX IF NOT EXISTS idx_windows_spot_day ON spot_windows (spot_id, day)`,
		`CREATE INDEX IF NOT EXISTS idx_extended_info_key ON spot_extended_info (key, value)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}

// Ping verifies the connection, used by the readiness endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// nullFloat converts a sql.NullFloat64 to an optional float.
func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// floatNull converts an optional float to a sql value.
func floatNull(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// timestamp normalizes times to UTC microsecond precision, keeping
// last_modified comparisons stable across the driver round-trip.
func timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
