// Package db persists navigation snapshots in PostgreSQL (pgx, goose
// migrations) or a local SQLite file (sqlx, modernc.org/sqlite).
package db
