package sqlstore

import (
	"context"
	"fmt"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		account_id TEXT PRIMARY KEY REFERENCES accounts(id) ON DELETE CASCADE,
		phone TEXT NOT NULL DEFAULT '',
		farm_name TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL CHECK (role IN ('farmer', 'vet')),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS animals (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		species TEXT NOT NULL,
		breed TEXT NOT NULL DEFAULT '',
		gender TEXT NOT NULL DEFAULT '',
		health_status TEXT NOT NULL DEFAULT 'healthy',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS daily_logs (
		id TEXT PRIMARY KEY,
		animal_id TEXT NOT NULL REFERENCES animals(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		morning_milk NUMERIC(10,3) NOT NULL DEFAULT 0,
		afternoon_milk NUMERIC(10,3) NOT NULL DEFAULT 0,
		evening_milk NUMERIC(10,3) NOT NULL DEFAULT 0,
		feed_amount NUMERIC(10,3) NOT NULL DEFAULT 0,
		water NUMERIC(10,3) NOT NULL DEFAULT 0,
		temperature NUMERIC(6,3),
		health_observations TEXT NOT NULL DEFAULT 'normal',
		activity TEXT NOT NULL DEFAULT 'grazing',
		notes TEXT NOT NULL DEFAULT '',
		created_by TEXT REFERENCES accounts(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (animal_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_logs_date ON daily_logs(date)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_logs_health ON daily_logs(health_observations)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		account_id TEXT PRIMARY KEY REFERENCES accounts(id) ON DELETE CASCADE,
		phone TEXT NOT NULL DEFAULT '',
		farm_name TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL CHECK (role IN ('farmer', 'vet')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS animals (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		species TEXT NOT NULL,
		breed TEXT NOT NULL DEFAULT '',
		gender TEXT NOT NULL DEFAULT '',
		health_status TEXT NOT NULL DEFAULT 'healthy',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS daily_logs (
		id TEXT PRIMARY KEY,
		animal_id TEXT NOT NULL REFERENCES animals(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		morning_milk REAL NOT NULL DEFAULT 0,
		afternoon_milk REAL NOT NULL DEFAULT 0,
		evening_milk REAL NOT NULL DEFAULT 0,
		feed_amount REAL NOT NULL DEFAULT 0,
		water REAL NOT NULL DEFAULT 0,
		temperature REAL,
		health_observations TEXT NOT NULL DEFAULT 'normal',
		activity TEXT NOT NULL DEFAULT 'grazing',
		notes TEXT NOT NULL DEFAULT '',
		created_by TEXT REFERENCES accounts(id) ON DELETE SET NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (animal_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_logs_date ON daily_logs(date)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_logs_health ON daily_logs(health_observations)`,
}

// Migrate crea el esquema si no existe. Es idempotente.
func (s *Store) Migrate(ctx context.Context) error {
	schema := postgresSchema
	if s.driver == DriverSQLite {
		schema = sqliteSchema
	}
	for i, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
