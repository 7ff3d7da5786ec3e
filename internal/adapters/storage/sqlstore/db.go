// Package sqlstore implementa los repositorios sobre sqlx, con Postgres (pgx)
// o SQLite (modernc) como driver. El SQL se escribe con "?" y se pasa por Rebind.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"dairysync/internal/domain/accounts"
	"dairysync/internal/domain/animals"
	"dairysync/internal/domain/dailylogs"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

var ErrUnknownDriver = errors.New("unknown db driver")

type Store struct {
	db     *sqlx.DB
	driver string
}

// Open abre el pool y hace ping. No corre migraciones (ver Migrate).
func Open(driver, dsn string) (*Store, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	switch driver {
	case DriverPostgres, "postgres":
		driver = DriverPostgres
	case DriverSQLite, "sqlite3":
		driver = DriverSQLite
		dsn = sqliteDSN(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		// Una sola conexión: serializa escrituras y mantiene viva una base :memory:.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxIdleTime(0)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, driver: driver}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Driver() string { return s.driver }

// Ping sirve para /health.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Accounts() accounts.Repository { return &AccountsRepo{s: s} }

func (s *Store) Animals() animals.Repository { return &AnimalsRepo{s: s} }

func (s *Store) DailyLogs() dailylogs.Repository { return &DailyLogsRepo{s: s} }

// stamp adapta un instante al tipo de columna del driver.
// En SQLite va como texto de ancho fijo en UTC para que ORDER BY funcione.
func (s *Store) stamp(t time.Time) any {
	if s.driver == DriverSQLite {
		return t.UTC().Format(sqliteStampLayout)
	}
	return t.UTC()
}

// day adapta un día de calendario (DATE en Postgres, 'YYYY-MM-DD' en SQLite).
func (s *Store) day(t time.Time) any {
	d := dailylogs.Day(t)
	if s.driver == DriverSQLite {
		return d.Format(dailylogs.DateLayout)
	}
	return d
}

func sqliteDSN(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = ":memory:"
	}
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)"
}
