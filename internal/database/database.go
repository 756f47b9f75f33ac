// Package database provides a thin GORM wrapper for the report archive.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUnsupportedDriver indicates the database URL scheme is not supported.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Database wraps a GORM connection.
type Database struct {
	gorm     *gorm.DB
	isSQLite bool
}

// NewDatabase opens a database connection from a URL. Supported schemes:
// sqlite:///path/to/file.db, postgres:// and postgresql://.
func NewDatabase(ctx context.Context, url string) (*Database, error) {
	dialector, isSQLite, err := parseDialector(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access sql database: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Database{
		gorm:     db,
		isSQLite: isSQLite,
	}, nil
}

// GORM returns the underlying GORM handle.
func (d *Database) GORM() *gorm.DB {
	return d.gorm
}

// Session returns a GORM session bound to the context.
func (d *Database) Session(ctx context.Context) *gorm.DB {
	return d.gorm.WithContext(ctx)
}

// IsSQLite reports whether the connection uses SQLite.
func (d *Database) IsSQLite() bool { return d.isSQLite }

// IsPostgres reports whether the connection uses PostgreSQL.
func (d *Database) IsPostgres() bool { return !d.isSQLite }

// Close closes the underlying connection.
func (d *Database) Close() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func parseDialector(url string) (gorm.Dialector, bool, error) {
	switch {
	case strings.HasPrefix(url, "sqlite:///"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite:///")), true, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), false, nil
	default:
		return nil, false, ErrUnsupportedDriver
	}
}
