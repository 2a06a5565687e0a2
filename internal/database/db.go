// Package database owns the MySQL connection pool and the boot-time
// schema for the rental service.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/reelhub/media-rental/internal/config"
)

// Open builds the pool from the service configuration and verifies the
// server answers before anything depends on it.
func Open(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(cfg))
	if err != nil {
		return nil, err
	}

	// The API is short bursts of small queries; a modest pool with idle
	// recycling keeps connections fresh across MySQL's wait_timeout.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// dsn renders the driver connection string. parseTime maps DATE and
// DATETIME columns onto time.Time and loc=UTC keeps rental and return
// dates comparable across hosts. clientFoundRows makes RowsAffected
// count matched rows rather than changed ones, so re-submitting values a
// row already holds (an identical admin reply, an unchanged profile)
// still reports the row as found instead of masquerading as a 404.
func dsn(cfg config.Config) string {
	auth := cfg.DBUser
	if cfg.DBPass != "" {
		auth = cfg.DBUser + ":" + cfg.DBPass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		auth, cfg.DBHost, cfg.DBPort, cfg.DBName)
}
