package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/personachat/server/internal/config"
)

const pingTimeout = 5 * time.Second

// Connect opens the chat store described by DATABASE_URL. The target
// database is created on first run so a fresh local Postgres needs no
// manual setup before the server starts.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	if err := createDatabaseIfMissing(cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("create database: %w", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("open chat store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping chat store: %w", err)
	}

	return db, nil
}

// gormLogLevel maps the service-wide LOG_LEVEL onto GORM's logger. Only
// debug opts into per-query logging.
func gormLogLevel(raw string) gormlogger.LogLevel {
	if strings.EqualFold(raw, "debug") {
		return gormlogger.Info
	}
	return gormlogger.Warn
}

// createDatabaseIfMissing connects to the maintenance database and issues
// CREATE DATABASE for the DSN's target when it does not exist yet. DSNs
// that are not URL-shaped, or that already point at postgres itself, are
// left alone.
func createDatabaseIfMissing(dsn string) error {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return nil
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" || name == "postgres" {
		return nil
	}

	admin := *u
	admin.Path = "/postgres"
	conn, err := sql.Open("postgres", admin.String())
	if err != nil {
		return err
	}
	defer conn.Close()

	var count int
	if err := conn.QueryRow("SELECT count(*) FROM pg_database WHERE datname = $1", name).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = conn.Exec(`CREATE DATABASE "` + strings.ReplaceAll(name, `"`, `""`) + `"`)
	return err
}
