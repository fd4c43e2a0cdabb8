package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tweet-server/confs"
	"tweet-server/entities"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured database and tunes its connection pool.
// It does not touch the schema; call Migrate for that.
func Connect(cfg confs.DatabaseConfig) (Database, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Warn),
		PrepareStmt: true,
		NowFunc:     func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.Driver == confs.DriverSQLite {
		// sqlite serializes writers; one connection avoids "database is locked"
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(0)
	}

	slog.Info("database connection established", slog.String("driver", cfg.Driver))

	return &GormDatabase{DB: db}, nil
}

// Migrate creates or updates the users and tweets tables.
func Migrate(database Database) error {
	slog.Info("running database migrations")
	if err := database.GetDB().AutoMigrate(&entities.User{}, &entities.Tweet{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	slog.Info("database migrations completed")
	return nil
}

func dialectorFor(cfg confs.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case confs.DriverSQLite:
		slog.Info("using sqlite database", slog.String("path", cfg.Path))
		return sqlite.Open(cfg.Path), nil
	case confs.DriverPostgres, "":
		dsn, err := postgresDSN(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// postgresDSN prefers DB_URL and falls back to the individual parameters.
// Remote hosts get sslmode=require unless the URL already sets a mode.
func postgresDSN(cfg confs.DatabaseConfig) (string, error) {
	if cfg.URL != "" {
		dsn := cfg.URL
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		slog.Info("connecting to database using DB_URL")
		return dsn, nil
	}

	if cfg.Host == "" || cfg.Port == "" || cfg.User == "" || cfg.Password == "" || cfg.Name == "" {
		return "", fmt.Errorf("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	sslMode := "require"
	if cfg.Host == "localhost" || cfg.Host == "127.0.0.1" {
		sslMode = "disable"
	}

	slog.Info("connecting to database using individual parameters", slog.String("sslmode", sslMode))
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, sslMode), nil
}
