package database

import (
	"fmt"

	"wiki-quiz/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/jackc/pgx/v4/stdlib" // Postgres driver, registered as "pgx"
	_ "github.com/mattn/go-sqlite3"     // SQLite driver
	_ "github.com/sijms/go-ora/v2"      // Oracle driver
	"go.uber.org/zap"
)

// Supported values for db.driver.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverOracle   = "oracle"
)

func init() {
	// sqlx does not know go-ora's driver name; it takes :name style binds.
	sqlx.BindDriver(DriverOracle, sqlx.NAMED)
}

// sqlDriverName maps a configured dialect to its registered database/sql driver.
func sqlDriverName(dialect string) (string, error) {
	switch dialect {
	case DriverSQLite:
		return "sqlite3", nil
	case DriverPostgres:
		return "pgx", nil
	case DriverOracle:
		return "oracle", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", dialect)
	}
}

// Open connects to the configured database and verifies the connection.
func Open(cfg config.DBConfig, log *zap.Logger) (*sqlx.DB, error) {
	driverName, err := sqlDriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	if cfg.Driver == DriverSQLite {
		// A single connection serialises writers, so a racing insert sees the
		// unique constraint instead of SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}

	log.Info("Successfully connected to database", zap.String("driver", cfg.Driver))
	return db, nil
}
