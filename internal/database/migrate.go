package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"wiki-quiz/internal/config"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// RunMigrations brings the schema of the configured database up to date.
// It opens its own connection and closes it when done.
func RunMigrations(cfg config.DBConfig, log *zap.Logger) error {
	driverName, err := sqlDriverName(cfg.Driver)
	if err != nil {
		return err
	}

	db, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return fmt.Errorf("could not open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("could not ping database: %w", err)
	}

	if cfg.Driver == DriverOracle {
		return runOracleMigrations(db, log)
	}
	return runVersionedMigrations(db, cfg.Driver, log)
}

func runVersionedMigrations(db *sql.DB, dialect string, log *zap.Logger) error {
	var (
		driver migratedb.Driver
		err    error
	)
	switch dialect {
	case DriverSQLite:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	case DriverPostgres:
		driver, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	default:
		return fmt.Errorf("no migration driver for %q", dialect)
	}
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations/"+dialect)
	if err != nil {
		return fmt.Errorf("could not read migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dialect, driver)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}

	version, _, _ := m.Version()
	log.Info("Migrations completed successfully", zap.String("driver", dialect), zap.Uint("version", version))
	return nil
}

// runOracleMigrations executes the embedded PL/SQL scripts in order. Each
// block is idempotent, so reruns are safe.
func runOracleMigrations(db *sql.DB, log *zap.Logger) error {
	files, err := migrationsFS.ReadDir("migrations/oracle")
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".up.sql") {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/oracle/" + file.Name())
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", file.Name(), err)
		}

		for _, stmt := range splitPLSQL(string(content)) {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", file.Name(), err)
			}
		}

		log.Info("Executed migration", zap.String("file", file.Name()))
	}

	log.Info("Migrations completed successfully", zap.String("driver", DriverOracle))
	return nil
}

// splitPLSQL splits a script on lines holding a single "/".
func splitPLSQL(script string) []string {
	var (
		stmts   []string
		current strings.Builder
	)
	for _, line := range strings.Split(script, "\n") {
		if strings.TrimSpace(line) == "/" {
			if s := strings.TrimSpace(current.String()); s != "" {
				stmts = append(stmts, s)
			}
			current.Reset()
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		stmts = append(stmts, s)
	}
	return stmts
}
