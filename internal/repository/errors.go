package repository

import (
	"errors"

	"github.com/jackc/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/sijms/go-ora/v2/network"
)

const (
	pgUniqueViolation     = "23505"
	oracleUniqueViolation = 1 // ORA-00001
)

// isUniqueViolation reports whether err is a unique constraint failure from
// any of the supported drivers.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var oraErr *network.OracleError
	if errors.As(err, &oraErr) {
		return oraErr.ErrCode == oracleUniqueViolation
	}
	return false
}
