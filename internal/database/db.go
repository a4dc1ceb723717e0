package database

import (
	"context"
	"database/sql"
)

// DB is the query surface the repositories run on. All statements here are
// single owner-scoped statements; there is no transactional call site, so no
// Begin is exposed. SQLDB hands out the database/sql view the migration
// runner needs.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	SQLDB() *sql.DB
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
