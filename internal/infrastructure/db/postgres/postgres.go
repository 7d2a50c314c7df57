package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/99minutos/marketplace-system/internal/infrastructure/db/postgres/migrations"
)

const (
	defaultTimeout = 10 * time.Second

	uniqueViolation = "23505"
)

// Config captures the settings required to open the postgres store.
type Config struct {
	DSN     string
	Timeout time.Duration
}

// Open connects through the pgx stdlib driver, pings the server and applies
// pending migrations.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("postgres migrate: %w", err)
	}
	return nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// pageClause renders ORDER BY / LIMIT / OFFSET for a listing.
func pageClause(column string, newestFirst bool, limit, offset int) (string, []any) {
	dir := "ASC"
	if newestFirst {
		dir = "DESC"
	}
	clause := fmt.Sprintf(" ORDER BY %s %s, id %s", column, dir, dir)

	var args []any
	if limit > 0 {
		args = append(args, limit)
		clause += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		clause += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return clause, args
}
