package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mnemon-dev/mnemon/pkg/domain/interfaces"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// SQLite is a single-node persistent repository backed by a local
// database file. Suitable for single-instance deployments; multi-
// instance deployments should use the firestore backend.
type SQLite struct {
	db       *sql.DB
	exchange *exchangeRepository
}

var _ interfaces.Repository = &SQLite{}

func New(ctx context.Context, dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create db directory", goerr.V("path", dbPath))
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database", goerr.V("path", dbPath))
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to ping database", goerr.V("path", dbPath))
	}

	if err := migrate(db); err != nil {
		return nil, goerr.Wrap(err, "failed to run migrations", goerr.V("path", dbPath))
	}

	return &SQLite{
		db:       db,
		exchange: newExchangeRepository(db),
	}, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return goerr.Wrap(err, "failed to set goose dialect")
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return goerr.Wrap(err, "goose up failed")
	}
	return nil
}

func (s *SQLite) Exchange() interfaces.ExchangeRepository {
	return s.exchange
}

func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
