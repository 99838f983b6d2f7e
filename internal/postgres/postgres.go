package postgres

import (
	"context"
	"media-catalog/internal"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/jmoiron/sqlx"
	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/postgres"
)

type Config postgres.Config

// Postgres represents the type to interact with the PostgreSQL database.
type Postgres struct {
	sqldb *sqlx.DB
	db    *postgres.DB
}

type QueryValues struct {
	query string
	args  []interface{}
}

var _ internal.Store = (*Postgres)(nil)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// New creates a new Postgres store. When sc is not nil every write is timed
// and counted under its label.
func New(c Config, sc tools.StatsClient) (*Postgres, error) {
	var ops []postgres.Option
	if sc != nil {
		ops = append(ops, postgres.WithOnComplete(statsOnComplete(sc)))
	}
	db, err := postgres.NewDB(postgres.Config(c), ops...)
	if err != nil {
		return nil, err
	}
	sqldb := sqlx.NewDb(db.SQLDB(), "postgres")
	return &Postgres{sqldb: sqldb, db: db}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// inTx runs fn inside a transaction, committing only when fn succeeds.
func (p *Postgres) inTx(ctx context.Context, label string, fn func(tx *sqlx.Tx) error) error {
	tx, err := p.sqldb.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin "+label)
	}
	defer tx.Rollback()
	if err := fn(tx); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit "+label)
}

func statsOnComplete(sc tools.StatsClient) func(context.Context, string, time.Time, error) error {
	return func(_ context.Context, label string, start time.Time, err error) error {
		sc.Histogram("postgres_query_seconds", time.Since(start).Seconds(), []string{label})
		if err != nil {
			sc.Count("postgres_query_errors", 1, []string{label})
		}
		return err
	}
}
