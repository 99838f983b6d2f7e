// Package sqlite is the embedded catalog store backed by modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"media-catalog/internal"
	cl "media-catalog/pkg/catelog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	jsonutils "github.com/twitsprout/tools/json"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS albums (
	id       INTEGER PRIMARY KEY,
	name     TEXT NOT NULL,
	name_key TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_albums_name_key ON albums(name_key);
CREATE TABLE IF NOT EXISTS photos (
	id          INTEGER PRIMARY KEY,
	title       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	date        TEXT NOT NULL DEFAULT '',
	filename    TEXT NOT NULL DEFAULT '',
	resolution  TEXT NOT NULL DEFAULT '',
	tags        TEXT NOT NULL DEFAULT '[]',
	albums      TEXT NOT NULL DEFAULT '[]',
	owner       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_photos_owner ON photos(owner);
CREATE TABLE IF NOT EXISTS courses (
	code     TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	capacity INTEGER NOT NULL,
	owner    INTEGER NOT NULL
);
`

var sqlb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Store is the SQLite catalog store.
type Store struct {
	db *sqlx.DB
}

var _ internal.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and makes sure the
// schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create database directory: %v", cl.ErrStorage, err)
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", cl.ErrStorage, err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create schema: %v", cl.ErrStorage, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// inTx runs fn inside a transaction, committing only when fn succeeds.
// The pool holds a single connection, so transactions are serialized.
func (s *Store) inTx(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageErr("begin "+op, err)
	}
	defer tx.Rollback()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return storageErr("commit "+op, err)
	}
	return nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", cl.ErrStorage, op, err)
}

// upsertSuffix returns the ON CONFLICT clause that overwrites columns of the
// row matching key.
func upsertSuffix(key string, columns []string) string {
	sets := make([]string, 0, len(columns))
	for _, c := range columns {
		sets = append(sets, c+" = excluded."+c)
	}
	return "ON CONFLICT(" + key + ") DO UPDATE SET " + strings.Join(sets, ", ")
}

// nameKey folds an album name for case-insensitive lookups. SQLite's NOCASE
// only folds ASCII, so the key is computed here.
func nameKey(name string) string {
	return strings.ToLower(name)
}

// selectOne runs q and scans the first row into dest, returning
// cl.ErrNotFound when there is none.
func selectOne[T any](ctx context.Context, db sqlx.QueryerContext, q sq.SelectBuilder, op string) (T, error) {
	var zero T
	rows, err := selectAll[T](ctx, db, q.Limit(1), op)
	if err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, cl.ErrNotFound
	}
	return rows[0], nil
}

func selectAll[T any](ctx context.Context, db sqlx.QueryerContext, q sq.SelectBuilder, op string) ([]T, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}
	rows := []T{}
	if err := sqlx.SelectContext(ctx, db, &rows, query, args...); err != nil {
		return nil, storageErr(op, err)
	}
	return rows, nil
}

// jsonColumn stores a slice as JSON text.
type jsonColumn[T any] []T

// Scan implements sql.Scanner.
func (c *jsonColumn[T]) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*c = jsonColumn[T]{}
		return nil
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return fmt.Errorf("sqlite: cannot scan %T into a JSON column", src)
	}
	var vals []T
	if err := jsonutils.Unmarshal(b, &vals); err != nil {
		return err
	}
	if vals == nil {
		vals = []T{}
	}
	*c = vals
	return nil
}

// Value implements driver.Valuer.
func (c jsonColumn[T]) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]T(c))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
