// Package sqlite implements the entitystore contract on a local SQLite file
// using the pure-Go modernc.org driver. Property bags are stored as JSON text
// in a single entities table; the rowid sequence preserves insertion order
// for tie-breaking.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/codeu/chatstore/internal/entitystore"
)

const schema = `
CREATE TABLE IF NOT EXISTS entities (
    seq   INTEGER PRIMARY KEY AUTOINCREMENT,
    kind  TEXT NOT NULL,
    id    TEXT NOT NULL,
    props TEXT NOT NULL,
    UNIQUE (kind, id)
);
CREATE INDEX IF NOT EXISTS idx_entities_kind ON entities (kind);
`

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database file, enables WAL journal mode and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// NewWithDB wires an existing connection (used by tests and the factory).
func NewWithDB(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying connection for local tooling.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Put(ctx context.Context, kind, id string, props entitystore.Properties) error {
	raw, err := entitystore.MarshalProps(props)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO entities (kind, id, props) VALUES (?,?,?)
        ON CONFLICT (kind, id) DO UPDATE SET props = excluded.props
    `, kind, id, string(raw))
	return err
}

func (s *Store) Delete(ctx context.Context, kind, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM entities WHERE kind = ? AND id = ?`, kind, id)
	return err
}

func (s *Store) QueryAll(ctx context.Context, kind, orderBy string) ([]entitystore.Record, error) {
	q := `SELECT id, props FROM entities WHERE kind = ? ORDER BY seq`
	args := []any{kind}
	if orderBy != "" {
		q = `SELECT id, props FROM entities WHERE kind = ?
             ORDER BY CAST(json_extract(props, '$.' || ?) AS INTEGER), seq`
		args = append(args, orderBy)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []entitystore.Record
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		props, err := entitystore.UnmarshalProps([]byte(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, entitystore.Record{ID: id, Props: props})
	}
	return out, rows.Err()
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
