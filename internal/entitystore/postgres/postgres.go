// Package postgres implements the entitystore contract on PostgreSQL using
// the pgx stdlib driver. Property bags are stored as JSONB in a single
// entities table; the seq column preserves insertion order for tie-breaking.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/codeu/chatstore/internal/entitystore"
)

const schema = `
CREATE TABLE IF NOT EXISTS entities (
    seq   BIGSERIAL PRIMARY KEY,
    kind  TEXT NOT NULL,
    id    TEXT NOT NULL,
    props JSONB NOT NULL,
    UNIQUE (kind, id)
);
CREATE INDEX IF NOT EXISTS idx_entities_kind ON entities (kind);
`

type Store struct {
	db *sql.DB
}

// Open opens a PostgreSQL connection and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a store backed by an existing connection.
func NewWithDB(db *sql.DB) *Store { return &Store{db: db} }

// Bootstrap ensures the entities table exists.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (s *Store) Put(ctx context.Context, kind, id string, props entitystore.Properties) error {
	raw, err := entitystore.MarshalProps(props)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO entities (kind, id, props) VALUES ($1,$2,$3)
        ON CONFLICT (kind, id) DO UPDATE SET props = EXCLUDED.props
    `, kind, id, raw)
	return err
}

func (s *Store) Delete(ctx context.Context, kind, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM entities WHERE kind = $1 AND id = $2`, kind, id)
	return err
}

func (s *Store) QueryAll(ctx context.Context, kind, orderBy string) ([]entitystore.Record, error) {
	q := `SELECT id, props FROM entities WHERE kind = $1 ORDER BY seq`
	args := []any{kind}
	if orderBy != "" {
		q = `SELECT id, props FROM entities WHERE kind = $1
             ORDER BY (props->>$2)::bigint, seq`
		args = append(args, orderBy)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []entitystore.Record
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		props, err := entitystore.UnmarshalProps(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, entitystore.Record{ID: id, Props: props})
	}
	return out, rows.Err()
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
