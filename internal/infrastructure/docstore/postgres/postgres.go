// Package postgres backs the document store with a single jsonb table. The
// schema lives in migrations/; cmd/migration applies it.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	qb "github.com/wicketwatch/wicketwatch/internal/platform/querybuilder"
)

const documentsTable = "documents"

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

type documentRow struct {
	Key       string    `db:"key"`
	Data      []byte    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (s *Store) Get(ctx context.Context, collection, key string, out any) (time.Time, bool, error) {
	query, args, err := qb.Select("key", "data", "updated_at").
		From(documentsTable).
		Where(qb.Eq("collection", collection), qb.Eq("key", key)).
		ToSQL()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("build get document query: %w", err)
	}

	var row documentRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("get document %s/%s: %w", collection, key, err)
	}

	if out != nil {
		if err := sonic.Unmarshal(row.Data, out); err != nil {
			return time.Time{}, false, fmt.Errorf("unmarshal document %s/%s: %w", collection, key, err)
		}
	}
	return row.UpdatedAt, true, nil
}

func (s *Store) Set(ctx context.Context, collection, key string, value any) (time.Time, error) {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("marshal document %s/%s: %w", collection, key, err)
	}

	query, args, err := qb.InsertInto(documentsTable).
		Columns("collection", "key", "data").
		Values(collection, key, raw).
		Suffix("ON CONFLICT (collection, key) DO UPDATE SET data = EXCLUDED.data, updated_at = now() RETURNING updated_at").
		ToSQL()
	if err != nil {
		return time.Time{}, fmt.Errorf("build upsert document query: %w", err)
	}

	var updatedAt time.Time
	if err := s.db.QueryRowxContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return time.Time{}, fmt.Errorf("upsert document %s/%s: %w", collection, key, err)
	}
	return updatedAt, nil
}

func (s *Store) Delete(ctx context.Context, collection, key string) error {
	query, args, err := qb.DeleteFrom(documentsTable).
		Where(qb.Eq("collection", collection), qb.Eq("key", key)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete document query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete document %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *Store) Stream(ctx context.Context, collection string, fn func(key string, raw []byte) error) error {
	query, args, err := qb.Select("key", "data", "updated_at").
		From(documentsTable).
		Where(qb.Eq("collection", collection)).
		OrderBy("key").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build stream documents query: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("stream documents %s: %w", collection, err)
	}
	defer rows.Close()

	for rows.Next() {
		var row documentRow
		if err := rows.StructScan(&row); err != nil {
			return fmt.Errorf("scan document in %s: %w", collection, err)
		}
		if err := fn(row.Key, row.Data); err != nil {
			return err
		}
	}
	return rows.Err()
}
