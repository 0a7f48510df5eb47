package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps documents in the documents table, one row per id.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Save(ctx context.Context, id string, content json.RawMessage) (Document, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO documents (id, content, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE
		SET content = EXCLUDED.content, updated_at = now()
		RETURNING id, content, updated_at
	`, id, content)

	var doc Document
	if err := row.Scan(&doc.ID, &doc.Content, &doc.UpdatedAt); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (s *PostgresStore) Load(ctx context.Context, id string) (Document, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, content, updated_at
		FROM documents
		WHERE id = $1
	`, id)

	var doc Document
	if err := row.Scan(&doc.ID, &doc.Content, &doc.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
