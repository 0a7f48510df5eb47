package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when no document exists under the requested id.
var ErrNotFound = errors.New("document not found")

// Document is a persisted named document. The content is stored exactly
// as the client sent it; the relay never interprets it.
type Document struct {
	ID        string          `json:"id"`
	Content   json.RawMessage `json:"content"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DocumentStore persists named documents outside the relay hot path.
type DocumentStore interface {
	// Save creates the document or overwrites it if it already exists.
	Save(ctx context.Context, id string, content json.RawMessage) (Document, error)
	// Load returns the document, or ErrNotFound.
	Load(ctx context.Context, id string) (Document, error)
	// Delete removes the document, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}
