package documentRepo

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrAlreadyExists = errors.New("document already exists")
)

// Document is a schemaless JSON-like tree.
type Document map[string]interface{}

// Store is the narrow contract every persistent backend satisfies.
type Store interface {
	// Create writes a new document and never overwrites: an existing id yields ErrAlreadyExists.
	Create(ctx context.Context, collection, id string, doc Document) error
	// Read returns ErrNotFound when the id does not exist.
	Read(ctx context.Context, collection, id string) (Document, error)
	// Update merges top-level fields into an existing document.
	Update(ctx context.Context, collection, id string, partial Document) error
	Ping(ctx context.Context) error
}
