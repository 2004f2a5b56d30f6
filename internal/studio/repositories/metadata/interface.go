// Package metadata persists the single JSON document holding all project
// and image metadata, settings, and the sealed credential. The store has a
// hard capacity ceiling, so documents are always written stripped of binary
// payloads.
package metadata

import (
	"context"

	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
)

type Store interface {
	// Save serializes the document (stripped of every payload) and
	// overwrites the single stored record. Errors are returned so the
	// caller can log and swallow them; in-memory state stays the source of
	// truth for the running process.
	Save(ctx context.Context, doc *models.Document) error

	// Load reads and deserializes the document. A missing record or a
	// parse failure yields an empty document, never an error surfaced from
	// parsing: a corrupt document must not block startup. Loaded documents
	// are back-filled to the current schema.
	Load(ctx context.Context) (*models.Document, error)

	// Clear removes the stored document. Used by the full state reset.
	Clear(ctx context.Context) error
}
