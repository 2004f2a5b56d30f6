// Package blobs persists large binary payloads keyed by entity id. It is the
// authoritative home of image bytes; the metadata document only keeps
// stripped references to them.
package blobs

import (
	"context"

	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
)

// Repository is durable key→payload storage with one payload per id.
// Concurrent writes to the same id are last-write-wins; there is no locking.
type Repository interface {
	// Put upserts a payload. It is idempotent and returns only after the
	// write is durably acknowledged.
	Put(ctx context.Context, id string, payload models.Payload) error

	// PutMany has the same semantics as repeated Put, but the whole batch
	// commits as a single transaction: afterwards either all entries are
	// visible or none are.
	PutMany(ctx context.Context, entries map[string]models.Payload) error

	// Get returns the payload for id, or nil when nothing is stored under
	// it. Absence is not an error.
	Get(ctx context.Context, id string) (*models.Payload, error)

	// GetMany returns the stored payloads for ids. Ids with no payload are
	// omitted from the result. On an engine fault it returns whatever was
	// collected so far together with the error, so callers can degrade
	// instead of blocking.
	GetMany(ctx context.Context, ids []string) (map[string]models.Payload, error)

	// Delete removes the payload for id. Deleting a missing id is not an
	// error.
	Delete(ctx context.Context, id string) error

	// DeleteMany removes a batch of ids in one transaction. Missing ids are
	// skipped silently.
	DeleteMany(ctx context.Context, ids []string) error
}
