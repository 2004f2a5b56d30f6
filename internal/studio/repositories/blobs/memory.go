package blobs

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
)

// MemoryRepository is an in-memory Repository used by tests and by degraded
// startups where no durable blob backend is available.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Payload
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.Payload)}
}

func (r *MemoryRepository) Put(ctx context.Context, id string, payload models.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[id] = payload
	return nil
}

func (r *MemoryRepository) PutMany(ctx context.Context, entries map[string]models.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range entries {
		r.items[id] = p
	}
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Payload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *MemoryRepository) GetMany(ctx context.Context, ids []string) (map[string]models.Payload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make(map[string]models.Payload, len(ids))
	for _, id := range ids {
		if p, ok := r.items[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *MemoryRepository) DeleteMany(ctx context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.items, id)
	}
	return nil
}

// Len reports the number of stored payloads. Test helper.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
