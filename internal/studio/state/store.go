package state

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/artkeeper/internal/logging"
	"github.com/dmitrijs2005/artkeeper/internal/studio/repositories/metadata"
)

const persistTimeout = 10 * time.Second

// Store serializes every transition through one mutex: transitions apply in
// dispatch order and are atomic with respect to each other. It is the only
// writer of the tree.
type Store struct {
	mu    sync.Mutex
	state State
	seq   uint64

	meta metadata.Store
	log  logging.Logger

	persistWG sync.WaitGroup
	persistMu sync.Mutex
	persisted uint64
}

func NewStore(meta metadata.Store, log logging.Logger) *Store {
	return &Store{
		state: Empty(),
		meta:  meta,
		log:   log,
	}
}

// Dispatch applies the action and returns the resulting tree. After a
// transition that touches persisted fields, and only once the store is
// ready, the metadata projection is saved fire-and-forget: a persistence
// failure is logged and never rolls back the in-memory transition.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state.Clone()
	persist := next.Ready && touchesPersistedFields(a)
	var seq uint64
	if persist {
		s.seq++
		seq = s.seq
	}
	s.mu.Unlock()

	if persist {
		doc := next.Document()
		s.persistWG.Add(1)
		go func() {
			defer s.persistWG.Done()
			s.persistMu.Lock()
			defer s.persistMu.Unlock()
			// Saves run one at a time in whatever order the goroutines
			// land. The stamp keeps a snapshot that lost the race from
			// overwriting a newer document.
			if seq <= s.persisted {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
			defer cancel()
			if err := s.meta.Save(ctx, doc); err != nil {
				s.log.Error(ctx, "failed to persist metadata document", "error", err)
				return
			}
			s.persisted = seq
		}()
	}

	return next
}

// State returns a copy of the current tree.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Ready reports whether hydration has completed.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Ready
}

// Flush waits for in-flight persistence writes. Used on shutdown and by
// tests; dispatches themselves never wait on it.
func (s *Store) Flush() {
	s.persistWG.Wait()
}

// touchesPersistedFields reports whether an action mutates any field that is
// part of the metadata projection. Queue-only actions are excluded: the
// generation queue is never persisted. Hydrated is excluded because it was
// just loaded from the store.
func touchesPersistedFields(a Action) bool {
	switch a.(type) {
	case CreateProject, UpdateProject, DeleteProject, SetActiveProject,
		AddReferenceImage, RemoveReferenceImage,
		AddCharacter, RemoveCharacter, RelabelCharacter,
		AddGeneratedImage, DeleteGeneratedImage,
		SetDefaultSettings, SetCredential:
		return true
	default:
		return false
	}
}
