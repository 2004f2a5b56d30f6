// Package generation fans a user submission out into concurrent attempts
// against the image generation service and commits each success into the
// blob repository and the state store as it lands.
package generation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/artkeeper/internal/common"
	"github.com/dmitrijs2005/artkeeper/internal/logging"
	"github.com/dmitrijs2005/artkeeper/internal/studio/genai"
	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
	"github.com/dmitrijs2005/artkeeper/internal/studio/repositories/blobs"
	"github.com/dmitrijs2005/artkeeper/internal/studio/state"
)

// ImageClient is the slice of the genai client the orchestrator needs.
type ImageClient interface {
	GenerateImage(ctx context.Context, parts []genai.Part, temperature float64) (*genai.Result, error)
}

// Submission is one user request, fanned out into
// Settings.NumberOfVariations attempts.
type Submission struct {
	ProjectID string
	Prompt    string
	Settings  models.GenerationSettings

	// Edit mode: source is the image being edited, mask optionally
	// restricts the edit region. ParentImageID records lineage and is
	// never validated.
	ParentImageID string
	Source        *models.Payload
	Mask          *models.Payload
}

type Orchestrator struct {
	store  *state.Store
	blobs  blobs.Repository
	client ImageClient
	log    logging.Logger

	mu        sync.Mutex
	cancels   map[string]context.CancelFunc
	cancelled map[string]struct{}
	wg        sync.WaitGroup
}

func NewOrchestrator(store *state.Store, blobRepo blobs.Repository, client ImageClient, log logging.Logger) *Orchestrator {
	return &Orchestrator{
		store:     store,
		blobs:     blobRepo,
		client:    client,
		log:       log,
		cancels:   make(map[string]context.CancelFunc),
		cancelled: make(map[string]struct{}),
	}
}

// Submit starts one attempt per configured variation and returns the
// request ids. Attempts run concurrently; completion order is whatever
// the network returns.
func (o *Orchestrator) Submit(ctx context.Context, sub Submission) ([]string, error) {
	if !o.store.Ready() {
		return nil, fmt.Errorf("submitting generation: %w", common.ErrNotReady)
	}

	s := o.store.State()
	project, ok := s.ProjectByID(sub.ProjectID)
	if !ok {
		return nil, fmt.Errorf("submitting generation: project %s: %w", sub.ProjectID, common.ErrNotFound)
	}

	n := sub.Settings.NumberOfVariations
	if n < 1 {
		n = 1
	}

	parts := BuildParts(&project, sub.Prompt, sub.Settings, sub.Source, sub.Mask)

	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		req := models.GenerationRequest{
			ID:        uuid.NewString(),
			ProjectID: sub.ProjectID,
			Prompt:    sub.Prompt,
			Status:    models.StatusPending,
			Settings:  sub.Settings,
			StartedAt: time.Now(),
		}
		ids = append(ids, req.ID)
		o.store.Dispatch(state.EnqueueGenerationRequest{Request: req})

		attemptCtx, cancel := context.WithCancel(ctx)
		o.mu.Lock()
		o.cancels[req.ID] = cancel
		o.mu.Unlock()

		o.wg.Add(1)
		go o.run(attemptCtx, req.ID, sub, parts)
	}
	return ids, nil
}

func (o *Orchestrator) run(ctx context.Context, requestID string, sub Submission, parts []genai.Part) {
	defer o.wg.Done()
	defer o.release(requestID)

	o.store.Dispatch(state.UpdateGenerationRequest{ID: requestID, Status: models.StatusGenerating})

	res, err := o.client.GenerateImage(ctx, parts, sub.Settings.Temperature)
	if err != nil {
		if o.wasCancelled(requestID) && errors.Is(err, context.Canceled) {
			// Cancelled attempts leave no terminal record; the queue entry
			// was already swept by Cancel/CancelAll. Anything else,
			// deadline expiry included, marks the request failed.
			return
		}
		o.log.Warn(ctx, "generation attempt failed", "request_id", requestID, "error", err)
		o.store.Dispatch(state.UpdateGenerationRequest{
			ID:           requestID,
			Status:       models.StatusError,
			ErrorMessage: err.Error(),
		})
		return
	}

	img := models.GeneratedImage{
		ID:            uuid.NewString(),
		ProjectID:     sub.ProjectID,
		Prompt:        sub.Prompt,
		Payload:       res.Payload,
		Settings:      sub.Settings,
		CreatedAt:     time.Now(),
		ParentImageID: sub.ParentImageID,
	}

	// The blob write must land before the image is announced. A
	// cancellation racing this write is not guarded; see Cancel.
	if err := o.blobs.Put(context.WithoutCancel(ctx), img.ID, img.Payload); err != nil {
		o.log.Error(ctx, "storing generated image", "image_id", img.ID, "error", err)
		o.store.Dispatch(state.UpdateGenerationRequest{
			ID:           requestID,
			Status:       models.StatusError,
			ErrorMessage: fmt.Sprintf("storing image: %v", err),
		})
		return
	}

	o.store.Dispatch(state.AddGeneratedImage{Image: img})
	o.store.Dispatch(state.UpdateGenerationRequest{
		ID:     requestID,
		Status: models.StatusCompleted,
		Result: &img,
	})
}

// Cancel aborts a single in-flight attempt and removes its queue entry.
// The network call unwinds in the background.
func (o *Orchestrator) Cancel(requestID string) {
	o.mu.Lock()
	cancel, ok := o.cancels[requestID]
	if ok {
		o.cancelled[requestID] = struct{}{}
	}
	o.mu.Unlock()
	if ok {
		cancel()
	}
	o.store.Dispatch(state.RemoveGenerationRequest{ID: requestID})
}

// CancelAll cancels every in-flight attempt and sweeps pending and
// generating entries from the queue in one dispatch, without waiting
// for the network calls to return.
func (o *Orchestrator) CancelAll() {
	o.mu.Lock()
	for id, cancel := range o.cancels {
		o.cancelled[id] = struct{}{}
		cancel()
	}
	o.mu.Unlock()
	o.store.Dispatch(state.CancelAllRequests{})
}

// Wait blocks until every started attempt has returned. Intended for
// shutdown and tests.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// wasCancelled reports whether the attempt was aborted through
// Cancel/CancelAll, as opposed to its context expiring on its own.
func (o *Orchestrator) wasCancelled(requestID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.cancelled[requestID]
	return ok
}

func (o *Orchestrator) release(requestID string) {
	o.mu.Lock()
	if cancel, ok := o.cancels[requestID]; ok {
		cancel()
		delete(o.cancels, requestID)
	}
	delete(o.cancelled, requestID)
	o.mu.Unlock()
}
