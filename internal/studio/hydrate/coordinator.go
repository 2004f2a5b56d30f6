// Package hydrate reconciles the persisted metadata document with the blob
// repository into one consistent in-memory state, exactly once at startup.
package hydrate

import (
	"context"

	"github.com/dmitrijs2005/artkeeper/internal/logging"
	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
	"github.com/dmitrijs2005/artkeeper/internal/studio/repositories/blobs"
	"github.com/dmitrijs2005/artkeeper/internal/studio/repositories/metadata"
	"github.com/dmitrijs2005/artkeeper/internal/studio/state"
)

type Coordinator struct {
	meta  metadata.Store
	blobs blobs.Repository
	store *state.Store
	log   logging.Logger
}

func NewCoordinator(meta metadata.Store, blobRepo blobs.Repository, store *state.Store, log logging.Logger) *Coordinator {
	return &Coordinator{meta: meta, blobs: blobRepo, store: store, log: log}
}

// Run loads the document, fills in payloads from the blob repository, drops
// orphaned metadata, and marks the state ready. It always reaches ready:
// a total blob-store failure merely makes every referenced entity orphaned
// for this session, it never blocks startup.
func (c *Coordinator) Run(ctx context.Context) error {
	doc, err := c.meta.Load(ctx)
	if err != nil {
		c.log.Error(ctx, "failed to load metadata document, starting empty", "error", err)
		doc = models.EmptyDocument()
	}

	ids := collectPayloadIDs(doc)
	if len(ids) == 0 {
		c.dispatch(doc, nil)
		return nil
	}

	payloads, err := c.blobs.GetMany(ctx, ids)
	if err != nil {
		// Engine-level fault: keep whatever was collected; everything else
		// is treated as orphaned for this session.
		c.log.Error(ctx, "blob lookup failed during hydration", "error", err, "recovered", len(payloads))
	}

	c.dispatch(doc, payloads)
	return nil
}

func (c *Coordinator) dispatch(doc *models.Document, payloads map[string]models.Payload) {
	projects, images, dropped := fill(doc, payloads)

	if dropped > 0 {
		c.log.Debug(context.Background(), "dropped orphaned metadata during hydration", "count", dropped)
	}

	c.store.Dispatch(state.Hydrated{
		Projects:        projects,
		ActiveProjectID: activeProjectID(doc, projects),
		GeneratedImages: images,
		DefaultSettings: doc.DefaultSettings,
		Credential:      doc.Credential,
	})
}

// collectPayloadIDs gathers every entity id whose payload is still empty.
func collectPayloadIDs(doc *models.Document) []string {
	var ids []string
	for _, p := range doc.Projects {
		for _, ri := range p.ReferenceImages {
			if ri.Payload.Empty() {
				ids = append(ids, ri.ID)
			}
		}
		for _, ch := range p.Characters {
			if ch.Payload.Empty() {
				ids = append(ids, ch.ID)
			}
		}
	}
	for _, img := range doc.GeneratedImages {
		if img.Payload.Empty() {
			ids = append(ids, img.ID)
		}
	}
	return ids
}

// fill merges payloads into the document's entities. Entities whose id has
// no payload are orphaned metadata: they are dropped, never surfaced.
func fill(doc *models.Document, payloads map[string]models.Payload) ([]models.Project, []models.GeneratedImage, int) {
	dropped := 0

	projects := make([]models.Project, 0, len(doc.Projects))
	for _, p := range doc.Projects {
		cp := p.Clone()

		refs := make([]models.ReferenceImage, 0, len(cp.ReferenceImages))
		for _, ri := range cp.ReferenceImages {
			if !ri.Payload.Empty() {
				refs = append(refs, ri)
				continue
			}
			if pl, ok := payloads[ri.ID]; ok {
				ri.Payload = pl
				refs = append(refs, ri)
				continue
			}
			dropped++
		}
		cp.ReferenceImages = refs

		chars := make([]models.Character, 0, len(cp.Characters))
		for _, ch := range cp.Characters {
			if !ch.Payload.Empty() {
				chars = append(chars, ch)
				continue
			}
			if pl, ok := payloads[ch.ID]; ok {
				ch.Payload = pl
				chars = append(chars, ch)
				continue
			}
			dropped++
		}
		cp.Characters = chars

		projects = append(projects, cp)
	}

	images := make([]models.GeneratedImage, 0, len(doc.GeneratedImages))
	for _, img := range doc.GeneratedImages {
		if !img.Payload.Empty() {
			images = append(images, img)
			continue
		}
		if pl, ok := payloads[img.ID]; ok {
			img.Payload = pl
			images = append(images, img)
			continue
		}
		dropped++
	}

	return projects, images, dropped
}

// activeProjectID keeps the persisted selection when the project survived,
// otherwise falls back to the first remaining project.
func activeProjectID(doc *models.Document, projects []models.Project) string {
	for _, p := range projects {
		if p.ID == doc.ActiveProjectID {
			return doc.ActiveProjectID
		}
	}
	if len(projects) > 0 {
		return projects[0].ID
	}
	return ""
}
