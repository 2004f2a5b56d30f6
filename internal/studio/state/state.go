// Package state holds the single authoritative in-memory state tree and the
// exhaustive set of transitions over it. Every transition is a pure function
// of (state, action); I/O happens around dispatches, never inside them.
package state

import (
	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
)

// State is the complete tree observed by every reader. Values handed out by
// the store are deep copies; nothing outside the reducer mutates it.
type State struct {
	// Ready flips to true exactly once, after hydration reconciled the
	// metadata document with the blob repository.
	Ready bool

	Projects        []models.Project
	ActiveProjectID string

	// GeneratedImages are ordered most-recently-created first.
	GeneratedImages []models.GeneratedImage

	// GenerationQueue holds in-flight requests only; it is never persisted
	// and is empty after every restart.
	GenerationQueue []models.GenerationRequest

	DefaultSettings models.GenerationSettings
	Credential      *models.Credential
}

// Empty returns the pre-hydration state.
func Empty() State {
	return State{
		Projects:        []models.Project{},
		GeneratedImages: []models.GeneratedImage{},
		GenerationQueue: []models.GenerationRequest{},
		DefaultSettings: models.DefaultSettings(),
	}
}

// Clone deep-copies the tree.
func (s State) Clone() State {
	out := s
	out.Projects = make([]models.Project, len(s.Projects))
	for i, p := range s.Projects {
		out.Projects[i] = p.Clone()
	}
	out.GeneratedImages = append([]models.GeneratedImage(nil), s.GeneratedImages...)
	out.GenerationQueue = append([]models.GenerationRequest(nil), s.GenerationQueue...)
	return out
}

// ProjectByID looks a project up by its plain identifier.
func (s State) ProjectByID(id string) (models.Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// ActiveProject returns the currently active project, if any.
func (s State) ActiveProject() (models.Project, bool) {
	if s.ActiveProjectID == "" {
		return models.Project{}, false
	}
	return s.ProjectByID(s.ActiveProjectID)
}

// ImageByID looks a generated image up by id.
func (s State) ImageByID(id string) (models.GeneratedImage, bool) {
	for _, img := range s.GeneratedImages {
		if img.ID == id {
			return img, true
		}
	}
	return models.GeneratedImage{}, false
}

// ImagesForProject returns the generated images belonging to a project, in
// queue order (newest first).
func (s State) ImagesForProject(projectID string) []models.GeneratedImage {
	var out []models.GeneratedImage
	for _, img := range s.GeneratedImages {
		if img.ProjectID == projectID {
			out = append(out, img)
		}
	}
	return out
}

// RequestByID looks a generation request up in the queue.
func (s State) RequestByID(id string) (models.GenerationRequest, bool) {
	for _, r := range s.GenerationQueue {
		if r.ID == id {
			return r, true
		}
	}
	return models.GenerationRequest{}, false
}

// Document builds the metadata projection of the tree. Payload stripping is
// applied by the metadata store on save.
func (s State) Document() *models.Document {
	return &models.Document{
		SchemaVersion:   models.SchemaVersion,
		Projects:        s.Projects,
		GeneratedImages: s.GeneratedImages,
		ActiveProjectID: s.ActiveProjectID,
		DefaultSettings: s.DefaultSettings,
		Credential:      s.Credential,
	}
}
