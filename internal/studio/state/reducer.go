package state

import (
	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
)

// Reduce applies one action to the tree and returns the next tree. It is a
// pure function: no I/O, no clock, no mutation of its input.
func Reduce(s State, a Action) State {
	switch act := a.(type) {

	case Hydrated:
		if s.Ready {
			return s
		}
		next := s.Clone()
		next.Ready = true
		next.Projects = act.Projects
		next.ActiveProjectID = act.ActiveProjectID
		next.GeneratedImages = act.GeneratedImages
		next.DefaultSettings = act.DefaultSettings
		next.Credential = act.Credential
		if next.Projects == nil {
			next.Projects = []models.Project{}
		}
		if next.GeneratedImages == nil {
			next.GeneratedImages = []models.GeneratedImage{}
		}
		return next

	case CreateProject:
		next := s.Clone()
		next.Projects = append(next.Projects, act.Project.Clone())
		if next.ActiveProjectID == "" {
			next.ActiveProjectID = act.Project.ID
		}
		return next

	case UpdateProject:
		next := s.Clone()
		for i := range next.Projects {
			if next.Projects[i].ID != act.ID {
				continue
			}
			if act.Name != nil {
				next.Projects[i].Name = *act.Name
			}
			if act.Description != nil {
				next.Projects[i].Description = *act.Description
			}
			if act.StyleDirective != nil {
				next.Projects[i].StyleDirective = *act.StyleDirective
			}
			next.Projects[i].UpdatedAt = act.UpdatedAt
		}
		return next

	case DeleteProject:
		next := s.Clone()
		projects := next.Projects[:0]
		found := false
		for _, p := range next.Projects {
			if p.ID == act.ID {
				found = true
				continue
			}
			projects = append(projects, p)
		}
		if !found {
			return s
		}
		next.Projects = projects

		// Cascade: drop every generated image that points back at the
		// deleted project, atomically with the project itself.
		images := next.GeneratedImages[:0]
		for _, img := range next.GeneratedImages {
			if img.ProjectID == act.ID {
				continue
			}
			images = append(images, img)
		}
		next.GeneratedImages = images

		// Promote the first remaining project, or leave none active.
		if next.ActiveProjectID == act.ID {
			if len(next.Projects) > 0 {
				next.ActiveProjectID = next.Projects[0].ID
			} else {
				next.ActiveProjectID = ""
			}
		}
		return next

	case SetActiveProject:
		if _, ok := s.ProjectByID(act.ID); !ok {
			return s
		}
		next := s.Clone()
		next.ActiveProjectID = act.ID
		return next

	case AddReferenceImage:
		next := s.Clone()
		for i := range next.Projects {
			if next.Projects[i].ID == act.ProjectID {
				next.Projects[i].ReferenceImages = append(next.Projects[i].ReferenceImages, act.Image)
			}
		}
		return next

	case RemoveReferenceImage:
		next := s.Clone()
		for i := range next.Projects {
			if next.Projects[i].ID != act.ProjectID {
				continue
			}
			imgs := next.Projects[i].ReferenceImages[:0]
			for _, ri := range next.Projects[i].ReferenceImages {
				if ri.ID != act.ImageID {
					imgs = append(imgs, ri)
				}
			}
			next.Projects[i].ReferenceImages = imgs
		}
		return next

	case AddCharacter:
		next := s.Clone()
		for i := range next.Projects {
			if next.Projects[i].ID == act.ProjectID {
				next.Projects[i].Characters = append(next.Projects[i].Characters, act.Character)
			}
		}
		return next

	case RemoveCharacter:
		next := s.Clone()
		for i := range next.Projects {
			if next.Projects[i].ID != act.ProjectID {
				continue
			}
			chars := next.Projects[i].Characters[:0]
			for _, c := range next.Projects[i].Characters {
				if c.ID != act.CharacterID {
					chars = append(chars, c)
				}
			}
			next.Projects[i].Characters = chars
		}
		return next

	case RelabelCharacter:
		next := s.Clone()
		for i := range next.Projects {
			if next.Projects[i].ID != act.ProjectID {
				continue
			}
			for j := range next.Projects[i].Characters {
				if next.Projects[i].Characters[j].ID == act.CharacterID {
					next.Projects[i].Characters[j].Label = act.Label
				}
			}
		}
		return next

	case EnqueueGenerationRequest:
		next := s.Clone()
		next.GenerationQueue = append(next.GenerationQueue, act.Request)
		return next

	case UpdateGenerationRequest:
		next := s.Clone()
		for i := range next.GenerationQueue {
			if next.GenerationQueue[i].ID != act.ID {
				continue
			}
			next.GenerationQueue[i].Status = act.Status
			next.GenerationQueue[i].Result = act.Result
			next.GenerationQueue[i].ErrorMessage = act.ErrorMessage
		}
		return next

	case RemoveGenerationRequest:
		next := s.Clone()
		queue := next.GenerationQueue[:0]
		for _, r := range next.GenerationQueue {
			if r.ID != act.ID {
				queue = append(queue, r)
			}
		}
		next.GenerationQueue = queue
		return next

	case CancelAllRequests:
		next := s.Clone()
		queue := next.GenerationQueue[:0]
		for _, r := range next.GenerationQueue {
			if r.Status.Terminal() {
				queue = append(queue, r)
			}
		}
		next.GenerationQueue = queue
		return next

	case PruneCompletedRequests:
		next := s.Clone()
		queue := next.GenerationQueue[:0]
		for _, r := range next.GenerationQueue {
			if r.Status != models.StatusCompleted {
				queue = append(queue, r)
			}
		}
		next.GenerationQueue = queue
		return next

	case AddGeneratedImage:
		next := s.Clone()
		next.GeneratedImages = append([]models.GeneratedImage{act.Image}, next.GeneratedImages...)
		return next

	case DeleteGeneratedImage:
		// No cascade: children keep their parentImageId even when it now
		// points at nothing.
		next := s.Clone()
		images := next.GeneratedImages[:0]
		for _, img := range next.GeneratedImages {
			if img.ID != act.ID {
				images = append(images, img)
			}
		}
		next.GeneratedImages = images
		return next

	case SetDefaultSettings:
		next := s.Clone()
		next.DefaultSettings = act.Settings
		return next

	case SetCredential:
		next := s.Clone()
		next.Credential = act.Credential
		return next

	default:
		return s
	}
}
