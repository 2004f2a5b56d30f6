package state

import (
	"time"

	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
)

// Action is a state transition request. Any action the reducer does not
// explicitly handle leaves the state unchanged; that is the default-case
// policy, not an error.
type Action interface {
	isAction()
}

// Hydrated installs the reconciled startup state and flips the ready flag.
// A second Hydrated dispatch is ignored: hydration happens once per process.
type Hydrated struct {
	Projects        []models.Project
	ActiveProjectID string
	GeneratedImages []models.GeneratedImage
	DefaultSettings models.GenerationSettings
	Credential      *models.Credential
}

type CreateProject struct {
	Project models.Project
}

// UpdateProject patches project fields; nil pointers leave a field alone.
type UpdateProject struct {
	ID             string
	Name           *string
	Description    *string
	StyleDirective *string
	UpdatedAt      time.Time
}

// DeleteProject removes the project, its reference images and characters,
// and every generated image pointing back at it, in one transition.
type DeleteProject struct {
	ID string
}

type SetActiveProject struct {
	ID string
}

type AddReferenceImage struct {
	ProjectID string
	Image     models.ReferenceImage
}

type RemoveReferenceImage struct {
	ProjectID string
	ImageID   string
}

type AddCharacter struct {
	ProjectID string
	Character models.Character
}

type RemoveCharacter struct {
	ProjectID   string
	CharacterID string
}

type RelabelCharacter struct {
	ProjectID   string
	CharacterID string
	Label       string
}

type EnqueueGenerationRequest struct {
	Request models.GenerationRequest
}

type UpdateGenerationRequest struct {
	ID           string
	Status       models.RequestStatus
	Result       *models.GeneratedImage
	ErrorMessage string
}

type RemoveGenerationRequest struct {
	ID string
}

// CancelAllRequests removes every pending/generating request from the queue
// in one sweep. Terminal requests are left for the UI to prune.
type CancelAllRequests struct{}

// PruneCompletedRequests drops requests that reached the completed state.
type PruneCompletedRequests struct{}

// AddGeneratedImage prepends a committed image: newest first.
type AddGeneratedImage struct {
	Image models.GeneratedImage
}

type DeleteGeneratedImage struct {
	ID string
}

type SetDefaultSettings struct {
	Settings models.GenerationSettings
}

type SetCredential struct {
	Credential *models.Credential
}

func (Hydrated) isAction()                 {}
func (CreateProject) isAction()            {}
func (UpdateProject) isAction()            {}
func (DeleteProject) isAction()            {}
func (SetActiveProject) isAction()         {}
func (AddReferenceImage) isAction()        {}
func (RemoveReferenceImage) isAction()     {}
func (AddCharacter) isAction()             {}
func (RemoveCharacter) isAction()          {}
func (RelabelCharacter) isAction()         {}
func (EnqueueGenerationRequest) isAction() {}
func (UpdateGenerationRequest) isAction()  {}
func (RemoveGenerationRequest) isAction()  {}
func (CancelAllRequests) isAction()        {}
func (PruneCompletedRequests) isAction()   {}
func (AddGeneratedImage) isAction()        {}
func (DeleteGeneratedImage) isAction()     {}
func (SetDefaultSettings) isAction()       {}
func (SetCredential) isAction()            {}
