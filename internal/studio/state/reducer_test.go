package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
)

func readyState() State {
	s := Empty()
	s.Ready = true
	return s
}

func project(id, name string) models.Project {
	return models.Project{
		ID:              id,
		Name:            name,
		ReferenceImages: []models.ReferenceImage{},
		Characters:      []models.Character{},
		CreatedAt:       time.Unix(100, 0),
		UpdatedAt:       time.Unix(100, 0),
	}
}

func TestReduce_CreateProject_FirstBecomesActive(t *testing.T) {
	s := Reduce(readyState(), CreateProject{Project: project("p1", "One")})
	assert.Equal(t, "p1", s.ActiveProjectID)

	s = Reduce(s, CreateProject{Project: project("p2", "Two")})
	assert.Equal(t, "p1", s.ActiveProjectID, "second project must not steal focus")
	assert.Len(t, s.Projects, 2)
}

func TestReduce_UpdateProject_PatchesOnlyGivenFields(t *testing.T) {
	s := Reduce(readyState(), CreateProject{Project: project("p1", "One")})

	name := "Renamed"
	s = Reduce(s, UpdateProject{ID: "p1", Name: &name, UpdatedAt: time.Unix(200, 0)})

	p, ok := s.ProjectByID("p1")
	require.True(t, ok)
	assert.Equal(t, "Renamed", p.Name)
	assert.Equal(t, "", p.Description)
	assert.Equal(t, time.Unix(200, 0), p.UpdatedAt)
}

func TestReduce_DeleteProject_CascadesImages(t *testing.T) {
	s := readyState()
	s = Reduce(s, CreateProject{Project: project("p1", "One")})
	s = Reduce(s, CreateProject{Project: project("p2", "Two")})
	s = Reduce(s, AddGeneratedImage{Image: models.GeneratedImage{ID: "g1", ProjectID: "p1"}})
	s = Reduce(s, AddGeneratedImage{Image: models.GeneratedImage{ID: "g2", ProjectID: "p2"}})
	s = Reduce(s, AddGeneratedImage{Image: models.GeneratedImage{ID: "g3", ProjectID: "p1"}})

	s = Reduce(s, DeleteProject{ID: "p1"})

	assert.Len(t, s.Projects, 1)
	require.Len(t, s.GeneratedImages, 1)
	assert.Equal(t, "g2", s.GeneratedImages[0].ID, "other projects' images are untouched")
}

func TestReduce_DeleteActiveProject_PromotesFirstRemaining(t *testing.T) {
	s := readyState()
	s = Reduce(s, CreateProject{Project: project("p1", "One")})
	s = Reduce(s, CreateProject{Project: project("p2", "Two")})
	s = Reduce(s, CreateProject{Project: project("p3", "Three")})
	require.Equal(t, "p1", s.ActiveProjectID)

	s = Reduce(s, DeleteProject{ID: "p1"})
	assert.Equal(t, "p2", s.ActiveProjectID)

	s = Reduce(s, DeleteProject{ID: "p2"})
	s = Reduce(s, DeleteProject{ID: "p3"})
	assert.Equal(t, "", s.ActiveProjectID, "no project left, none active")
}

func TestReduce_DeleteInactiveProject_KeepsActive(t *testing.T) {
	s := readyState()
	s = Reduce(s, CreateProject{Project: project("p1", "One")})
	s = Reduce(s, CreateProject{Project: project("p2", "Two")})

	s = Reduce(s, DeleteProject{ID: "p2"})
	assert.Equal(t, "p1", s.ActiveProjectID)
}

func TestReduce_ReferenceImages_ReplayMatchesDirectApplication(t *testing.T) {
	// Applying a sequence of add/remove actions through the reducer must
	// equal applying the same sequence to a plain slice.
	type step struct {
		add bool
		id  string
	}
	seq := []step{
		{add: true, id: "r1"},
		{add: true, id: "r2"},
		{add: false, id: "r1"},
		{add: true, id: "r3"},
		{add: false, id: "missing"},
		{add: true, id: "r4"},
		{add: false, id: "r3"},
	}

	s := Reduce(readyState(), CreateProject{Project: project("p1", "One")})
	var direct []string

	for _, st := range seq {
		if st.add {
			s = Reduce(s, AddReferenceImage{ProjectID: "p1", Image: models.ReferenceImage{ID: st.id}})
			direct = append(direct, st.id)
			continue
		}
		s = Reduce(s, RemoveReferenceImage{ProjectID: "p1", ImageID: st.id})
		filtered := direct[:0]
		for _, id := range direct {
			if id != st.id {
				filtered = append(filtered, id)
			}
		}
		direct = filtered
	}

	p, _ := s.ProjectByID("p1")
	var got []string
	for _, ri := range p.ReferenceImages {
		got = append(got, ri.ID)
	}
	assert.Equal(t, direct, got)
}

func TestReduce_Characters_AddRelabelRemove(t *testing.T) {
	s := Reduce(readyState(), CreateProject{Project: project("p1", "One")})
	s = Reduce(s, AddCharacter{ProjectID: "p1", Character: models.Character{ID: "c1", Name: "hero.png", Label: "hero.png"}})
	s = Reduce(s, RelabelCharacter{ProjectID: "p1", CharacterID: "c1", Label: "The Hero"})

	p, _ := s.ProjectByID("p1")
	require.Len(t, p.Characters, 1)
	assert.Equal(t, "The Hero", p.Characters[0].Label)
	assert.Equal(t, "hero.png", p.Characters[0].Name, "label is distinct from filename")

	s = Reduce(s, RemoveCharacter{ProjectID: "p1", CharacterID: "c1"})
	p, _ = s.ProjectByID("p1")
	assert.Empty(t, p.Characters)
}

func TestReduce_AddGeneratedImage_PrependsNewestFirst(t *testing.T) {
	s := readyState()
	s = Reduce(s, AddGeneratedImage{Image: models.GeneratedImage{ID: "old"}})
	s = Reduce(s, AddGeneratedImage{Image: models.GeneratedImage{ID: "new"}})

	require.Len(t, s.GeneratedImages, 2)
	assert.Equal(t, "new", s.GeneratedImages[0].ID)
	assert.Equal(t, "old", s.GeneratedImages[1].ID)
}

func TestReduce_DeleteGeneratedImage_DanglingParentTolerated(t *testing.T) {
	s := readyState()
	s = Reduce(s, AddGeneratedImage{Image: models.GeneratedImage{ID: "parent"}})
	s = Reduce(s, AddGeneratedImage{Image: models.GeneratedImage{ID: "child", ParentImageID: "parent"}})

	s = Reduce(s, DeleteGeneratedImage{ID: "parent"})

	child, ok := s.ImageByID("child")
	require.True(t, ok, "child survives parent deletion")
	assert.Equal(t, "parent", child.ParentImageID, "dangling link is kept as-is")
	_, ok = s.ImageByID("parent")
	assert.False(t, ok)
}

func TestReduce_QueueLifecycle(t *testing.T) {
	s := readyState()
	s = Reduce(s, EnqueueGenerationRequest{Request: models.GenerationRequest{ID: "q1", Status: models.StatusPending}})
	s = Reduce(s, EnqueueGenerationRequest{Request: models.GenerationRequest{ID: "q2", Status: models.StatusPending}})

	s = Reduce(s, UpdateGenerationRequest{ID: "q1", Status: models.StatusGenerating})
	r, ok := s.RequestByID("q1")
	require.True(t, ok)
	assert.Equal(t, models.StatusGenerating, r.Status)

	s = Reduce(s, UpdateGenerationRequest{ID: "q1", Status: models.StatusError, ErrorMessage: "quota exceeded"})
	s = Reduce(s, UpdateGenerationRequest{ID: "q2", Status: models.StatusCompleted})

	// Cancel-all removes only non-terminal requests.
	s = Reduce(s, EnqueueGenerationRequest{Request: models.GenerationRequest{ID: "q3", Status: models.StatusPending}})
	s = Reduce(s, CancelAllRequests{})
	_, ok = s.RequestByID("q3")
	assert.False(t, ok)
	_, ok = s.RequestByID("q1")
	assert.True(t, ok, "terminal error entry survives cancel-all")

	s = Reduce(s, PruneCompletedRequests{})
	_, ok = s.RequestByID("q2")
	assert.False(t, ok)
	_, ok = s.RequestByID("q1")
	assert.True(t, ok, "errors stay visible until removed explicitly")

	s = Reduce(s, RemoveGenerationRequest{ID: "q1"})
	assert.Empty(t, s.GenerationQueue)
}

func TestReduce_Hydrated_SetsReadyExactlyOnce(t *testing.T) {
	s := Empty()
	require.False(t, s.Ready)

	s = Reduce(s, Hydrated{
		Projects:        []models.Project{project("p1", "One")},
		ActiveProjectID: "p1",
		DefaultSettings: models.DefaultSettings(),
	})
	assert.True(t, s.Ready)
	assert.Len(t, s.Projects, 1)

	// A second hydration is a no-op.
	s2 := Reduce(s, Hydrated{Projects: []models.Project{}})
	assert.Equal(t, s.Projects, s2.Projects)
	assert.True(t, s2.Ready)
}

func TestReduce_UnknownActionIsNoOp(t *testing.T) {
	type strayAction struct{ Action }
	s := Reduce(readyState(), strayAction{})
	assert.Equal(t, readyState(), s)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := Reduce(readyState(), CreateProject{Project: project("p1", "One")})
	before := s.Clone()

	_ = Reduce(s, AddReferenceImage{ProjectID: "p1", Image: models.ReferenceImage{ID: "r1"}})
	_ = Reduce(s, DeleteProject{ID: "p1"})

	assert.Equal(t, before, s, "reducer input must stay untouched")
}
