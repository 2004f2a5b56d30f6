package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
	"github.com/dmitrijs2005/artkeeper/internal/studio/state"
)

func (a *App) listProjects() {
	s := a.store.State()
	if len(s.Projects) == 0 {
		fmt.Println("No projects yet. Try 'newproject'.")
		return
	}
	for _, p := range s.Projects {
		marker := "  "
		if p.ID == s.ActiveProjectID {
			marker = "* "
		}
		fmt.Printf("%s%s  %s  (%d refs, %d characters)\n", marker, p.ID, p.Name, len(p.ReferenceImages), len(p.Characters))
	}
}

func (a *App) newProject(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Project name", os.Stdout)
	if err != nil || name == "" {
		fmt.Println("Cancelled.")
		return
	}
	description, _ := GetMultiline(a.reader, "Description (optional)", os.Stdout)
	style, _ := GetSimpleText(a.reader, "Style directive (optional)", os.Stdout)

	now := time.Now()
	p := models.Project{
		ID:             uuid.NewString(),
		Name:           name,
		Description:    description,
		StyleDirective: style,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	a.store.Dispatch(state.CreateProject{Project: p})
	fmt.Printf("Created project %s (%s)\n", name, p.ID)
}

func (a *App) useProject(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: use <project-id>")
		return
	}
	if _, ok := a.store.State().ProjectByID(args[0]); !ok {
		fmt.Println("No such project:", args[0])
		return
	}
	a.store.Dispatch(state.SetActiveProject{ID: args[0]})
}

func (a *App) editProject(ctx context.Context) {
	p, ok := a.store.State().ActiveProject()
	if !ok {
		fmt.Println("No active project.")
		return
	}

	action := state.UpdateProject{ID: p.ID, UpdatedAt: time.Now()}
	if name, _ := GetSimpleText(a.reader, fmt.Sprintf("Name [%s] (empty keeps current)", p.Name), os.Stdout); name != "" {
		action.Name = &name
	}
	if desc, _ := GetMultiline(a.reader, "Description (empty keeps current)", os.Stdout); desc != "" {
		action.Description = &desc
	}
	if style, _ := GetSimpleText(a.reader, "Style directive (empty keeps current)", os.Stdout); style != "" {
		action.StyleDirective = &style
	}
	a.store.Dispatch(action)
	fmt.Println("Updated.")
}

// deleteProject removes the active project and everything hanging off it.
// Blob cleanup runs in the background; a failure leaves unreferenced
// payloads behind, never dangling metadata.
func (a *App) deleteProject(ctx context.Context) {
	s := a.store.State()
	p, ok := s.ActiveProject()
	if !ok {
		fmt.Println("No active project.")
		return
	}

	confirm, _ := GetSimpleText(a.reader, fmt.Sprintf("Delete project %q and all its images? (yes/no)", p.Name), os.Stdout)
	if confirm != "yes" {
		fmt.Println("Cancelled.")
		return
	}

	blobIDs := make([]string, 0)
	for _, ri := range p.ReferenceImages {
		blobIDs = append(blobIDs, ri.ID)
	}
	for _, ch := range p.Characters {
		blobIDs = append(blobIDs, ch.ID)
	}
	for _, img := range s.ImagesForProject(p.ID) {
		blobIDs = append(blobIDs, img.ID)
	}

	a.store.Dispatch(state.DeleteProject{ID: p.ID})
	a.cleanupBlobs(blobIDs)
	fmt.Println("Deleted.")
}

func (a *App) cleanupBlobs(ids []string) {
	if len(ids) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := a.repos.Blobs.DeleteMany(ctx, ids); err != nil {
			a.log.Warn(ctx, "cleaning up blobs", "count", len(ids), "error", err)
		}
	}()
}
