package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/artkeeper/internal/filex"
	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
	"github.com/dmitrijs2005/artkeeper/internal/studio/state"
)

func (a *App) listReferenceImages() {
	p, ok := a.store.State().ActiveProject()
	if !ok {
		fmt.Println("No active project.")
		return
	}
	if len(p.ReferenceImages) == 0 {
		fmt.Println("No reference images.")
		return
	}
	for _, ri := range p.ReferenceImages {
		fmt.Printf("  %s  %s  (%s, %d bytes)\n", ri.ID, ri.Name, ri.Payload.MimeType, len(ri.Payload.Data))
	}
}

// addReferenceImage loads an image file, persists its payload, then adds the
// metadata entry. The blob write comes first so a crash in between leaves an
// unreferenced blob instead of metadata pointing nowhere.
func (a *App) addReferenceImage(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: addref <path>")
		return
	}
	p, ok := a.store.State().ActiveProject()
	if !ok {
		fmt.Println("No active project.")
		return
	}

	data, mimeType, err := filex.ReadImage(args[0])
	if err != nil {
		fmt.Println("Cannot read image:", err)
		return
	}
	if !strings.HasPrefix(mimeType, "image/") {
		fmt.Println("Not an image file:", args[0])
		return
	}

	ri := models.ReferenceImage{
		ID:      uuid.NewString(),
		Name:    filepath.Base(args[0]),
		Payload: models.Payload{MimeType: mimeType, Data: data},
	}
	if err := a.repos.Blobs.Put(ctx, ri.ID, ri.Payload); err != nil {
		fmt.Println("Cannot store image:", err)
		return
	}
	a.store.Dispatch(state.AddReferenceImage{ProjectID: p.ID, Image: ri})
	fmt.Printf("Added reference image %s (%s)\n", ri.Name, ri.ID)
}

func (a *App) removeReferenceImage(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: delref <id>")
		return
	}
	p, ok := a.store.State().ActiveProject()
	if !ok {
		fmt.Println("No active project.")
		return
	}
	a.store.Dispatch(state.RemoveReferenceImage{ProjectID: p.ID, ImageID: args[0]})
	a.cleanupBlobs([]string{args[0]})
}

func (a *App) listCharacters() {
	p, ok := a.store.State().ActiveProject()
	if !ok {
		fmt.Println("No active project.")
		return
	}
	if len(p.Characters) == 0 {
		fmt.Println("No characters.")
		return
	}
	for _, ch := range p.Characters {
		fmt.Printf("  %s  %q  %s\n", ch.ID, ch.Label, ch.Name)
	}
}

func (a *App) addCharacter(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: addchar <path> <label>")
		return
	}
	p, ok := a.store.State().ActiveProject()
	if !ok {
		fmt.Println("No active project.")
		return
	}

	data, mimeType, err := filex.ReadImage(args[0])
	if err != nil {
		fmt.Println("Cannot read image:", err)
		return
	}

	ch := models.Character{
		ID:      uuid.NewString(),
		Name:    filepath.Base(args[0]),
		Label:   strings.Join(args[1:], " "),
		Payload: models.Payload{MimeType: mimeType, Data: data},
	}
	if err := a.repos.Blobs.Put(ctx, ch.ID, ch.Payload); err != nil {
		fmt.Println("Cannot store image:", err)
		return
	}
	a.store.Dispatch(state.AddCharacter{ProjectID: p.ID, Character: ch})
	fmt.Printf("Added character %q (%s)\n", ch.Label, ch.ID)
}

func (a *App) removeCharacter(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: delchar <id>")
		return
	}
	p, ok := a.store.State().ActiveProject()
	if !ok {
		fmt.Println("No active project.")
		return
	}
	a.store.Dispatch(state.RemoveCharacter{ProjectID: p.ID, CharacterID: args[0]})
	a.cleanupBlobs([]string{args[0]})
}

func (a *App) relabelCharacter(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: relabel <id> <label>")
		return
	}
	p, ok := a.store.State().ActiveProject()
	if !ok {
		fmt.Println("No active project.")
		return
	}
	a.store.Dispatch(state.RelabelCharacter{
		ProjectID:   p.ID,
		CharacterID: args[0],
		Label:       strings.Join(args[1:], " "),
	})
}
