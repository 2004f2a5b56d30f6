package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/artkeeper/internal/filex"
	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
	"github.com/dmitrijs2005/artkeeper/internal/studio/state"
)

func readPayload(path string) (*models.Payload, error) {
	data, mimeType, err := filex.ReadImage(path)
	if err != nil {
		return nil, err
	}
	return &models.Payload{MimeType: mimeType, Data: data}, nil
}

func (a *App) listImages() {
	s := a.store.State()
	p, ok := s.ActiveProject()
	if !ok {
		fmt.Println("No active project.")
		return
	}
	images := s.ImagesForProject(p.ID)
	if len(images) == 0 {
		fmt.Println("No generated images.")
		return
	}
	for _, img := range images {
		line := fmt.Sprintf("  %s  %s  %s", img.ID, img.CreatedAt.Format("2006-01-02 15:04"), img.Prompt)
		if img.ParentImageID != "" {
			line += "  (from " + img.ParentImageID + ")"
		}
		fmt.Println(line)
	}
}

func (a *App) showImage(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: show <image-id>")
		return
	}
	img, ok := a.store.State().ImageByID(args[0])
	if !ok {
		fmt.Println("No such image:", args[0])
		return
	}
	fmt.Println("ID:        ", img.ID)
	fmt.Println("Project:   ", img.ProjectID)
	fmt.Println("Prompt:    ", img.Prompt)
	fmt.Println("Created:   ", img.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Payload:    %s, %d bytes\n", img.Payload.MimeType, len(img.Payload.Data))
	fmt.Printf("Settings:   %s %s temp=%.2f preset=%s\n",
		img.Settings.AspectRatio, img.Settings.ImageSize, img.Settings.Temperature, img.Settings.StylePreset)
	if img.ParentImageID != "" {
		fmt.Println("Parent:    ", img.ParentImageID)
	}
}

func (a *App) exportImage(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: export <image-id> <path>")
		return
	}
	img, ok := a.store.State().ImageByID(args[0])
	if !ok {
		fmt.Println("No such image:", args[0])
		return
	}
	if img.Payload.Empty() {
		fmt.Println("Image payload is missing.")
		return
	}
	if err := os.WriteFile(args[1], img.Payload.Data, 0o644); err != nil {
		fmt.Println("Cannot write file:", err)
		return
	}
	fmt.Printf("Wrote %d bytes to %s\n", len(img.Payload.Data), args[1])
}

func (a *App) deleteImage(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: delimage <image-id>")
		return
	}
	if _, ok := a.store.State().ImageByID(args[0]); !ok {
		fmt.Println("No such image:", args[0])
		return
	}
	a.store.Dispatch(state.DeleteGeneratedImage{ID: args[0]})
	a.cleanupBlobs([]string{args[0]})
	fmt.Println("Deleted.")
}
