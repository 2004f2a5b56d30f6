package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/artkeeper/internal/studio/generation"
	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
	"github.com/dmitrijs2005/artkeeper/internal/studio/state"
)

func (a *App) submitReady() bool {
	if !a.isUnlocked() {
		fmt.Println("No API key. Run 'setkey' or 'unlock' first.")
		return false
	}
	if _, ok := a.store.State().ActiveProject(); !ok {
		fmt.Println("No active project.")
		return false
	}
	return true
}

func (a *App) generate(ctx context.Context) {
	if !a.submitReady() {
		return
	}
	prompt, err := GetMultiline(a.reader, "Prompt", os.Stdout)
	if err != nil || prompt == "" {
		fmt.Println("Cancelled.")
		return
	}

	a.submit(ctx, generation.Submission{
		ProjectID: a.store.State().ActiveProjectID,
		Prompt:    prompt,
		Settings:  a.store.State().DefaultSettings,
	})
}

// vary regenerates from an existing image's prompt and settings snapshot,
// recording the source as the parent.
func (a *App) vary(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: vary <image-id>")
		return
	}
	if !a.submitReady() {
		return
	}
	img, ok := a.store.State().ImageByID(args[0])
	if !ok {
		fmt.Println("No such image:", args[0])
		return
	}

	a.submit(ctx, generation.Submission{
		ProjectID:     img.ProjectID,
		Prompt:        img.Prompt,
		Settings:      img.Settings,
		ParentImageID: img.ID,
		Source:        &img.Payload,
	})
}

// editImage sends an existing image back with a new instruction. An optional
// mask file restricts the edit region; the mask is held in memory for the
// duration of the attempt and never persisted.
func (a *App) editImage(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: edit <image-id>")
		return
	}
	if !a.submitReady() {
		return
	}
	img, ok := a.store.State().ImageByID(args[0])
	if !ok {
		fmt.Println("No such image:", args[0])
		return
	}

	prompt, err := GetMultiline(a.reader, "Edit instruction", os.Stdout)
	if err != nil || prompt == "" {
		fmt.Println("Cancelled.")
		return
	}

	var mask *models.Payload
	if maskPath, _ := GetSimpleText(a.reader, "Mask file (optional, empty to skip)", os.Stdout); maskPath != "" {
		m, err := readPayload(maskPath)
		if err != nil {
			fmt.Println("Cannot read mask:", err)
			return
		}
		mask = m
	}

	settings := img.Settings
	settings.NumberOfVariations = 1

	a.submit(ctx, generation.Submission{
		ProjectID:     img.ProjectID,
		Prompt:        prompt,
		Settings:      settings,
		ParentImageID: img.ID,
		Source:        &img.Payload,
		Mask:          mask,
	})
}

func (a *App) submit(ctx context.Context, sub generation.Submission) {
	submitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.config.RequestTimeout)
	ids, err := a.orchestrator.Submit(submitCtx, sub)
	if err != nil {
		cancel()
		fmt.Println("Cannot submit:", err)
		return
	}
	go func() {
		a.orchestrator.Wait()
		cancel()
	}()
	fmt.Printf("Submitted %d attempt(s). Track with 'queue'.\n", len(ids))
}

func (a *App) enhance(ctx context.Context) {
	if !a.isUnlocked() {
		fmt.Println("No API key. Run 'setkey' or 'unlock' first.")
		return
	}
	prompt, err := GetMultiline(a.reader, "Prompt to enhance", os.Stdout)
	if err != nil || prompt == "" {
		fmt.Println("Cancelled.")
		return
	}

	enhanceCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	out, err := a.client.EnhancePrompt(enhanceCtx, prompt)
	if err != nil {
		fmt.Println("Enhancement failed:", err)
		return
	}
	fmt.Println(out)
}

func (a *App) showQueue() {
	queue := a.store.State().GenerationQueue
	if len(queue) == 0 {
		fmt.Println("Queue is empty.")
		return
	}
	for _, req := range queue {
		line := fmt.Sprintf("  %s  %-10s  %s", req.ID, req.Status, req.Prompt)
		if req.ErrorMessage != "" {
			line += "  [" + req.ErrorMessage + "]"
		}
		fmt.Println(line)
	}
}

func (a *App) cancelRequest(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: cancel <request-id>")
		return
	}
	if a.orchestrator == nil {
		return
	}
	a.orchestrator.Cancel(args[0])
}

func (a *App) cancelAll() {
	if a.orchestrator == nil {
		return
	}
	a.orchestrator.CancelAll()
	fmt.Println("Cancelled all pending attempts.")
}

func (a *App) pruneQueue() {
	a.store.Dispatch(state.PruneCompletedRequests{})
}
