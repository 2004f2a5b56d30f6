package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/artkeeper/internal/logging"
	"github.com/dmitrijs2005/artkeeper/internal/studio/config"
	"github.com/dmitrijs2005/artkeeper/internal/studio/genai"
	"github.com/dmitrijs2005/artkeeper/internal/studio/generation"
	"github.com/dmitrijs2005/artkeeper/internal/studio/hydrate"
	"github.com/dmitrijs2005/artkeeper/internal/studio/repositories"
	"github.com/dmitrijs2005/artkeeper/internal/studio/repositories/blobs"
	"github.com/dmitrijs2005/artkeeper/internal/studio/state"

	_ "modernc.org/sqlite"
)

type App struct {
	config       *config.Config
	repos        *repositories.Repositories
	store        *state.Store
	orchestrator *generation.Orchestrator
	client       *genai.Client
	log          logging.Logger

	// apiKey is the unsealed credential, held only in memory.
	apiKey string
	reader *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {

	repos, err := repositories.InitDatabase(ctx, c.DatabaseDSN, log)
	if err != nil {
		log.Error(ctx, "initializing database", "error", err)
		return nil, err
	}

	if c.BlobBackend == config.BlobBackendS3 {
		s3repo, err := blobs.NewS3Repository(ctx, blobs.S3Options{
			Region:       c.S3Region,
			Bucket:       c.S3Bucket,
			BaseEndpoint: c.S3Endpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("initializing s3 blob backend: %w", err)
		}
		repos.Blobs = s3repo
	}

	store := state.NewStore(repos.Metadata, log)

	coordinator := hydrate.NewCoordinator(repos.Metadata, repos.Blobs, store, log)
	if err := coordinator.Run(ctx); err != nil {
		return nil, fmt.Errorf("hydrating state: %w", err)
	}

	a := &App{
		config: c,
		repos:  repos,
		store:  store,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}
	return a, nil
}

// connectClient builds the genai client once an API key is available and
// hands it to a fresh orchestrator.
func (a *App) connectClient(apiKey string) {
	a.apiKey = apiKey
	a.client = genai.NewClient(a.config.APIBaseURL, apiKey, genai.WithModel(a.config.Model))
	a.orchestrator = generation.NewOrchestrator(a.store, a.repos.Blobs, a.client, a.log)
}

func (a *App) isUnlocked() bool {
	return a.apiKey != ""
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// resetAll wipes the stored document and every known payload. The in-memory
// tree is left as is; the empty state takes effect on the next start.
func (a *App) resetAll(ctx context.Context) {
	confirm, _ := GetSimpleText(a.reader, "Delete ALL projects, images and settings? (yes/no)", os.Stdout)
	if confirm != "yes" {
		fmt.Println("Cancelled.")
		return
	}

	s := a.store.State()
	var ids []string
	for _, p := range s.Projects {
		for _, ri := range p.ReferenceImages {
			ids = append(ids, ri.ID)
		}
		for _, ch := range p.Characters {
			ids = append(ids, ch.ID)
		}
	}
	for _, img := range s.GeneratedImages {
		ids = append(ids, img.ID)
	}

	if err := a.repos.Metadata.Clear(ctx); err != nil {
		fmt.Println("Cannot clear metadata:", err)
		return
	}
	if len(ids) > 0 {
		if err := a.repos.Blobs.DeleteMany(ctx, ids); err != nil {
			a.log.Warn(ctx, "clearing blobs during reset", "error", err)
		}
	}
	fmt.Println("Storage cleared. Restart to start fresh.")
}

// Close drains in-flight work and releases the database. Pending metadata
// writes are flushed first so a quick exit does not lose the last mutation.
func (a *App) Close() {
	if a.orchestrator != nil {
		a.orchestrator.CancelAll()
		a.orchestrator.Wait()
	}
	a.store.Flush()
	if a.repos.DB != nil {
		_ = a.repos.DB.Close()
	}
}
