package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/artkeeper/internal/logging"
	"github.com/dmitrijs2005/artkeeper/internal/studio/config"
	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
	"github.com/dmitrijs2005/artkeeper/internal/studio/state"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDSN = filepath.Join(t.TempDir(), "studio.db")

	app, err := NewApp(context.Background(), cfg, logging.NewSlogLogger(slog.Default()))
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app
}

func TestNewApp_HydratesEmptyDatabase(t *testing.T) {
	app := newTestApp(t)

	s := app.store.State()
	assert.True(t, s.Ready)
	assert.Empty(t, s.Projects)
	assert.Empty(t, s.GenerationQueue)
}

func TestGetStatus(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, "(locked)", app.getStatus())

	app.store.Dispatch(state.CreateProject{Project: models.Project{ID: "p1", Name: "Demo"}})
	assert.Equal(t, "(Demo locked)", app.getStatus())

	app.connectClient("sk-test")
	assert.Equal(t, "(Demo unlocked)", app.getStatus())
}

func TestCleanupBlobs_RemovesPayloads(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	payload := models.Payload{MimeType: "image/png", Data: []byte{0x89, 0x50}}
	require.NoError(t, app.repos.Blobs.Put(ctx, "b1", payload))
	require.NoError(t, app.repos.Blobs.Put(ctx, "b2", payload))

	app.cleanupBlobs([]string{"b1", "b2"})

	require.Eventually(t, func() bool {
		p1, err1 := app.repos.Blobs.Get(ctx, "b1")
		p2, err2 := app.repos.Blobs.Get(ctx, "b2")
		return err1 == nil && err2 == nil && p1 == nil && p2 == nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRestart_RestoresProjectsAndPayloads(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDSN = filepath.Join(t.TempDir(), "studio.db")
	logger := logging.NewSlogLogger(slog.Default())

	app, err := NewApp(ctx, cfg, logger)
	require.NoError(t, err)

	payload := models.Payload{MimeType: "image/png", Data: []byte{0x89, 0x50, 0x4e, 0x47}}
	app.store.Dispatch(state.CreateProject{Project: models.Project{ID: "p1", Name: "Demo"}})
	require.NoError(t, app.repos.Blobs.Put(ctx, "g1", payload))
	app.store.Dispatch(state.AddGeneratedImage{Image: models.GeneratedImage{
		ID: "g1", ProjectID: "p1", Prompt: "a cat", Payload: payload,
	}})
	app.Close()

	app2, err := NewApp(ctx, cfg, logger)
	require.NoError(t, err)
	t.Cleanup(app2.Close)

	s := app2.store.State()
	require.True(t, s.Ready)
	require.Len(t, s.Projects, 1)
	assert.Equal(t, "Demo", s.Projects[0].Name)
	require.Len(t, s.GeneratedImages, 1)
	assert.Equal(t, payload.Data, s.GeneratedImages[0].Payload.Data)
	assert.Empty(t, s.GenerationQueue, "queue is empty after every restart")
}

func TestConnectClient_WiresOrchestrator(t *testing.T) {
	app := newTestApp(t)
	require.Nil(t, app.orchestrator)

	app.connectClient("sk-test")
	assert.NotNil(t, app.client)
	assert.NotNil(t, app.orchestrator)
	assert.True(t, app.isUnlocked())
}
