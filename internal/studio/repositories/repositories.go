// Package repositories wires up the local studio database and bundles the
// concrete stores the rest of the application depends on.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/artkeeper/internal/logging"
	"github.com/dmitrijs2005/artkeeper/internal/studio/repositories/blobs"
	"github.com/dmitrijs2005/artkeeper/internal/studio/repositories/metadata"
	"github.com/dmitrijs2005/artkeeper/internal/studio/repositories/migrations"
)

type Repositories struct {
	Blobs    blobs.Repository
	Metadata metadata.Store
	DB       *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the studio SQLite database, applies migrations, and
// returns the store bundle. The blob repository defaults to the same SQLite
// database; callers can swap in the S3 backend afterwards.
func InitDatabase(ctx context.Context, dsn string, log logging.Logger) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Blobs:    blobs.NewSQLiteRepository(db),
		Metadata: metadata.NewSQLiteStore(db, log),
		DB:       db,
	}, nil
}
