package blobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/artkeeper/internal/common"
	"github.com/dmitrijs2005/artkeeper/internal/dbx"
	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
)

// SQLiteRepository stores payloads in the local studio database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const upsertBlobQuery = `
	INSERT INTO blobs (id, mime_type, data) VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		mime_type = excluded.mime_type,
		data = excluded.data
`

func (r *SQLiteRepository) Put(ctx context.Context, id string, payload models.Payload) error {
	_, err := r.db.ExecContext(ctx, upsertBlobQuery, id, payload.MimeType, payload.Data)
	if err != nil {
		return fmt.Errorf("%w: failed to upsert blob %s: %v", common.ErrStorageFailure, id, err)
	}
	return nil
}

func (r *SQLiteRepository) PutMany(ctx context.Context, entries map[string]models.Payload) error {
	if len(entries) == 0 {
		return nil
	}
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for id, payload := range entries {
			if _, err := tx.ExecContext(ctx, upsertBlobQuery, id, payload.MimeType, payload.Data); err != nil {
				return fmt.Errorf("failed to upsert blob %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageFailure, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Payload, error) {
	var p models.Payload
	err := r.db.QueryRowContext(ctx,
		`SELECT mime_type, data FROM blobs WHERE id = ?`, id).Scan(&p.MimeType, &p.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get blob %s: %v", common.ErrStorageFailure, id, err)
	}
	return &p, nil
}

func (r *SQLiteRepository) GetMany(ctx context.Context, ids []string) (map[string]models.Payload, error) {
	result := make(map[string]models.Payload, len(ids))

	// Deterministic order so a partial result on engine failure is stable.
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	for _, id := range sorted {
		p, err := r.Get(ctx, id)
		if err != nil {
			return result, err
		}
		if p == nil {
			continue
		}
		result[id] = *p
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM blobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete blob %s: %v", common.ErrStorageFailure, id, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, `DELETE FROM blobs WHERE id = ?`, id); err != nil {
				return fmt.Errorf("failed to delete blob %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageFailure, err)
	}
	return nil
}
