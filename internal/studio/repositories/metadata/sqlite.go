package metadata

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/artkeeper/internal/common"
	"github.com/dmitrijs2005/artkeeper/internal/logging"
	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
)

// documentKey is the single key the studio document lives under.
const documentKey = "studio_document"

type SQLiteStore struct {
	db  *sql.DB
	log logging.Logger
}

func NewSQLiteStore(db *sql.DB, log logging.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, log: log}
}

func (s *SQLiteStore) Save(ctx context.Context, doc *models.Document) error {
	// Stripping is a hard rule, not an optimization: an unstripped document
	// can blow past the store's capacity ceiling and fail silently.
	data, err := json.Marshal(doc.Stripped())
	if err != nil {
		return fmt.Errorf("%w: failed to serialize document: %v", common.ErrStorageFailure, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, documentKey, data)
	if err != nil {
		return fmt.Errorf("%w: failed to save document: %v", common.ErrStorageFailure, err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*models.Document, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM metadata WHERE key = ?`, documentKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return models.EmptyDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load document: %v", common.ErrStorageFailure, err)
	}

	var doc models.Document
	if err := json.Unmarshal(value, &doc); err != nil {
		// A corrupt document must not block startup.
		s.log.Warn(ctx, "stored document is not valid JSON, starting empty", "error", err)
		return models.EmptyDocument(), nil
	}

	doc.Backfill()
	return &doc, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, documentKey)
	if err != nil {
		return fmt.Errorf("%w: failed to clear document: %v", common.ErrStorageFailure, err)
	}
	return nil
}
