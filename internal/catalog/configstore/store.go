// internal/catalog/configstore/store.go

// Package configstore persists site-level settings, currently just the
// spreadsheet sharing URL the catalog is fed from.
package configstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"estate-match-backend/internal/common/database"
	commonerrors "estate-match-backend/internal/common/errors"
	"estate-match-backend/internal/common/logger"
	"estate-match-backend/internal/sheets"
)

const sheetURLKey = "sheet_url"

// Store reads and writes site configuration rows in Postgres. Values are
// simple key/value pairs; SetSheetURL validates before writing so an
// unusable URL never reaches the table.
type Store struct {
	db     *database.PostgresClient
	logger logger.Logger
}

func New(db *database.PostgresClient, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "configstore"}),
	}
}

// GetSheetURL returns the stored sharing URL, or "" when none is set.
func (s *Store) GetSheetURL(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRow(ctx,
		`SELECT value FROM site_config WHERE key = $1`,
		sheetURLKey,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSheetURL validates and stores a new sharing URL. Validation failure
// returns INVALID_SOURCE_URL and leaves the stored value untouched.
func (s *Store) SetSheetURL(ctx context.Context, sharingURL string) error {
	trimmed := strings.TrimSpace(sharingURL)

	if _, err := sheets.ResolveFeedEndpoint(trimmed); err != nil {
		return err
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO site_config (key, value, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		sheetURLKey, trimmed,
	)
	if err != nil {
		return commonerrors.NewConfigWriteFailedError(err)
	}

	s.logger.Info("sheet URL updated", nil)
	return nil
}

// ClearSheetURL removes the stored URL, returning the site to the
// no-feed-configured state.
func (s *Store) ClearSheetURL(ctx context.Context) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM site_config WHERE key = $1`,
		sheetURLKey,
	)
	if err != nil {
		return commonerrors.NewConfigWriteFailedError(err)
	}

	s.logger.Info("sheet URL cleared", nil)
	return nil
}
