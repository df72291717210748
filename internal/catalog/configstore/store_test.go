// internal/catalog/configstore/store_test.go
package configstore

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-match-backend/internal/common/database"
	commonerrors "estate-match-backend/internal/common/errors"
	"estate-match-backend/internal/common/logger"
)

func newMockedStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := New(&database.PostgresClient{DB: db}, logger.NewTestLogger(t))
	return store, mock
}

func TestGetSheetURL(t *testing.T) {
	t.Run("returns stored value", func(t *testing.T) {
		store, mock := newMockedStore(t)
		mock.ExpectQuery(`SELECT value FROM site_config`).
			WithArgs("sheet_url").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).
				AddRow("https://docs.google.com/spreadsheets/d/ABC123/edit"))

		url, err := store.GetSheetURL(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "https://docs.google.com/spreadsheets/d/ABC123/edit", url)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row means no feed configured", func(t *testing.T) {
		store, mock := newMockedStore(t)
		mock.ExpectQuery(`SELECT value FROM site_config`).
			WithArgs("sheet_url").
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		url, err := store.GetSheetURL(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "", url)
	})
}

func TestSetSheetURL(t *testing.T) {
	t.Run("validates then upserts", func(t *testing.T) {
		store, mock := newMockedStore(t)
		mock.ExpectExec(`INSERT INTO site_config`).
			WithArgs("sheet_url", "https://docs.google.com/spreadsheets/d/ABC123/edit").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.SetSheetURL(context.Background(), "  https://docs.google.com/spreadsheets/d/ABC123/edit  ")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects an invalid URL without touching the database", func(t *testing.T) {
		store, mock := newMockedStore(t)

		err := store.SetSheetURL(context.Background(), "https://evil.com/spreadsheets/d/ABC123")

		require.Error(t, err)
		assert.Equal(t, commonerrors.ErrCodeInvalidSourceURL, commonerrors.CodeOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps database failures", func(t *testing.T) {
		store, mock := newMockedStore(t)
		mock.ExpectExec(`INSERT INTO site_config`).
			WithArgs("sheet_url", "https://docs.google.com/spreadsheets/d/ABC123/edit").
			WillReturnError(assert.AnError)

		err := store.SetSheetURL(context.Background(), "https://docs.google.com/spreadsheets/d/ABC123/edit")

		require.Error(t, err)
		assert.Equal(t, commonerrors.ErrCodeConfigWriteFailed, commonerrors.CodeOf(err))
	})
}

func TestClearSheetURL(t *testing.T) {
	store, mock := newMockedStore(t)
	mock.ExpectExec(`DELETE FROM site_config`).
		WithArgs("sheet_url").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.ClearSheetURL(context.Background())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
