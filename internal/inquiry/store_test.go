// internal/inquiry/store_test.go
package inquiry

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-match-backend/internal/common/database"
	"estate-match-backend/internal/common/logger"
	"estate-match-backend/internal/models"
)

func newMockedStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewStore(&database.PostgresClient{DB: db}, logger.NewTestLogger(t))
	return store, mock
}

func TestStoreInsert(t *testing.T) {
	payload := models.InquiryPayload{
		FullName:         "  Jane Doe  ",
		Email:            "Jane.Doe@Example.COM",
		Phone:            "(512) 555-0101",
		Message:          "Interested in a tour this weekend.",
		PreferredContact: "email",
		PropertyID:       "p1",
		PropertyTitle:    "Lakeside Cabin",
	}

	t.Run("normalizes and inserts", func(t *testing.T) {
		store, mock := newMockedStore(t)
		mock.ExpectExec(`INSERT INTO inquiries`).
			WithArgs(
				sqlmock.AnyArg(),
				"Jane Doe",
				"jane.doe@example.com",
				"(512) 555-0101",
				"Interested in a tour this weekend.",
				"email",
				"p1",
				"Lakeside Cabin",
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		inquiry, err := store.Insert(context.Background(), payload)

		require.NoError(t, err)
		assert.NotEmpty(t, inquiry.ID)
		assert.Equal(t, "Jane Doe", inquiry.FullName)
		assert.Equal(t, "jane.doe@example.com", inquiry.Email)
		assert.False(t, inquiry.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty property fields insert as NULL", func(t *testing.T) {
		general := payload
		general.PropertyID = ""
		general.PropertyTitle = ""

		store, mock := newMockedStore(t)
		mock.ExpectExec(`INSERT INTO inquiries`).
			WithArgs(
				sqlmock.AnyArg(),
				"Jane Doe",
				"jane.doe@example.com",
				"(512) 555-0101",
				"Interested in a tour this weekend.",
				"email",
				nil,
				nil,
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		_, err := store.Insert(context.Background(), general)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("surfaces database errors", func(t *testing.T) {
		store, mock := newMockedStore(t)
		mock.ExpectExec(`INSERT INTO inquiries`).WillReturnError(assert.AnError)

		_, err := store.Insert(context.Background(), payload)

		assert.Error(t, err)
	})
}
