// internal/inquiry/store.go
package inquiry

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"estate-match-backend/internal/common/database"
	"estate-match-backend/internal/common/logger"
	"estate-match-backend/internal/models"

	"github.com/google/uuid"
)

// Store persists inquiries in Postgres. Contact fields are normalized on
// the way in: names trimmed, emails lower-cased.
type Store struct {
	db     *database.PostgresClient
	logger logger.Logger
}

func NewStore(db *database.PostgresClient, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "inquiry-store"}),
	}
}

// Insert writes a new inquiry row and returns the stored record.
func (s *Store) Insert(ctx context.Context, payload models.InquiryPayload) (models.Inquiry, error) {
	inquiry := models.Inquiry{
		ID:               uuid.NewString(),
		FullName:         strings.TrimSpace(payload.FullName),
		Email:            strings.ToLower(strings.TrimSpace(payload.Email)),
		Phone:            strings.TrimSpace(payload.Phone),
		Message:          strings.TrimSpace(payload.Message),
		PreferredContact: payload.PreferredContact,
		PropertyID:       strings.TrimSpace(payload.PropertyID),
		PropertyTitle:    strings.TrimSpace(payload.PropertyTitle),
		CreatedAt:        time.Now().UTC(),
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO inquiries
		 (id, full_name, email, phone, message, preferred_contact, property_id, property_title, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		inquiry.ID,
		inquiry.FullName,
		inquiry.Email,
		inquiry.Phone,
		inquiry.Message,
		inquiry.PreferredContact,
		nullable(inquiry.PropertyID),
		nullable(inquiry.PropertyTitle),
		inquiry.CreatedAt,
	)
	if err != nil {
		return models.Inquiry{}, err
	}

	s.logger.Info("inquiry stored", map[string]interface{}{
		"inquiry_id":  inquiry.ID,
		"property_id": inquiry.PropertyID,
	})
	return inquiry, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
