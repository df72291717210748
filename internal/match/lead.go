// internal/match/lead.go
package match

import (
	"fmt"
	"strings"

	"estate-match-backend/internal/models"
)

const (
	leadFullName      = "Match Assistant Lead"
	leadFallbackEmail = "not-provided@match.com"
	leadPhone         = "N/A"
)

// SynthesizeLead builds an inquiry from wizard answers so agents get a
// lead record even when the buyer never fills the contact form. The
// payload carries placeholder contact fields; it skips form validation on
// submission.
func SynthesizeLead(prefs models.Preferences, email string, top *models.ScoredProperty) models.InquiryPayload {
	leadEmail := strings.TrimSpace(email)
	if leadEmail == "" {
		leadEmail = leadFallbackEmail
	}

	payload := models.InquiryPayload{
		FullName:         leadFullName,
		Email:            leadEmail,
		Phone:            leadPhone,
		PreferredContact: "either",
		Message: fmt.Sprintf(
			"AI Match inquiry. Budget: $%d-$%d, Use: %s, Style: %s, Bedrooms: %s",
			prefs.Budget[0], prefs.Budget[1], prefs.Use, prefs.Style, prefs.Bedrooms,
		),
	}

	if top != nil {
		payload.PropertyID = top.Property.ID
		payload.PropertyTitle = top.Property.Title
	}
	return payload
}
