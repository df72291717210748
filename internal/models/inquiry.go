package models

import "time"

// InquiryPayload is a lead submission from the contact form or the match
// wizard. Validation tags mirror the limits enforced by the inquiry sink.
type InquiryPayload struct {
	FullName         string `json:"fullName" validate:"required,min=2,max=100"`
	Email            string `json:"email" validate:"required,email,max=255"`
	Phone            string `json:"phone" validate:"required,min=10,max=20"`
	Message          string `json:"message" validate:"required,min=10,max=1000"`
	PreferredContact string `json:"preferredContact" validate:"required,oneof=phone email either"`
	PropertyID       string `json:"propertyId,omitempty" validate:"max=100"`
	PropertyTitle    string `json:"propertyTitle,omitempty" validate:"max=200"`
}

// Inquiry is a stored lead record.
type Inquiry struct {
	ID               string    `json:"id"`
	FullName         string    `json:"fullName"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Message          string    `json:"message"`
	PreferredContact string    `json:"preferredContact"`
	PropertyID       string    `json:"propertyId,omitempty"`
	PropertyTitle    string    `json:"propertyTitle,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// LeadEvent is the message published to the leads topic after a
// successful submission.
type LeadEvent struct {
	InquiryID     string    `json:"inquiryId"`
	Email         string    `json:"email"`
	PropertyID    string    `json:"propertyId,omitempty"`
	PropertyTitle string    `json:"propertyTitle,omitempty"`
	SubmittedAt   time.Time `json:"submittedAt"`
}
