// Package errors provides standardized error handling for the estate API.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Catalog ingestion errors (spreadsheet feed pipeline)
const (
	ErrCodeInvalidSourceURL  ErrorCode = "INVALID_SOURCE_URL"
	ErrCodeFetchFailure      ErrorCode = "FETCH_FAILURE"
	ErrCodeMalformedEnvelope ErrorCode = "MALFORMED_ENVELOPE"
	ErrCodeEmptyCatalog      ErrorCode = "EMPTY_CATALOG"

	ErrCodeConfigReadFailed  ErrorCode = "CONFIG_READ_FAILED"
	ErrCodeConfigWriteFailed ErrorCode = "CONFIG_WRITE_FAILED"
	ErrCodeNoFeedConfigured  ErrorCode = "NO_FEED_CONFIGURED"

	ErrCodeInquiryValidationFailed ErrorCode = "INQUIRY_VALIDATION_FAILED"
	ErrCodeInquiryInsertFailed     ErrorCode = "INQUIRY_INSERT_FAILED"
	ErrCodeRateLimitExceeded       ErrorCode = "RATE_LIMIT_EXCEEDED"

	ErrCodeSearchUnavailable ErrorCode = "SEARCH_UNAVAILABLE"
	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"

	ErrCodePropertyNotFound ErrorCode = "PROPERTY_NOT_FOUND"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// CodeOf extracts the ErrorCode from err, or "" when err carries none.
func CodeOf(err error) ErrorCode {
	var std *StandardError
	if errors.As(err, &std) {
		return std.Code
	}
	return ""
}

// --- Constructors: ingestion ---

// NewInvalidSourceURLError marks a sharing URL that failed the safety or
// pattern checks. Non-retryable: the stored value must be fixed.
func NewInvalidSourceURLError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidSourceURL,
		Message:   "Invalid spreadsheet sharing URL",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewFetchFailureError wraps a network error or non-success HTTP status.
func NewFetchFailureError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFetchFailure,
		Message:   "Failed to fetch spreadsheet data",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedEnvelopeError marks an unexpected feed response wrapper.
func NewMalformedEnvelopeError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedEnvelope,
		Message:   "Unexpected spreadsheet response format",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyCatalogError marks a feed where zero rows survived normalization.
func NewEmptyCatalogError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyCatalog,
		Message:   "No valid properties found in the sheet",
		Details:   "check the column headers and that id/title cells are filled",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewConfigReadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigReadFailed,
		Message:   "Failed to read site configuration",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewConfigWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigWriteFailed,
		Message:   "Failed to store site configuration",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoFeedConfiguredError marks the absent-URL state: not a failure of the
// pipeline, just nothing to ingest yet.
func NewNoFeedConfiguredError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoFeedConfigured,
		Message:   "No spreadsheet configured",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// --- Constructors: inquiries ---

func NewInquiryValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInquiryValidationFailed,
		Message:   "Inquiry validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInquiryInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInquiryInsertFailed,
		Message:   "Failed to submit inquiry",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewRateLimitExceededError(ip string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimitExceeded,
		Message:   "Too many requests. Please try again later.",
		Details:   fmt.Sprintf("ip: %s", ip),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// --- Constructors: search ---

func NewSearchUnavailableError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchUnavailable,
		Message:   "Catalog search is not enabled",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Catalog search query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewPropertyNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodePropertyNotFound,
		Message:   "Property not found",
		Details:   fmt.Sprintf("propertyId: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
