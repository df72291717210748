// internal/sheets/fetcher.go
package sheets

import (
	"context"
	"strings"
	"time"

	commonerrors "estate-match-backend/internal/common/errors"
	commonhttp "estate-match-backend/internal/common/http"
	"estate-match-backend/internal/common/logger"
	"estate-match-backend/internal/models"
)

// ConfigStore reads the administrator-supplied sharing URL. Write access
// lives with the admin surface, not here.
type ConfigStore interface {
	GetSheetURL(ctx context.Context) (string, error)
}

// Fetcher runs the full ingestion pass: config read, URL validation,
// fetch, envelope parse, normalization. It holds no catalog state and
// never retries; callers decide when to run again.
type Fetcher struct {
	store   ConfigStore
	client  *commonhttp.Client
	timeout time.Duration
	logger  logger.Logger
}

func NewFetcher(store ConfigStore, client *commonhttp.Client, timeout time.Duration, log logger.Logger) *Fetcher {
	return &Fetcher{
		store:   store,
		client:  client,
		timeout: timeout,
		logger:  log.WithFields(map[string]interface{}{"component": "sheets-fetcher"}),
	}
}

// Load produces the current catalog from the configured sheet. Every
// failure mode surfaces as a StandardError with a typed code; no partial
// result is ever returned.
func (f *Fetcher) Load(ctx context.Context) ([]models.Property, error) {
	sharingURL, err := f.store.GetSheetURL(ctx)
	if err != nil {
		return nil, commonerrors.NewConfigReadFailedError(err)
	}

	if strings.TrimSpace(sharingURL) == "" {
		return nil, commonerrors.NewNoFeedConfiguredError()
	}

	// Re-validate at fetch time; the stored value is not trusted.
	endpoint, err := ResolveFeedEndpoint(sharingURL)
	if err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body, err := f.client.GetBody(fetchCtx, endpoint)
	if err != nil {
		return nil, commonerrors.NewFetchFailureError(err)
	}

	rows, err := ParseFeedResponse(body)
	if err != nil {
		return nil, err
	}

	properties := NormalizeRows(rows)
	if len(properties) == 0 {
		return nil, commonerrors.NewEmptyCatalogError()
	}

	f.logger.Info("catalog loaded from sheet", map[string]interface{}{
		"rows":       len(rows),
		"properties": len(properties),
	})

	return properties, nil
}
