// internal/catalog/refresher.go
package catalog

import (
	"context"
	"time"

	commonerrors "estate-match-backend/internal/common/errors"
	"estate-match-backend/internal/common/logger"
	"estate-match-backend/internal/common/metrics"
	"estate-match-backend/internal/models"
)

// Loader produces a fresh catalog from the configured feed.
type Loader interface {
	Load(ctx context.Context) ([]models.Property, error)
}

// Refresher periodically reloads the catalog from the feed. A failed
// refresh leaves the previous snapshot untouched; the site keeps serving
// the last good catalog.
type Refresher struct {
	loader   Loader
	repo     *Repository
	cache    *SnapshotCache
	search   *SearchIndex
	interval time.Duration
	logger   logger.Logger
}

// NewRefresher wires the refresh loop. cache and search are optional;
// pass nil to disable either.
func NewRefresher(loader Loader, repo *Repository, cache *SnapshotCache, search *SearchIndex, interval time.Duration, log logger.Logger) *Refresher {
	return &Refresher{
		loader:   loader,
		repo:     repo,
		cache:    cache,
		search:   search,
		interval: interval,
		logger:   log.WithFields(map[string]interface{}{"component": "catalog-refresher"}),
	}
}

// WarmFromCache seeds the repository from the Redis snapshot so a fresh
// instance can serve requests before its first feed fetch. A cold or
// failing cache is not an error.
func (r *Refresher) WarmFromCache(ctx context.Context) {
	if r.cache == nil {
		return
	}

	properties, err := r.cache.Load(ctx)
	if err != nil {
		r.logger.WithError(err).Warn("failed to warm catalog from cache", nil)
		return
	}
	if len(properties) == 0 {
		return
	}

	r.repo.Replace(properties)
	r.logger.Info("catalog warmed from cache", map[string]interface{}{
		"properties": len(properties),
	})
}

// RefreshNow runs a single refresh pass.
func (r *Refresher) RefreshNow(ctx context.Context) error {
	properties, err := r.loader.Load(ctx)
	if err != nil {
		metrics.CatalogRefreshes.WithLabelValues("failure").Inc()
		metrics.CatalogRefreshErrors.WithLabelValues(string(commonerrors.CodeOf(err))).Inc()

		// NO_FEED_CONFIGURED is the expected idle state, not a fault.
		if commonerrors.CodeOf(err) == commonerrors.ErrCodeNoFeedConfigured {
			r.logger.Debug("catalog refresh skipped", map[string]interface{}{
				"reason": "no feed configured",
			})
		} else {
			r.logger.WithError(err).Error("catalog refresh failed", nil)
		}
		return err
	}

	r.repo.Replace(properties)
	metrics.CatalogRefreshes.WithLabelValues("success").Inc()

	if r.cache != nil {
		r.cache.Store(ctx, properties)
	}
	if r.search != nil {
		if err := r.search.Reindex(ctx, properties); err != nil {
			r.logger.WithError(err).Warn("catalog reindex failed", nil)
		}
	}

	r.logger.Info("catalog refreshed", map[string]interface{}{
		"properties": len(properties),
	})
	return nil
}

// Run refreshes immediately, then on every tick until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	_ = r.RefreshNow(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("catalog refresher stopped", nil)
			return
		case <-ticker.C:
			_ = r.RefreshNow(ctx)
		}
	}
}
