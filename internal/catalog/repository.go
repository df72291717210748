// internal/catalog/repository.go
package catalog

import (
	"sync"
	"time"

	commonerrors "estate-match-backend/internal/common/errors"
	"estate-match-backend/internal/common/metrics"
	"estate-match-backend/internal/models"
)

// Repository holds the current catalog snapshot in memory. Reads never
// block refreshes for long: Replace swaps the whole snapshot under a
// write lock and readers get copies, so a slow consumer cannot observe a
// half-applied refresh.
type Repository struct {
	mu          sync.RWMutex
	properties  []models.Property
	byID        map[string]models.Property
	refreshedAt time.Time
}

func NewRepository() *Repository {
	return &Repository{
		properties: []models.Property{},
		byID:       map[string]models.Property{},
	}
}

// Replace installs a new snapshot atomically, preserving the order the
// feed produced.
func (r *Repository) Replace(properties []models.Property) {
	byID := make(map[string]models.Property, len(properties))
	for _, p := range properties {
		byID[p.ID] = p
	}

	r.mu.Lock()
	r.properties = properties
	r.byID = byID
	r.refreshedAt = time.Now().UTC()
	r.mu.Unlock()

	metrics.CatalogSize.Set(float64(len(properties)))
}

// ListAll returns a copy of the full snapshot.
func (r *Repository) ListAll() []models.Property {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyProperties(r.properties)
}

// ListFeatured returns properties flagged as featured, in feed order.
func (r *Repository) ListFeatured() []models.Property {
	r.mu.RLock()
	defer r.mu.RUnlock()

	featured := []models.Property{}
	for _, p := range r.properties {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured
}

// ListAvailable returns properties still for sale, in feed order.
func (r *Repository) ListAvailable() []models.Property {
	r.mu.RLock()
	defer r.mu.RUnlock()

	available := []models.Property{}
	for _, p := range r.properties {
		if p.Status == models.StatusForSale {
			available = append(available, p)
		}
	}
	return available
}

// FindByID looks a property up by feed id.
func (r *Repository) FindByID(id string) (models.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return models.Property{}, commonerrors.NewPropertyNotFoundError(id)
	}
	return p, nil
}

// Size reports the number of properties in the current snapshot.
func (r *Repository) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.properties)
}

// RefreshedAt reports when the snapshot was last replaced; zero until the
// first successful refresh.
func (r *Repository) RefreshedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.refreshedAt
}

func copyProperties(src []models.Property) []models.Property {
	dst := make([]models.Property, len(src))
	copy(dst, src)
	return dst
}
