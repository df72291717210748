// internal/httpapi/handlers.go

// Package httpapi exposes the catalog, match and inquiry services over
// REST.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"estate-match-backend/internal/catalog"
	"estate-match-backend/internal/catalog/configstore"
	commonerrors "estate-match-backend/internal/common/errors"
	"estate-match-backend/internal/common/logger"
	"estate-match-backend/internal/inquiry"
	"estate-match-backend/internal/match"
	"estate-match-backend/internal/models"
)

const defaultSearchLimit = 20

// Handlers holds every HTTP handler and its dependencies. search is nil
// when Elasticsearch is disabled; the search endpoint then reports the
// feature as unavailable.
type Handlers struct {
	repo        *catalog.Repository
	search      *catalog.SearchIndex
	refresher   *catalog.Refresher
	cache       *catalog.SnapshotCache
	configStore *configstore.Store
	engine      *match.Engine
	inquiries   *inquiry.Service
	adminToken  string
	logger      logger.Logger
}

func NewHandlers(
	repo *catalog.Repository,
	search *catalog.SearchIndex,
	refresher *catalog.Refresher,
	cache *catalog.SnapshotCache,
	configStore *configstore.Store,
	engine *match.Engine,
	inquiries *inquiry.Service,
	adminToken string,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		repo:        repo,
		search:      search,
		refresher:   refresher,
		cache:       cache,
		configStore: configStore,
		engine:      engine,
		inquiries:   inquiries,
		adminToken:  adminToken,
		logger:      log.WithFields(map[string]interface{}{"component": "httpapi"}),
	}
}

// --- Catalog ---

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"properties":  h.repo.Size(),
		"refreshedAt": h.repo.RefreshedAt(),
	})
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"properties": h.repo.ListAll(),
	})
}

func (h *Handlers) listFeatured(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"properties": h.repo.ListFeatured(),
	})
}

func (h *Handlers) listAvailable(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"properties": h.repo.ListAvailable(),
	})
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	property, err := h.repo.FindByID(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

func (h *Handlers) searchProperties(w http.ResponseWriter, r *http.Request) {
	if h.search == nil {
		h.writeError(w, commonerrors.NewSearchUnavailableError())
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": map[string]interface{}{"message": "query parameter q is required"},
		})
		return
	}

	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	properties, err := h.search.Search(r.Context(), query, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"properties": properties,
	})
}

// --- Match ---

type matchRequest struct {
	Preferences models.Preferences `json:"preferences"`
	Email       string             `json:"email,omitempty"`
	CreateLead  bool               `json:"createLead,omitempty"`
}

func (h *Handlers) computeMatches(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": map[string]interface{}{"message": "invalid JSON body"},
		})
		return
	}

	matches := h.engine.Match(h.repo.ListAll(), req.Preferences)

	if req.CreateLead {
		var top *models.ScoredProperty
		if len(matches) > 0 {
			top = &matches[0]
		}
		payload := match.SynthesizeLead(req.Preferences, req.Email, top)

		// Lead capture must never break the match response.
		if _, err := h.inquiries.SubmitLead(r.Context(), payload, clientIP(r)); err != nil {
			h.logger.WithError(err).Warn("failed to store match lead", nil)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"matches": matches,
	})
}

func (h *Handlers) matchOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, match.AllOptions())
}

// --- Inquiries ---

func (h *Handlers) submitInquiry(w http.ResponseWriter, r *http.Request) {
	var payload models.InquiryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": map[string]interface{}{"message": "invalid JSON body"},
		})
		return
	}

	stored, err := h.inquiries.Submit(r.Context(), payload, clientIP(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":        stored.ID,
		"createdAt": stored.CreatedAt,
	})
}

// --- Admin ---

type sheetURLRequest struct {
	URL string `json:"url"`
}

func (h *Handlers) getSheetURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.configStore.GetSheetURL(r.Context())
	if err != nil {
		h.writeError(w, commonerrors.NewConfigReadFailedError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"url":        url,
		"configured": url != "",
	})
}

func (h *Handlers) setSheetURL(w http.ResponseWriter, r *http.Request) {
	var req sheetURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": map[string]interface{}{"message": "invalid JSON body"},
		})
		return
	}

	if err := h.configStore.SetSheetURL(r.Context(), req.URL); err != nil {
		h.writeError(w, err)
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(r.Context())
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"url": strings.TrimSpace(req.URL),
	})
}

func (h *Handlers) clearSheetURL(w http.ResponseWriter, r *http.Request) {
	if err := h.configStore.ClearSheetURL(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(r.Context())
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) triggerRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.refresher.RefreshNow(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"properties":  h.repo.Size(),
		"refreshedAt": h.repo.RefreshedAt(),
	})
}

// requireAdmin guards the admin surface with a bearer token. An empty
// configured token disables the surface entirely.
func (h *Handlers) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.adminToken == "" {
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"error": map[string]interface{}{"message": "admin API is not configured"},
			})
			return
		}

		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == token || token != h.adminToken {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"error": map[string]interface{}{"message": "unauthorized"},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// --- Helpers ---

// clientIP resolves the caller's address from proxy headers. Unknown is
// acceptable: the rate limiter then shares one bucket, which only
// matters for untrusted direct traffic.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.Split(forwarded, ",")[0]
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if ip := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}
	return "unknown"
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps typed error codes to HTTP statuses and serializes the
// structured error.
func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch commonerrors.CodeOf(err) {
	case commonerrors.ErrCodeInvalidSourceURL, commonerrors.ErrCodeInquiryValidationFailed:
		status = http.StatusBadRequest
	case commonerrors.ErrCodePropertyNotFound:
		status = http.StatusNotFound
	case commonerrors.ErrCodeNoFeedConfigured:
		status = http.StatusConflict
	case commonerrors.ErrCodeRateLimitExceeded:
		status = http.StatusTooManyRequests
	case commonerrors.ErrCodeFetchFailure:
		status = http.StatusBadGateway
	case commonerrors.ErrCodeSearchUnavailable:
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		h.logger.WithError(err).Error("request failed", nil)
	}

	var std *commonerrors.StandardError
	if !errors.As(err, &std) {
		std = &commonerrors.StandardError{Message: err.Error()}
	}
	writeJSON(w, status, map[string]interface{}{"error": std})
}
