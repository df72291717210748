// internal/httpapi/routes.go
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts every endpoint on the router. Fixed property
// sub-paths are registered before the {id} route so mux matches them
// first.
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/properties", h.listProperties).Methods(http.MethodGet)
	api.HandleFunc("/properties/featured", h.listFeatured).Methods(http.MethodGet)
	api.HandleFunc("/properties/available", h.listAvailable).Methods(http.MethodGet)
	api.HandleFunc("/properties/search", h.searchProperties).Methods(http.MethodGet)
	api.HandleFunc("/properties/{id}", h.getProperty).Methods(http.MethodGet)

	api.HandleFunc("/match", h.computeMatches).Methods(http.MethodPost)
	api.HandleFunc("/match/options", h.matchOptions).Methods(http.MethodGet)

	api.HandleFunc("/inquiries", h.submitInquiry).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(h.requireAdmin)
	admin.HandleFunc("/sheet-url", h.getSheetURL).Methods(http.MethodGet)
	admin.HandleFunc("/sheet-url", h.setSheetURL).Methods(http.MethodPut)
	admin.HandleFunc("/sheet-url", h.clearSheetURL).Methods(http.MethodDelete)
	admin.HandleFunc("/refresh", h.triggerRefresh).Methods(http.MethodPost)
}
