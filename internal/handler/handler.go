package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/seeksy/rate-desk/internal/middleware"
	"github.com/seeksy/rate-desk/internal/models"
	"github.com/seeksy/rate-desk/internal/pricing"
	"github.com/seeksy/rate-desk/internal/ratecard"
	"github.com/seeksy/rate-desk/internal/service"
	"github.com/sirupsen/logrus"
)

// ViewProvider computes rate desk views
type ViewProvider interface {
	GetRateDeskView(ctx context.Context, opts service.Options) (*models.RateDeskView, error)
}

type Handler struct {
	svc ViewProvider
	log *logrus.Logger
}

func NewHandler(svc ViewProvider, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts the rate desk routes on r behind auth
func (h *Handler) Register(r *mux.Router, auth mux.MiddlewareFunc) {
	r.HandleFunc("/health", h.Health).Methods("GET")

	protected := r.PathPrefix("/rate-desk").Subrouter()
	protected.Use(auth)
	protected.HandleFunc("", h.RateDesk).Methods("GET")
	protected.HandleFunc("/scenarios", h.Scenarios).Methods("GET")
	protected.HandleFunc("/rate-card.xml", h.RateCard).Methods("GET")
}

var errInvalidMonths = errors.New("months must be a positive integer")

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.WithError(err).Error("Failed to encode response")
	}
}

func parseOptions(r *http.Request) (service.Options, error) {
	q := r.URL.Query()
	opts := service.Options{ScenarioSlug: strings.ToLower(strings.TrimSpace(q.Get("scenario")))}
	if raw := q.Get("months"); raw != "" {
		months, err := strconv.Atoi(raw)
		if err != nil || months < 1 {
			return opts, errInvalidMonths
		}
		opts.Months = months
	}
	return opts, nil
}

func (h *Handler) view(w http.ResponseWriter, r *http.Request) (*models.RateDeskView, bool) {
	opts, err := parseOptions(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, false
	}

	view, err := h.svc.GetRateDeskView(r.Context(), opts)
	if err != nil {
		entry := h.log.WithError(err).WithField("scenario", opts.ScenarioSlug)
		if s, ok := middleware.SessionFrom(r.Context()); ok {
			entry = entry.WithField("tenant_id", s.TenantID)
		}
		entry.Error("Failed to build rate desk view")
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to build rate desk view"})
		return nil, false
	}
	return view, true
}

// RateDesk returns the priced inventory and summary for a scenario
func (h *Handler) RateDesk(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

// RateCard returns the rate desk view as an XML rate card
func (h *Handler) RateCard(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	out, err := ratecard.Render(view)
	if err != nil {
		h.log.WithError(err).Error("Failed to render rate card")
		http.Error(w, "Failed to render rate card", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Write(out)
}

// Scenarios lists the scenario slugs and their multipliers
func (h *Handler) Scenarios(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, pricing.Scenarios())
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
