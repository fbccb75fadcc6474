package incidenthandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"guardops/internal/domain/incident"
	"guardops/internal/transport/http/api"
	"guardops/internal/transport/http/middleware"
	"guardops/internal/transport/http/shared"
)

type Handler struct {
	Store *incident.Store
}

func NewHandler(store *incident.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/incidents", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{incidentID}", h.handleGet)
		r.With(middleware.RequireWriter).Post("/{incidentID}/status", h.handleTransition)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload incident.Incident
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("guardId", payload.GuardID, "guardId is required")
	v.Required("siteId", payload.SiteID, "siteId is required")
	v.Required("title", payload.Title, "title is required")
	if !incident.ValidSeverity(payload.Severity) {
		v.Add("severity", "severity must be low, medium, high or critical")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.Create(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "incident_create_failed", "failed to create incident", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id, "status": incident.StatusOpen}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	incidents, err := h.Store.List(r.Context(), r.URL.Query().Get("status"), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "incident_list_failed", "failed to list incidents", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, incidents, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	inc, err := h.Store.Get(r.Context(), chi.URLParam(r, "incidentID"))
	if err != nil {
		if errors.Is(err, incident.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "incident_not_found", "incident not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "incident_get_failed", "failed to load incident", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, inc, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Status == "" {
		api.Fail(w, http.StatusBadRequest, "missing_status", "status is required", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Store.Transition(r.Context(), chi.URLParam(r, "incidentID"), payload.Status, time.Now())
	if err != nil {
		reqID := middleware.GetRequestID(r.Context())
		switch {
		case errors.Is(err, incident.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "incident_not_found", "incident not found", reqID)
		case errors.Is(err, incident.ErrInvalidTransition):
			api.Fail(w, http.StatusConflict, "invalid_transition", "status transition not allowed", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "incident_update_failed", "failed to update incident", reqID)
		}
		return
	}
	api.Success(w, map[string]string{"status": payload.Status}, middleware.GetRequestID(r.Context()))
}
