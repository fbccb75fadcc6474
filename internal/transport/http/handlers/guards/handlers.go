package guardhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"guardops/internal/domain/guard"
	"guardops/internal/transport/http/api"
	"guardops/internal/transport/http/middleware"
	"guardops/internal/transport/http/shared"
)

type Handler struct {
	Store *guard.Store
}

func NewHandler(store *guard.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/guards", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.RequireWriter).Post("/", h.handleCreate)
		r.Get("/{guardID}", h.handleGet)
		r.With(middleware.RequireWriter).Patch("/{guardID}", h.handleUpdateStatus)
		r.Get("/{guardID}/documents", h.handleListDocuments)
		r.With(middleware.RequireWriter).Post("/{guardID}/documents", h.handleCreateDocument)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	guards, err := h.Store.List(r.Context(), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "guards_list_failed", "failed to list guards", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, guards, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload guard.Guard
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("badge", payload.Badge, "badge is required")
	v.Required("siteId", payload.SiteID, "siteId is required")
	v.Enum("status", payload.Status, []string{guard.StatusActive, guard.StatusInactive}, "status must be active or inactive")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if payload.Status == "" {
		payload.Status = guard.StatusActive
	}

	id, err := h.Store.Create(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "guard_create_failed", "failed to create guard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	g, err := h.Store.Get(r.Context(), chi.URLParam(r, "guardID"))
	if err != nil {
		if errors.Is(err, guard.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "guard_not_found", "guard not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "guard_get_failed", "failed to load guard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, g, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("status", payload.Status, "status is required")
	v.Enum("status", payload.Status, []string{guard.StatusActive, guard.StatusInactive}, "status must be active or inactive")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if err := h.Store.UpdateStatus(r.Context(), chi.URLParam(r, "guardID"), payload.Status); err != nil {
		if errors.Is(err, guard.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "guard_not_found", "guard not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "guard_update_failed", "failed to update guard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": payload.Status}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Store.ListDocuments(r.Context(), chi.URLParam(r, "guardID"), time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "documents_list_failed", "failed to list documents", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, docs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var payload guard.Document
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.GuardID = chi.URLParam(r, "guardID")

	v := shared.NewValidator()
	v.Required("docType", payload.DocType, "docType is required")
	v.Required("number", payload.Number, "number is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.CreateDocument(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "document_create_failed", "failed to create document", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}
