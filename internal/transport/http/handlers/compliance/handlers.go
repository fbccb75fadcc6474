package compliancehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"guardops/internal/domain/compliance"
	"guardops/internal/transport/http/api"
	"guardops/internal/transport/http/middleware"
	"guardops/internal/transport/http/shared"
)

type Handler struct {
	Service *compliance.Service
}

func NewHandler(service *compliance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/compliance", func(r chi.Router) {
		r.Get("/categories", h.handleListCategories)
		r.With(middleware.RequireWriter).Post("/items", h.handleCreateItem)
		r.With(middleware.RequireWriter).Put("/items/{itemID}", h.handleUpdateItem)
		r.With(middleware.RequireWriter).Post("/recalculate", h.handleRecalculate)
		r.Get("/score", h.handleScore)
		r.Get("/report", h.handleReport)
	})
}

var itemStatuses = []string{
	compliance.ItemCompliant,
	compliance.ItemPartial,
	compliance.ItemNonCompliant,
	compliance.ItemNotApplicable,
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.ListCategories(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "compliance_categories_failed", "failed to list compliance categories", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, categories, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var payload compliance.Item
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("categoryId", payload.CategoryID, "categoryId is required")
	v.Required("name", payload.Name, "name is required")
	v.Required("status", payload.Status, "status is required")
	v.Enum("status", payload.Status, itemStatuses, "status must be compliant, partial, non_compliant or not_applicable")
	if payload.Score < 0 || payload.MaxScore <= 0 || payload.Score > payload.MaxScore {
		v.Add("score", "score must be between 0 and maxScore")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateItem(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "compliance_item_create_failed", "failed to create compliance item", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var payload compliance.Item
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.ID = chi.URLParam(r, "itemID")

	v := shared.NewValidator()
	v.Required("status", payload.Status, "status is required")
	v.Enum("status", payload.Status, itemStatuses, "status must be compliant, partial, non_compliant or not_applicable")
	if payload.Score < 0 || payload.MaxScore <= 0 || payload.Score > payload.MaxScore {
		v.Add("score", "score must be between 0 and maxScore")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if err := h.Service.UpdateItem(r.Context(), payload); err != nil {
		if errors.Is(err, compliance.ErrItemNotFound) {
			api.Fail(w, http.StatusNotFound, "compliance_item_not_found", "compliance item not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "compliance_item_update_failed", "failed to update compliance item", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, payload, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	score, err := h.Service.Recalculate(r.Context())
	if err != nil {
		if errors.Is(err, compliance.ErrWeightSumMismatch) {
			api.Fail(w, http.StatusUnprocessableEntity, "weight_sum_mismatch", "category weights must sum to 1.0", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "compliance_recalculate_failed", "failed to recalculate compliance score", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, score, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	score, err := h.Service.Current(r.Context())
	if err != nil {
		if errors.Is(err, compliance.ErrNoScoreHistory) {
			api.Fail(w, http.StatusNotFound, "no_score_history", "no compliance score has been computed yet", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "compliance_score_failed", "failed to load compliance score", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, score, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	pdf, err := h.Service.ReportPDF(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "compliance_report_failed", "failed to render compliance report", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=compliance-report.pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
