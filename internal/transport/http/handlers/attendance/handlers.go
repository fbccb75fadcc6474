package attendancehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"guardops/internal/domain/attendance"
	"guardops/internal/domain/payroll"
	"guardops/internal/transport/http/api"
	"guardops/internal/transport/http/middleware"
	"guardops/internal/transport/http/shared"
)

type Handler struct {
	Store *attendance.Store
}

func NewHandler(store *attendance.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.RequireWriter).Post("/", h.handleCreate)
		r.Get("/summary", h.handleSummary)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload attendance.Entry
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("guardId", payload.GuardID, "guardId is required")
	v.Enum("status", payload.Status, []string{attendance.StatusPresent, attendance.StatusAbsent, attendance.StatusLate}, "status must be present, absent or late")
	v.Required("status", payload.Status, "status is required")
	if payload.Day.IsZero() {
		v.Add("day", "day is required")
	}
	if payload.OvertimeHours < 0 || payload.NightShiftHours < 0 || payload.WeekendHours < 0 || payload.HolidayHours < 0 {
		v.Add("hours", "hour counters must not be negative")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.CreateEntry(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_create_failed", "failed to record attendance", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	guardID := r.URL.Query().Get("guardId")
	if guardID == "" {
		api.Fail(w, http.StatusBadRequest, "missing_guard_id", "guardId query parameter is required", middleware.GetRequestID(r.Context()))
		return
	}
	month, year, err := shared.ParsePeriod(r, time.Now())
	if err != nil || !payroll.ValidPeriod(month, year) {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be 1-12 and year 2000-2100", middleware.GetRequestID(r.Context()))
		return
	}

	entries, err := h.Store.ListEntries(r.Context(), guardID, month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_list_failed", "failed to list attendance", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	guardID := r.URL.Query().Get("guardId")
	if guardID == "" {
		api.Fail(w, http.StatusBadRequest, "missing_guard_id", "guardId query parameter is required", middleware.GetRequestID(r.Context()))
		return
	}
	month, year, err := shared.ParsePeriod(r, time.Now())
	if err != nil || !payroll.ValidPeriod(month, year) {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be 1-12 and year 2000-2100", middleware.GetRequestID(r.Context()))
		return
	}

	summary, err := h.Store.GetSummary(r.Context(), guardID, month, year)
	if err != nil {
		if errors.Is(err, attendance.ErrNoEntries) {
			api.Fail(w, http.StatusNotFound, "no_attendance", "no attendance entries for period", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "attendance_summary_failed", "failed to summarize attendance", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}
