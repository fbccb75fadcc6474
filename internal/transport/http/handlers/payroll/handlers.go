package payrollhandler

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"guardops/internal/domain/auth"
	"guardops/internal/domain/payroll"
	"guardops/internal/transport/http/api"
	"guardops/internal/transport/http/middleware"
	"guardops/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
}

func NewHandler(service *payroll.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/configs", h.handleListConfigs)
		r.With(middleware.RequireWriter).Post("/configs", h.handleCreateConfig)
		r.With(middleware.RequireWriter).Post("/run", h.handleRun)
		r.With(middleware.RequireWriter).Post("/run-all", h.handleRunAll)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/process", h.handleProcess)
		r.Get("/records", h.handleListRecords)
		r.Get("/records/{recordID}", h.handleGetRecord)
		r.With(middleware.RequireWriter).Post("/records/{recordID}/pay", h.handlePay)
		r.With(middleware.RequireWriter).Post("/records/{recordID}/cancel", h.handleCancel)
		r.Get("/records/{recordID}/payslip", h.handlePayslip)
		r.Get("/export/register", h.handleExportRegister)
	})
}

type runRequest struct {
	GuardID string `json:"guardId"`
	Month   int    `json:"month"`
	Year    int    `json:"year"`
}

func (h *Handler) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var payload payroll.SalaryConfig
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("guardId", payload.GuardID, "guardId is required")
	v.PositiveAmount("baseSalary", payload.BaseSalary)
	// Zero means "use the deployment default", so only negatives are invalid.
	v.NonNegativeAmount("overtimeMultiplier", payload.OvertimeMultiplier)
	v.NonNegativeAmount("nightShiftAllowance", payload.NightShiftAllowance)
	v.NonNegativeAmount("weekendAllowance", payload.WeekendAllowance)
	v.NonNegativeAmount("holidayAllowance", payload.HolidayAllowance)
	if payload.HourlyRate.Valid {
		v.PositiveAmount("hourlyRate", payload.HourlyRate.Decimal)
	}
	if payload.EffectiveFrom.IsZero() {
		v.Add("effectiveFrom", "effectiveFrom is required")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateConfig(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_config_create_failed", "failed to create salary config", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.Service.ListConfigs(r.Context(), r.URL.Query().Get("guardId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_config_list_failed", "failed to list salary configs", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, configs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	var payload runRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.GuardID == "" {
		api.Fail(w, http.StatusBadRequest, "missing_guard_id", "guardId is required", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Service.Run(r.Context(), payload.GuardID, payload.Month, payload.Year)
	if err != nil {
		h.failRun(w, r, err)
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRunAll(w http.ResponseWriter, r *http.Request) {
	var payload runRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Service.RunAll(r.Context(), payload.Month, payload.Year)
	if err != nil {
		h.failRun(w, r, err)
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failRun(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, payroll.ErrInvalidPeriod):
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be 1-12 and year 2000-2100", reqID)
	case errors.Is(err, payroll.ErrSalaryConfigNotFound):
		api.Fail(w, http.StatusNotFound, "salary_config_not_found", "no salary config effective for period", reqID)
	case errors.Is(err, payroll.ErrAttendanceNotFound):
		api.Fail(w, http.StatusNotFound, "attendance_not_found", "no attendance entries for period", reqID)
	case errors.Is(err, payroll.ErrRecordPaid):
		api.Fail(w, http.StatusConflict, "record_paid", "paid records cannot be recalculated", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "payroll_run_failed", "payroll run failed", reqID)
	}
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	var payload runRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	count, err := h.Service.Process(r.Context(), payload.Month, payload.Year)
	if err != nil {
		if errors.Is(err, payroll.ErrInvalidPeriod) {
			api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be 1-12 and year 2000-2100", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payroll_process_failed", "failed to process payroll", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]int64{"processed": count}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	month, year, err := shared.ParsePeriod(r, time.Now())
	if err != nil || !payroll.ValidPeriod(month, year) {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be 1-12 and year 2000-2100", middleware.GetRequestID(r.Context()))
		return
	}
	page := shared.ParsePagination(r, 50, 200)

	records, err := h.Service.ListRecords(r.Context(), month, year, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_list_failed", "failed to list payroll records", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.Service.GetRecord(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		if errors.Is(err, payroll.ErrRecordNotFound) {
			api.Fail(w, http.StatusNotFound, "record_not_found", "payroll record not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payroll_get_failed", "failed to load payroll record", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePay(w http.ResponseWriter, r *http.Request) {
	err := h.Service.MarkPaid(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		reqID := middleware.GetRequestID(r.Context())
		switch {
		case errors.Is(err, payroll.ErrRecordNotFound):
			api.Fail(w, http.StatusNotFound, "record_not_found", "payroll record not found", reqID)
		case errors.Is(err, payroll.ErrRecordNotProcessed):
			api.Fail(w, http.StatusConflict, "record_not_processed", "record must be processed before payment", reqID)
		case errors.Is(err, payroll.ErrRecordPaid):
			api.Fail(w, http.StatusConflict, "record_paid", "record is already paid", reqID)
		case errors.Is(err, payroll.ErrRecordCancelled):
			api.Fail(w, http.StatusConflict, "record_cancelled", "cancelled records cannot be paid", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "payroll_pay_failed", "failed to mark record paid", reqID)
		}
		return
	}
	api.Success(w, map[string]string{"status": payroll.StatusPaid}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Cancel(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		reqID := middleware.GetRequestID(r.Context())
		switch {
		case errors.Is(err, payroll.ErrRecordNotFound):
			api.Fail(w, http.StatusNotFound, "record_not_found", "payroll record not found", reqID)
		case errors.Is(err, payroll.ErrRecordPaid):
			api.Fail(w, http.StatusConflict, "record_paid", "paid records cannot be cancelled", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "payroll_cancel_failed", "failed to cancel record", reqID)
		}
		return
	}
	api.Success(w, map[string]string{"status": payroll.StatusCancelled}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")
	pdf, err := h.Service.PayslipPDF(r.Context(), recordID)
	if err != nil {
		if errors.Is(err, payroll.ErrRecordNotFound) {
			api.Fail(w, http.StatusNotFound, "record_not_found", "payroll record not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to render payslip", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%s.pdf", recordID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) handleExportRegister(w http.ResponseWriter, r *http.Request) {
	month, year, err := shared.ParsePeriod(r, time.Now())
	if err != nil || !payroll.ValidPeriod(month, year) {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be 1-12 and year 2000-2100", middleware.GetRequestID(r.Context()))
		return
	}

	rows, err := h.Service.ListRegisterRows(r.Context(), month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "register_export_failed", "failed to export salary register", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=salary-register-%04d-%02d.csv", year, month))
	w.WriteHeader(http.StatusOK)

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"guard_id", "guard_name", "badge", "earnings", "deductions", "net", "status"})
	for _, row := range rows {
		_ = writer.Write([]string{
			row.GuardID,
			row.GuardName,
			row.Badge,
			row.Earnings.StringFixed(2),
			row.Deductions.StringFixed(2),
			row.Net.StringFixed(2),
			row.Status,
		})
	}
	writer.Flush()
}
