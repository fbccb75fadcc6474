package geofencehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"guardops/internal/domain/geofence"
	"guardops/internal/platform/metrics"
	"guardops/internal/transport/http/api"
	"guardops/internal/transport/http/middleware"
	"guardops/internal/transport/http/shared"
)

type Handler struct {
	Store     *geofence.Store
	Collector *metrics.Collector
}

func NewHandler(store *geofence.Store, collector *metrics.Collector) *Handler {
	return &Handler{Store: store, Collector: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/geofences", func(r chi.Router) {
		r.Get("/", h.handleListZones)
		r.With(middleware.RequireWriter).Post("/", h.handleCreateZone)
		r.Get("/events", h.handleListEvents)
		r.Get("/{zoneID}", h.handleGetZone)
		r.Post("/{zoneID}/positions", h.handlePosition)
	})
}

func (h *Handler) handleCreateZone(w http.ResponseWriter, r *http.Request) {
	var payload geofence.Zone
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("siteId", payload.SiteID, "siteId is required")
	if payload.CenterLat < -90 || payload.CenterLat > 90 {
		v.Add("centerLat", "latitude must be between -90 and 90")
	}
	if payload.CenterLng < -180 || payload.CenterLng > 180 {
		v.Add("centerLng", "longitude must be between -180 and 180")
	}
	if payload.RadiusM <= 0 {
		v.Add("radiusM", "radius must be greater than zero")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.CreateZone(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "geofence_create_failed", "failed to create geofence", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.Store.ListZones(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "geofence_list_failed", "failed to list geofences", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, zones, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetZone(w http.ResponseWriter, r *http.Request) {
	zone, err := h.Store.GetZone(r.Context(), chi.URLParam(r, "zoneID"))
	if err != nil {
		if errors.Is(err, geofence.ErrZoneNotFound) {
			api.Fail(w, http.StatusNotFound, "geofence_not_found", "geofence not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "geofence_get_failed", "failed to load geofence", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, zone, middleware.GetRequestID(r.Context()))
}

// handlePosition records a guard position ping against a zone and emits an
// entry, exit or loiter event when the ping changes the guard's state.
func (h *Handler) handlePosition(w http.ResponseWriter, r *http.Request) {
	var payload geofence.Position
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.GuardID == "" {
		api.Fail(w, http.StatusBadRequest, "missing_guard_id", "guardId is required", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.At.IsZero() {
		payload.At = time.Now().UTC()
	}

	zone, err := h.Store.GetZone(r.Context(), chi.URLParam(r, "zoneID"))
	if err != nil {
		if errors.Is(err, geofence.ErrZoneNotFound) {
			api.Fail(w, http.StatusNotFound, "geofence_not_found", "geofence not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "geofence_get_failed", "failed to load geofence", middleware.GetRequestID(r.Context()))
		return
	}

	wasInside, insideSince, err := h.Store.LastState(r.Context(), zone.ID, payload.GuardID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "geofence_state_failed", "failed to load guard state", middleware.GetRequestID(r.Context()))
		return
	}

	eventType, distance := geofence.Evaluate(zone, payload, wasInside, insideSince)
	if eventType == "" {
		api.Success(w, map[string]any{"event": nil, "distanceM": distance}, middleware.GetRequestID(r.Context()))
		return
	}

	event := geofence.Event{
		ZoneID:    zone.ID,
		GuardID:   payload.GuardID,
		Type:      eventType,
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		DistanceM: distance,
		At:        payload.At,
	}
	id, err := h.Store.CreateEvent(r.Context(), event)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "geofence_event_failed", "failed to record geofence event", middleware.GetRequestID(r.Context()))
		return
	}
	event.ID = id

	if h.Collector != nil && (eventType == geofence.EventExit || eventType == geofence.EventLoiter) {
		h.Collector.RecordBreach()
	}

	api.Created(w, event, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	events, err := h.Store.ListEvents(r.Context(), r.URL.Query().Get("zoneId"), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "geofence_events_failed", "failed to list geofence events", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, events, middleware.GetRequestID(r.Context()))
}
