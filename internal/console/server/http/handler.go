package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/engine"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/notify"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/store"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/workflow"
	"github.com/AktanAlmazovich/Fleet-manager/pkg/log"
)

// Handler exposes the console's operator-facing REST surface. Reads are
// served from the store snapshot and the notification bus; mutations go
// through the assignment workflow and the transition engine, so every status
// change obeys the lifecycle rules. Driver details and trip history are
// proxied straight to the fleet service.
type Handler struct {
	store     *store.VehicleStore
	engine    *engine.Engine
	bus       *notify.Bus
	workflows *workflow.Registry
	fleet     core.FleetAPI

	logger log.Logger
}

// NewHandler wires the REST surface to the core components.
func NewHandler(
	vehicleStore *store.VehicleStore,
	eng *engine.Engine,
	bus *notify.Bus,
	workflows *workflow.Registry,
	fleet core.FleetAPI,
	logger log.Logger,
) *Handler {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Handler{
		store:     vehicleStore,
		engine:    eng,
		bus:       bus,
		workflows: workflows,
		fleet:     fleet,
		logger:    logger.WithName("http"),
	}
}

// Router builds the route table.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/vehicles", h.listVehicles).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}/assign", h.assignVehicle).Methods(http.MethodPost)
	api.HandleFunc("/vehicles/{id}/release", h.releaseVehicle).Methods(http.MethodPost)
	api.HandleFunc("/vehicles/{id}/maintenance", h.sendToMaintenance).Methods(http.MethodPost)
	api.HandleFunc("/drivers", h.listDrivers).Methods(http.MethodGet)
	api.HandleFunc("/drivers/{id}", h.getDriver).Methods(http.MethodGet)
	api.HandleFunc("/trips/driver/{id}", h.listDriverTrips).Methods(http.MethodGet)
	api.HandleFunc("/fleet/stats", h.fleetStats).Methods(http.MethodGet)
	api.HandleFunc("/refresh", h.refresh).Methods(http.MethodPost)
	api.HandleFunc("/notifications", h.listNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications", h.clearNotifications).Methods(http.MethodDelete)
	api.HandleFunc("/notifications/{id}/read", h.markNotificationRead).Methods(http.MethodPost)
	api.HandleFunc("/notifications/read-all", h.markAllNotificationsRead).Methods(http.MethodPost)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.HandleFunc("/readyz", h.readyz)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (h *Handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Vehicles())
}

type assignRequest struct {
	Driver   string  `json:"driver"`
	DriverID *string `json:"driverId"`
}

func (h *Handler) assignVehicle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.workflows.For(id).Submit(r.Context(), req.Driver, req.DriverID); err != nil {
		h.writeOperationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) releaseVehicle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.engine.Release(r.Context(), id); err != nil {
		h.writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) sendToMaintenance(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.engine.SendToMaintenance(r.Context(), id); err != nil {
		h.writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listDrivers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Drivers())
}

func (h *Handler) getDriver(w http.ResponseWriter, r *http.Request) {
	driver, err := h.fleet.Driver(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, driver)
}

func (h *Handler) listDriverTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.fleet.DriverTrips(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

func (h *Handler) fleetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Stats())
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Load(r.Context()); err != nil {
		h.writeOperationError(w, err)
		return
	}
	if err := h.store.LoadDrivers(r.Context()); err != nil {
		h.logger.Warn("driver snapshot refresh failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type notificationsResponse struct {
	Notifications any `json:"notifications"`
	UnreadCount   int `json:"unreadCount"`
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, notificationsResponse{
		Notifications: h.bus.Notifications(),
		UnreadCount:   h.bus.UnreadCount(),
	})
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	h.bus.MarkAsRead(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	h.bus.MarkAllAsRead()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearNotifications(w http.ResponseWriter, r *http.Request) {
	h.bus.ClearAll()
	w.WriteHeader(http.StatusNoContent)
}

// readyz reports ready once an initial vehicle snapshot has been loaded.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	if h.store.LastRefresh().IsZero() {
		writeError(w, http.StatusServiceUnavailable, "no fleet snapshot yet")
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// writeOperationError maps core errors onto HTTP status codes. Every failed
// command is surfaced to the operator; nothing fails silently.
func (h *Handler) writeOperationError(w http.ResponseWriter, err error) {
	var (
		validation *core.ValidationError
		transition *core.InvalidTransitionError
		rejection  *core.ServerRejectionError
		network    *core.NetworkError
	)

	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Error())
	case errors.As(err, &transition):
		writeError(w, http.StatusConflict, transition.Error())
	case errors.Is(err, core.ErrVehicleNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrSubmissionInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &rejection):
		writeError(w, http.StatusBadGateway, rejection.Error())
	case errors.As(err, &network):
		writeError(w, http.StatusGatewayTimeout, network.Error())
	default:
		h.logger.Error(err, "unhandled operation error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
