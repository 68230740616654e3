package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"prebook/internal/scheduledrides/service"
	"prebook/pkg/config"
	apperrors "prebook/pkg/errors"
	httputil "prebook/pkg/http"
	"prebook/pkg/logger"
	"prebook/pkg/model"
)

type RideHandler struct {
	service service.LifecycleService
	log     *logger.Logger
}

func NewRideHandler(service service.LifecycleService, log *logger.Logger) *RideHandler {
	return &RideHandler{
		service: service,
		log:     log,
	}
}

// CreateRideResponse carries the stored ride plus any non-fatal warnings,
// such as a failed remote mirror write.
type CreateRideResponse struct {
	Ride     *model.ScheduledRide `json:"ride"`
	Warnings []string             `json:"warnings,omitempty"`
}

func (h *RideHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CreateRideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	ride, warnings, err := h.service.Create(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, CreateRideResponse{Ride: ride, Warnings: warnings})
}

func (h *RideHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	ride, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, ride)
}

func (h *RideHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	ownerID := strings.TrimSpace(query.Get("owner_id"))
	if ownerID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'owner_id' query parameter is required",
		})
		return
	}

	limit := 0
	if limitStr := query.Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid limit parameter: %s", limitStr)))
			return
		}
	}

	var offset int64
	if offsetStr := query.Get("offset"); offsetStr != "" {
		var err error
		offset, err = strconv.ParseInt(offsetStr, 10, 64)
		if err != nil {
			httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid offset parameter: %s", offsetStr)))
			return
		}
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	rides, totalCount, err := h.service.ListByOwner(r.Context(), ownerID, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, rides, totalCount, limit, int(offset))
}

func (h *RideHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	if err := h.service.Cancel(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

// Reconcile lets a client request an immediate pass, the server-side
// equivalent of the app coming to the foreground.
func (h *RideHandler) Reconcile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.service.TriggerReconcile()
	httputil.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}

func (h *RideHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/scheduled-rides", h.Create)
	router.GET("/api/v1/scheduled-rides", h.GetAll)
	router.GET("/api/v1/scheduled-rides/id/:id", h.GetByID)
	router.DELETE("/api/v1/scheduled-rides/id/:id", h.Cancel)
	router.POST("/api/v1/scheduled-rides/reconcile", h.Reconcile)
}
