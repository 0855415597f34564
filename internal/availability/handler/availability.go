package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"

	"carve/internal/availability/service"
	apperrors "carve/pkg/errors"
	httputil "carve/pkg/http"
	"carve/pkg/logger"
	"carve/pkg/model"
	"carve/pkg/sanitizer"
	"carve/pkg/token"

	"github.com/julienschmidt/httprouter"
)

// internalTokenHeader carries the internal operator token that unlocks
// test-staff visibility.
const internalTokenHeader = "X-Internal-Token"

type AvailabilityHandler struct {
	service          service.AvailabilityService
	internalAPIToken string
	log              *logger.Logger
}

func NewAvailabilityHandler(svc service.AvailabilityService, internalAPIToken string, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service:          svc,
		internalAPIToken: internalAPIToken,
		log:              log,
	}
}

func (h *AvailabilityHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	criteria, err := parseCriteria(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Search", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	result, err := h.service.Search(r.Context(), criteria, h.canViewTestStaff(r))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Search", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

type verifyRequest struct {
	token.Params
	Token string `json:"token"`
}

type verifyResponse struct {
	Valid  bool               `json:"valid"`
	Record *model.TokenRecord `json:"record,omitempty"`
}

func (h *AvailabilityHandler) Verify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Verify", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	record, valid, err := h.service.VerifyBooking(r.Context(), req.Params, req.Token)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Verify", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, verifyResponse{Valid: valid, Record: record}); err != nil {
		h.log.Error("failed to write success response", "handler", "Verify", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/availability", h.Search)
	router.POST("/api/v1/bookings/verify", h.Verify)
}

func (h *AvailabilityHandler) canViewTestStaff(r *http.Request) bool {
	if h.internalAPIToken == "" {
		return false
	}
	presented := r.Header.Get(internalTokenHeader)
	return subtle.ConstantTimeCompare([]byte(presented), []byte(h.internalAPIToken)) == 1
}

func parseCriteria(r *http.Request) (*model.SliceCriteria, error) {
	query := r.URL.Query()

	startHour, err := parseHour(query.Get("start_hour"))
	if err != nil {
		return nil, err
	}
	endHour, err := parseHour(query.Get("end_hour"))
	if err != nil {
		return nil, err
	}

	return &model.SliceCriteria{
		LocationID:    sanitizer.NormalizeID(query.Get("location_id")),
		ProgramID:     sanitizer.NormalizeID(query.Get("program_id")),
		SessionTypeID: sanitizer.NormalizeID(query.Get("session_type_id")),
		TrainerID:     sanitizer.NormalizeID(query.Get("trainer_id")),
		DateRange:     sanitizer.NormalizeID(query.Get("date_range")),
		StartHour:     startHour,
		EndHour:       endHour,
		TargetSliceID: sanitizer.NormalizeID(query.Get("target_slice_id")),
	}, nil
}

func parseHour(raw string) (int, error) {
	if raw == "" {
		return 0, apperrors.InvalidInput("start_hour and end_hour are required")
	}
	hour, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.InvalidInput("invalid hour parameter: " + raw)
	}
	return hour, nil
}
