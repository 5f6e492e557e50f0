package bulk_update_status

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется авторизация"
	msgForbidden          = "доступ запрещен"
)

var msgTooManyIDs = fmt.Sprintf("слишком много бронирований в одном запросе (максимум %d)", maxBulkSize)

// Handler массовое действие над бронированиями. Один и тот же handler
// регистрируется для bulk-confirm и bulk-cancel с разным целевым статусом.
type Handler struct {
	service BookingService
	status  domain.BookingStatus
	logger  Logger
}

func NewHandler(service BookingService, status domain.BookingStatus, logger Logger) *Handler {
	return &Handler{
		service: service,
		status:  status,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/bulk-confirm | bulk-cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/bookings/bulk - Missing actor")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req BulkRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if len(req.IDs) > maxBulkSize {
		h.logger.Warn("POST /admin/bookings/bulk - Too many ids: %d", len(req.IDs))
		handlers.RespondBadRequest(w, msgTooManyIDs)
		return
	}

	affected, err := h.service.BulkSetStatus(r.Context(), actor, req.IDs, h.status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOverlap):
			h.logger.Warn("POST /admin/bookings/bulk - Overlap: status=%s, ids=%v", h.status, req.IDs)
			handlers.RespondRejection(w, http.StatusConflict, string(domain.ReasonOverlap), domain.MessageOf(err))

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /admin/bookings/bulk - Access denied: subject=%s", actor.Subject)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /admin/bookings/bulk - Failed to set status=%s: %v", h.status, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/bulk - Status %s applied: requested=%d, affected=%d",
		h.status, len(req.IDs), affected)
	handlers.RespondJSON(w, http.StatusOK, models.BulkResponse{Affected: affected})
}
