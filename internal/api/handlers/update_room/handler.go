package update_room

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
)

const (
	msgInvalidRoomID      = "некорректный ID комнаты"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные данные комнаты: "
	msgInvalidRoom        = "некорректные данные комнаты"
	msgRoomNotFound       = "комната не найдена"
	msgFeatureNotFound    = "особенность комнаты не найдена"
	msgUnauthorized       = "требуется авторизация"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/rooms/{roomId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.PathID(r, "roomId")
	if err != nil {
		h.logger.Warn("PUT /admin/rooms/{id} - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /admin/rooms/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req UpdateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/rooms/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /admin/rooms/{id} - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgValidationFailed+err.Error())
		return
	}

	room, err := h.service.Update(r.Context(), actor, roomID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrRoomNotFound):
			h.logger.Warn("PUT /admin/rooms/{id} - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("PUT /admin/rooms/{id} - Invalid room: room_id=%d, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidRoom)

		case errors.Is(err, rooms.ErrFeatureNotFound):
			h.logger.Warn("PUT /admin/rooms/{id} - Feature not found: feature_ids=%v", req.FeatureIDs)
			handlers.RespondBadRequest(w, msgFeatureNotFound)

		case errors.Is(err, rooms.ErrAccessDenied):
			h.logger.Warn("PUT /admin/rooms/{id} - Access denied: subject=%s", actor.Subject)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /admin/rooms/{id} - Failed to update room: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/rooms/{id} - Room updated successfully: room_id=%d, active=%t", room.ID, room.IsActive)
	handlers.RespondJSON(w, http.StatusOK, room)
}
