package create_room

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные данные комнаты: "
	msgInvalidRoom        = "некорректные данные комнаты"
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

// Handle POST /api/v1/admin/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/rooms - Missing actor")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req RoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/rooms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /admin/rooms - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgValidationFailed+err.Error())
		return
	}

	room, err := h.service.Create(r.Context(), actor, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("POST /admin/rooms - Invalid room: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRoom)

		case errors.Is(err, rooms.ErrFeatureNotFound):
			h.logger.Warn("POST /admin/rooms - Feature not found: feature_ids=%v", req.FeatureIDs)
			handlers.RespondBadRequest(w, msgFeatureNotFound)

		case errors.Is(err, rooms.ErrAccessDenied):
			h.logger.Warn("POST /admin/rooms - Access denied: subject=%s", actor.Subject)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /admin/rooms - Failed to create room: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/rooms - Room created successfully: room_id=%d", room.ID)
	handlers.RespondJSON(w, http.StatusCreated, room)
}
