package create_feature

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные данные особенности: "
	msgInvalidFeature     = "некорректные данные особенности"
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

// Handle POST /api/v1/admin/features
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/features - Missing actor")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateFeatureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/features - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /admin/features - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgValidationFailed+err.Error())
		return
	}

	feature, err := h.service.CreateFeature(r.Context(), actor, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("POST /admin/features - Invalid feature: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFeature)

		case errors.Is(err, rooms.ErrAccessDenied):
			h.logger.Warn("POST /admin/features - Access denied: subject=%s", actor.Subject)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /admin/features - Failed to create feature: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/features - Feature created successfully: feature_id=%d", feature.ID)
	handlers.RespondJSON(w, http.StatusCreated, feature)
}
