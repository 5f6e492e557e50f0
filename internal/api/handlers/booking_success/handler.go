package booking_success

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
)

const msgBookingAccepted = "Спасибо! Ваше бронирование принято. Подтверждение отправлено на указанный email."

// Response общее подтверждение приема бронирования
type Response struct {
	Message string `json:"message"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Handle GET /api/v1/bookings/success
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{Message: msgBookingAccepted})
}
