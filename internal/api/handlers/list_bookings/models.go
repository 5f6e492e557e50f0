package list_bookings

import (
	"net/url"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает фильтры из query string без проверки - сервис игнорирует некорректные значения
func ToServiceRequest(query url.Values) *models.ListBookingsRequest {
	return &models.ListBookingsRequest{
		Status: query.Get("status"),
		RoomID: query.Get("roomId"),
		Date:   query.Get("date"),
		Query:  query.Get("q"),
		Page:   query.Get("page"),
	}
}
