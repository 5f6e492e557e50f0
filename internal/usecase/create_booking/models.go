package create_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerName  string
	CustomerEmail string
	RoomID        int64
	StartTime     time.Time
	EndTime       time.Time
	Notes         *string // Дополнительные пожелания (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               int64
	ConfirmationCode uuid.UUID
	Status           string
	StatusLabel      string
	RoomID           int64
	RoomName         string
	CustomerName     string
	CustomerEmail    string
	StartTime        time.Time
	EndTime          time.Time
	Notes            *string
	CreatedAt        time.Time
}
