package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string  `json:"customerName" validate:"required,max=100"`
	CustomerEmail string  `json:"customerEmail" validate:"required,email,max=254"`
	RoomID        int64   `json:"roomId" validate:"required,gt=0"`
	StartTime     string  `json:"startTime" validate:"required"` // "2025-10-15T10:00" или RFC 3339
	EndTime       string  `json:"endTime" validate:"required"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64     `json:"id"`
	ConfirmationCode string    `json:"confirmationCode"`
	Status           string    `json:"status"`
	StatusLabel      string    `json:"statusLabel"`
	RoomID           int64     `json:"roomId"`
	RoomName         string    `json:"roomName"`
	CustomerName     string    `json:"customerName"`
	CustomerEmail    string    `json:"customerEmail"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	Notes            *string   `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Время без смещения трактуется в часовом поясе сервера.
func (r *CreateBookingRequest) ToUseCaseRequest(loc *time.Location) (*createBooking.Request, error) {
	startTime, err := handlers.ParseDateTime(r.StartTime, loc)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	endTime, err := handlers.ParseDateTime(r.EndTime, loc)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &createBooking.Request{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		RoomID:        r.RoomID,
		StartTime:     startTime,
		EndTime:       endTime,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response, loc *time.Location) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		ConfirmationCode: resp.ConfirmationCode.String(),
		Status:           resp.Status,
		StatusLabel:      resp.StatusLabel,
		RoomID:           resp.RoomID,
		RoomName:         resp.RoomName,
		CustomerName:     resp.CustomerName,
		CustomerEmail:    resp.CustomerEmail,
		StartTime:        resp.StartTime.In(loc),
		EndTime:          resp.EndTime.In(loc),
		Notes:            resp.Notes,
		CreatedAt:        resp.CreatedAt.In(loc),
	}
}
