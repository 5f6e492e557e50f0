package models

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модели

// ListBookingsRequest фильтры списка бронирований в сыром виде (query string).
// Некорректные значения игнорируются.
type ListBookingsRequest struct {
	Status string
	RoomID string
	Date   string // YYYY-MM-DD в часовом поясе сервера
	Query  string
	Page   string // с 1
}

// ToDomainFilter конвертирует request в domain фильтр и возвращает номер страницы
func (r *ListBookingsRequest) ToDomainFilter(loc *time.Location, pageSize int) (domain.BookingsFilter, int) {
	filter := domain.BookingsFilter{Limit: pageSize}

	if status, err := domain.ParseBookingStatus(strings.TrimSpace(r.Status)); err == nil {
		filter.Status = &status
	}

	if roomID, err := strconv.ParseInt(strings.TrimSpace(r.RoomID), 10, 64); err == nil && roomID > 0 {
		filter.RoomID = &roomID
	}

	if date, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(r.Date), loc); err == nil {
		day := domain.DayOf(date, loc)
		filter.Day = &day
	}

	if q := strings.TrimSpace(r.Query); q != "" {
		filter.Query = &q
	}

	page := 1
	if p, err := strconv.Atoi(strings.TrimSpace(r.Page)); err == nil && p > 0 {
		page = p
	}
	// смещение не должно переполнять int и bigint OFFSET
	if pageSize > 0 && page > math.MaxInt32/pageSize {
		page = math.MaxInt32 / pageSize
	}
	filter.Offset = (page - 1) * pageSize

	return filter, page
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64     `json:"id"`
	CustomerName     string    `json:"customerName"`
	CustomerEmail    string    `json:"customerEmail"`
	RoomID           int64     `json:"roomId"`
	RoomName         string    `json:"roomName"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	Status           string    `json:"status"`
	StatusLabel      string    `json:"statusLabel"`
	Notes            *string   `json:"notes,omitempty"`
	ConfirmationCode string    `json:"confirmationCode"`
	CreatedAt        time.Time `json:"createdAt"`
}

// BookingListResponse страница списка бронирований
type BookingListResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	Total      int               `json:"total"`
	TotalPages int               `json:"totalPages"`
}

// BulkResponse результат массового действия
type BulkResponse struct {
	Affected int64 `json:"affected"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO, время в часовом поясе loc
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:               b.ID,
		CustomerName:     b.CustomerName,
		CustomerEmail:    b.CustomerEmail,
		RoomID:           b.RoomID,
		RoomName:         b.RoomName,
		StartTime:        b.StartTime.In(loc),
		EndTime:          b.EndTime.In(loc),
		Status:           string(b.Status),
		StatusLabel:      b.Status.Label(),
		Notes:            b.Notes,
		ConfirmationCode: b.ConfirmationCode.String(),
		CreatedAt:        b.CreatedAt.In(loc),
	}
}

// FromDomainBookingList конвертирует страницу domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location, page, pageSize, total int) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, loc); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	if pageSize > 0 {
		resp.TotalPages = (total + pageSize - 1) / pageSize
	}

	return resp
}
