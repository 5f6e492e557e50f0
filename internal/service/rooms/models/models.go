package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модели

// RoomRequest создание или изменение комнаты
type RoomRequest struct {
	Name         string
	Description  string
	Capacity     int
	PricePerHour decimal.Decimal
	IsActive     *bool // nil при создании - активна
	FeatureIDs   []int64
}

// FeatureRequest создание особенности комнаты
type FeatureRequest struct {
	Name string
	Icon string
}

// ListRoomsRequest фильтры списка комнат для сотрудников в сыром виде
type ListRoomsRequest struct {
	Active string // "true" / "false", иначе все
	Query  string
}

// Response модели

// FeatureResponse особенность комнаты
type FeatureResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// RoomResponse комната каталога
type RoomResponse struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	DisplayName  string            `json:"displayName"`
	Description  string            `json:"description"`
	Capacity     int               `json:"capacity"`
	PricePerHour string            `json:"pricePerHour"` // "150.00"
	Features     []FeatureResponse `json:"features"`
	IsActive     bool              `json:"isActive"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// RoomListResponse список комнат
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// FeatureListResponse список особенностей
type FeatureListResponse struct {
	Features []FeatureResponse `json:"features"`
}

// BusyInterval занятый полуинтервал [start, end)
type BusyInterval struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
}

// BookingForm предзаполненная форма бронирования
type BookingForm struct {
	RoomID int64 `json:"roomId"`
}

// RoomDetailResponse карточка комнаты с занятостью на день
type RoomDetailResponse struct {
	Room RoomResponse   `json:"room"`
	Date string         `json:"date"` // YYYY-MM-DD
	Busy []BusyInterval `json:"busy"`
	Form BookingForm    `json:"form"`
}

// Методы конвертации

func FromDomainFeature(f domain.RoomFeature) FeatureResponse {
	return FeatureResponse{ID: f.ID, Name: f.Name, Icon: f.Icon}
}

func FromDomainFeatures(features []domain.RoomFeature) []FeatureResponse {
	resp := make([]FeatureResponse, 0, len(features))
	for _, f := range features {
		resp = append(resp, FromDomainFeature(f))
	}
	return resp
}

// FromDomainRoom конвертирует domain модель в DTO
func FromDomainRoom(r *domain.Room) *RoomResponse {
	if r == nil {
		return nil
	}
	return &RoomResponse{
		ID:           r.ID,
		Name:         r.Name,
		DisplayName:  r.DisplayName(),
		Description:  r.Description,
		Capacity:     r.Capacity,
		PricePerHour: r.PricePerHour.StringFixed(2),
		Features:     FromDomainFeatures(r.Features),
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// FromDomainRoomList конвертирует список domain моделей в DTO
func FromDomainRoomList(rooms []*domain.Room) *RoomListResponse {
	resp := &RoomListResponse{Rooms: make([]RoomResponse, 0, len(rooms))}
	for _, r := range rooms {
		if room := FromDomainRoom(r); room != nil {
			resp.Rooms = append(resp.Rooms, *room)
		}
	}
	return resp
}

// FromDomainBusy конвертирует активные бронирования в занятые интервалы
func FromDomainBusy(bookings []*domain.Booking, loc *time.Location) []BusyInterval {
	busy := make([]BusyInterval, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, BusyInterval{
			Start:  b.StartTime.In(loc),
			End:    b.EndTime.In(loc),
			Status: string(b.Status),
		})
	}
	return busy
}
