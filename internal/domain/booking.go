package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// ErrInvalidStatus is returned for a status outside the lifecycle
var ErrInvalidStatus = errors.New("domain: invalid booking status")

// ParseBookingStatus converts a raw value into a lifecycle status
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// IsValid returns true if the status is one of pending, confirmed, cancelled
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// IsActive returns true if the status occupies the room's interval
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Label returns the human-readable status name
func (s BookingStatus) Label() string {
	switch s {
	case StatusPending:
		return "Ожидает подтверждения"
	case StatusConfirmed:
		return "Подтверждено"
	case StatusCancelled:
		return "Отменено"
	}
	return string(s)
}

// Booking represents a reservation of one room for one contiguous interval
type Booking struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	RoomID        int64
	RoomName      string // заполняется при чтении (JOIN rooms)
	StartTime     time.Time
	EndTime       time.Time
	Status        BookingStatus
	Notes         *string

	// Immutable after creation
	ConfirmationCode uuid.UUID
	CreatedAt        time.Time
}

// Interval returns the half-open interval [StartTime, EndTime)
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// IsActive returns true if the booking blocks its interval for other bookings
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// ReopensInterval returns true if moving to next makes a cancelled booking block its interval again
func (b *Booking) ReopensInterval(next BookingStatus) bool {
	return !b.IsActive() && next.IsActive()
}

// Candidate is a proposed (room, start, end) triple checked before persisting
type Candidate struct {
	RoomID    int64
	StartTime time.Time
	EndTime   time.Time
}

// Interval returns the candidate's half-open interval
func (c Candidate) Interval() Interval {
	return Interval{Start: c.StartTime, End: c.EndTime}
}

// BookingsFilter фильтр списка бронирований для сотрудников
type BookingsFilter struct {
	Status *BookingStatus // nil - все статусы
	RoomID *int64         // nil - все комнаты
	Day    *Interval      // календарный день в часовом поясе сервера
	Query  *string        // поиск по имени/email клиента и названию комнаты
	Limit  int
	Offset int
}
