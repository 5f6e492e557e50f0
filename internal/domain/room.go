package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidRoom is returned when room fields violate catalog constraints
	ErrInvalidRoom = errors.New("domain: invalid room")
)

// RoomFeature is a tag attached to rooms (projector, whiteboard, ...)
type RoomFeature struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"` // CSS-класс иконки
}

// Room is a bookable resource
type Room struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Capacity     int             `json:"capacity"`
	PricePerHour decimal.Decimal `json:"pricePerHour"`
	Features     []RoomFeature   `json:"features"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Validate checks catalog field constraints: name, capacity >= 1, price >= 0
func (r *Room) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRoom)
	}
	if len([]rune(r.Name)) > MaxRoomNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidRoom, MaxRoomNameLength)
	}
	if r.Capacity < MinRoomCapacity {
		return fmt.Errorf("%w: capacity must be at least %d", ErrInvalidRoom, MinRoomCapacity)
	}
	if r.PricePerHour.IsNegative() {
		return fmt.Errorf("%w: price per hour must not be negative", ErrInvalidRoom)
	}
	return nil
}

// DisplayName returns the name with capacity, e.g. "Переговорная (до 8 чел.)"
func (r *Room) DisplayName() string {
	return fmt.Sprintf("%s (до %d чел.)", r.Name, r.Capacity)
}

// FeatureIDs returns identifiers of the room's features
func (r *Room) FeatureIDs() []int64 {
	ids := make([]int64, 0, len(r.Features))
	for _, f := range r.Features {
		ids = append(ids, f.ID)
	}
	return ids
}

// RoomsFilter фильтр каталога комнат
type RoomsFilter struct {
	Active *bool   // nil - активные и неактивные
	Query  *string // поиск по названию и описанию
}
