package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseBookingStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "cancelled"} {
		status, err := ParseBookingStatus(s)
		assert.NoError(t, err)
		assert.Equal(t, BookingStatus(s), status)
	}

	_, err := ParseBookingStatus("cancelled_by_user")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestBooking_ReopensInterval(t *testing.T) {
	cancelled := &Booking{Status: StatusCancelled}
	pending := &Booking{Status: StatusPending}

	assert.True(t, cancelled.ReopensInterval(StatusPending))
	assert.True(t, cancelled.ReopensInterval(StatusConfirmed))
	assert.False(t, cancelled.ReopensInterval(StatusCancelled))
	assert.False(t, pending.ReopensInterval(StatusConfirmed))
}

func TestRoom_Validate(t *testing.T) {
	valid := Room{Name: "Переговорная", Capacity: 1, PricePerHour: decimal.Zero}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		room Room
	}{
		{name: "empty name", room: Room{Name: "  ", Capacity: 4, PricePerHour: decimal.NewFromInt(10)}},
		{name: "zero capacity", room: Room{Name: "A", Capacity: 0, PricePerHour: decimal.NewFromInt(10)}},
		{name: "negative price", room: Room{Name: "A", Capacity: 2, PricePerHour: decimal.NewFromFloat(-0.01)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.room.Validate(), ErrInvalidRoom)
		})
	}
}

func TestDayOf(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 22:30 UTC is 01:30 next day in UTC+3
	day := DayOf(time.Date(2026, 3, 10, 22, 30, 0, 0, time.UTC), loc)

	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, loc), day.Start)
	assert.Equal(t, 24*time.Hour, day.Duration())
}
