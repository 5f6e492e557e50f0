package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func candidateAt(start time.Time, d time.Duration) Candidate {
	return Candidate{RoomID: 1, StartTime: start, EndTime: start.Add(d)}
}

func TestCheckTiming(t *testing.T) {
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name      string
		candidate Candidate
		want      error
	}{
		{name: "end before start", candidate: candidateAt(tomorrow, -time.Hour), want: ErrInvalidInterval},
		{name: "end equals start", candidate: candidateAt(tomorrow, 0), want: ErrInvalidInterval},
		{name: "reversed interval in the past reports ordering first", candidate: candidateAt(now.Add(-time.Hour), -time.Hour), want: ErrInvalidInterval},
		{name: "start in the past", candidate: candidateAt(now.Add(-time.Minute), time.Hour), want: ErrPastBooking},
		{name: "start exactly now", candidate: candidateAt(now, time.Hour), want: nil},
		{name: "29 minutes", candidate: candidateAt(tomorrow, 29*time.Minute), want: ErrTooShort},
		{name: "exactly 30 minutes", candidate: candidateAt(tomorrow, 30*time.Minute), want: nil},
		{name: "exactly 8 hours", candidate: candidateAt(tomorrow, 8*time.Hour), want: nil},
		{name: "8 hours 1 minute", candidate: candidateAt(tomorrow, 8*time.Hour+time.Minute), want: ErrTooLong},
		{name: "past and too short reports past", candidate: candidateAt(now.Add(-time.Hour), 10*time.Minute), want: ErrPastBooking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTiming(tt.candidate, now, DefaultDurationLimits())
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCheckTiming_InvalidIntervalIffNotOrdered(t *testing.T) {
	base := now.Add(48 * time.Hour)
	for _, d := range []time.Duration{-2 * time.Hour, -time.Nanosecond, 0, time.Nanosecond, time.Hour} {
		err := CheckTiming(candidateAt(base, d), now, DefaultDurationLimits())
		assert.Equal(t, d <= 0, errors.Is(err, ErrInvalidInterval), "duration %s", d)
	}
}

func TestFindConflict(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2026, 3, 11, h, m, 0, 0, time.UTC) }
	existing := &Booking{ID: 7, RoomID: 1, StartTime: at(10, 0), EndTime: at(11, 0), Status: StatusConfirmed}
	bookings := []*Booking{existing}

	tests := []struct {
		name      string
		candidate Candidate
		bookings  []*Booking
		excludeID *int64
		conflict  bool
	}{
		{name: "partial overlap", candidate: Candidate{RoomID: 1, StartTime: at(10, 30), EndTime: at(11, 30)}, bookings: bookings, conflict: true},
		{name: "touching end", candidate: Candidate{RoomID: 1, StartTime: at(11, 0), EndTime: at(12, 0)}, bookings: bookings},
		{name: "touching start", candidate: Candidate{RoomID: 1, StartTime: at(9, 0), EndTime: at(10, 0)}, bookings: bookings},
		{name: "contains existing", candidate: Candidate{RoomID: 1, StartTime: at(9, 0), EndTime: at(12, 0)}, bookings: bookings, conflict: true},
		{name: "other room", candidate: Candidate{RoomID: 2, StartTime: at(10, 30), EndTime: at(11, 30)}, bookings: bookings},
		{
			name:      "cancelled booking is exempt",
			candidate: Candidate{RoomID: 1, StartTime: at(10, 0), EndTime: at(11, 0)},
			bookings:  []*Booking{{ID: 8, RoomID: 1, StartTime: at(10, 0), EndTime: at(11, 0), Status: StatusCancelled}},
		},
		{name: "self excluded", candidate: Candidate{RoomID: 1, StartTime: at(10, 0), EndTime: at(11, 0)}, bookings: bookings, excludeID: &existing.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindConflict(tt.candidate, tt.bookings, tt.excludeID)
			assert.Equal(t, tt.conflict, got != nil)
		})
	}
}

func TestReasonOfAndMessageOf(t *testing.T) {
	wrapped := fmt.Errorf("%w: conflicts with booking id=3", ErrOverlap)

	reason, ok := ReasonOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ReasonOverlap, reason)
	assert.NotEmpty(t, MessageOf(wrapped))
	assert.True(t, IsRejection(ErrTooShort))

	_, ok = ReasonOf(errors.New("db down"))
	assert.False(t, ok)
	assert.Empty(t, MessageOf(errors.New("db down")))
}
