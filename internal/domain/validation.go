package domain

import (
	"errors"
	"fmt"
	"time"
)

// Reason is a machine-readable rejection code of the booking validator
type Reason string

const (
	ReasonInvalidInterval Reason = "invalid_interval"
	ReasonPastBooking     Reason = "past_booking"
	ReasonTooShort        Reason = "too_short"
	ReasonTooLong         Reason = "too_long"
	ReasonOverlap         Reason = "overlap"
)

// Rejection errors. Rules are applied in this order, first failure wins.
var (
	ErrInvalidInterval = errors.New("booking rejected: end time must be after start time")
	ErrPastBooking     = errors.New("booking rejected: start time is in the past")
	ErrTooShort        = errors.New("booking rejected: duration is below the minimum")
	ErrTooLong         = errors.New("booking rejected: duration is above the maximum")
	ErrOverlap         = errors.New("booking rejected: interval overlaps an active booking")
)

var rejections = []struct {
	err     error
	reason  Reason
	message string
}{
	{ErrInvalidInterval, ReasonInvalidInterval, "Время окончания должно быть позже времени начала"},
	{ErrPastBooking, ReasonPastBooking, "Нельзя бронировать комнату в прошлом"},
	{ErrTooShort, ReasonTooShort, "Бронирование слишком короткое"},
	{ErrTooLong, ReasonTooLong, "Бронирование слишком длинное"},
	{ErrOverlap, ReasonOverlap, "Выбранное время уже занято. Пожалуйста, выберите другое время."},
}

// ReasonOf returns the rejection reason carried by err, if any
func ReasonOf(err error) (Reason, bool) {
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			return r.reason, true
		}
	}
	return "", false
}

// MessageOf returns the user-facing message for a rejection error
func MessageOf(err error) string {
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			return r.message
		}
	}
	return ""
}

// IsRejection returns true if err is one of the validator's rejection errors
func IsRejection(err error) bool {
	_, ok := ReasonOf(err)
	return ok
}

// DurationLimits bounds the length of a booking (both ends inclusive)
type DurationLimits struct {
	Min time.Duration
	Max time.Duration
}

// DefaultDurationLimits returns 30 minutes .. 8 hours
func DefaultDurationLimits() DurationLimits {
	return DurationLimits{Min: DefaultMinBookingDuration, Max: DefaultMaxBookingDuration}
}

// CheckTiming applies the temporal rules: ordering, not in the past, minimum and maximum duration
func CheckTiming(c Candidate, now time.Time, limits DurationLimits) error {
	interval := c.Interval()

	if !interval.IsOrdered() {
		return ErrInvalidInterval
	}

	if c.StartTime.Before(now) {
		return ErrPastBooking
	}

	duration := interval.Duration()
	if duration < limits.Min {
		return fmt.Errorf("%w: %s < %s", ErrTooShort, duration, limits.Min)
	}
	if duration > limits.Max {
		return fmt.Errorf("%w: %s > %s", ErrTooLong, duration, limits.Max)
	}

	return nil
}

// FindConflict returns the first active booking of the candidate's room that overlaps it,
// skipping excludeID when given
func FindConflict(c Candidate, bookings []*Booking, excludeID *int64) *Booking {
	interval := c.Interval()
	for _, b := range bookings {
		if b.RoomID != c.RoomID || !b.IsActive() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.Interval().Overlaps(interval) {
			return b
		}
	}
	return nil
}
