package bookingvalidator

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Validator проверяет кандидата на бронирование по правилам:
// порядок интервала, не в прошлом, минимальная и максимальная длительность, пересечения.
// Возвращается первая нарушенная проверка (domain.ErrInvalidInterval ... domain.ErrOverlap).
type Validator struct {
	reader       BookingReader
	timeProvider TimeProvider
	limits       domain.DurationLimits
}

// NewValidator создает валидатор с лимитами длительности limits
func NewValidator(reader BookingReader, limits domain.DurationLimits) *Validator {
	return &Validator{
		reader:       reader,
		timeProvider: &RealTimeProvider{},
		limits:       limits,
	}
}

// WithTimeProvider подменяет источник времени
func (v *Validator) WithTimeProvider(tp TimeProvider) *Validator {
	v.timeProvider = tp
	return v
}

// Limits возвращает лимиты длительности
func (v *Validator) Limits() domain.DurationLimits {
	return v.limits
}

// Validate применяет все правила. excludingID исключает само бронирование при повторной проверке.
// Чтение идёт через ctx, поэтому внутри транзакции проверка видит её снимок.
func (v *Validator) Validate(ctx context.Context, candidate domain.Candidate, excludingID *int64) error {
	if err := domain.CheckTiming(candidate, v.timeProvider.Now(), v.limits); err != nil {
		return err
	}

	return v.CheckConflict(ctx, candidate, excludingID)
}

// CheckConflict применяет только правило пересечений
func (v *Validator) CheckConflict(ctx context.Context, candidate domain.Candidate, excludingID *int64) error {
	if !candidate.Interval().IsOrdered() {
		return domain.ErrInvalidInterval
	}

	existing, err := v.reader.ListActiveOverlapping(ctx, candidate.RoomID, candidate.Interval(), excludingID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	if conflict := domain.FindConflict(candidate, existing, excludingID); conflict != nil {
		return fmt.Errorf("%w: conflicts with booking id=%d [%s, %s)", domain.ErrOverlap,
			conflict.ID, conflict.StartTime.Format(domain.DateTimeLocalFormat), conflict.EndTime.Format(domain.DateTimeLocalFormat))
	}

	return nil
}
