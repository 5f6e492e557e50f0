package bookings

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Count(ctx context.Context, filter domain.BookingsFilter) (int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	BulkUpdateStatus(ctx context.Context, ids []int64, status domain.BookingStatus) (int64, error)
}

// ConflictChecker правило пересечений валидатора бронирований
type ConflictChecker interface {
	CheckConflict(ctx context.Context, candidate domain.Candidate, excludingID *int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчики смены статусов
type Metrics interface {
	StatusChanged(status, channel string, count int)
	PersistenceConflict()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
