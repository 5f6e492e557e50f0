package create_booking

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// RoomRepository интерфейс репозитория комнат
// Внутри транзакции GetByID блокирует строку комнаты
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// BookingValidator проверка кандидата на бронирование
type BookingValidator interface {
	Validate(ctx context.Context, candidate domain.Candidate, excludingID *int64) error
}

// Notifier доставка подтверждения клиенту
type Notifier interface {
	Send(ctx context.Context, msg notifier.Message) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчики исходов создания бронирования
type Metrics interface {
	BookingCreated()
	BookingRejected(reason string)
	PersistenceConflict()
	NotificationFailed()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
