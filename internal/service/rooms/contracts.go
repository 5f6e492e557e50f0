package rooms

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// RoomRepository интерфейс репозитория каталога
type RoomRepository interface {
	List(ctx context.Context, filter domain.RoomsFilter) ([]*domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) (*domain.Room, error)
	ListFeatures(ctx context.Context) ([]domain.RoomFeature, error)
	GetFeaturesByIDs(ctx context.Context, ids []int64) ([]domain.RoomFeature, error)
	CreateFeature(ctx context.Context, feature *domain.RoomFeature) (*domain.RoomFeature, error)
}

// BookingReader источник занятых интервалов комнаты
type BookingReader interface {
	ListActiveOverlapping(ctx context.Context, roomID int64, interval domain.Interval, excludeID *int64) ([]*domain.Booking, error)
}

// Cache кэш публичного каталога
type Cache interface {
	GetActive(ctx context.Context) ([]*domain.Room, error)
	SetActive(ctx context.Context, rooms []*domain.Room) error
	Invalidate(ctx context.Context)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
