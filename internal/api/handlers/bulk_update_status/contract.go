package bulk_update_status

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

type BookingService interface {
	BulkSetStatus(ctx context.Context, actor domain.Actor, ids []int64, status domain.BookingStatus) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
