package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-RoomBookingService/pkg/pgerr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo          BookingRepository
	roomRepo             RoomRepository
	validator            BookingValidator
	notifier             Notifier
	txManager            TransactionManager
	metrics              Metrics
	logger               Logger
	location             *time.Location
	notificationRequired bool
	newCode              func() uuid.UUID
}

// NewUseCase создает новый экземпляр use case.
// notificationRequired - отправка подтверждения часть транзакции: ошибка доставки откатывает бронирование.
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	validator BookingValidator,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	location *time.Location,
	notificationRequired bool,
) *UseCase {
	return &UseCase{
		bookingRepo:          bookingRepo,
		roomRepo:             roomRepo,
		validator:            validator,
		notifier:             notifier,
		txManager:            txManager,
		metrics:              metrics,
		logger:               logger,
		location:             location,
		notificationRequired: notificationRequired,
		newCode:              uuid.New,
	}
}

// Execute выполняет use case создания бронирования.
// Блокировка комнаты, проверка пересечений, вставка и (если обязательна) отправка
// подтверждения выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: room=%d, start=%s, end=%s, email=%s",
		req.RoomID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339), req.CustomerEmail)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	candidate := domain.Candidate{
		RoomID:    req.RoomID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	var result *domain.Booking

	// 2. Проверка и сохранение в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем строку комнаты: создание бронирований одной комнаты идёт последовательно
		room, err := uc.roomRepo.GetByID(txCtx, req.RoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("%w: failed to get room: %w", ErrInternal, err)
		}
		if !room.IsActive {
			return fmt.Errorf("%w: room id=%d is inactive", ErrRoomNotFound, room.ID)
		}

		// 2.2. Правила бронирования (включая пересечения в снимке транзакции)
		if err := uc.validator.Validate(txCtx, candidate, nil); err != nil {
			if domain.IsRejection(err) {
				return err
			}
			return fmt.Errorf("%w: failed to validate booking: %w", ErrInternal, err)
		}

		// 2.3. Сохраняем бронирование
		booking := &domain.Booking{
			CustomerName:     req.CustomerName,
			CustomerEmail:    req.CustomerEmail,
			RoomID:           room.ID,
			RoomName:         room.Name,
			StartTime:        req.StartTime,
			EndTime:          req.EndTime,
			Status:           domain.StatusPending,
			Notes:            req.Notes,
			ConfirmationCode: uc.newCode(),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrPersistenceConflict) {
				return err
			}
			if errors.Is(err, bookingRepo.ErrRoomReference) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}
		created.RoomName = room.Name

		// 2.4. Обязательное подтверждение - последний шаг транзакции
		if uc.notificationRequired {
			if err := uc.notifier.Send(txCtx, notifier.NewBookingMessage(created, uc.location)); err != nil {
				return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.handleError(req, err)
	}

	uc.metrics.BookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d, room=%d, code=%s",
		result.ID, result.RoomID, result.ConfirmationCode)

	// 3. Необязательное подтверждение отправляем после фиксации
	if !uc.notificationRequired {
		if err := uc.notifier.Send(ctx, notifier.NewBookingMessage(result, uc.location)); err != nil {
			uc.metrics.NotificationFailed()
			uc.logger.Error("CreateBooking: failed to send confirmation for booking id=%d: %v", result.ID, err)
		}
	}

	return toResponse(result), nil
}

// handleError приводит ошибку транзакции к ошибке use case и учитывает её в метриках
func (uc *UseCase) handleError(req *Request, err error) error {
	if reason, ok := domain.ReasonOf(err); ok {
		uc.metrics.BookingRejected(string(reason))
		uc.logger.Warn("CreateBooking: rejected for room=%d: %v", req.RoomID, err)
		return err
	}

	// Параллельная транзакция заняла интервал между проверкой и записью
	if isPersistenceConflict(err) {
		uc.metrics.PersistenceConflict()
		uc.logger.Warn("CreateBooking: persistence conflict for room=%d [%s, %s): %v",
			req.RoomID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339), err)
		return fmt.Errorf("%w: concurrent booking for the same interval", domain.ErrOverlap)
	}

	switch {
	case errors.Is(err, ErrRoomNotFound):
		uc.logger.Warn("CreateBooking: room id=%d not found: %v", req.RoomID, err)
	case errors.Is(err, ErrNotificationFailed):
		uc.metrics.NotificationFailed()
		uc.logger.Error("CreateBooking: booking rolled back, confirmation not sent: %v", err)
	default:
		uc.logger.Error("CreateBooking: failed for room=%d: %v", req.RoomID, err)
		if !errors.Is(err, ErrInternal) {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}
	}

	return err
}

func isPersistenceConflict(err error) bool {
	return errors.Is(err, bookingRepo.ErrPersistenceConflict) ||
		errors.Is(err, txmanager.ErrSerialization) ||
		pgerr.IsConflict(err)
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:               b.ID,
		ConfirmationCode: b.ConfirmationCode,
		Status:           string(b.Status),
		StatusLabel:      b.Status.Label(),
		RoomID:           b.RoomID,
		RoomName:         b.RoomName,
		CustomerName:     b.CustomerName,
		CustomerEmail:    b.CustomerEmail,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Notes:            b.Notes,
		CreatedAt:        b.CreatedAt,
	}
}
