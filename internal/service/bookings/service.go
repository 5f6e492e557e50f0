package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/pgerr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

const (
	channelSingle = "single"
	channelBulk   = "bulk"
)

// Service сервис жизненного цикла бронирований для сотрудников
type Service struct {
	bookingRepo BookingRepository
	checker     ConflictChecker
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
	location    *time.Location
	pageSize    int
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	checker ConflictChecker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	location *time.Location,
	pageSize int,
) *Service {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	return &Service{
		bookingRepo: bookingRepo,
		checker:     checker,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
		location:    location,
		pageSize:    pageSize,
	}
}

// List возвращает страницу бронирований, сначала поздние.
// Некорректные фильтры (статус, комната, дата, страница) игнорируются.
func (s *Service) List(ctx context.Context, actor domain.Actor, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	if err := s.checkStaff(actor, "List"); err != nil {
		return nil, err
	}

	filter, page := req.ToDomainFilter(s.location, s.pageSize)
	s.logger.Info("List: staff=%s, status=%v, room=%v, date=%q, q=%q, page=%d",
		actor.Subject, filter.Status, filter.RoomID, req.Date, req.Query, page)

	var (
		bookings []*domain.Booking
		total    int
	)

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if total, err = s.bookingRepo.Count(txCtx, filter); err != nil {
			return err
		}
		bookings, err = s.bookingRepo.List(txCtx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d of %d bookings", len(bookings), total)
	return models.FromDomainBookingList(bookings, s.location, page, s.pageSize, total), nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error) {
	if err := s.checkStaff(actor, "GetByID"); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking, s.location), nil
}

// UpdateStatus переводит бронирование в новый статус.
// Переход из cancelled в активный статус повторно проверяет пересечения (без самого бронирования);
// при конфликте статус не меняется и возвращается domain.ErrOverlap.
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, rawStatus string) (*models.BookingResponse, error) {
	if err := s.checkStaff(actor, "UpdateStatus"); err != nil {
		return nil, err
	}

	status, err := domain.ParseBookingStatus(rawStatus)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%d", rawStatus, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, rawStatus)
	}

	s.logger.Info("UpdateStatus: staff=%s, booking id=%d -> %s", actor.Subject, id, status)

	var result *domain.Booking

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get booking: %w", ErrInternal, err)
		}

		if booking.ReopensInterval(status) {
			candidate := domain.Candidate{RoomID: booking.RoomID, StartTime: booking.StartTime, EndTime: booking.EndTime}
			if err := s.checker.CheckConflict(txCtx, candidate, &booking.ID); err != nil {
				return err
			}
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, status); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		booking.Status = status
		result = booking
		return nil
	})
	if err != nil {
		return nil, s.handleError("UpdateStatus", err)
	}

	s.metrics.StatusChanged(string(status), channelSingle, 1)
	s.logger.Info("UpdateStatus: booking id=%d is now %s", id, status)
	return models.FromDomainBooking(result, s.location), nil
}

// BulkSetStatus выставляет статус всем бронированиям из ids в одной транзакции.
// Возвращает число обновлённых бронирований (неизвестные ID не считаются, дубликаты схлопываются).
// Если хотя бы одно возобновляемое бронирование конфликтует с активными или с другим
// бронированием пакета, не меняется ничего.
func (s *Service) BulkSetStatus(ctx context.Context, actor domain.Actor, ids []int64, status domain.BookingStatus) (int64, error) {
	if err := s.checkStaff(actor, "BulkSetStatus"); err != nil {
		return 0, err
	}
	if !status.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}

	s.logger.Info("BulkSetStatus: staff=%s, %d bookings -> %s", actor.Subject, len(ids), status)

	var affected int64

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		bookings, err := s.bookingRepo.ListByIDs(txCtx, ids)
		if err != nil {
			return fmt.Errorf("%w: BulkSetStatus - list bookings: %w", ErrInternal, err)
		}

		reopened := make([]*domain.Booking, 0)
		for _, b := range bookings {
			if b.ReopensInterval(status) {
				reopened = append(reopened, b)
			}
		}

		for i, b := range reopened {
			candidate := domain.Candidate{RoomID: b.RoomID, StartTime: b.StartTime, EndTime: b.EndTime}
			if err := s.checker.CheckConflict(txCtx, candidate, &b.ID); err != nil {
				return err
			}
			// пересечения внутри пакета
			if conflict := domain.FindConflict(candidate, asActive(reopened[i+1:]), nil); conflict != nil {
				return fmt.Errorf("%w: bookings id=%d and id=%d overlap", domain.ErrOverlap, b.ID, conflict.ID)
			}
		}

		affected, err = s.bookingRepo.BulkUpdateStatus(txCtx, ids, status)
		return err
	})
	if err != nil {
		return 0, s.handleError("BulkSetStatus", err)
	}

	s.metrics.StatusChanged(string(status), channelBulk, int(affected))
	s.logger.Info("BulkSetStatus: %d bookings are now %s", affected, status)
	return affected, nil
}

func (s *Service) checkStaff(actor domain.Actor, op string) error {
	if !actor.IsStaff {
		s.logger.Warn("%s: access denied for subject=%q", op, actor.Subject)
		return ErrAccessDenied
	}
	return nil
}

// handleError приводит ошибку транзакции к ошибке сервиса
func (s *Service) handleError(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrOverlap):
		s.logger.Warn("%s: rejected: %v", op, err)
		return err
	case errors.Is(err, ErrBookingNotFound):
		s.logger.Warn("%s: %v", op, err)
		return err
	case errors.Is(err, bookingRepo.ErrPersistenceConflict), errors.Is(err, txmanager.ErrSerialization), pgerr.IsConflict(err):
		s.metrics.PersistenceConflict()
		s.logger.Warn("%s: persistence conflict: %v", op, err)
		return fmt.Errorf("%w: concurrent change of the same interval", domain.ErrOverlap)
	}

	s.logger.Error("%s: %v", op, err)
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// asActive представляет возобновляемые бронирования как уже активные
func asActive(bookings []*domain.Booking) []*domain.Booking {
	result := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		copied := *b
		copied.Status = domain.StatusPending
		result = append(result, &copied)
	}
	return result
}
