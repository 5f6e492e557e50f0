package rooms

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	roomsCache "github.com/m04kA/SMC-RoomBookingService/internal/infra/cache/rooms"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
)

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Service сервис каталога комнат
type Service struct {
	roomRepo      RoomRepository
	bookingReader BookingReader
	cache         Cache
	txManager     TransactionManager
	logger        Logger
	location      *time.Location
	timeProvider  TimeProvider
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	roomRepo RoomRepository,
	bookingReader BookingReader,
	cache Cache,
	txManager TransactionManager,
	logger Logger,
	location *time.Location,
) *Service {
	return &Service{
		roomRepo:      roomRepo,
		bookingReader: bookingReader,
		cache:         cache,
		txManager:     txManager,
		logger:        logger,
		location:      location,
		timeProvider:  realTimeProvider{},
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// ListActive возвращает активные комнаты (кэшируются в redis)
func (s *Service) ListActive(ctx context.Context) (*models.RoomListResponse, error) {
	rooms, err := s.cache.GetActive(ctx)
	if err == nil {
		return models.FromDomainRoomList(rooms), nil
	}
	if !errors.Is(err, roomsCache.ErrCacheMiss) {
		s.logger.Warn("ListActive: cache unavailable: %v", err)
	}

	rooms, err = s.roomRepo.List(ctx, domain.RoomsFilter{Active: ptr.Ptr(true)})
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	if err := s.cache.SetActive(ctx, rooms); err != nil {
		s.logger.Warn("ListActive: failed to cache rooms: %v", err)
	}

	return models.FromDomainRoomList(rooms), nil
}

// GetActive возвращает активную комнату с занятыми интервалами на день date (YYYY-MM-DD).
// Пустая или некорректная дата - сегодня по часам сервера.
func (s *Service) GetActive(ctx context.Context, id int64, date string) (*models.RoomDetailResponse, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("GetActive: room id=%d not found", id)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetActive: repository error for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetActive - repository error: %v", ErrInternal, err)
	}
	if !room.IsActive {
		s.logger.Warn("GetActive: room id=%d is inactive", id)
		return nil, ErrRoomNotFound
	}

	day := domain.DayOf(s.timeProvider.Now(), s.location)
	if parsed, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(date), s.location); err == nil {
		day = domain.DayOf(parsed, s.location)
	}

	bookings, err := s.bookingReader.ListActiveOverlapping(ctx, room.ID, day, nil)
	if err != nil {
		s.logger.Error("GetActive: failed to get bookings for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetActive - bookings error: %v", ErrInternal, err)
	}

	return &models.RoomDetailResponse{
		Room: *models.FromDomainRoom(room),
		Date: day.Start.Format(domain.DateFormat),
		Busy: models.FromDomainBusy(bookings, s.location),
		Form: models.BookingForm{RoomID: room.ID},
	}, nil
}

// ListAll возвращает все комнаты (включая неактивные) для сотрудников
func (s *Service) ListAll(ctx context.Context, actor domain.Actor, req *models.ListRoomsRequest) (*models.RoomListResponse, error) {
	if err := s.checkStaff(actor, "ListAll"); err != nil {
		return nil, err
	}

	filter := domain.RoomsFilter{}
	if active, err := strconv.ParseBool(strings.TrimSpace(req.Active)); err == nil {
		filter.Active = &active
	}
	if q := strings.TrimSpace(req.Query); q != "" {
		filter.Query = &q
	}

	rooms, err := s.roomRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRoomList(rooms), nil
}

// Create создает комнату
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.RoomRequest) (*models.RoomResponse, error) {
	if err := s.checkStaff(actor, "Create"); err != nil {
		return nil, err
	}

	room := &domain.Room{IsActive: true}
	applyRoomRequest(room, req)

	s.logger.Info("Create: staff=%s creating room %q", actor.Subject, room.Name)

	var created *domain.Room
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.prepareRoom(txCtx, room, req.FeatureIDs); err != nil {
			return err
		}
		var err error
		created, err = s.roomRepo.Create(txCtx, room)
		return err
	})
	if err != nil {
		return nil, s.handleError("Create", err)
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("Create: room id=%d created", created.ID)
	return models.FromDomainRoom(created), nil
}

// Update изменяет комнату, включая активность и набор особенностей
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req *models.RoomRequest) (*models.RoomResponse, error) {
	if err := s.checkStaff(actor, "Update"); err != nil {
		return nil, err
	}

	s.logger.Info("Update: staff=%s updating room id=%d", actor.Subject, id)

	var updated *domain.Room
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		room, err := s.roomRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		applyRoomRequest(room, req)

		if err := s.prepareRoom(txCtx, room, req.FeatureIDs); err != nil {
			return err
		}
		updated, err = s.roomRepo.Update(txCtx, room)
		return err
	})
	if err != nil {
		return nil, s.handleError("Update", err)
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("Update: room id=%d updated, active=%t", updated.ID, updated.IsActive)
	return models.FromDomainRoom(updated), nil
}

// ListFeatures возвращает все особенности комнат
func (s *Service) ListFeatures(ctx context.Context, actor domain.Actor) (*models.FeatureListResponse, error) {
	if err := s.checkStaff(actor, "ListFeatures"); err != nil {
		return nil, err
	}

	features, err := s.roomRepo.ListFeatures(ctx)
	if err != nil {
		s.logger.Error("ListFeatures: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListFeatures - repository error: %v", ErrInternal, err)
	}

	return &models.FeatureListResponse{Features: models.FromDomainFeatures(features)}, nil
}

// CreateFeature создает особенность комнаты
func (s *Service) CreateFeature(ctx context.Context, actor domain.Actor, req *models.FeatureRequest) (*models.FeatureResponse, error) {
	if err := s.checkStaff(actor, "CreateFeature"); err != nil {
		return nil, err
	}

	feature := &domain.RoomFeature{
		Name: strings.TrimSpace(req.Name),
		Icon: strings.TrimSpace(req.Icon),
	}
	if feature.Name == "" || len([]rune(feature.Name)) > domain.MaxFeatureNameLength {
		return nil, fmt.Errorf("%w: feature name must be 1..%d characters", ErrInvalidInput, domain.MaxFeatureNameLength)
	}
	if len([]rune(feature.Icon)) > domain.MaxFeatureIconLength {
		return nil, fmt.Errorf("%w: feature icon is longer than %d characters", ErrInvalidInput, domain.MaxFeatureIconLength)
	}

	created, err := s.roomRepo.CreateFeature(ctx, feature)
	if err != nil {
		s.logger.Error("CreateFeature: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateFeature - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateFeature: feature id=%d %q created", created.ID, created.Name)
	resp := models.FromDomainFeature(*created)
	return &resp, nil
}

// prepareRoom проверяет поля комнаты и подставляет особенности из каталога
func (s *Service) prepareRoom(ctx context.Context, room *domain.Room, featureIDs []int64) error {
	if err := room.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ids := uniqueIDs(featureIDs)
	features, err := s.roomRepo.GetFeaturesByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(features) != len(ids) {
		return fmt.Errorf("%w: requested %d, found %d", ErrFeatureNotFound, len(ids), len(features))
	}

	room.Features = features
	return nil
}

func (s *Service) checkStaff(actor domain.Actor, op string) error {
	if !actor.IsStaff {
		s.logger.Warn("%s: access denied for subject=%q", op, actor.Subject)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) handleError(op string, err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrFeatureNotFound):
		s.logger.Warn("%s: %v", op, err)
		return err
	case errors.Is(err, roomRepo.ErrRoomNotFound):
		s.logger.Warn("%s: %v", op, err)
		return ErrRoomNotFound
	case errors.Is(err, roomRepo.ErrFeatureNotFound):
		s.logger.Warn("%s: %v", op, err)
		return fmt.Errorf("%w: %v", ErrFeatureNotFound, err)
	case errors.Is(err, roomRepo.ErrConstraint):
		s.logger.Warn("%s: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func applyRoomRequest(room *domain.Room, req *models.RoomRequest) {
	room.Name = strings.TrimSpace(req.Name)
	room.Description = strings.TrimSpace(req.Description)
	room.Capacity = req.Capacity
	room.PricePerHour = req.PricePerHour
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
