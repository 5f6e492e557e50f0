package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/pgerr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

var roomColumns = []string{
	"id",
	"name",
	"description",
	"capacity",
	"price_per_hour",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога комнат и их особенностей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает комнаты по фильтру с особенностями, сортировка по названию
func (r *Repository) List(ctx context.Context, filter domain.RoomsFilter) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan room: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	if err := r.attachFeatures(ctx, rooms); err != nil {
		return nil, err
	}

	return rooms, nil
}

// GetByID получает комнату с особенностями.
// Внутри транзакции строка комнаты блокируется (FOR UPDATE): так создание
// бронирований в одну комнату выполняется последовательно.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	room, err := scanRoom(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %w", ErrScanRow, err)
	}

	if err := r.attachFeatures(ctx, []*domain.Room{room}); err != nil {
		return nil, err
	}

	return room, nil
}

// Create создает комнату и связи с особенностями
func (r *Repository) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rooms").
		Columns("name", "description", "capacity", "price_per_hour", "is_active").
		Values(room.Name, room.Description, room.Capacity, room.PricePerHour, room.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return nil, classify("Create - execute insert", err)
	}

	if err := r.replaceFeatureLinks(ctx, room.ID, room.FeatureIDs()); err != nil {
		return nil, err
	}

	return room, nil
}

// Update обновляет поля комнаты и заменяет набор особенностей
func (r *Repository) Update(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rooms").
		Set("name", room.Name).
		Set("description", room.Description).
		Set("capacity", room.Capacity).
		Set("price_per_hour", room.PricePerHour).
		Set("is_active", room.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": room.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&room.CreatedAt, &room.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, classify("Update - execute update", err)
	}

	if err := r.replaceFeatureLinks(ctx, room.ID, room.FeatureIDs()); err != nil {
		return nil, err
	}

	return room, nil
}

// ListFeatures возвращает все особенности, сортировка по названию
func (r *Repository) ListFeatures(ctx context.Context) ([]domain.RoomFeature, error) {
	return r.selectFeatures(ctx, "ListFeatures", nil)
}

// GetFeaturesByIDs возвращает особенности по списку ID (отсутствующие пропускаются)
func (r *Repository) GetFeaturesByIDs(ctx context.Context, ids []int64) ([]domain.RoomFeature, error) {
	if len(ids) == 0 {
		return []domain.RoomFeature{}, nil
	}
	return r.selectFeatures(ctx, "GetFeaturesByIDs", squirrel.Expr("id = ANY(?)", pq.Array(ids)))
}

// CreateFeature создает особенность комнаты
func (r *Repository) CreateFeature(ctx context.Context, feature *domain.RoomFeature) (*domain.RoomFeature, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("room_features").
		Columns("name", "icon").
		Values(feature.Name, feature.Icon).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateFeature - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&feature.ID); err != nil {
		return nil, classify("CreateFeature - execute insert", err)
	}

	return feature, nil
}

func (r *Repository) selectFeatures(ctx context.Context, op string, where squirrel.Sqlizer) ([]domain.RoomFeature, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "name", "icon").
		From("room_features").
		OrderBy("name ASC", "id ASC")
	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	features := make([]domain.RoomFeature, 0)
	for rows.Next() {
		var f domain.RoomFeature
		if err := rows.Scan(&f.ID, &f.Name, &f.Icon); err != nil {
			return nil, fmt.Errorf("%w: %s - scan feature: %v", ErrScanRow, op, err)
		}
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return features, nil
}

// attachFeatures загружает особенности для набора комнат одним запросом
func (r *Repository) attachFeatures(ctx context.Context, rooms []*domain.Room) error {
	if len(rooms) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	byID := make(map[int64]*domain.Room, len(rooms))
	ids := make([]int64, 0, len(rooms))
	for _, room := range rooms {
		room.Features = make([]domain.RoomFeature, 0)
		byID[room.ID] = room
		ids = append(ids, room.ID)
	}

	query, args, err := psqlbuilder.Select("l.room_id", "f.id", "f.name", "f.icon").
		From("room_feature_links l").
		Join("room_features f ON f.id = l.feature_id").
		Where(squirrel.Expr("l.room_id = ANY(?)", pq.Array(ids))).
		OrderBy("f.name ASC", "f.id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachFeatures - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachFeatures - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var roomID int64
		var f domain.RoomFeature
		if err := rows.Scan(&roomID, &f.ID, &f.Name, &f.Icon); err != nil {
			return fmt.Errorf("%w: attachFeatures - scan feature: %v", ErrScanRow, err)
		}
		if room, ok := byID[roomID]; ok {
			room.Features = append(room.Features, f)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachFeatures - rows error: %v", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) replaceFeatureLinks(ctx context.Context, roomID int64, featureIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("room_feature_links").
		Where(squirrel.Eq{"room_id": roomID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceFeatureLinks - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceFeatureLinks - execute delete: %v", ErrExecQuery, err)
	}

	if len(featureIDs) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("room_feature_links").
		Columns("room_id", "feature_id").
		Suffix("ON CONFLICT DO NOTHING")
	for _, featureID := range featureIDs {
		insert = insert.Values(roomID, featureID)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceFeatureLinks - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return classify("replaceFeatureLinks - execute insert", err)
	}

	return nil
}

func buildListQuery(filter domain.RoomsFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(roomColumns...).
		From("rooms").
		OrderBy("name ASC", "id ASC")

	if filter.Active != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": *filter.Active})
	}
	if filter.Query != nil && *filter.Query != "" {
		pattern := "%" + *filter.Query + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		})
	}

	return selectBuilder
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoom(row rowScanner) (*domain.Room, error) {
	var room domain.Room
	err := row.Scan(
		&room.ID,
		&room.Name,
		&room.Description,
		&room.Capacity,
		&room.PricePerHour,
		&room.IsActive,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func classify(op string, err error) error {
	switch {
	case pgerr.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrFeatureNotFound, op, err)
	case pgerr.IsCheckViolation(err):
		return fmt.Errorf("%w: %s [%s]: %v", ErrConstraint, op, pgerr.Constraint(err), err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
