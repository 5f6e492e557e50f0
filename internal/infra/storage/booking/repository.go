package booking

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

var bookingColumns = []string{
	"b.id",
	"b.customer_name",
	"b.customer_email",
	"b.room_id",
	"r.name",
	"b.start_time",
	"b.end_time",
	"b.status",
	"b.notes",
	"b.confirmation_code",
	"b.created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// Нарушение bookings_no_overlap и конфликты сериализации возвращаются как ErrPersistenceConflict
// с исходной ошибкой драйвера внутри (нужна менеджеру транзакций для повтора).
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_name",
			"customer_email",
			"room_id",
			"start_time",
			"end_time",
			"status",
			"notes",
			"confirmation_code",
		).
		Values(
			booking.CustomerName,
			booking.CustomerEmail,
			booking.RoomID,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.Notes,
			booking.ConfirmationCode,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: Create - room_id=%d", ErrRoomReference, booking.RoomID)
		}
		return nil, classify("Create - execute insert", err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE OF b).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectBookings().Where(squirrel.Eq{"b.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, classifyScan("GetByID - scan booking", err)
	}

	return booking, nil
}

// ListByIDs получает бронирования по списку ID (отсутствующие пропускаются), сортировка по id.
// Внутри транзакции строки блокируются.
func (r *Repository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Booking, error) {
	if len(ids) == 0 {
		return []*domain.Booking{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectBookings().
		Where(squirrel.Expr("b.id = ANY(?)", pq.Array(ids))).
		OrderBy("b.id ASC")
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("ListByIDs - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListActiveOverlapping возвращает активные (pending, confirmed) бронирования комнаты,
// пересекающиеся с полуинтервалом [start, end): start_time < end AND end_time > start.
// excludeID исключает одно бронирование (само себя при повторной проверке).
// Сортировка по времени начала.
func (r *Repository) ListActiveOverlapping(ctx context.Context, roomID int64, interval domain.Interval, excludeID *int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildOverlapQuery(roomID, interval, excludeID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("ListActiveOverlapping - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// List получает страницу бронирований по фильтру, сначала поздние (start_time DESC)
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(selectBookings(), filter).OrderBy("b.start_time DESC", "b.id DESC")
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("List - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Count считает бронирования по фильтру (Limit/Offset игнорируются)
func (r *Repository) Count(ctx context.Context, filter domain.BookingsFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(
		psqlbuilder.Select("COUNT(*)").From("bookings b").Join("rooms r ON r.id = b.room_id"),
		filter,
	).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, classifyScan("Count - scan total", err)
	}

	return total, nil
}

// UpdateStatus обновляет статус бронирования.
// created_at и confirmation_code не изменяются ни одним запросом.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classify("UpdateStatus - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// BulkUpdateStatus выставляет статус всем бронированиям из ids одним запросом.
// Возвращает число обновлённых строк; несуществующие ID не учитываются.
func (r *Repository) BulkUpdateStatus(ctx context.Context, ids []int64, status domain.BookingStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildBulkUpdate(ids, status).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: BulkUpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify("BulkUpdateStatus - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: BulkUpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// buildBulkUpdate не фильтрует по текущему статусу: уже имеющие целевой статус
// бронирования тоже попадают в rows affected, повторный bulk-confirm считает их все
func buildBulkUpdate(ids []int64, status domain.BookingStatus) squirrel.UpdateBuilder {
	return psqlbuilder.Update("bookings").
		Set("status", status).
		Where(squirrel.Expr("id = ANY(?)", pq.Array(ids)))
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("rooms r ON r.id = b.room_id")
}

func buildOverlapQuery(roomID int64, interval domain.Interval, excludeID *int64) squirrel.SelectBuilder {
	selectBuilder := selectBookings().
		Where(squirrel.Eq{"b.room_id": roomID}).
		Where(squirrel.Eq{"b.status": activeStatuses()}).
		Where(squirrel.Lt{"b.start_time": interval.End}).
		Where(squirrel.Gt{"b.end_time": interval.Start}).
		OrderBy("b.start_time ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.id": *excludeID})
	}

	return selectBuilder
}

func applyFilter(selectBuilder squirrel.SelectBuilder, filter domain.BookingsFilter) squirrel.SelectBuilder {
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}
	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.room_id": *filter.RoomID})
	}
	// Бронирование попадает в день, если начинается в нём
	if filter.Day != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"b.start_time": filter.Day.Start}).
			Where(squirrel.Lt{"b.start_time": filter.Day.End})
	}
	if filter.Query != nil && *filter.Query != "" {
		pattern := "%" + *filter.Query + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"b.customer_name": pattern},
			squirrel.ILike{"b.customer_email": pattern},
			squirrel.ILike{"r.name": pattern},
		})
	}
	return selectBuilder
}

func activeStatuses() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking

	err := row.Scan(
		&booking.ID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.RoomID,
		&booking.RoomName,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.Notes,
		&booking.ConfirmationCode,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, classify("scanBookings - rows error", err)
	}

	return bookings, nil
}

// classify оборачивает ошибку выполнения запроса.
// Конфликты сохраняют ошибку драйвера в цепочке (%w), чтобы txmanager мог повторить транзакцию.
func classify(op string, err error) error {
	if pgerr.IsConflict(err) {
		return fmt.Errorf("%w: %s [%s %s]: %w", ErrPersistenceConflict, op, pgerr.Code(err), pgerr.Constraint(err), err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}

func classifyScan(op string, err error) error {
	if pgerr.IsConflict(err) {
		return classify(op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrScanRow, op, err)
}
