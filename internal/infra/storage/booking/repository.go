package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
	"github.com/m04kA/EVCharge-BookingService/pkg/dbmetrics"
	"github.com/m04kA/EVCharge-BookingService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const pgUniqueViolation = "23505"

// slotUniqueIndex имя частичного уникального индекса на (port_id, timeslot)
const slotUniqueIndex = "uq_bookings_port_timeslot_active"

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Гонка двойного бронирования закрывается на уровне хранилища: частичный
// уникальный индекс на (port_id, timeslot) по блокирующим статусам приводит
// проигравшего конкурентного писателя к ErrSlotTaken, даже если его
// предварительная проверка доступности слота прошла успешно.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"station_id",
			"port_id",
			"timeslot",
			"status",
			"admin_notes",
		).
		Values(
			booking.UserID,
			booking.StationID,
			booking.PortID,
			booking.Timeslot,
			booking.Status,
			booking.AdminNotes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isSlotUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := bookingSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListWithFilter получает список бронирований с фильтрацией
// по пользователю и/или статусу, отсортированный по времени создания (сначала новые)
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := bookingSelect().
		OrderBy("b.created_at DESC")

	// Фильтрация по пользователю, если указан
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.user_id": *filter.UserID})
	}

	// Фильтрация по статусу, если указан
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListBookedTimeslotsByPortAndDate получает времена занятых слотов порта
// за календарные сутки [dayStart, dayEnd) в хронологическом порядке.
// Занятым считается слот с бронированием в блокирующем статусе
// (Pending или Accepted); Rejected слот не занимает
func (r *Repository) ListBookedTimeslotsByPortAndDate(ctx context.Context, portID int64, dayStart, dayEnd time.Time) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("timeslot").
		From("bookings").
		Where(squirrel.Eq{"port_id": portID}).
		Where(squirrel.Eq{"status": blockingStatusStrings()}).
		Where(squirrel.GtOrEq{"timeslot": dayStart}).
		Where(squirrel.Lt{"timeslot": dayEnd}).
		OrderBy("timeslot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedTimeslotsByPortAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedTimeslotsByPortAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	timeslots := make([]time.Time, 0)
	for rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("%w: ListBookedTimeslotsByPortAndDate - scan timeslot: %v", ErrScanRow, err)
		}
		timeslots = append(timeslots, ts)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookedTimeslotsByPortAndDate - rows error: %v", ErrScanRow, err)
	}

	return timeslots, nil
}

// ExistsBlockingByPortAndTimeslot проверяет, есть ли у порта бронирование
// в блокирующем статусе на указанный timeslot
func (r *Repository) ExistsBlockingByPortAndTimeslot(ctx context.Context, portID int64, timeslot time.Time) (bool, error) {
	return r.existsBlocking(ctx, squirrel.Eq{"port_id": portID}, timeslot, "ExistsBlockingByPortAndTimeslot")
}

// ExistsBlockingByUserAndTimeslot проверяет, есть ли у пользователя бронирование
// в блокирующем статусе на указанный timeslot (на любом порту и любой станции)
func (r *Repository) ExistsBlockingByUserAndTimeslot(ctx context.Context, userID int64, timeslot time.Time) (bool, error) {
	return r.existsBlocking(ctx, squirrel.Eq{"user_id": userID}, timeslot, "ExistsBlockingByUserAndTimeslot")
}

func (r *Repository) existsBlocking(ctx context.Context, cond squirrel.Eq, timeslot time.Time, op string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	sub, subArgs, err := psqlbuilder.Select("1").
		From("bookings").
		Where(cond).
		Where(squirrel.Eq{"timeslot": timeslot}).
		Where(squirrel.Eq{"status": blockingStatusStrings()}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	query := fmt.Sprintf("SELECT EXISTS (%s)", sub)

	var exists bool
	if err := executor.QueryRowContext(ctx, query, subArgs...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}

	return exists, nil
}

// UpdateStatusIfPending условно обновляет статус бронирования:
// строка меняется только если текущий статус Pending.
// Это единственный механизм перехода - ровно один из конкурентных писателей
// обновит строку, остальные получат ErrBookingNotPending (ноль затронутых строк).
// ErrBookingNotPending возвращается и для несуществующего ID - вызывающая
// сторона различает случаи повторным чтением
func (r *Repository) UpdateStatusIfPending(ctx context.Context, id int64, status domain.BookingStatus, adminNotes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("admin_notes", adminNotes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIfPending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIfPending - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIfPending - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotPending
	}

	return nil
}

// bookingSelect возвращает SELECT builder с полным набором колонок бронирования
// и денормализованными данными станции и порта для отображения
func bookingSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"b.id",
		"b.user_id",
		"b.station_id",
		"b.port_id",
		"b.timeslot",
		"b.status",
		"b.admin_notes",
		"b.created_at",
		"b.updated_at",
		"s.name",
		"s.address",
		"p.port_number",
		"p.type",
		"p.power_kw",
	).
		From("bookings b").
		LeftJoin("stations s ON s.id = b.station_id").
		LeftJoin("ports p ON p.id = b.port_id")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в модель бронирования
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime
	var stationName, stationAddress, portNumber, portType sql.NullString
	var portPowerKW sql.NullInt64

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.StationID,
		&booking.PortID,
		&booking.Timeslot,
		&booking.Status,
		&booking.AdminNotes,
		&createdAt,
		&updatedAt,
		&stationName,
		&stationAddress,
		&portNumber,
		&portType,
		&portPowerKW,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if stationName.Valid {
		booking.StationName = &stationName.String
	}
	if stationAddress.Valid {
		booking.StationAddress = &stationAddress.String
	}
	if portNumber.Valid {
		booking.PortNumber = &portNumber.String
	}
	if portType.Valid {
		chargingType := domain.ChargingType(portType.String)
		booking.PortType = &chargingType
	}
	if portPowerKW.Valid {
		powerKW := int(portPowerKW.Int64)
		booking.PortPowerKW = &powerKW
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
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// blockingStatusStrings возвращает блокирующие статусы строками для squirrel.Eq
func blockingStatusStrings() []string {
	statuses := make([]string, len(domain.BlockingStatuses))
	for i, s := range domain.BlockingStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// isSlotUniqueViolation проверяет, что ошибка вызвана нарушением
// частичного уникального индекса занятости слота
func isSlotUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == slotUniqueIndex
}
