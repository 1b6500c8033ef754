package station

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
	"github.com/m04kA/EVCharge-BookingService/pkg/dbmetrics"
	"github.com/m04kA/EVCharge-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы со станциями и портами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория станций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetStationByID получает станцию по ID (без портов)
func (r *Repository) GetStationByID(ctx context.Context, id int64) (*domain.Station, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"address",
		"location",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("stations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStationByID - build select query: %v", ErrBuildQuery, err)
	}

	var station domain.Station
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&station.ID,
		&station.Name,
		&station.Address,
		&station.Location,
		&station.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStationByID - scan station: %v", ErrScanRow, err)
	}

	station.CreatedAt = createdAt.Time
	station.UpdatedAt = updatedAt.Time

	return &station, nil
}

// GetPortByID получает порт по ID вместе с флагом активности его станции
// Флаг нужен для проверки бронируемости: порт бронируем, только когда
// активны и он сам, и станция-владелец
func (r *Repository) GetPortByID(ctx context.Context, id int64) (*domain.Port, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"p.id",
		"p.station_id",
		"p.port_number",
		"p.type",
		"p.power_kw",
		"p.is_active",
		"s.is_active AS station_is_active",
		"p.created_at",
		"p.updated_at",
	).
		From("ports p").
		Join("stations s ON s.id = p.station_id").
		Where(squirrel.Eq{"p.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPortByID - build select query: %v", ErrBuildQuery, err)
	}

	port, err := scanPort(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPortNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPortByID - scan port: %v", ErrScanRow, err)
	}

	return port, nil
}

// ListActiveStationsWithPorts получает все активные станции
// вместе с их активными портами, отсортированные по имени
func (r *Repository) ListActiveStationsWithPorts(ctx context.Context) ([]*domain.Station, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	stationsQuery, stationsArgs, err := psqlbuilder.Select(
		"id",
		"name",
		"address",
		"location",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("stations").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveStationsWithPorts - build stations query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, stationsQuery, stationsArgs...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveStationsWithPorts - execute stations query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stations := make([]*domain.Station, 0)
	byID := make(map[int64]*domain.Station)

	for rows.Next() {
		var station domain.Station
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&station.ID,
			&station.Name,
			&station.Address,
			&station.Location,
			&station.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveStationsWithPorts - scan station: %v", ErrScanRow, err)
		}

		station.CreatedAt = createdAt.Time
		station.UpdatedAt = updatedAt.Time
		station.Ports = make([]*domain.Port, 0)

		stations = append(stations, &station)
		byID[station.ID] = &station
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveStationsWithPorts - stations rows error: %v", ErrScanRow, err)
	}

	if len(stations) == 0 {
		return stations, nil
	}

	stationIDs := make([]int64, 0, len(stations))
	for _, s := range stations {
		stationIDs = append(stationIDs, s.ID)
	}

	portsQuery, portsArgs, err := psqlbuilder.Select(
		"p.id",
		"p.station_id",
		"p.port_number",
		"p.type",
		"p.power_kw",
		"p.is_active",
		"s.is_active AS station_is_active",
		"p.created_at",
		"p.updated_at",
	).
		From("ports p").
		Join("stations s ON s.id = p.station_id").
		Where(squirrel.Eq{"p.station_id": stationIDs}).
		Where(squirrel.Eq{"p.is_active": true}).
		OrderBy("p.station_id ASC, p.port_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveStationsWithPorts - build ports query: %v", ErrBuildQuery, err)
	}

	portRows, err := executor.QueryContext(ctx, portsQuery, portsArgs...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveStationsWithPorts - execute ports query: %v", ErrExecQuery, err)
	}
	defer portRows.Close()

	for portRows.Next() {
		port, err := scanPort(portRows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveStationsWithPorts - scan port: %v", ErrScanRow, err)
		}

		if station, ok := byID[port.StationID]; ok {
			station.Ports = append(station.Ports, port)
		}
	}

	if err := portRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveStationsWithPorts - ports rows error: %v", ErrScanRow, err)
	}

	return stations, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPort сканирует одну строку в модель порта
func scanPort(row rowScanner) (*domain.Port, error) {
	var port domain.Port
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&port.ID,
		&port.StationID,
		&port.PortNumber,
		&port.Type,
		&port.PowerKW,
		&port.IsActive,
		&port.StationIsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	port.CreatedAt = createdAt.Time
	port.UpdatedAt = updatedAt.Time

	return &port, nil
}
