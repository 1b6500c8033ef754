package get_port_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
	stationRepo "github.com/m04kA/EVCharge-BookingService/internal/infra/storage/station"
)

// UseCase use case расчёта доступности порта на дату
// Операция только читает данные: повторный вызов без изменений
// в хранилище возвращает идентичный результат
type UseCase struct {
	bookingRepo BookingRepository
	stationRepo StationRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	stationRepo StationRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		stationRepo: stationRepo,
		logger:      logger,
	}
}

// Execute выполняет use case расчёта доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetPortAvailability: port=%d, date=%s",
		req.PortID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetPortAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Разрешаем порт
	port, err := uc.stationRepo.GetPortByID(ctx, req.PortID)
	if err != nil {
		if errors.Is(err, stationRepo.ErrPortNotFound) {
			uc.logger.Warn("GetPortAvailability: port id=%d not found", req.PortID)
			return nil, ErrPortNotFound
		}
		uc.logger.Error("GetPortAvailability: failed to get port id=%d: %v", req.PortID, err)
		return nil, fmt.Errorf("%w: failed to get port: %v", ErrInternal, err)
	}

	// 3. Получаем занятые слоты порта за сутки
	dayStart, dayEnd := dayBounds(req.Date)

	bookedTimeslots, err := uc.bookingRepo.ListBookedTimeslotsByPortAndDate(ctx, req.PortID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetPortAvailability: failed to get booked timeslots for port id=%d: %v", req.PortID, err)
		return nil, fmt.Errorf("%w: failed to get booked timeslots: %v", ErrInternal, err)
	}

	// 4. Делим сетку слотов на занятые и свободные
	bookedSlots, freeSlots := splitSlots(bookedTimeslots)

	uc.logger.Info("GetPortAvailability: port=%d, date=%s, booked=%d, free=%d",
		req.PortID, req.Date.Format(domain.DateFormat), len(bookedSlots), len(freeSlots))

	return &Response{
		Port: PortInfo{
			ID:         port.ID,
			StationID:  port.StationID,
			PortNumber: port.PortNumber,
			Type:       port.Type,
			PowerKW:    port.PowerKW,
			IsActive:   port.IsActive,
		},
		Date:        req.Date,
		BookedSlots: bookedSlots,
		FreeSlots:   freeSlots,
	}, nil
}
