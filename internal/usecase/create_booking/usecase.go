package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
	"github.com/m04kA/EVCharge-BookingService/internal/infra/storage/booking"
	stationRepo "github.com/m04kA/EVCharge-BookingService/internal/infra/storage/station"
	"github.com/m04kA/EVCharge-BookingService/internal/integrations/authservice"
)

// UseCase use case создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	stationRepo  StationRepository
	authClient   AuthServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	stationRepo StationRepository,
	authClient AuthServiceClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		stationRepo:  stationRepo,
		authClient:   authClient,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Бронирование всегда создаётся в статусе Pending вне зависимости
// от входных данных. Бизнес-проверки агрегируются: клиент получает
// полный список нарушений, а не первое найденное
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, station=%d, port=%d, timeslot=%s",
		req.UserID, req.StationID, req.PortID, req.Timeslot.Format(domain.TimeslotFormat))

	// 1. Валидация структуры запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Граничные проверки слота - до обращения к хранилищу
	if vErr := validateTimeslot(req.Timeslot, uc.timeProvider.Now()); vErr != nil {
		uc.logger.Warn("CreateBooking: timeslot rejected: %v", vErr)
		return nil, vErr
	}

	// 3. Разрешаем пользователя через AuthService
	user, err := uc.authClient.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, authservice.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	var (
		created *domain.Booking
		station *domain.Station
		port    *domain.Port
	)

	// 4. Бизнес-проверки и запись выполняются в одной serializable-транзакции.
	// Гонку, которую пропустили проверки, закрывает частичный уникальный
	// индекс на (port_id, timeslot) по активным статусам
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		violations, txErr := uc.collectViolations(txCtx, req, &station, &port)
		if txErr != nil {
			return txErr
		}
		if len(violations) > 0 {
			return &ValidationError{Violations: violations}
		}

		newBooking := &domain.Booking{
			UserID:    req.UserID,
			StationID: req.StationID,
			PortID:    req.PortID,
			Timeslot:  req.Timeslot,
			Status:    domain.StatusPending,
		}

		created, txErr = uc.bookingRepo.Create(txCtx, newBooking)
		if txErr != nil {
			return txErr
		}

		return nil
	})
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			uc.logger.Warn("CreateBooking: rejected for user=%d: %v", req.UserID, vErr)
			return nil, vErr
		}
		if errors.Is(err, booking.ErrSlotTaken) {
			// Проигравший гонку за слот: проверка прошла, вставка - нет
			uc.logger.Warn("CreateBooking: slot race lost: port=%d, timeslot=%s",
				req.PortID, req.Timeslot.Format(domain.TimeslotFormat))
			return nil, ErrSlotTaken
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created booking id=%d, user=%d, port=%d",
		created.ID, created.UserID, created.PortID)

	return buildResponse(created, user, station, port), nil
}

// collectViolations выполняет бизнес-проверки и собирает все нарушения.
// Зависимые проверки пропускаются, если не выполнено их предусловие:
// например, принадлежность порта станции не проверяется для
// несуществующего порта
func (uc *UseCase) collectViolations(
	ctx context.Context,
	req *Request,
	station **domain.Station,
	port **domain.Port,
) ([]Violation, error) {
	var violations []Violation

	st, err := uc.stationRepo.GetStationByID(ctx, req.StationID)
	if err != nil {
		if !errors.Is(err, stationRepo.ErrStationNotFound) {
			return nil, fmt.Errorf("failed to get station: %w", err)
		}
		violations = append(violations, Violation{Code: CodeStationNotFound, Message: msgStationNotFound})
	}
	*station = st

	p, err := uc.stationRepo.GetPortByID(ctx, req.PortID)
	if err != nil {
		if !errors.Is(err, stationRepo.ErrPortNotFound) {
			return nil, fmt.Errorf("failed to get port: %w", err)
		}
		violations = append(violations, Violation{Code: CodePortNotFound, Message: msgPortNotFound})
	}
	*port = p

	if p != nil {
		if st != nil && p.StationID != st.ID {
			violations = append(violations, Violation{Code: CodePortMismatch, Message: msgPortMismatch})
		}

		if !p.IsBookable() {
			violations = append(violations, Violation{Code: CodePortUnavailable, Message: msgPortUnavailable})
		} else {
			taken, err := uc.bookingRepo.ExistsBlockingByPortAndTimeslot(ctx, req.PortID, req.Timeslot)
			if err != nil {
				return nil, fmt.Errorf("failed to check port timeslot: %w", err)
			}
			if taken {
				violations = append(violations, Violation{Code: CodeSlotTaken, Message: msgSlotTaken})
			}
		}
	}

	// Конфликт по пользователю проверяется на точное совпадение времени
	// слота по всем портам и станциям
	conflict, err := uc.bookingRepo.ExistsBlockingByUserAndTimeslot(ctx, req.UserID, req.Timeslot)
	if err != nil {
		return nil, fmt.Errorf("failed to check user timeslot: %w", err)
	}
	if conflict {
		violations = append(violations, Violation{Code: CodeUserConflict, Message: msgUserConflict})
	}

	return violations, nil
}

func buildResponse(b *domain.Booking, user *authservice.User, station *domain.Station, port *domain.Port) *Response {
	resp := &Response{
		ID:        b.ID,
		UserID:    b.UserID,
		StationID: b.StationID,
		PortID:    b.PortID,
		Timeslot:  b.Timeslot,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
		User: UserInfo{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	}

	if station != nil {
		resp.Station = StationInfo{
			ID:      station.ID,
			Name:    station.Name,
			Address: station.Address,
		}
	}

	if port != nil {
		resp.Port = PortInfo{
			ID:         port.ID,
			PortNumber: port.PortNumber,
			Type:       port.Type,
			PowerKW:    port.PowerKW,
		}
	}

	return resp
}
