package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
	"github.com/m04kA/EVCharge-BookingService/internal/integrations/authservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ExistsBlockingByPortAndTimeslot(ctx context.Context, portID int64, timeslot time.Time) (bool, error)
	ExistsBlockingByUserAndTimeslot(ctx context.Context, userID int64, timeslot time.Time) (bool, error)
}

// StationRepository интерфейс репозитория станций и портов
type StationRepository interface {
	GetStationByID(ctx context.Context, id int64) (*domain.Station, error)
	GetPortByID(ctx context.Context, id int64) (*domain.Port, error)
}

// AuthServiceClient интерфейс клиента для AuthService
type AuthServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*authservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
