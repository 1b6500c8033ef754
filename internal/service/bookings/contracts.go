package bookings

import (
	"context"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
	"github.com/m04kA/EVCharge-BookingService/internal/integrations/authservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatusIfPending(ctx context.Context, id int64, status domain.BookingStatus, adminNotes *string) error
}

// AuthServiceClient интерфейс клиента для AuthService
type AuthServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*authservice.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
