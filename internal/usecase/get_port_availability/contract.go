package get_port_availability

import (
	"context"
	"time"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListBookedTimeslotsByPortAndDate получает времена занятых слотов порта за сутки
	ListBookedTimeslotsByPortAndDate(ctx context.Context, portID int64, dayStart, dayEnd time.Time) ([]time.Time, error)
}

// StationRepository интерфейс репозитория станций и портов
type StationRepository interface {
	GetPortByID(ctx context.Context, id int64) (*domain.Port, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
