package stations

import (
	"context"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
)

// StationRepository интерфейс репозитория станций
type StationRepository interface {
	ListActiveStationsWithPorts(ctx context.Context) ([]*domain.Station, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
