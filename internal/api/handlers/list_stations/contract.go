package list_stations

import (
	"context"

	"github.com/m04kA/EVCharge-BookingService/internal/service/stations/models"
)

type StationService interface {
	ListActiveStations(ctx context.Context) (*models.StationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
