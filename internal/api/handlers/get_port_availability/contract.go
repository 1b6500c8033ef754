package get_port_availability

import (
	"context"

	getPortAvailability "github.com/m04kA/EVCharge-BookingService/internal/usecase/get_port_availability"
)

type GetPortAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getPortAvailability.Request) (*getPortAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
