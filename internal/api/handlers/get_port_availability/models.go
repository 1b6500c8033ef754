package get_port_availability

import (
	"github.com/m04kA/EVCharge-BookingService/internal/domain"
	getPortAvailability "github.com/m04kA/EVCharge-BookingService/internal/usecase/get_port_availability"
	"github.com/m04kA/EVCharge-BookingService/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Port        PortResponse       `json:"port"`
	Date        string             `json:"date"` // "2026-03-15"
	BookedSlots []types.TimeString `json:"bookedSlots"`
	FreeSlots   []types.TimeString `json:"freeSlots"`
}

// PortResponse данные порта в ответе
type PortResponse struct {
	ID         int64  `json:"id"`
	StationID  int64  `json:"stationId"`
	PortNumber string `json:"portNumber"`
	Type       string `json:"type"`
	PowerKW    int    `json:"powerKw"`
	IsActive   bool   `json:"isActive"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getPortAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Port: PortResponse{
			ID:         resp.Port.ID,
			StationID:  resp.Port.StationID,
			PortNumber: resp.Port.PortNumber,
			Type:       string(resp.Port.Type),
			PowerKW:    resp.Port.PowerKW,
			IsActive:   resp.Port.IsActive,
		},
		Date:        resp.Date.Format(domain.DateFormat),
		BookedSlots: resp.BookedSlots,
		FreeSlots:   resp.FreeSlots,
	}
}
