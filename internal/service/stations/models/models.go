package models

import (
	"time"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
)

// Response модели

// StationResponse ответ с данными станции и её активными портами
type StationResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Location string `json:"location,omitempty"`
	IsActive bool   `json:"isActive"`

	Ports []PortResponse `json:"ports"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PortResponse ответ с данными порта
type PortResponse struct {
	ID         int64  `json:"id"`
	StationID  int64  `json:"stationId"`
	PortNumber string `json:"portNumber"`
	Type       string `json:"type"`
	PowerKW    int    `json:"powerKw"`
	IsActive   bool   `json:"isActive"`
}

// StationListResponse ответ со списком станций
type StationListResponse struct {
	Stations []StationResponse `json:"stations"`
}

// Методы конвертации

// FromDomainStation конвертирует domain модель в DTO
func FromDomainStation(s *domain.Station) *StationResponse {
	if s == nil {
		return nil
	}

	resp := &StationResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		Location:  s.Location,
		IsActive:  s.IsActive,
		Ports:     make([]PortResponse, 0, len(s.Ports)),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}

	for _, port := range s.Ports {
		resp.Ports = append(resp.Ports, PortResponse{
			ID:         port.ID,
			StationID:  port.StationID,
			PortNumber: port.PortNumber,
			Type:       string(port.Type),
			PowerKW:    port.PowerKW,
			IsActive:   port.IsActive,
		})
	}

	return resp
}

// FromDomainStationList конвертирует список domain моделей в DTO
func FromDomainStationList(stations []*domain.Station) *StationListResponse {
	resp := &StationListResponse{
		Stations: make([]StationResponse, 0, len(stations)),
	}

	for _, station := range stations {
		if stationResp := FromDomainStation(station); stationResp != nil {
			resp.Stations = append(resp.Stations, *stationResp)
		}
	}

	return resp
}
