package domain

import "time"

// ChargingType тип разъёма зарядного порта
type ChargingType string

const (
	ChargingType1   ChargingType = "Type 1"
	ChargingType2   ChargingType = "Type 2"
	ChargingCCS     ChargingType = "CCS"
	ChargingCHAdeMO ChargingType = "CHAdeMO"
)

// IsValidChargingType returns true if t is one of the supported connector types
func IsValidChargingType(t ChargingType) bool {
	switch t {
	case ChargingType1, ChargingType2, ChargingCCS, ChargingCHAdeMO:
		return true
	default:
		return false
	}
}

// Station represents a charging station owning one or more ports
type Station struct {
	ID       int64
	Name     string
	Address  string
	Location string
	IsActive bool

	// Ports of the station (filled when loaded with ports)
	Ports []*Port

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Port represents an individually bookable charging connector of a station
type Port struct {
	ID         int64
	StationID  int64
	PortNumber string // Уникален в пределах станции
	Type       ChargingType
	PowerKW    int
	IsActive   bool

	// StationIsActive флаг активности станции-владельца (заполняется при join)
	// Порт бронируем, только когда активен и он сам, и его станция
	StationIsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if both the port and its owning station are active
func (p *Port) IsBookable() bool {
	return p.IsActive && p.StationIsActive
}
