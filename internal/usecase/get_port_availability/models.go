package get_port_availability

import (
	"time"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
	"github.com/m04kA/EVCharge-BookingService/pkg/types"
)

// Request модель запроса доступности порта
type Request struct {
	PortID int64     // ID порта
	Date   time.Time // Дата, на которую запрашивается доступность (без времени)
}

// Response модель ответа с доступностью порта на дату
type Response struct {
	Port        PortInfo           // Порт, по которому запрашивалась доступность
	Date        time.Time          // Дата запроса
	BookedSlots []types.TimeString // Занятые слоты ("HH:MM")
	FreeSlots   []types.TimeString // Свободные слоты в хронологическом порядке
}

// PortInfo данные порта для отображения
type PortInfo struct {
	ID         int64
	StationID  int64
	PortNumber string
	Type       domain.ChargingType
	PowerKW    int
	IsActive   bool
}
