package create_booking

import (
	"time"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64     // ID пользователя (из контекста аутентификации)
	StationID int64     // ID станции
	PortID    int64     // ID порта
	Timeslot  time.Time // Начало слота
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	UserID    int64
	StationID int64
	PortID    int64
	Timeslot  time.Time
	Status    domain.BookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	User    UserInfo    // Данные пользователя для отображения
	Station StationInfo // Данные станции для отображения
	Port    PortInfo    // Данные порта для отображения
}

// UserInfo данные пользователя для отображения
type UserInfo struct {
	ID    int64
	Name  string
	Email string
}

// StationInfo данные станции для отображения
type StationInfo struct {
	ID      int64
	Name    string
	Address string
}

// PortInfo данные порта для отображения
type PortInfo struct {
	ID         int64
	PortNumber string
	Type       domain.ChargingType
	PowerKW    int
}
