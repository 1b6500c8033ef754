package create_booking

import (
	"time"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
	createBooking "github.com/m04kA/EVCharge-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StationID int64  `json:"stationId"`
	PortID    int64  `json:"portId"`
	Timeslot  string `json:"timeslot"` // "2026-03-15 14:00:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	StationID int64  `json:"stationId"`
	PortID    int64  `json:"portId"`
	Timeslot  string `json:"timeslot"`
	Status    string `json:"status"`

	User    UserResponse    `json:"user"`
	Station StationResponse `json:"station"`
	Port    PortResponse    `json:"port"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// UserResponse данные пользователя в ответе
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StationResponse данные станции в ответе
type StationResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// PortResponse данные порта в ответе
type PortResponse struct {
	ID         int64  `json:"id"`
	PortNumber string `json:"portNumber"`
	Type       string `json:"type"`
	PowerKW    int    `json:"powerKw"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	// Парсим слот в локальной временной зоне сервиса
	timeslot, err := time.ParseInLocation(domain.TimeslotFormat, r.Timeslot, time.Local)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:    userID,
		StationID: r.StationID,
		PortID:    r.PortID,
		Timeslot:  timeslot,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		UserID:    resp.UserID,
		StationID: resp.StationID,
		PortID:    resp.PortID,
		Timeslot:  resp.Timeslot.Format(domain.TimeslotFormat),
		Status:    string(resp.Status),
		User: UserResponse{
			ID:    resp.User.ID,
			Name:  resp.User.Name,
			Email: resp.User.Email,
		},
		Station: StationResponse{
			ID:      resp.Station.ID,
			Name:    resp.Station.Name,
			Address: resp.Station.Address,
		},
		Port: PortResponse{
			ID:         resp.Port.ID,
			PortNumber: resp.Port.PortNumber,
			Type:       string(resp.Port.Type),
			PowerKW:    resp.Port.PowerKW,
		},
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
