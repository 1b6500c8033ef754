package models

import (
	"errors"
	"time"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateStatusRequest запрос на рассмотрение бронирования
type UpdateStatusRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"adminNotes,omitempty"`
}

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	UserID *int64  `json:"userId,omitempty"` // Фильтр по пользователю (опционально)
	Status *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	StationID int64  `json:"stationId"`
	PortID    int64  `json:"portId"`
	Timeslot  string `json:"timeslot"` // "2026-03-15 14:00:00"
	Status    string `json:"status"`

	AdminNotes *string `json:"adminNotes,omitempty"`

	// Денормализованные данные для отображения
	UserName       *string `json:"userName,omitempty"`
	StationName    *string `json:"stationName,omitempty"`
	StationAddress *string `json:"stationAddress,omitempty"`
	PortNumber     *string `json:"portNumber,omitempty"`
	PortType       *string `json:"portType,omitempty"`
	PortPowerKW    *int    `json:"portPowerKw,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:             b.ID,
		UserID:         b.UserID,
		StationID:      b.StationID,
		PortID:         b.PortID,
		Timeslot:       b.Timeslot.Format(domain.TimeslotFormat),
		Status:         string(b.Status),
		AdminNotes:     b.AdminNotes,
		UserName:       b.UserName,
		StationName:    b.StationName,
		StationAddress: b.StationAddress,
		PortNumber:     b.PortNumber,
		PortPowerKW:    b.PortPowerKW,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	if b.PortType != nil {
		portType := string(*b.PortType)
		resp.PortType = &portType
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
// Порядок списка сохраняется
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}

	return s, nil
}

// ToDomainReviewStatus конвертирует строку в статус рассмотрения.
// Допустимы только Accepted и Rejected: Pending назначается системой
// при создании и не может быть установлен вручную
func ToDomainReviewStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	if !domain.IsReviewStatus(s) {
		return "", ErrInvalidStatus
	}

	return s, nil
}
