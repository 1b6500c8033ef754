package domain

import "time"

// BookingStatus represents the status of a booking request
type BookingStatus string

const (
	StatusPending  BookingStatus = "Pending"
	StatusAccepted BookingStatus = "Accepted"
	StatusRejected BookingStatus = "Rejected"
)

// Booking represents a charging slot booking request
type Booking struct {
	ID        int64
	UserID    int64
	StationID int64
	PortID    int64
	Timeslot  time.Time // Начало 30-минутного слота (дата + время)
	Status    BookingStatus

	AdminNotes *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Denormalized data for display (filled on enrichment)
	UserName       *string
	StationName    *string
	StationAddress *string
	PortNumber     *string
	PortType       *ChargingType
	PortPowerKW    *int
}

// IsPending returns true if the booking is still awaiting review
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// IsTerminal returns true if the booking reached a final state
// Accepted and Rejected are terminal: no further transitions are permitted
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusAccepted || b.Status == StatusRejected
}

// BlocksSlot returns true if the booking occupies its slot
// Rejected bookings do not block the slot for re-booking
func (b *Booking) BlocksSlot() bool {
	return b.Status == StatusPending || b.Status == StatusAccepted
}

// IsValidStatus returns true if s is one of the known booking statuses
func IsValidStatus(s BookingStatus) bool {
	return s == StatusPending || s == StatusAccepted || s == StatusRejected
}

// IsReviewStatus returns true if s is a status a reviewer may set
// Pending назначается только системой при создании
func IsReviewStatus(s BookingStatus) bool {
	return s == StatusAccepted || s == StatusRejected
}

// BookingsFilter фильтр для получения списка бронирований
type BookingsFilter struct {
	UserID *int64         // Фильтр по пользователю (опционально, nil - все пользователи)
	Status *BookingStatus // Фильтр по статусу (опционально)
}
