package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
)

// Тексты нарушений бизнес-правил
const (
	msgTimeslotPast    = "Timeslot must be in the future."
	msgTimeslotOffGrid = "Timeslot must be a 30-minute slot between 06:00 and 22:00."
	msgStationNotFound = "Selected station does not exist."
	msgPortNotFound    = "Selected port does not exist."
	msgPortMismatch    = "Port does not belong to the specified station."
	msgPortUnavailable = "This port is not available."
	msgSlotTaken       = "This timeslot is already booked."
	msgUserConflict    = "You already have a booking for this timeslot."
)

// validateRequest валидирует структуру запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.StationID <= 0 {
		return fmt.Errorf("%w: stationID must be positive", ErrInvalidInput)
	}

	if req.PortID <= 0 {
		return fmt.Errorf("%w: portID must be positive", ErrInvalidInput)
	}

	if req.Timeslot.IsZero() {
		return fmt.Errorf("%w: timeslot is required", ErrInvalidInput)
	}

	return nil
}

// validateTimeslot граничные проверки слота: они выполняются до обращения
// к хранилищу и при нарушении прерывают обработку сразу
func validateTimeslot(timeslot, now time.Time) *ValidationError {
	if !timeslot.After(now) {
		return &ValidationError{Violations: []Violation{
			{Code: CodeTimeslotPast, Message: msgTimeslotPast},
		}}
	}

	if !domain.IsTimeslotOnGrid(timeslot) {
		return &ValidationError{Violations: []Violation{
			{Code: CodeTimeslotOffGrid, Message: msgTimeslotOffGrid},
		}}
	}

	return nil
}
