package create_booking

import (
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("create_booking: invalid input")
	ErrUserNotFound = errors.New("create_booking: user not found")
	ErrSlotTaken    = errors.New("create_booking: timeslot already booked")
	ErrInternal     = errors.New("create_booking: internal error")
)

// Коды нарушений валидации
const (
	CodeTimeslotPast    = "timeslot_past"
	CodeTimeslotOffGrid = "timeslot_off_grid"
	CodeStationNotFound = "station_not_found"
	CodePortNotFound    = "port_not_found"
	CodePortMismatch    = "port_station_mismatch"
	CodePortUnavailable = "port_unavailable"
	CodeSlotTaken       = "slot_taken"
	CodeUserConflict    = "user_conflict"
)

// Violation одно нарушение бизнес-правил при создании бронирования
type Violation struct {
	Code    string
	Message string
}

// ValidationError агрегат нарушений: все проверки выполняются до конца,
// клиент получает полный список, а не первое найденное нарушение
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "create_booking: validation failed: " + strings.Join(msgs, " ")
}

// Messages возвращает тексты нарушений в порядке их обнаружения
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return msgs
}
