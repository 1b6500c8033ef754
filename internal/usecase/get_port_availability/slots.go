package get_port_availability

import (
	"time"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
	"github.com/m04kA/EVCharge-BookingService/pkg/types"
)

// splitSlots делит дневную сетку слотов на занятые и свободные.
// Точка сетки занята, если на неё приходится бронирование в блокирующем
// статусе с точно совпадающим временем (частичных пересечений нет -
// бронирование занимает ровно один слот сетки).
// Обе части сохраняют восходящий хронологический порядок сетки,
// их объединение равно полной сетке
func splitSlots(bookedTimeslots []time.Time) (booked []types.TimeString, free []types.TimeString) {
	bookedSet := make(map[types.TimeString]struct{}, len(bookedTimeslots))
	for _, ts := range bookedTimeslots {
		bookedSet[types.NewTimeString(ts)] = struct{}{}
	}

	grid := domain.SlotGrid()
	booked = make([]types.TimeString, 0, len(bookedSet))
	free = make([]types.TimeString, 0, len(grid))

	for _, slot := range grid {
		if _, ok := bookedSet[slot]; ok {
			booked = append(booked, slot)
		} else {
			free = append(free, slot)
		}
	}

	return booked, free
}

// dayBounds возвращает границы календарных суток даты: [00:00, +24h)
func dayBounds(date time.Time) (time.Time, time.Time) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return dayStart, dayStart.AddDate(0, 0, 1)
}
