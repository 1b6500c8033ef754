package domain

import (
	"time"

	"github.com/m04kA/EVCharge-BookingService/pkg/types"
)

// SlotGrid возвращает все времена начала слотов рабочего дня
// Сетка фиксированная: с 06:00 до 22:00 включительно с шагом 30 минут (33 слота)
func SlotGrid() []types.TimeString {
	grid := make([]types.TimeString, 0, SlotsPerDay)

	current := types.TimeString(OperatingDayStart)
	end := types.TimeString(OperatingDayEnd)

	for {
		grid = append(grid, current)
		if !current.IsBefore(end) {
			break
		}
		next, err := current.AddMinutes(SlotDurationMinutes)
		if err != nil {
			// Константы сетки валидны, сюда попасть нельзя
			break
		}
		current = next
	}

	return grid
}

// IsTimeslotOnGrid проверяет, что timeslot попадает точно на сетку слотов:
// секунды нулевые, минуты кратны 30, время в пределах рабочего окна
func IsTimeslotOnGrid(timeslot time.Time) bool {
	if timeslot.Second() != 0 || timeslot.Nanosecond() != 0 {
		return false
	}
	if timeslot.Minute()%SlotDurationMinutes != 0 {
		return false
	}

	timeOfDay := types.NewTimeString(timeslot)
	start := types.TimeString(OperatingDayStart)
	end := types.TimeString(OperatingDayEnd)

	return !timeOfDay.IsBefore(start) && !timeOfDay.IsAfter(end)
}

// PortAvailability доступность порта на конкретную дату
type PortAvailability struct {
	BookedSlots []types.TimeString // Занятые слоты (Pending или Accepted)
	FreeSlots   []types.TimeString // Свободные слоты в хронологическом порядке
}
