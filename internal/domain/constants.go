package domain

// Slot grid constants
// Слоты фиксированные: 30 минут, рабочее окно 06:00-22:00
// Последний слот начинается ровно в 22:00 (обе границы включительно)
const (
	SlotDurationMinutes = 30
	OperatingDayStart   = "06:00"
	OperatingDayEnd     = "22:00"
	SlotsPerDay         = 33
)

// Time format constants
const (
	TimeFormat     = "15:04"               // HH:MM
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	TimeslotFormat = "2006-01-02 15:04:05" // Формат timeslot в запросах
)

// Business validation constants
const (
	MaxAdminNotesLength = 500
)

// BlockingStatuses статусы, при которых бронирование занимает слот
// Используется при подсчёте занятых слотов и в проверках конфликтов
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusAccepted,
}
