package get_port_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
	stationRepo "github.com/m04kA/EVCharge-BookingService/internal/infra/storage/station"
	"github.com/m04kA/EVCharge-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	timeslots []time.Time
	err       error

	gotPortID   int64
	gotDayStart time.Time
	gotDayEnd   time.Time
}

func (f *fakeBookingRepo) ListBookedTimeslotsByPortAndDate(_ context.Context, portID int64, dayStart, dayEnd time.Time) ([]time.Time, error) {
	f.gotPortID = portID
	f.gotDayStart = dayStart
	f.gotDayEnd = dayEnd
	return f.timeslots, f.err
}

type fakeStationRepo struct {
	port *domain.Port
	err  error
}

func (f *fakeStationRepo) GetPortByID(_ context.Context, _ int64) (*domain.Port, error) {
	return f.port, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testPort() *domain.Port {
	return &domain.Port{
		ID:              7,
		StationID:       3,
		PortNumber:      "A1",
		Type:            domain.ChargingType2,
		PowerKW:         22,
		IsActive:        true,
		StationIsActive: true,
	}
}

func TestExecute_EmptyDay(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := NewUseCase(bookings, &fakeStationRepo{port: testPort()}, nopLogger{})

	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	resp, err := uc.Execute(context.Background(), &Request{PortID: 7, Date: date})
	require.NoError(t, err)

	assert.Empty(t, resp.BookedSlots)
	assert.Len(t, resp.FreeSlots, domain.SlotsPerDay)
	assert.Equal(t, types.TimeString("06:00"), resp.FreeSlots[0])
	assert.Equal(t, types.TimeString("22:00"), resp.FreeSlots[len(resp.FreeSlots)-1])

	// Запрошены границы календарных суток [00:00, +24h)
	assert.Equal(t, int64(7), bookings.gotPortID)
	assert.Equal(t, date, bookings.gotDayStart)
	assert.Equal(t, date.AddDate(0, 0, 1), bookings.gotDayEnd)
}

func TestExecute_BookedSlotExcludedFromFree(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	booked := time.Date(2026, 3, 15, 14, 0, 0, 0, time.Local)

	uc := NewUseCase(
		&fakeBookingRepo{timeslots: []time.Time{booked}},
		&fakeStationRepo{port: testPort()},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{PortID: 7, Date: date})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"14:00"}, resp.BookedSlots)
	assert.Len(t, resp.FreeSlots, domain.SlotsPerDay-1)
	assert.NotContains(t, resp.FreeSlots, types.TimeString("14:00"))

	// Занятые и свободные слоты вместе составляют полную сетку без пересечений
	seen := make(map[types.TimeString]int)
	for _, slot := range resp.BookedSlots {
		seen[slot]++
	}
	for _, slot := range resp.FreeSlots {
		seen[slot]++
	}
	require.Len(t, seen, domain.SlotsPerDay)
	for slot, count := range seen {
		assert.Equal(t, 1, count, "slot %s appears %d times", slot, count)
	}
}

func TestExecute_FreeSlotsChronological(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	uc := NewUseCase(
		&fakeBookingRepo{timeslots: []time.Time{
			time.Date(2026, 3, 15, 22, 0, 0, 0, time.Local),
			time.Date(2026, 3, 15, 6, 0, 0, 0, time.Local),
		}},
		&fakeStationRepo{port: testPort()},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{PortID: 7, Date: date})
	require.NoError(t, err)

	for i := 1; i < len(resp.FreeSlots); i++ {
		assert.True(t, resp.FreeSlots[i-1].IsBefore(resp.FreeSlots[i]),
			"free slots out of order: %s >= %s", resp.FreeSlots[i-1], resp.FreeSlots[i])
	}
}

func TestExecute_Idempotent(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	uc := NewUseCase(
		&fakeBookingRepo{timeslots: []time.Time{
			time.Date(2026, 3, 15, 10, 30, 0, 0, time.Local),
		}},
		&fakeStationRepo{port: testPort()},
		nopLogger{},
	)

	first, err := uc.Execute(context.Background(), &Request{PortID: 7, Date: date})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), &Request{PortID: 7, Date: date})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_PortNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeStationRepo{err: stationRepo.ErrPortNotFound},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		PortID: 404,
		Date:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local),
	})
	require.ErrorIs(t, err, ErrPortNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeStationRepo{port: testPort()}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{PortID: 0, Date: time.Now()})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{PortID: 7})
	require.ErrorIs(t, err, ErrInvalidInput)
}
