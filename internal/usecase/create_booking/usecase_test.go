package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
	bookingStorage "github.com/m04kA/EVCharge-BookingService/internal/infra/storage/booking"
	stationStorage "github.com/m04kA/EVCharge-BookingService/internal/infra/storage/station"
	"github.com/m04kA/EVCharge-BookingService/internal/integrations/authservice"
)

type fakeBookingRepo struct {
	createErr    error
	portTaken    bool
	userConflict bool

	created *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	booking.ID = 101
	booking.CreatedAt = time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	booking.UpdatedAt = booking.CreatedAt
	f.created = booking
	return booking, nil
}

func (f *fakeBookingRepo) ExistsBlockingByPortAndTimeslot(_ context.Context, _ int64, _ time.Time) (bool, error) {
	return f.portTaken, nil
}

func (f *fakeBookingRepo) ExistsBlockingByUserAndTimeslot(_ context.Context, _ int64, _ time.Time) (bool, error) {
	return f.userConflict, nil
}

type fakeStationRepo struct {
	station    *domain.Station
	stationErr error
	port       *domain.Port
	portErr    error
}

func (f *fakeStationRepo) GetStationByID(_ context.Context, _ int64) (*domain.Station, error) {
	return f.station, f.stationErr
}

func (f *fakeStationRepo) GetPortByID(_ context.Context, _ int64) (*domain.Port, error) {
	return f.port, f.portErr
}

type fakeAuthClient struct {
	user *authservice.User
	err  error
}

func (f *fakeAuthClient) GetUser(_ context.Context, _ int64) (*authservice.User, error) {
	return f.user, f.err
}

// fakeTxManager выполняет fn без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testStation() *domain.Station {
	return &domain.Station{ID: 3, Name: "Riverside Hub", Address: "12 Embankment St", IsActive: true}
}

func testPort() *domain.Port {
	return &domain.Port{
		ID:              7,
		StationID:       3,
		PortNumber:      "A1",
		Type:            domain.ChargingCCS,
		PowerKW:         60,
		IsActive:        true,
		StationIsActive: true,
	}
}

func testUser() *authservice.User {
	return &authservice.User{ID: 42, Name: "Ivan Petrov", Email: "ivan@example.com"}
}

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)

func newTestUseCase(bookings *fakeBookingRepo, stations *fakeStationRepo, auth *fakeAuthClient) *UseCase {
	return NewUseCase(bookings, stations, auth, fakeTxManager{}, fixedTime{now: testNow}, nopLogger{})
}

func validRequest() *Request {
	return &Request{
		UserID:    42,
		StationID: 3,
		PortID:    7,
		Timeslot:  time.Date(2026, 3, 16, 14, 0, 0, 0, time.Local),
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings, &fakeStationRepo{station: testStation(), port: testPort()}, &fakeAuthClient{user: testUser()})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Статус всегда Pending вне зависимости от входных данных
	require.NotNil(t, bookings.created)
	assert.Equal(t, domain.StatusPending, bookings.created.Status)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, "Ivan Petrov", resp.User.Name)
	assert.Equal(t, "Riverside Hub", resp.Station.Name)
	assert.Equal(t, "A1", resp.Port.PortNumber)
}

func TestExecute_PastTimeslotRejectedBeforeChecks(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings, &fakeStationRepo{station: testStation(), port: testPort()}, &fakeAuthClient{user: testUser()})

	req := validRequest()
	req.Timeslot = testNow.Add(-time.Hour)

	_, err := uc.Execute(context.Background(), req)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Violations, 1)
	assert.Equal(t, CodeTimeslotPast, vErr.Violations[0].Code)
	assert.Equal(t, "Timeslot must be in the future.", vErr.Violations[0].Message)

	// До бизнес-проверок и записи дело не дошло
	assert.Nil(t, bookings.created)
}

func TestExecute_OffGridTimeslotRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeStationRepo{station: testStation(), port: testPort()}, &fakeAuthClient{user: testUser()})

	req := validRequest()
	req.Timeslot = time.Date(2026, 3, 16, 14, 15, 0, 0, time.Local)

	_, err := uc.Execute(context.Background(), req)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Violations, 1)
	assert.Equal(t, CodeTimeslotOffGrid, vErr.Violations[0].Code)
}

func TestExecute_AggregatesViolations(t *testing.T) {
	// Порт принадлежит другой станции, и у пользователя уже есть
	// бронирование на этот слот: клиент получает оба нарушения сразу
	port := testPort()
	port.StationID = 99

	uc := newTestUseCase(
		&fakeBookingRepo{userConflict: true},
		&fakeStationRepo{station: testStation(), port: port},
		&fakeAuthClient{user: testUser()},
	)

	_, err := uc.Execute(context.Background(), validRequest())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Violations, 2)
	assert.Equal(t, CodePortMismatch, vErr.Violations[0].Code)
	assert.Equal(t, "Port does not belong to the specified station.", vErr.Violations[0].Message)
	assert.Equal(t, CodeUserConflict, vErr.Violations[1].Code)
	assert.Equal(t, "You already have a booking for this timeslot.", vErr.Violations[1].Message)
}

func TestExecute_InactivePort(t *testing.T) {
	port := testPort()
	port.IsActive = false

	uc := newTestUseCase(
		&fakeBookingRepo{portTaken: true},
		&fakeStationRepo{station: testStation(), port: port},
		&fakeAuthClient{user: testUser()},
	)

	_, err := uc.Execute(context.Background(), validRequest())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	// Проверка занятости слота пропущена: порт и так недоступен
	require.Len(t, vErr.Violations, 1)
	assert.Equal(t, CodePortUnavailable, vErr.Violations[0].Code)
	assert.Equal(t, "This port is not available.", vErr.Violations[0].Message)
}

func TestExecute_InactiveStationMakesPortUnavailable(t *testing.T) {
	station := testStation()
	station.IsActive = false
	port := testPort()
	port.StationIsActive = false

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeStationRepo{station: station, port: port},
		&fakeAuthClient{user: testUser()},
	)

	_, err := uc.Execute(context.Background(), validRequest())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Violations, 1)
	assert.Equal(t, CodePortUnavailable, vErr.Violations[0].Code)
}

func TestExecute_SlotAlreadyBooked(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{portTaken: true},
		&fakeStationRepo{station: testStation(), port: testPort()},
		&fakeAuthClient{user: testUser()},
	)

	_, err := uc.Execute(context.Background(), validRequest())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Violations, 1)
	assert.Equal(t, CodeSlotTaken, vErr.Violations[0].Code)
	assert.Equal(t, "This timeslot is already booked.", vErr.Violations[0].Message)
}

func TestExecute_UnknownStationAndPort(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeStationRepo{stationErr: stationStorage.ErrStationNotFound, portErr: stationStorage.ErrPortNotFound},
		&fakeAuthClient{user: testUser()},
	)

	_, err := uc.Execute(context.Background(), validRequest())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Violations, 2)
	assert.Equal(t, CodeStationNotFound, vErr.Violations[0].Code)
	assert.Equal(t, CodePortNotFound, vErr.Violations[1].Code)
}

func TestExecute_SlotRaceLostReturnsConflict(t *testing.T) {
	// Предварительная проверка прошла, но вставка упала на частичном
	// уникальном индексе: конкурент успел первым
	uc := newTestUseCase(
		&fakeBookingRepo{createErr: bookingStorage.ErrSlotTaken},
		&fakeStationRepo{station: testStation(), port: testPort()},
		&fakeAuthClient{user: testUser()},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_UserNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeStationRepo{station: testStation(), port: testPort()},
		&fakeAuthClient{err: authservice.ErrUserNotFound},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeStationRepo{}, &fakeAuthClient{user: testUser()})

	req := validRequest()
	req.PortID = 0

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)
}
