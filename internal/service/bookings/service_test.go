package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVCharge-BookingService/internal/domain"
	bookingStorage "github.com/m04kA/EVCharge-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/EVCharge-BookingService/internal/integrations/authservice"
	"github.com/m04kA/EVCharge-BookingService/internal/service/bookings/models"
	"github.com/m04kA/EVCharge-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking   *domain.Booking
	getErr    error
	list      []*domain.Booking
	listErr   error
	updateErr error

	gotFilter     domain.BookingsFilter
	gotStatus     domain.BookingStatus
	gotAdminNotes *string
	updateCalls   int
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return f.booking, f.getErr
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.gotFilter = filter
	return f.list, f.listErr
}

func (f *fakeBookingRepo) UpdateStatusIfPending(_ context.Context, _ int64, status domain.BookingStatus, adminNotes *string) error {
	f.updateCalls++
	f.gotStatus = status
	f.gotAdminNotes = adminNotes
	if f.updateErr != nil {
		return f.updateErr
	}
	f.booking.Status = status
	f.booking.AdminNotes = adminNotes
	return nil
}

type fakeAuthClient struct {
	user  *authservice.User
	err   error
	calls int
}

func (f *fakeAuthClient) GetUser(_ context.Context, _ int64) (*authservice.User, error) {
	f.calls++
	return f.user, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:        101,
		UserID:    42,
		StationID: 3,
		PortID:    7,
		Timeslot:  time.Date(2026, 3, 16, 14, 0, 0, 0, time.Local),
		Status:    status,
		CreatedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local),
		UpdatedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local),
	}
}

func testUser() *authservice.User {
	return &authservice.User{ID: 42, Name: "Ivan Petrov", Email: "ivan@example.com"}
}

func TestUpdateStatus_AcceptPending(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	svc := NewService(repo, &fakeAuthClient{user: testUser()}, nopLogger{})

	resp, err := svc.UpdateStatus(context.Background(), 101, &models.UpdateStatusRequest{
		Status:     "Accepted",
		AdminNotes: ptr.Ptr("Подтверждено оператором"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAccepted, repo.gotStatus)
	require.NotNil(t, repo.gotAdminNotes)
	assert.Equal(t, "Подтверждено оператором", *repo.gotAdminNotes)

	assert.Equal(t, "Accepted", resp.Status)
	require.NotNil(t, resp.UserName)
	assert.Equal(t, "Ivan Petrov", *resp.UserName)
}

func TestUpdateStatus_RejectsNonReviewStatus(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	svc := NewService(repo, &fakeAuthClient{user: testUser()}, nopLogger{})

	for _, status := range []string{"Pending", "Cancelled", ""} {
		_, err := svc.UpdateStatus(context.Background(), 101, &models.UpdateStatusRequest{Status: status})
		require.ErrorIs(t, err, ErrInvalidStatus, "status=%q", status)
	}

	// До репозитория дело не дошло
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateStatus_AdminNotesTooLong(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	svc := NewService(repo, &fakeAuthClient{user: testUser()}, nopLogger{})

	notes := strings.Repeat("x", domain.MaxAdminNotesLength+1)
	_, err := svc.UpdateStatus(context.Background(), 101, &models.UpdateStatusRequest{
		Status:     "Rejected",
		AdminNotes: &notes,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateStatus_AlreadyReviewed(t *testing.T) {
	// Условное обновление никого не затронуло, бронирование существует:
	// оно уже покинуло статус Pending
	repo := &fakeBookingRepo{
		booking:   testBooking(domain.StatusAccepted),
		updateErr: bookingStorage.ErrBookingNotPending,
	}
	svc := NewService(repo, &fakeAuthClient{user: testUser()}, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 101, &models.UpdateStatusRequest{Status: "Rejected"})
	require.ErrorIs(t, err, ErrBookingNotPending)
}

func TestUpdateStatus_BookingNotFound(t *testing.T) {
	repo := &fakeBookingRepo{
		getErr:    bookingStorage.ErrBookingNotFound,
		updateErr: bookingStorage.ErrBookingNotPending,
	}
	svc := NewService(repo, &fakeAuthClient{user: testUser()}, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 404, &models.UpdateStatusRequest{Status: "Accepted"})
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListBookings_Filter(t *testing.T) {
	repo := &fakeBookingRepo{list: []*domain.Booking{testBooking(domain.StatusPending)}}
	svc := NewService(repo, &fakeAuthClient{user: testUser()}, nopLogger{})

	resp, err := svc.ListBookings(context.Background(), &models.ListBookingsRequest{
		UserID: ptr.Ptr(int64(42)),
		Status: ptr.Ptr("Pending"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)

	require.NotNil(t, repo.gotFilter.UserID)
	assert.Equal(t, int64(42), *repo.gotFilter.UserID)
	require.NotNil(t, repo.gotFilter.Status)
	assert.Equal(t, domain.StatusPending, *repo.gotFilter.Status)
}

func TestListBookings_InvalidStatus(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, &fakeAuthClient{user: testUser()}, nopLogger{})

	_, err := svc.ListBookings(context.Background(), &models.ListBookingsRequest{
		Status: ptr.Ptr("NoSuchStatus"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestListBookings_UserNamesCached(t *testing.T) {
	// Два бронирования одного пользователя: AuthService дергается один раз
	repo := &fakeBookingRepo{list: []*domain.Booking{
		testBooking(domain.StatusPending),
		testBooking(domain.StatusAccepted),
	}}
	auth := &fakeAuthClient{user: testUser()}
	svc := NewService(repo, auth, nopLogger{})

	resp, err := svc.ListBookings(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)

	assert.Equal(t, 1, auth.calls)
	for _, b := range resp.Bookings {
		require.NotNil(t, b.UserName)
		assert.Equal(t, "Ivan Petrov", *b.UserName)
	}
}

func TestGetByID_EnrichmentFailureIsNotFatal(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	svc := NewService(repo, &fakeAuthClient{err: authservice.ErrInternal}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 101)
	require.NoError(t, err)
	assert.Nil(t, resp.UserName)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{getErr: bookingStorage.ErrBookingNotFound}
	svc := NewService(repo, &fakeAuthClient{user: testUser()}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 404)
	require.ErrorIs(t, err, ErrBookingNotFound)
}
