package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVCharge-BookingService/internal/api/middleware"
	"github.com/m04kA/EVCharge-BookingService/internal/domain"
	createBooking "github.com/m04kA/EVCharge-BookingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error

	gotReq *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc *fakeUseCase, body string, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if authenticated {
		req.Header.Set("X-User-ID", "42")
	}

	rec := httptest.NewRecorder()
	// Прогоняем через Auth middleware, как в боевом роутере
	middleware.Auth(http.HandlerFunc(handler.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:     101,
		UserID: 42,
		Status: domain.StatusPending,
	}}

	rec := doRequest(t, uc, `{"stationId":3,"portId":7,"timeslot":"2026-03-16 14:00:00"}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(42), uc.gotReq.UserID)
	assert.Equal(t, int64(7), uc.gotReq.PortID)
	assert.Equal(t, 14, uc.gotReq.Timeslot.Hour())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Pending", resp.Status)
}

func TestHandle_Unauthenticated(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, `{"stationId":3,"portId":7,"timeslot":"2026-03-16 14:00:00"}`, false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_InvalidTimeslotFormat(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, `{"stationId":3,"portId":7,"timeslot":"16.03.2026 14:00"}`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ValidationViolations(t *testing.T) {
	uc := &fakeUseCase{err: &createBooking.ValidationError{Violations: []createBooking.Violation{
		{Code: createBooking.CodeSlotTaken, Message: "This timeslot is already booked."},
		{Code: createBooking.CodeUserConflict, Message: "You already have a booking for this timeslot."},
	}}}

	rec := doRequest(t, uc, `{"stationId":3,"portId":7,"timeslot":"2026-03-16 14:00:00"}`, true)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Error      string   `json:"error"`
		Violations []string `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{
		"This timeslot is already booked.",
		"You already have a booking for this timeslot.",
	}, resp.Violations)
}

func TestHandle_SlotRaceConflict(t *testing.T) {
	uc := &fakeUseCase{err: createBooking.ErrSlotTaken}

	rec := doRequest(t, uc, `{"stationId":3,"portId":7,"timeslot":"2026-03-16 14:00:00"}`, true)
	require.Equal(t, http.StatusConflict, rec.Code)
}
