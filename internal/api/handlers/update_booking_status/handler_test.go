package update_booking_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVCharge-BookingService/internal/service/bookings"
	"github.com/m04kA/EVCharge-BookingService/internal/service/bookings/models"
)

type fakeService struct {
	resp *models.BookingResponse
	err  error

	gotBookingID int64
	gotReq       *models.UpdateStatusRequest
}

func (f *fakeService) UpdateStatus(_ context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	f.gotBookingID = bookingID
	f.gotReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, svc *fakeService, bookingID, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(svc, nopLogger{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/"+bookingID+"/status", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})

	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{resp: &models.BookingResponse{ID: 101, Status: "Accepted"}}

	rec := doRequest(t, svc, "101", `{"status":"Accepted","adminNotes":"ok"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(101), svc.gotBookingID)
	require.NotNil(t, svc.gotReq.AdminNotes)
	assert.Equal(t, "ok", *svc.gotReq.AdminNotes)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Accepted", resp.Status)
}

func TestHandle_InvalidBookingID(t *testing.T) {
	rec := doRequest(t, &fakeService{}, "abc", `{"status":"Accepted"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidStatus(t *testing.T) {
	svc := &fakeService{err: bookings.ErrInvalidStatus}

	rec := doRequest(t, svc, "101", `{"status":"Pending"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_NotFound(t *testing.T) {
	svc := &fakeService{err: bookings.ErrBookingNotFound}

	rec := doRequest(t, svc, "404", `{"status":"Rejected"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_NoLongerPending(t *testing.T) {
	svc := &fakeService{err: bookings.ErrBookingNotPending}

	rec := doRequest(t, svc, "101", `{"status":"Rejected"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Booking status cannot be changed. It is no longer pending.", resp["error"])
}
