package update_booking_status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	calls     int
	gotID     int64
	gotStatus string
	err       error
}

func (f *fakeService) UpdateStatus(_ context.Context, _ domain.Actor, id int64, status string) (*models.BookingResponse, error) {
	f.calls++
	f.gotID = id
	f.gotStatus = status
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: status}, nil
}

func request(id, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/bookings/"+id+"/status", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"bookingId": id})
	return r.WithContext(middleware.WithActor(r.Context(), domain.Actor{Subject: "m", IsStaff: true}))
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}

	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, request("4", `{"status":"confirmed"}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(4), svc.gotID)
	assert.Equal(t, "confirmed", svc.gotStatus)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body string
	}{
		{name: "invalid id", id: "-1", body: `{"status":"confirmed"}`},
		{name: "empty body", id: "4", body: ``},
		{name: "empty status", id: "4", body: `{"status":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			w := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(w, request(tt.id, tt.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, svc.calls)
		})
	}
}

func TestHandle_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{name: "overlap on reopen", err: domain.ErrOverlap, wantStatus: http.StatusConflict, wantReason: "overlap"},
		{name: "unknown status", err: bookings.ErrInvalidStatus, wantStatus: http.StatusBadRequest},
		{name: "not found", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler(&fakeService{err: tt.err}, nopLogger{}).Handle(w, request("4", `{"status":"pending"}`))

			assert.Equal(t, tt.wantStatus, w.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantReason, body.Reason)
		})
	}
}
