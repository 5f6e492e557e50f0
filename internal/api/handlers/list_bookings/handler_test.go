package list_bookings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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
	gotActor domain.Actor
	gotReq   *models.ListBookingsRequest
	resp     *models.BookingListResponse
	err      error
}

func (f *fakeService) List(_ context.Context, actor domain.Actor, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	f.gotActor = actor
	f.gotReq = req
	return f.resp, f.err
}

var staff = domain.Actor{Subject: "manager-1", IsStaff: true}

func TestHandle(t *testing.T) {
	svc := &fakeService{resp: &models.BookingListResponse{
		Bookings: []models.BookingResponse{{ID: 5, Status: "pending"}},
		Page:     2, PageSize: 20, Total: 21, TotalPages: 2,
	}}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings?status=pending&roomId=3&date=2030-05-01&q=anna&page=2", nil)
	r = r.WithContext(middleware.WithActor(r.Context(), staff))
	w := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, staff, svc.gotActor)
	assert.Equal(t, &models.ListBookingsRequest{
		Status: "pending", RoomID: "3", Date: "2030-05-01", Query: "anna", Page: "2",
	}, svc.gotReq)

	var got models.BookingListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 2, got.TotalPages)
	require.Len(t, got.Bookings, 1)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		withActor  bool
		err        error
		wantStatus int
	}{
		{name: "no actor", wantStatus: http.StatusUnauthorized},
		{name: "not staff", withActor: true, err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", withActor: true, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
			if tt.withActor {
				r = r.WithContext(middleware.WithActor(r.Context(), staff))
			}
			w := httptest.NewRecorder()

			NewHandler(&fakeService{err: tt.err}, nopLogger{}).Handle(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
