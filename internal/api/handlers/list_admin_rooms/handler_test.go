package list_admin_rooms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	gotReq *models.ListRoomsRequest
	err    error
}

func (f *fakeService) ListAll(_ context.Context, _ domain.Actor, req *models.ListRoomsRequest) (*models.RoomListResponse, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.RoomListResponse{Rooms: []models.RoomResponse{{ID: 1, IsActive: false}}}, nil
}

func request(withActor bool) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/rooms?active=false&q=зал", nil)
	if withActor {
		r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{Subject: "m", IsStaff: true}))
	}
	return r
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}

	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, request(true))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, &models.ListRoomsRequest{Active: "false", Query: "зал"}, svc.gotReq)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		withActor  bool
		err        error
		wantStatus int
	}{
		{name: "no actor", wantStatus: http.StatusUnauthorized},
		{name: "forbidden", withActor: true, err: rooms.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", withActor: true, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler(&fakeService{err: tt.err}, nopLogger{}).Handle(w, request(tt.withActor))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
