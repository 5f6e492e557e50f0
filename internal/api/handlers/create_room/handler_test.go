package create_room

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
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
	calls  int
	gotReq *models.RoomRequest
	err    error
}

func (f *fakeService) Create(_ context.Context, _ domain.Actor, req *models.RoomRequest) (*models.RoomResponse, error) {
	f.calls++
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.RoomResponse{ID: 11, Name: req.Name, PricePerHour: req.PricePerHour.StringFixed(2)}, nil
}

func request(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/admin/rooms", strings.NewReader(body))
	return r.WithContext(middleware.WithActor(r.Context(), domain.Actor{Subject: "m", IsStaff: true}))
}

const validBody = `{"name":"Атриум","description":"Светлый зал","capacity":12,"pricePerHour":"150.50","featureIds":[1,2]}`

func TestHandle(t *testing.T) {
	svc := &fakeService{}

	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, request(validBody))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Атриум", svc.gotReq.Name)
	assert.Equal(t, 12, svc.gotReq.Capacity)
	assert.True(t, svc.gotReq.PricePerHour.Equal(decimal.RequireFromString("150.5")))
	assert.Equal(t, []int64{1, 2}, svc.gotReq.FeatureIDs)
	assert.Nil(t, svc.gotReq.IsActive)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCalled bool
	}{
		{name: "broken body", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "missing name", body: `{"capacity":3,"pricePerHour":"1"}`, wantStatus: http.StatusBadRequest},
		{name: "zero capacity", body: `{"name":"A","capacity":0,"pricePerHour":"1"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid room", body: validBody, err: rooms.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantCalled: true},
		{name: "unknown feature", body: validBody, err: rooms.ErrFeatureNotFound, wantStatus: http.StatusBadRequest, wantCalled: true},
		{name: "forbidden", body: validBody, err: rooms.ErrAccessDenied, wantStatus: http.StatusForbidden, wantCalled: true},
		{name: "internal", body: validBody, err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			w := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(w, request(tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCalled, svc.calls > 0)
		})
	}
}
