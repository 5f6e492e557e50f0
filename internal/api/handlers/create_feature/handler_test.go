package create_feature

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
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
	calls  int
	gotReq *models.FeatureRequest
	err    error
}

func (f *fakeService) CreateFeature(_ context.Context, _ domain.Actor, req *models.FeatureRequest) (*models.FeatureResponse, error) {
	f.calls++
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.FeatureResponse{ID: 3, Name: req.Name, Icon: req.Icon}, nil
}

func request(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/admin/features", strings.NewReader(body))
	return r.WithContext(middleware.WithActor(r.Context(), domain.Actor{Subject: "m", IsStaff: true}))
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}

	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, request(`{"name":"Wi-Fi","icon":"wifi"}`))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, &models.FeatureRequest{Name: "Wi-Fi", Icon: "wifi"}, svc.gotReq)
	assert.JSONEq(t, `{"id":3,"name":"Wi-Fi","icon":"wifi"}`, w.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCalled bool
	}{
		{name: "missing name", body: `{"icon":"wifi"}`, wantStatus: http.StatusBadRequest},
		{name: "icon too long", body: `{"name":"A","icon":"` + strings.Repeat("x", 51) + `"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid", body: `{"name":"A"}`, err: rooms.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantCalled: true},
		{name: "forbidden", body: `{"name":"A"}`, err: rooms.ErrAccessDenied, wantStatus: http.StatusForbidden, wantCalled: true},
		{name: "internal", body: `{"name":"A"}`, err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCalled: true},
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
