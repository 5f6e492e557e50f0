package list_features

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

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
	err error
}

func (f *fakeService) ListFeatures(context.Context, domain.Actor) (*models.FeatureListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.FeatureListResponse{Features: []models.FeatureResponse{{ID: 1, Name: "Проектор", Icon: "projector"}}}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		withActor  bool
		err        error
		wantStatus int
	}{
		{name: "ok", withActor: true, wantStatus: http.StatusOK},
		{name: "no actor", wantStatus: http.StatusUnauthorized},
		{name: "forbidden", withActor: true, err: rooms.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", withActor: true, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/features", nil)
			if tt.withActor {
				r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{Subject: "m", IsStaff: true}))
			}
			w := httptest.NewRecorder()

			NewHandler(&fakeService{err: tt.err}, nopLogger{}).Handle(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"features":[{"id":1,"name":"Проектор","icon":"projector"}]}`, w.Body.String())
			}
		})
	}
}
