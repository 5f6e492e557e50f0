package list_rooms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	resp *models.RoomListResponse
	err  error
}

func (f *fakeService) ListActive(context.Context) (*models.RoomListResponse, error) {
	return f.resp, f.err
}

func TestHandle(t *testing.T) {
	svc := &fakeService{resp: &models.RoomListResponse{Rooms: []models.RoomResponse{
		{ID: 1, Name: "Атриум", PricePerHour: "150.00", IsActive: true},
		{ID: 2, Name: "Библиотека", PricePerHour: "90.50", IsActive: true},
	}}}

	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got models.RoomListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Rooms, 2)
	assert.Equal(t, "Атриум", got.Rooms[0].Name)
	assert.Equal(t, "90.50", got.Rooms[1].PricePerHour)
}

func TestHandle_Error(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(&fakeService{err: errors.New("boom")}, nopLogger{}).
		Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
