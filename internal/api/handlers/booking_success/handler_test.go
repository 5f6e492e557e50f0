package booking_success

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandle(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler().Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/success", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"`+msgBookingAccepted+`"}`, w.Body.String())
}
