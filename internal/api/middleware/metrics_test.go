package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method, path, status string
}

type fakeHTTPMetrics struct {
	observed []observation
}

func (f *fakeHTTPMetrics) ObserveHTTPRequest(method, path, status string, _ float64) {
	f.observed = append(f.observed, observation{method: method, path: path, status: status})
}

func TestMetricsMiddleware(t *testing.T) {
	m := &fakeHTTPMetrics{}

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/rooms/{roomId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/rooms", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}).Methods(http.MethodGet)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/rooms/17", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil))

	require.Len(t, m.observed, 2)
	assert.Equal(t, observation{method: http.MethodGet, path: "/api/v1/rooms/{roomId}", status: "404"}, m.observed[0])
	assert.Equal(t, observation{method: http.MethodGet, path: "/api/v1/rooms", status: "200"}, m.observed[1])
}
