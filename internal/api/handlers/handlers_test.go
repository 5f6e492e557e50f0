package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"A"}`},
		{name: "empty body", body: ``, wantErr: true},
		{name: "unknown field", body: `{"name":"A","extra":1}`, wantErr: true},
		{name: "broken json", body: `{"name":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(r, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "A", p.Name)
		})
	}
}

func TestPathID(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		want    int64
		wantErr bool
	}{
		{name: "valid", vars: map[string]string{"id": "42"}, want: 42},
		{name: "missing", vars: map[string]string{}, wantErr: true},
		{name: "not a number", vars: map[string]string{"id": "abc"}, wantErr: true},
		{name: "zero", vars: map[string]string{"id": "0"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), tt.vars)
			id, err := PathID(r, "id")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPathID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestParseDateTime(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Kyiv")
	require.NoError(t, err)

	got, err := ParseDateTime("2030-05-01T10:30", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2030, 5, 1, 10, 30, 0, 0, loc)))

	got, err = ParseDateTime("2030-05-01T10:30:00Z", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC)))

	_, err = ParseDateTime("01.05.2030 10:30", loc)
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = ParseDateTime("  ", loc)
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestValidate(t *testing.T) {
	type request struct {
		Name  string `json:"name" validate:"required,max=5"`
		Email string `json:"email" validate:"required,email"`
	}

	assert.NoError(t, Validate(&request{Name: "Ann", Email: "ann@example.com"}))

	err := Validate(&request{Name: "Annabel", Email: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name: max=5")
	assert.Contains(t, err.Error(), "email: email")
}

func TestRespond(t *testing.T) {
	w := httptest.NewRecorder()
	RespondRejection(w, http.StatusBadRequest, "too_short", "слишком коротко")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"слишком коротко","reason":"too_short"}`, w.Body.String())

	w = httptest.NewRecorder()
	RespondUnauthorized(w, "требуется авторизация")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
}
