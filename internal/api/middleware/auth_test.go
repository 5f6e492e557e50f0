package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

const (
	testSecret = "test-secret"
	testIssuer = "room-booking"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims StaffClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func staffClaims(staff bool) StaffClaims {
	return StaffClaims{
		Staff: staff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "manager-1",
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestAuth_ParseActor(t *testing.T) {
	auth := NewAuth(testSecret, testIssuer, nopLogger{})

	expired := staffClaims(true)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	foreign := staffClaims(true)
	foreign.Issuer = "someone-else"

	tests := []struct {
		name    string
		header  string
		want    domain.Actor
		wantErr error
	}{
		{
			name:   "staff token",
			header: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, staffClaims(true)),
			want:   domain.Actor{Subject: "manager-1", IsStaff: true},
		},
		{
			name:   "non-staff token",
			header: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, staffClaims(false)),
			want:   domain.Actor{Subject: "manager-1", IsStaff: false},
		},
		{name: "no header", header: "", wantErr: ErrMissingToken},
		{name: "wrong scheme", header: "Basic abc", wantErr: ErrMissingToken},
		{
			name:    "wrong secret",
			header:  "Bearer " + signToken(t, "other", jwt.SigningMethodHS256, staffClaims(true)),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "wrong algorithm",
			header:  "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS512, staffClaims(true)),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "expired",
			header:  "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, expired),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "foreign issuer",
			header:  "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, foreign),
			wantErr: ErrInvalidToken,
		},
		{name: "garbage", header: "Bearer not-a-token", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor, err := auth.ParseActor(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, actor)
		})
	}
}

func TestAuth_Chain(t *testing.T) {
	auth := NewAuth(testSecret, testIssuer, nopLogger{})

	var reached bool
	var gotActor domain.Actor
	protected := auth.Authenticate(RequireStaff(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		gotActor, _ = GetActor(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})))

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantReached bool
	}{
		{name: "no token", header: "", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer broken", wantStatus: http.StatusUnauthorized},
		{
			name:       "non-staff",
			header:     "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, staffClaims(false)),
			wantStatus: http.StatusForbidden,
		},
		{
			name:        "staff",
			header:      "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, staffClaims(true)),
			wantStatus:  http.StatusNoContent,
			wantReached: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantReached, reached)
			if tt.wantReached {
				assert.Equal(t, "manager-1", gotActor.Subject)
			}
		})
	}
}

func TestRequireStaff_WithoutActor(t *testing.T) {
	h := RequireStaff(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("must not be reached")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
