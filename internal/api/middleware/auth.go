package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

const (
	msgUnauthorized = "требуется авторизация"
	msgForbidden    = "доступ разрешен только сотрудникам"
)

var (
	ErrMissingToken = errors.New("auth: missing bearer token")
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// StaffClaims claims токена, выданного внешним провайдером идентификации
type StaffClaims struct {
	Staff bool `json:"staff"`
	jwt.RegisteredClaims
}

// Auth проверяет Bearer токены (HS256) и кладёт Actor в context
type Auth struct {
	secret []byte
	issuer string
	logger Logger
}

// NewAuth создает middleware авторизации. Пустой issuer не проверяется.
func NewAuth(secret, issuer string, logger Logger) *Auth {
	return &Auth{
		secret: []byte(secret),
		issuer: issuer,
		logger: logger,
	}
}

// Authenticate отвечает 401, если токена нет или он невалиден
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := a.ParseActor(r.Header.Get("Authorization"))
		if err != nil {
			a.logger.Warn("%s %s - unauthorized: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// ParseActor разбирает значение заголовка Authorization
func (a *Auth) ParseActor(header string) (domain.Actor, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return domain.Actor{}, ErrMissingToken
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &StaffClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return domain.Actor{}, errors.Join(ErrInvalidToken, err)
	}

	return domain.Actor{Subject: claims.Subject, IsStaff: claims.Staff}, nil
}

// RequireStaff отвечает 403 аутентифицированному пользователю без прав сотрудника.
// Используется после Authenticate.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		if !actor.IsStaff {
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor достает Actor из context
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
