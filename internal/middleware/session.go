package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "cart_session"
	CtxSessionIDKey   = "session_id" // string
)

type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Secure bool

	NewID func() string
	Now   func() time.Time
}

// cookieのJWTからセッションIDを取り出す。無い・壊れている・期限切れなら新規発行する。
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * 24 * time.Hour
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	secret := []byte(cfg.Secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ck, err := c.Cookie(SessionCookieName); err == nil && ck.Value != "" {
				if id, err := parseSessionToken(ck.Value, secret, cfg.Now()); err == nil {
					c.Set(CtxSessionIDKey, id)
					return next(c)
				}
			}

			//新しいセッションを発行
			id := cfg.NewID()
			now := cfg.Now()
			token, err := signSessionToken(id, secret, now, cfg.TTL)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("session error"))
			}

			c.SetCookie(&http.Cookie{
				Name:     SessionCookieName,
				Value:    token,
				Path:     "/",
				Expires:  now.Add(cfg.TTL),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(CtxSessionIDKey, id)
			return next(c)
		}
	}
}

// SessionID はcontextに入ったセッションIDを返す。無ければ空文字
func SessionID(c echo.Context) string {
	id, _ := c.Get(CtxSessionIDKey).(string)
	return id
}

func signSessionToken(id string, secret []byte, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseSessionToken(raw string, secret []byte, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", errors.New("invalid session")
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(now) {
		return "", errors.New("session expired")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.New("invalid session id")
	}
	return claims.Subject, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
