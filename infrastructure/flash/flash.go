package flash

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/prasetyowira/qrgen/constant"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
)

const defaultTTL = time.Minute

// Notice is a one-time message shown on the next rendered page
type Notice struct {
	Level   string
	Message string
}

type claims struct {
	Level   string `json:"lvl"`
	Message string `json:"msg"`
	jwt.RegisteredClaims
}

// Store keeps notices in a signed cookie so no server side session is needed
type Store struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewStore creates a store signing cookies with secret (HS256)
func NewStore(secret string, secure bool) *Store {
	return &Store{
		secret: []byte(secret),
		ttl:    defaultTTL,
		secure: secure,
	}
}

// Error is shorthand for an error level notice
func Error(message string) Notice {
	return Notice{Level: constant.LevelError, Message: message}
}

// Success is shorthand for a success level notice
func Success(message string) Notice {
	return Notice{Level: constant.LevelSuccess, Message: message}
}

// Set stores the notice for the next request
func (s *Store) Set(w http.ResponseWriter, n Notice) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Level:   n.Level,
		Message: n.Message,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     constant.FlashCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Redirect stores the notice and redirects to target. If signing fails the
// redirect still happens without a notice.
func (s *Store) Redirect(w http.ResponseWriter, r *http.Request, target string, n Notice) {
	if err := s.Set(w, n); err != nil {
		appLogger.CtxError(r.Context(), "Failed to sign flash notice", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFlash,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIFlash,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// Pop returns the pending notice, if any, and clears it
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) *Notice {
	cookie, err := r.Cookie(constant.FlashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     constant.FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	n, err := s.parse(cookie.Value)
	if err != nil {
		logDiscarded(r.Context(), err)
		return nil
	}
	return n
}

func (s *Store) parse(value string) (*Notice, error) {
	parsed, err := jwt.ParseWithClaims(value, &claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid flash claims")
	}

	return &Notice{Level: c.Level, Message: c.Message}, nil
}

func logDiscarded(ctx context.Context, err error) {
	appLogger.CtxDebug(ctx, "Discarded flash notice", appLogger.LoggerInfo{
		ContextFunction: constant.CtxFlash,
		Data: map[string]interface{}{
			"reason": err.Error(),
		},
	})
}
