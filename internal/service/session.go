package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultSessionTTL = 7 * 24 * time.Hour

var ErrInvalidSession = errors.New("invalid session token")

// SessionService signs the cookie that ties a browser to its View. The
// token only names the session; it grants nothing on the backend.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(secret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Claims defines the session JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// Issue starts a new session and returns its id and signed token.
func (s *SessionService) Issue() (string, string, error) {
	if len(s.secret) == 0 {
		return "", "", errors.New("session secret is not configured")
	}
	sid := uuid.NewString()
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SessionID: sid,
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign session token: %w", err)
	}
	return sid, signed, nil
}

// Parse verifies a session token and returns the session id it carries.
func (s *SessionService) Parse(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || strings.TrimSpace(claims.SessionID) == "" {
		return "", ErrInvalidSession
	}
	return claims.SessionID, nil
}
