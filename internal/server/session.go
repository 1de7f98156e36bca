package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie is the cookie carrying the signed hand-off key
const SessionCookie = "intern_ease_session"

const sessionIssuer = "intern-ease"

// SessionError indicates a missing or invalid session cookie
type SessionError struct {
	Message string
	Cause   error
}

func (e *SessionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SessionError) Unwrap() error {
	return e.Cause
}

// SessionService signs and verifies session tokens. The subject of each
// token is the hand-off key of one generation result.
type SessionService struct {
	key    []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewSessionService creates a session service. ttl should match the hand-off
// store TTL so a token never outlives its entry by much.
func NewSessionService(signingKey []byte, ttl time.Duration, secure bool) *SessionService {
	return &SessionService{key: signingKey, ttl: ttl, secure: secure, now: time.Now}
}

// GenerateToken signs a token for the given hand-off key.
func (s *SessionService) GenerateToken(key uuid.UUID) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    sessionIssuer,
		Subject:   key.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken verifies a token and returns its hand-off key.
func (s *SessionService) ValidateToken(tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, &SessionError{Message: "token string is empty"}
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return uuid.Nil, &SessionError{Message: "session expired", Cause: err}
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return uuid.Nil, &SessionError{Message: "invalid session signature", Cause: err}
		case errors.Is(err, jwt.ErrTokenMalformed):
			return uuid.Nil, &SessionError{Message: "malformed session token", Cause: err}
		default:
			return uuid.Nil, &SessionError{Message: "invalid session token", Cause: err}
		}
	}

	key, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, &SessionError{Message: "invalid session subject", Cause: err}
	}
	return key, nil
}

// SetCookie writes a browser-session cookie (no Expires) for key.
func (s *SessionService) SetCookie(w http.ResponseWriter, key uuid.UUID) error {
	token, err := s.GenerateToken(key)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// KeyFromRequest reads and verifies the session cookie.
func (s *SessionService) KeyFromRequest(r *http.Request) (uuid.UUID, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return uuid.Nil, &SessionError{Message: "no session cookie", Cause: err}
	}
	return s.ValidateToken(cookie.Value)
}
