package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/anyidea/anyidea-api/pkg/errors"
)

// Config controls anonymous session token issuance.
type Config struct {
	SigningKey string
	TTL        time.Duration
}

// Token is a freshly minted anonymous session.
type Token struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service issues and validates anonymous session tokens. Sessions carry no
// identity, they only scope custom categories and suggestion logs.
type Service interface {
	Issue() (Token, error)
	Validate(token string) (string, error)
}

type service struct {
	key    []byte
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the session domain. An empty signing key gets replaced
// with a random per-process key, which invalidates sessions across restarts.
func NewService(cfg Config, logger *slog.Logger) Service {
	key := []byte(cfg.SigningKey)
	if len(key) == 0 {
		key = randomKey()
		logger.Warn("session signing key not configured, using ephemeral key")
	}
	return &service{
		key:    key,
		ttl:    cfg.TTL,
		logger: logger.With("component", "session.service"),
		now:    time.Now,
	}
}

type sessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

func (s *service) Issue() (Token, error) {
	now := s.now()
	sessionID := uuid.NewString()
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return Token{}, apperrors.Wrap("session_error", "failed to sign session token", err)
	}
	return Token{
		SessionID: sessionID,
		Token:     signed,
		ExpiresAt: now.Add(s.ttl).UTC(),
	}, nil
}

func (s *service) Validate(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", apperrors.Wrap("invalid_token", "session token validation failed", err)
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return "", apperrors.Wrap("invalid_token", "session token invalid", nil)
	}
	return claims.SessionID, nil
}

func randomKey() []byte {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform entropy source is broken.
		panic(fmt.Sprintf("session: read random key: %v", err))
	}
	encoded := make([]byte, base64.RawStdEncoding.EncodedLen(len(buf)))
	base64.RawStdEncoding.Encode(encoded, buf)
	return encoded
}
