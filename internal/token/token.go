// Package token issues and verifies the signed bearer credential that proves
// caller identity. Tokens are pure HS256 JWTs binding a user id for a fixed
// window; there is no persistence and no revocation list. Deactivated
// accounts are rejected at verification time by the auth middleware, which
// re-reads the user record.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalid = errors.New("token invalido")
	ErrExpired = errors.New("token expirado")
)

// Service signs and parses identity tokens with a shared server secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue creates a token carrying the user id, valid for the configured window.
func (s *Service) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID.String(),
		"exp":    now.Add(s.ttl).Unix(),
		"iat":    now.Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Verify parses and validates a token string and returns the embedded user id.
func (s *Service) Verify(tokenStr string) (uuid.UUID, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrExpired
		}
		return uuid.Nil, ErrInvalid
	}
	if !tok.Valid {
		return uuid.Nil, ErrInvalid
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalid
	}
	idStr, ok := claims["userId"].(string)
	if !ok {
		return uuid.Nil, ErrInvalid
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, ErrInvalid
	}
	return id, nil
}
