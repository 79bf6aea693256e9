package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken indicates a token that cannot be parsed or verified.
var ErrMalformedToken = errors.New("malformed token")

// JWTManager issues and validates signed, time-limited identity tokens.
// The subject claim carries the authenticated user's email.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{Secret: []byte(secret), TTL: ttl}
}

// Generate signs a token for the subject with expiry = now + TTL.
func (m *JWTManager) Generate(subject string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.TTL)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// ExtractSubject parses and verifies the token and returns its subject.
func (m *JWTManager) ExtractSubject(tokenStr string) (string, error) {
	claims, err := m.parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Validate reports whether the token parses, its signature verifies, and
// it has not expired. It is a non-throwing guard: any failure is false.
func (m *JWTManager) Validate(tokenStr string) bool {
	_, err := m.parse(tokenStr)
	return err == nil
}

func (m *JWTManager) parse(tokenStr string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, errors.Join(ErrMalformedToken, err)
	}
	if !tkn.Valid {
		return nil, ErrMalformedToken
	}
	return claims, nil
}
