// Package auth issues and verifies the HS256 bearer tokens used by the
// API layer and wraps password hashing. Access tokens carry the username,
// short-lived reset tokens carry the account email.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTTL = 4 * time.Hour
	resetTTL  = 15 * time.Minute

	scopeAccess = "access"
	scopeReset  = "reset"
)

// ErrInvalidToken covers expired, malformed and wrong-scope tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// Manager signs and verifies tokens with a shared secret.
type Manager struct {
	secret []byte
}

// NewManager creates a Manager signing with secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// HashPassword returns the bcrypt hash of pw.
func HashPassword(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// CheckPassword reports whether pw matches the stored bcrypt hash.
func CheckPassword(pw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// CreateToken issues a 4h access token for username.
func (m *Manager) CreateToken(username string) (string, error) {
	return m.sign(username, scopeAccess, accessTTL)
}

// VerifyToken validates an access token and returns its username.
func (m *Manager) VerifyToken(token string) (string, error) {
	return m.verify(token, scopeAccess)
}

// CreateResetToken issues a 15m password-reset token for email.
func (m *Manager) CreateResetToken(email string) (string, error) {
	return m.sign(email, scopeReset, resetTTL)
}

// VerifyResetToken validates a reset token and returns its email.
func (m *Manager) VerifyResetToken(token string) (string, error) {
	return m.verify(token, scopeReset)
}

func (m *Manager) sign(subject, scope string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subject,
		"scope": scope,
		"exp":   jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *Manager) verify(tokenStr, wantScope string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if scope, _ := claims["scope"].(string); scope != wantScope {
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
