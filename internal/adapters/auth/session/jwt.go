package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"dairysync/internal/ports/auth"
	"dairysync/internal/ports/capabilities"
)

var (
	ErrNotConfigured = errors.New("session secret not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrInvalidToken  = errors.New("invalid session token")
)

type Config struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// Manager emite y verifica tokens de sesión (JWT HS256).
// Implementa auth.AuthVerifier y auth.SessionIssuer.
type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

type tokenClaims struct {
	UserID string   `json:"uid"`
	Email  string   `json:"email,omitempty"`
	Name   string   `json:"name,omitempty"`
	Role   string   `json:"role"`
	Caps   []string `json:"caps,omitempty"`
	jwt.RegisteredClaims
}

func NewManager(cfg Config) *Manager {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	iss := strings.TrimSpace(cfg.Issuer)
	if iss == "" {
		iss = "dairysync"
	}
	return &Manager{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		issuer: iss,
		now:    time.Now,
	}
}

func (m *Manager) IsConfigured() bool {
	return m != nil && len(m.secret) > 0
}

func (m *Manager) Issue(_ context.Context, c auth.Claims) (string, time.Time, error) {
	if !m.IsConfigured() {
		return "", time.Time{}, ErrNotConfigured
	}
	if !c.Authenticated() {
		return "", time.Time{}, errors.New("session: user id required")
	}

	now := m.now()
	exp := now.Add(m.ttl)

	caps := make([]string, 0, len(c.Capabilities))
	for _, cp := range c.Capabilities {
		caps = append(caps, string(cp))
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &tokenClaims{
		UserID: c.UserID,
		Email:  c.Email,
		Name:   c.Name,
		Role:   c.UserRole,
		Caps:   caps,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("session: sign: %w", err)
	}
	return signed, exp, nil
}

func (m *Manager) Verify(_ context.Context, token string) (auth.Claims, error) {
	if !m.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if strings.TrimSpace(tc.UserID) == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	caps := make([]capabilities.Capability, 0, len(tc.Caps))
	for _, cp := range tc.Caps {
		caps = append(caps, capabilities.Capability(cp))
	}

	return auth.Claims{
		UserID:       tc.UserID,
		Email:        tc.Email,
		Name:         tc.Name,
		UserRole:     tc.Role,
		Capabilities: caps,
	}, nil
}
