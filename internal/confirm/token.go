// internal/confirm/token.go
package confirm

import (
	"errors"
	"fmt"
	"log/slog"
	"site-manager/internal/config"
	"site-manager/internal/domain"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Actions that require a confirmation step.
const (
	DeleteCategory = "delete_category"
	DeleteSite     = "delete_site"
)

var ErrInvalidToken = errors.New("invalid confirmation token")

type claims struct {
	Action string `json:"action"`
	Target string `json:"target"`
	jwt.RegisteredClaims
}

// TokenService issues and checks tokens that bind a destructive action to one id.
type TokenService struct {
	secretKey []byte
	expiresIn time.Duration
	now       func() time.Time
}

func NewTokenService(cfg config.Config) *TokenService {
	return &TokenService{
		secretKey: []byte(cfg.ConfirmSecret),
		expiresIn: cfg.ConfirmExpiresIn,
		now:       time.Now,
	}
}

// GenerateToken signs a token for action on id.
func (s *TokenService) GenerateToken(action string, id domain.ID) (string, error) {
	now := s.now()
	expTime := now.Add(s.expiresIn)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Action: action,
		Target: id.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expTime),
		},
	})
	tokenStr, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign confirmation: %w", err)
	}
	slog.Debug("confirmation issued", "action", action, "target", id, "expires_at", expTime.Format("2006-01-02 15:04:05"))
	return tokenStr, nil
}

// Verify checks that tokenStr was issued for exactly this action and id.
func (s *TokenService) Verify(tokenStr, action string, id domain.ID) error {
	if tokenStr == "" {
		return fmt.Errorf("%w: missing", ErrInvalidToken)
	}
	var c claims
	_, err := jwt.ParseWithClaims(tokenStr, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Action != action || c.Target != id.String() {
		return fmt.Errorf("%w: issued for %s %s", ErrInvalidToken, c.Action, c.Target)
	}
	return nil
}
