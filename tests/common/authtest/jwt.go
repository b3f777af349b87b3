//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"github.com/Arman-Arzoo/headout-backend/internal/pkg/config"
	pkgjwt "github.com/Arman-Arzoo/headout-backend/internal/pkg/jwt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

// GenerateToken signs a token the way the identity service would, so the
// auth middleware accepts it.
func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return h.signToken(t, userID, time.Now().Add(time.Hour))
}

func (h *JWTHelper) GenerateExpiredToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return h.signToken(t, userID, time.Now().Add(-time.Hour))
}

func (h *JWTHelper) signToken(t *testing.T, userID uuid.UUID, expiresAt time.Time) string {
	t.Helper()

	claims := pkgjwt.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.Secret))
	require.NoError(t, err, "Failed to sign test token")
	return signed
}
