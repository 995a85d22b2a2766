package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/portfolio-refresh-api/internal/config"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
)

func newTestService(t *testing.T, secret string, now time.Time) *Service {
	t.Helper()
	service, err := NewService(config.Auth{Secret: secret})
	require.NoError(t, err)
	service.now = func() time.Time { return now }
	return service
}

func TestNewService_SemSegredo(t *testing.T) {
	_, err := NewService(config.Auth{})

	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestValidateToken(t *testing.T) {
	issuedAt := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		validateAt time.Time
		secret     string
		wantErr    error
	}{
		{
			name:       "token válido",
			validateAt: issuedAt.Add(time.Hour),
			secret:     "segredo",
		},
		{
			name:       "token expirado",
			validateAt: issuedAt.Add(25 * time.Hour),
			secret:     "segredo",
			wantErr:    ErrExpiredToken,
		},
		{
			name:       "assinado com outro segredo",
			validateAt: issuedAt.Add(time.Hour),
			secret:     "outro",
			wantErr:    ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer := newTestService(t, "segredo", issuedAt)
			token, err := issuer.IssueToken(7, "Ana", "ana@example.com", 2)
			require.NoError(t, err)

			validator := newTestService(t, tt.secret, tt.validateAt)
			claims, err := validator.ValidateToken(token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 7, claims.UserID)
			assert.Equal(t, "ana@example.com", claims.UserEmail)
			assert.Equal(t, 2, claims.UserRoleID)
		})
	}
}

func TestValidateToken_RecusaAlgoritmoNone(t *testing.T) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodNone, domain.Claims{
		UserID:     1,
		UserRoleID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestService(t, "segredo", now).ValidateToken(unsigned)

	assert.ErrorIs(t, err, ErrInvalidToken)
}
