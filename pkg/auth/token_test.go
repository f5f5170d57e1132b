package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nmorales/distromart-storefront/pkg/config"
)

var testJWT = config.JWTConfig{Secret: "test-secret", Issuer: "distromart"}

func mintToken(t *testing.T, claims AccessTokenClaims, secret string) string {
	t.Helper()
	if claims.Issuer == "" {
		claims.Issuer = testJWT.Issuer
	}
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseAccessToken(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	token := mintToken(t, AccessTokenClaims{
		UserID:     uuid.New(),
		Role:       RoleCustomer,
		CustomerID: &customerID,
	}, testJWT.Secret)

	claims, err := ParseAccessToken(testJWT, token)
	require.NoError(t, err)
	require.Equal(t, RoleCustomer, claims.Role)
	require.NotNil(t, claims.CustomerID)
	require.Equal(t, customerID, *claims.CustomerID)
}

func TestParseAccessTokenRejectsBadSignature(t *testing.T) {
	t.Parallel()

	token := mintToken(t, AccessTokenClaims{UserID: uuid.New(), Role: RoleAdmin}, "other-secret")
	_, err := ParseAccessToken(testJWT, token)
	require.Error(t, err)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	token := mintToken(t, AccessTokenClaims{
		UserID: uuid.New(),
		Role:   RoleRep,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testJWT.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}, testJWT.Secret)
	_, err := ParseAccessToken(testJWT, token)
	require.Error(t, err)
}

func TestParseAccessTokenRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	token := mintToken(t, AccessTokenClaims{UserID: uuid.New(), Role: Role("vendor")}, testJWT.Secret)
	_, err := ParseAccessToken(testJWT, token)
	require.Error(t, err)
}

func TestRoleIsValid(t *testing.T) {
	t.Parallel()

	require.True(t, RoleAdmin.IsValid())
	require.True(t, RoleRep.IsValid())
	require.True(t, RoleCustomer.IsValid())
	require.False(t, Role("agent").IsValid())
}
