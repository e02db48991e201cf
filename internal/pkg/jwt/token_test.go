package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateToken(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"user_id": "driver-1",
		"role":    "driver",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	claims, err := ValidateToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "driver-1", claims["user_id"])
	assert.Equal(t, "driver", claims["role"])
}

func TestValidateTokenWrongSecret(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{"user_id": "driver-1"}, "other-secret")

	_, err := ValidateToken(signed, testSecret)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"user_id": "driver-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}, testSecret)

	_, err := ValidateToken(signed, testSecret)
	assert.Error(t, err)
}

func TestValidateTokenRejectsNonHMAC(t *testing.T) {
	// alg=none style tokens must not pass
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "driver-1"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(signed, testSecret)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret)
	assert.Error(t, err)
}
