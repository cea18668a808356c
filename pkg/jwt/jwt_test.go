package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secreto-de-prueba"

func TestGenerateYParse(t *testing.T) {
	token, err := Generate(testSecret, "cliente-1", "warehouse-api", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	clientID, err := Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "cliente-1", clientID)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	token, err := Generate(testSecret, "cliente-1", "warehouse-api", 60)
	require.NoError(t, err)

	_, err = Parse("otro-secreto", token)
	require.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    "warehouse-api",
			Subject:   "cliente-1",
			IssuedAt:  gojwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: gojwt.NewNumericDate(now.Add(-time.Hour)),
		},
		ClientID: "cliente-1",
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = Parse(testSecret, token)
	require.Error(t, err)
}

func TestParse_TokenMalformado(t *testing.T) {
	_, err := Parse(testSecret, "no-es-un-jwt")
	require.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "cliente-1", "warehouse-api", 60)
	require.Error(t, err)
}
