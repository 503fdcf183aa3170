package token_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"godonaciones/internal/pkg/token"
)

// TestGenerateAndValidate_Success garante o ciclo completo: emitir e verificar.
func TestGenerateAndValidate_Success(t *testing.T) {
	svc := token.NewService("test-secret", time.Hour)

	tokenString, err := svc.Generate("user-1", "ana@x.org", "gestor")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := svc.Validate(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@x.org", claims.Email)
	assert.Equal(t, "gestor", claims.Role)
}

// TestValidate_Fail_Expired garante que um token vencido falha com ErrTokenExpired.
func TestValidate_Fail_Expired(t *testing.T) {
	svc := token.NewService("test-secret", -time.Minute) // já nasce expirado

	tokenString, err := svc.Generate("user-1", "ana@x.org", "gestor")
	assert.NoError(t, err)

	claims, err := svc.Validate(tokenString)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, token.ErrTokenExpired)
}

// TestValidate_Fail_BadSignature garante que um token assinado com outro
// segredo falha com ErrTokenSignature.
func TestValidate_Fail_BadSignature(t *testing.T) {
	issuer := token.NewService("secret-a", time.Hour)
	verifier := token.NewService("secret-b", time.Hour)

	tokenString, err := issuer.Generate("user-1", "ana@x.org", "gestor")
	assert.NoError(t, err)

	claims, err := verifier.Validate(tokenString)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, token.ErrTokenSignature)
}

// TestValidate_Fail_Malformed garante que lixo não parseável falha com
// ErrTokenMalformed.
func TestValidate_Fail_Malformed(t *testing.T) {
	svc := token.NewService("test-secret", time.Hour)

	for _, bad := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		claims, err := svc.Validate(bad)
		assert.Nil(t, claims)
		assert.True(t, errors.Is(err, token.ErrTokenMalformed), "token %q deveria ser malformado", bad)
	}
}
