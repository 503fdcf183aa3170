package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"godonaciones/internal/pkg/password"
)

// TestHashAndVerify_Success garante que uma senha verifica contra o próprio hash.
func TestHashAndVerify_Success(t *testing.T) {
	hasher := password.NewHasher(4) // custo mínimo para testes rápidos

	hash, err := hasher.Hash("secret123")

	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash) // nunca reversível/igual ao texto puro
	assert.True(t, hasher.Verify("secret123", hash))
}

// TestVerify_Fail_WrongPassword garante que senhas diferentes não verificam.
func TestVerify_Fail_WrongPassword(t *testing.T) {
	hasher := password.NewHasher(4)

	hash, err := hasher.Hash("secret123")
	assert.NoError(t, err)

	assert.False(t, hasher.Verify("secret124", hash))
	assert.False(t, hasher.Verify("", hash))
}

// TestHash_Salted garante que o mesmo plaintext gera hashes distintos (salt).
func TestHash_Salted(t *testing.T) {
	hasher := password.NewHasher(4)

	h1, err1 := hasher.Hash("secret123")
	h2, err2 := hasher.Hash("secret123")

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.NotEqual(t, h1, h2)
}

// TestVerify_AfterCostChange garante que mudar o custo não invalida hashes
// antigos: os parâmetros ficam embutidos no próprio hash.
func TestVerify_AfterCostChange(t *testing.T) {
	oldHasher := password.NewHasher(4)
	hash, err := oldHasher.Hash("secret123")
	assert.NoError(t, err)

	newHasher := password.NewHasher(6)
	assert.True(t, newHasher.Verify("secret123", hash))
}

// TestNewHasher_InvalidCost garante o fallback para o custo padrão do bcrypt.
func TestNewHasher_InvalidCost(t *testing.T) {
	hasher := password.NewHasher(-1)

	hash, err := hasher.Hash("secret123")

	assert.NoError(t, err)
	assert.True(t, hasher.Verify("secret123", hash))
}
