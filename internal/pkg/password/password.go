package password

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher encapsula o hashing unidirecional de senhas via bcrypt.
// O fator de custo é lido uma única vez no startup (config). Como o bcrypt
// embute salt e custo no próprio hash, mudar o custo depois não invalida
// hashes já armazenados: Verify lê os parâmetros do hash, não do Hasher.
type Hasher struct {
	cost int
}

// NewHasher cria um Hasher com o fator de custo configurado.
// Valores fora da faixa suportada pelo bcrypt caem no custo padrão.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash gera o hash salgado da senha em texto puro.
// Falhas aqui são erros internos, nunca de validação.
func (h *Hasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify compara a senha em texto puro com o hash armazenado.
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
