package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Erros de verificação. O middleware os colapsa todos em um único 401,
// mas internamente distinguimos as variantes (útil em logs e testes).
var (
	ErrTokenMalformed = errors.New("token malformado")
	ErrTokenSignature = errors.New("assinatura do token inválida")
	ErrTokenExpired   = errors.New("token expirado")
)

// TokenService define o contrato para emissão e verificação de JWTs.
type TokenService interface {
	Generate(userID, email, role string) (string, error)
	Validate(tokenString string) (*Claims, error)
}

// Claims define as informações de identidade embutidas no JWT.
// É obrigatório incorporar jwt.RegisteredClaims.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Service implementa a interface TokenService
type Service struct {
	secretKey []byte
	expiry    time.Duration
}

// NewService cria uma nova instância do serviço Token.
// O segredo é validado no startup (config.mustGetEnv): nunca chega vazio aqui.
func NewService(secretKey string, expiry time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
	}
}

// Generate cria um novo JWT assinado contendo ID, email e papel do usuário.
func (s *Service) Generate(userID, email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "godonaciones-api",
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("falha ao assinar o token: %w", err)
	}

	return tokenString, nil
}

// Validate valida o token string e retorna as claims se for válido.
// A verificação é stateless: assinatura e expiração são recomputadas a cada
// chamada, sem nenhum estado de sessão no servidor.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verifica se o método de assinatura é o esperado (HS256)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			// Estrutura ilegível, claims corrompidas, alg inesperado, etc.
			return nil, fmt.Errorf("%w: %s", ErrTokenMalformed, err.Error())
		}
	}

	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
