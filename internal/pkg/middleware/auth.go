package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"godonaciones/internal/domain"
	"godonaciones/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
// Usamos um tipo próprio para garantir que a chave seja única e não haja
// conflito com chaves string de outros pacotes.
type ContextKey int

const (
	// UserClaimsKey é a chave usada para armazenar a identidade autenticada no contexto.
	UserClaimsKey ContextKey = iota
)

// UserClaims é a identidade autenticada da requisição: a projeção das claims
// de um token já verificado. Vive apenas durante a requisição.
type UserClaims struct {
	UserID string
	Email  string
	Role   domain.UserRole
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	Validate(tokenString string) (*token.Claims, error)
}

// writeUnauthorized envia o 401 padronizado do gate. A mensagem é única de
// propósito: o cliente não distingue token ausente, malformado, expirado ou
// com assinatura inválida.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Error: "No autorizado"})
}

// NewAuthMiddleware cria o gate de autorização: extrai o bearer token do
// header Authorization, valida e anexa a identidade verificada ao contexto
// da requisição. O gate não faz nenhuma checagem de papel; a role segue nas
// claims para os handlers usarem.
func NewAuthMiddleware(tokenSvc TokenService) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeUnauthorized(w)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			// 2. Validar o Token (assinatura + expiração)
			claims, err := tokenSvc.Validate(tokenString)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			// 3. Anexar a identidade ao Contexto
			userClaims := UserClaims{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   domain.UserRole(claims.Role),
			}
			ctx := context.WithValue(r.Context(), UserClaimsKey, userClaims)

			// Chama o próximo handler com o novo contexto
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetUserClaimsFromContext é uma função utilitária para extrair a identidade no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// RequireRoles restringe o acesso aos papéis informados. Nenhuma rota desta
// versão usa restrição por papel (qualquer usuário autenticado acessa tudo),
// mas o conjunto fechado de roles já permite ligar isso rota a rota.
func RequireRoles(requiredRoles ...domain.UserRole) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			claims, ok := GetUserClaimsFromContext(r.Context())
			if !ok {
				// O gate de autenticação não rodou ou falhou em anexar as claims.
				writeUnauthorized(w)
				return
			}

			for _, required := range requiredRoles {
				if claims.Role == required {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(domain.ErrorResponse{Error: "Acceso denegado"})
		}
	}
}
