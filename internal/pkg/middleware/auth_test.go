package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"godonaciones/internal/domain"
	"godonaciones/internal/pkg/middleware"
	"godonaciones/internal/pkg/token"
)

// newProtectedHandler devolve o gate aplicado a um handler que expõe as
// claims recebidas, para inspeção nos testes.
func newProtectedHandler(t *testing.T, svc *token.Service, got *middleware.UserClaims) http.HandlerFunc {
	t.Helper()
	auth := middleware.NewAuthMiddleware(svc)
	return auth(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserClaimsFromContext(r.Context())
		assert.True(t, ok)
		*got = claims
		w.WriteHeader(http.StatusOK)
	})
}

// TestAuthMiddleware_Success garante que um token válido passa pelo gate e
// anexa a identidade ao contexto.
func TestAuthMiddleware_Success(t *testing.T) {
	svc := token.NewService("test-secret", time.Hour)
	tokenString, err := svc.Generate("user-1", "ana@x.org", "gestor")
	assert.NoError(t, err)

	var got middleware.UserClaims
	handler := newProtectedHandler(t, svc, &got)

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "ana@x.org", got.Email)
	assert.Equal(t, domain.RoleGestor, got.Role)
}

// TestAuthMiddleware_Fail_Uniform401 garante que token ausente, header sem
// esquema Bearer, token malformado, assinatura inválida e token expirado
// respondem todos o MESMO 401.
func TestAuthMiddleware_Fail_Uniform401(t *testing.T) {
	svc := token.NewService("test-secret", time.Hour)

	otherSvc := token.NewService("other-secret", time.Hour)
	badSignature, _ := otherSvc.Generate("user-1", "ana@x.org", "gestor")

	expiredSvc := token.NewService("test-secret", -time.Minute)
	expired, _ := expiredSvc.Generate("user-1", "ana@x.org", "gestor")

	cases := map[string]string{
		"sem header":          "",
		"esquema errado":      "Basic abc123",
		"token malformado":    "Bearer garbage",
		"assinatura inválida": "Bearer " + badSignature,
		"token expirado":      "Bearer " + expired,
	}

	var bodies []string
	for name, header := range cases {
		var got middleware.UserClaims
		handler := newProtectedHandler(t, svc, &got)

		req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
		assert.Empty(t, got.UserID, name)
		bodies = append(bodies, rec.Body.String())
	}

	// Todos os corpos de erro são idênticos: o cliente não distingue a causa.
	for _, body := range bodies[1:] {
		assert.Equal(t, bodies[0], body)
	}
}

// TestRequireRoles garante a restrição opcional por papel.
func TestRequireRoles(t *testing.T) {
	next := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	guard := middleware.RequireRoles(domain.RoleAdmin)(next)

	makeReq := func(claims *middleware.UserClaims) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
		if claims != nil {
			ctx := context.WithValue(req.Context(), middleware.UserClaimsKey, *claims)
			req = req.WithContext(ctx)
		}
		return req
	}

	// Papel permitido
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, makeReq(&middleware.UserClaims{UserID: "u1", Role: domain.RoleAdmin}))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Papel insuficiente
	rec = httptest.NewRecorder()
	guard.ServeHTTP(rec, makeReq(&middleware.UserClaims{UserID: "u1", Role: domain.RoleVoluntario}))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Sem claims no contexto (gate não rodou)
	rec = httptest.NewRecorder()
	guard.ServeHTTP(rec, makeReq(nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
