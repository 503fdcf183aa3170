package domain

import (
	"context"
	"errors"
	"time"
)

// ErrUserNotFound sinaliza ausência de usuário na busca por email.
// A camada de serviço decide o significado: no login vira credenciais
// inválidas (401); no registro é o caminho feliz.
var ErrUserNotFound = errors.New("usuario no encontrado")

// User representa a entidade do usuário (equipe interna) no sistema.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser é a projeção segura do usuário, retornada pela API.
// Nunca carrega o hash da senha.
type PublicUser struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// Public devolve a projeção segura da entidade.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

// Conjunto fechado de papéis. RoleGestor é o padrão no registro.
const (
	RoleGestor     UserRole = "gestor"
	RoleAdmin      UserRole = "admin"
	RoleVoluntario UserRole = "voluntario"
)

// ValidRole indica se o papel pertence ao conjunto fechado.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleGestor, RoleAdmin, RoleVoluntario:
		return true
	}
	return false
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"` // Opcional; padrão "gestor"
}

// Credentials representa o payload de entrada para o login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult é o retorno do login: o token emitido e a projeção do usuário.
type LoginResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// UserRepository define o contrato de persistência para a entidade User.
type UserRepository interface {
	Save(ctx context.Context, user User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}

// UserService define o contrato de lógica de negócio para a entidade User.
type UserService interface {
	Register(ctx context.Context, registration UserRegistration) (PublicUser, error)
	Login(ctx context.Context, credentials Credentials) (LoginResult, error)
}
