package userservice

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"godonaciones/internal/domain"
	apperror "godonaciones/internal/errors"
	"godonaciones/internal/pkg/logger"
	"godonaciones/internal/pkg/validate"
)

// invalidCredentials é a mensagem única para qualquer falha de login.
// Email inexistente e senha errada respondem exatamente igual, para não
// permitir enumeração de usuários.
const invalidCredentials = "Credenciales inválidas"

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	Generate(userID, email, role string) (string, error)
}

// PasswordHasher é o contrato da camada de hashing (internal/pkg/password).
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// UserService implementa a lógica de negócio de registro e login.
type UserService struct {
	UserRepo domain.UserRepository
	TokenSvc TokenService
	Hasher   PasswordHasher
	Logger   logger.Logger
}

// NewService cria uma nova instância do UserService, injetando as dependências.
func NewService(repo domain.UserRepository, tokenSvc TokenService, hasher PasswordHasher, log logger.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		TokenSvc: tokenSvc,
		Hasher:   hasher,
		Logger:   log,
	}
}

// Register registra um novo usuário no sistema e retorna a projeção pública
// (nunca o hash da senha).
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.PublicUser, error) {
	// 1. Validação de entrada: todos os campos inválidos de uma vez.
	err := validation.ValidateStruct(&registration,
		validation.Field(&registration.Name, validation.Required, validation.Length(2, 0)),
		validation.Field(&registration.Email, validation.Required, is.Email),
		validation.Field(&registration.Password, validation.Required, validation.Length(8, 0)),
		validation.Field(&registration.Role, validation.In(
			string(domain.RoleGestor), string(domain.RoleAdmin), string(domain.RoleVoluntario),
		)),
	)
	if err != nil {
		return domain.PublicUser{}, validate.Translate(err)
	}

	// 2. Checagem de duplicidade (fast path). A guarda final é o índice
	// único no DB: sob registros concorrentes, ambos podem passar por aqui,
	// mas só um insert vence.
	_, err = s.UserRepo.FindByEmail(ctx, registration.Email)
	if err == nil {
		return domain.PublicUser{}, apperror.NewDuplicateEmailError(registration.Email)
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.PublicUser{}, err
	}

	// 3. Hashing da Senha
	hashedPassword, err := s.Hasher.Hash(registration.Password)
	if err != nil {
		return domain.PublicUser{}, apperror.NewInternalError("falha ao gerar hash da senha", err)
	}

	// 4. Criação do Objeto User (papel padrão: gestor)
	role := domain.UserRole(registration.Role)
	if role == "" {
		role = domain.RoleGestor
	}

	newUser := domain.User{
		Name:         registration.Name,
		Email:        registration.Email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	// 5. Persistência. O repositório traduz violação de unicidade para
	// DuplicateEmailError, então a corrida do passo 2 responde igual.
	user, err := s.UserRepo.Save(ctx, newUser)
	if err != nil {
		return domain.PublicUser{}, err
	}

	s.Logger.Info("Usuário registrado.", map[string]interface{}{"user_id": user.ID, "role": string(user.Role)})
	return user.Public(), nil
}

// Login autentica um usuário, verifica a senha e emite um JWT.
func (s *UserService) Login(ctx context.Context, credentials domain.Credentials) (domain.LoginResult, error) {
	// 1. Validação de entrada
	err := validation.ValidateStruct(&credentials,
		validation.Field(&credentials.Email, validation.Required, is.Email),
		validation.Field(&credentials.Password, validation.Required),
	)
	if err != nil {
		return domain.LoginResult{}, validate.Translate(err)
	}

	// 2. Buscar Usuário pelo Email
	user, err := s.UserRepo.FindByEmail(ctx, credentials.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.LoginResult{}, apperror.NewUnauthorizedError(invalidCredentials)
		}
		return domain.LoginResult{}, err
	}

	// 3. Comparar a senha informada com o hash salvo.
	if !s.Hasher.Verify(credentials.Password, user.PasswordHash) {
		return domain.LoginResult{}, apperror.NewUnauthorizedError(invalidCredentials)
	}

	// 4. Emitir o JWT com as claims de identidade.
	tokenString, err := s.TokenSvc.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return domain.LoginResult{}, apperror.NewInternalError("falha ao gerar token de autenticação", err)
	}

	s.Logger.Info("Login realizado.", map[string]interface{}{"user_id": user.ID})
	return domain.LoginResult{
		Token: tokenString,
		User:  user.Public(),
	}, nil
}
