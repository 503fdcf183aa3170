package userservice_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"godonaciones/internal/domain"
	apperror "godonaciones/internal/errors"
	"godonaciones/internal/pkg/logger"
	"godonaciones/internal/pkg/password"
	"godonaciones/internal/service/userservice"
)

// MockUserRepository é uma implementação mock da interface UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

// MockTokenService é uma implementação mock da camada de token.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Generate(userID, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}

func newService(repo *MockUserRepository, tokenSvc *MockTokenService) *userservice.UserService {
	mockLogger := logger.NewLogger("error")
	hasher := password.NewHasher(4) // custo mínimo para testes rápidos
	return userservice.NewService(repo, tokenSvc, hasher, mockLogger)
}

// TestRegister_Success testa o registro com papel padrão e projeção segura.
func TestRegister_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := newService(mockRepo, mockToken)

	mockRepo.On("FindByEmail", mock.Anything, "ana@x.org").
		Return(domain.User{}, domain.ErrUserNotFound)
	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		// O serviço deve persistir o hash, nunca a senha em texto puro,
		// e aplicar o papel padrão "gestor".
		return u.Role == domain.RoleGestor &&
			u.PasswordHash != "" &&
			u.PasswordHash != "secret123"
	})).Return(domain.User{
		ID:           uuid.NewString(),
		Name:         "Ana Gomez",
		Email:        "ana@x.org",
		PasswordHash: "$2a$04$stored-hash",
		Role:         domain.RoleGestor,
	}, nil)

	pub, err := svc.Register(context.Background(), domain.UserRegistration{
		Name:     "Ana Gomez",
		Email:    "ana@x.org",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, pub.ID)
	assert.Equal(t, "Ana Gomez", pub.Name)
	assert.Equal(t, "ana@x.org", pub.Email)
	assert.Equal(t, domain.RoleGestor, pub.Role)

	// A projeção serializada nunca contém a senha nem o hash.
	serialized, marshalErr := json.Marshal(pub)
	assert.NoError(t, marshalErr)
	assert.NotContains(t, string(serialized), "password")
	assert.NotContains(t, string(serialized), "hash")

	mockRepo.AssertExpectations(t)
}

// TestRegister_Fail_AllFieldsListed testa que a validação acumula todos os
// campos inválidos, sem interromper no primeiro.
func TestRegister_Fail_AllFieldsListed(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := newService(mockRepo, mockToken)

	_, err := svc.Register(context.Background(), domain.UserRegistration{
		Name:     "A",
		Email:    "not-an-email",
		Password: "short",
	})

	var vErr *apperror.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Fields, 3)

	fields := make([]string, 0, len(vErr.Fields))
	for _, f := range vErr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email", "password"}, fields)

	// Nenhuma chamada ao repositório com entrada inválida.
	mockRepo.AssertNotCalled(t, "FindByEmail")
	mockRepo.AssertNotCalled(t, "Save")
}

// TestRegister_Fail_InvalidRole testa a rejeição de papel fora do conjunto fechado.
func TestRegister_Fail_InvalidRole(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := newService(mockRepo, mockToken)

	_, err := svc.Register(context.Background(), domain.UserRegistration{
		Name:     "Ana Gomez",
		Email:    "ana@x.org",
		Password: "secret123",
		Role:     "superuser",
	})

	var vErr *apperror.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Fields, 1)
	assert.Equal(t, "role", vErr.Fields[0].Field)
}

// TestRegister_Fail_DuplicateEmail testa a rejeição de email já cadastrado.
func TestRegister_Fail_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := newService(mockRepo, mockToken)

	existing := domain.User{ID: uuid.NewString(), Email: "ana@x.org"}
	mockRepo.On("FindByEmail", mock.Anything, "ana@x.org").Return(existing, nil)

	_, err := svc.Register(context.Background(), domain.UserRegistration{
		Name:     "Ana Gomez",
		Email:    "ana@x.org",
		Password: "secret123",
	})

	var dupErr *apperror.DuplicateEmailError
	assert.True(t, errors.As(err, &dupErr))
	mockRepo.AssertNotCalled(t, "Save")
}

// TestRegister_Fail_RaceMappedByRepo testa que a violação de unicidade vinda
// do repositório (corrida entre a checagem e o insert) vira o mesmo erro de
// email duplicado.
func TestRegister_Fail_RaceMappedByRepo(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := newService(mockRepo, mockToken)

	mockRepo.On("FindByEmail", mock.Anything, "ana@x.org").
		Return(domain.User{}, domain.ErrUserNotFound)
	mockRepo.On("Save", mock.Anything, mock.Anything).
		Return(domain.User{}, apperror.NewDuplicateEmailError("ana@x.org"))

	_, err := svc.Register(context.Background(), domain.UserRegistration{
		Name:     "Ana Gomez",
		Email:    "ana@x.org",
		Password: "secret123",
	})

	var dupErr *apperror.DuplicateEmailError
	assert.True(t, errors.As(err, &dupErr))
}

// TestLogin_Success testa o login com emissão de token.
func TestLogin_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := newService(mockRepo, mockToken)

	hasher := password.NewHasher(4)
	hash, _ := hasher.Hash("secret123")

	user := domain.User{
		ID:           "user-1",
		Name:         "Ana Gomez",
		Email:        "ana@x.org",
		PasswordHash: hash,
		Role:         domain.RoleGestor,
	}
	mockRepo.On("FindByEmail", mock.Anything, "ana@x.org").Return(user, nil)
	mockToken.On("Generate", "user-1", "ana@x.org", "gestor").Return("signed-token", nil)

	result, err := svc.Login(context.Background(), domain.Credentials{
		Email:    "ana@x.org",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, "user-1", result.User.ID)
	assert.Equal(t, domain.RoleGestor, result.User.Role)
	mockToken.AssertExpectations(t)
}

// TestLogin_Fail_IndistinguishableErrors testa que email inexistente e senha
// errada respondem exatamente o mesmo erro (anti enumeração de usuários).
func TestLogin_Fail_IndistinguishableErrors(t *testing.T) {
	hasher := password.NewHasher(4)
	hash, _ := hasher.Hash("secret123")

	// Caso 1: email inexistente
	mockRepo1 := new(MockUserRepository)
	svc1 := newService(mockRepo1, new(MockTokenService))
	mockRepo1.On("FindByEmail", mock.Anything, "ghost@x.org").
		Return(domain.User{}, domain.ErrUserNotFound)

	_, err1 := svc1.Login(context.Background(), domain.Credentials{
		Email:    "ghost@x.org",
		Password: "whatever1",
	})

	// Caso 2: senha errada
	mockRepo2 := new(MockUserRepository)
	svc2 := newService(mockRepo2, new(MockTokenService))
	mockRepo2.On("FindByEmail", mock.Anything, "ana@x.org").
		Return(domain.User{ID: "user-1", Email: "ana@x.org", PasswordHash: hash}, nil)

	_, err2 := svc2.Login(context.Background(), domain.Credentials{
		Email:    "ana@x.org",
		Password: "wrong-password",
	})

	var unauth1, unauth2 *apperror.UnauthorizedError
	assert.True(t, errors.As(err1, &unauth1))
	assert.True(t, errors.As(err2, &unauth2))
	assert.Equal(t, err1.Error(), err2.Error())
	assert.Equal(t, unauth1.HTTPStatus(), unauth2.HTTPStatus())
}

// TestLogin_Fail_Validation testa a validação de entrada do login.
func TestLogin_Fail_Validation(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo, new(MockTokenService))

	_, err := svc.Login(context.Background(), domain.Credentials{})

	var vErr *apperror.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Fields, 2)
	mockRepo.AssertNotCalled(t, "FindByEmail")
}
