package contactservice

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"

	"godonaciones/internal/domain"
	"godonaciones/internal/pkg/logger"
	"godonaciones/internal/pkg/validate"
)

// ContactService implementa a lógica de negócio para contatos.
type ContactService struct {
	Repo   domain.ContactRepository
	Logger logger.Logger
}

// NewService cria uma nova instância do ContactService.
func NewService(repo domain.ContactRepository, log logger.Logger) *ContactService {
	return &ContactService{
		Repo:   repo,
		Logger: log,
	}
}

// validateInput aplica as regras estruturais do contato.
// Apenas o nome é obrigatório; os demais campos são livres.
func validateInput(input *domain.ContactInput) error {
	return validate.Translate(validation.ValidateStruct(input,
		validation.Field(&input.Name, validation.Required, validation.Length(2, 0)),
	))
}

// Create valida e persiste um novo contato.
func (s *ContactService) Create(ctx context.Context, input domain.ContactInput) (domain.Contact, error) {
	if err := validateInput(&input); err != nil {
		return domain.Contact{}, err
	}

	contact, err := s.Repo.Save(ctx, input)
	if err != nil {
		return domain.Contact{}, err
	}

	s.Logger.Info("Contato criado.", map[string]interface{}{"contact_id": contact.ID})
	return contact, nil
}

// GetByID busca um contato pelo ID.
func (s *ContactService) GetByID(ctx context.Context, id string) (domain.Contact, error) {
	return s.Repo.FindByID(ctx, id)
}

// List lista os contatos aplicando o filtro de busca parcial.
func (s *ContactService) List(ctx context.Context, filter domain.ContactFilter) ([]domain.Contact, error) {
	return s.Repo.FindAll(ctx, filter)
}

// Update valida e atualiza um contato existente.
func (s *ContactService) Update(ctx context.Context, id string, input domain.ContactInput) (domain.Contact, error) {
	if err := validateInput(&input); err != nil {
		return domain.Contact{}, err
	}
	return s.Repo.Update(ctx, id, input)
}

// Delete remove um contato.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
