package donationservice

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"

	"godonaciones/internal/domain"
	"godonaciones/internal/pkg/logger"
	"godonaciones/internal/pkg/validate"
)

// DonationService implementa a lógica de negócio para doações.
type DonationService struct {
	Repo   domain.DonationRepository
	Logger logger.Logger
}

// NewService cria uma nova instância do DonationService.
func NewService(repo domain.DonationRepository, log logger.Logger) *DonationService {
	return &DonationService{
		Repo:   repo,
		Logger: log,
	}
}

// toRecord valida a entrada e a converte na forma persistível.
// Regras estruturais: valor positivo e data ISO-8601.
func toRecord(input *domain.DonationInput) (domain.DonationRecord, error) {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Amount, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&input.Date, validation.Required, validation.By(validate.ISODate)),
	)
	if err != nil {
		return domain.DonationRecord{}, validate.Translate(err)
	}

	date, err := validate.ParseISODate(input.Date)
	if err != nil {
		// A regra ISODate já passou; isso não deveria acontecer.
		return domain.DonationRecord{}, validate.Translate(err)
	}

	return domain.DonationRecord{
		DonorID:   input.DonorID,
		Amount:    input.Amount,
		Date:      date,
		Method:    input.Method,
		Campaign:  input.Campaign,
		ReceiptID: input.ReceiptID,
	}, nil
}

// Create valida e persiste uma nova doação.
func (s *DonationService) Create(ctx context.Context, input domain.DonationInput) (domain.Donation, error) {
	record, err := toRecord(&input)
	if err != nil {
		return domain.Donation{}, err
	}

	donation, err := s.Repo.Save(ctx, record)
	if err != nil {
		return domain.Donation{}, err
	}

	s.Logger.Info("Doação registrada.", map[string]interface{}{"donation_id": donation.ID, "amount": donation.Amount})
	return donation, nil
}

// GetByID busca uma doação pelo ID.
func (s *DonationService) GetByID(ctx context.Context, id string) (domain.Donation, error) {
	return s.Repo.FindByID(ctx, id)
}

// List lista as doações mais recentes.
func (s *DonationService) List(ctx context.Context) ([]domain.Donation, error) {
	return s.Repo.FindAll(ctx)
}

// Update valida e atualiza uma doação existente.
func (s *DonationService) Update(ctx context.Context, id string, input domain.DonationInput) (domain.Donation, error) {
	record, err := toRecord(&input)
	if err != nil {
		return domain.Donation{}, err
	}
	return s.Repo.Update(ctx, id, record)
}

// Delete remove uma doação.
func (s *DonationService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
