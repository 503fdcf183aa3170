package donationservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"godonaciones/internal/domain"
	apperror "godonaciones/internal/errors"
	"godonaciones/internal/pkg/logger"
	"godonaciones/internal/service/donationservice"
)

// MockDonationRepository é uma implementação mock da interface DonationRepository
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) Save(ctx context.Context, record domain.DonationRecord) (domain.Donation, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) FindByID(ctx context.Context, id string) (domain.Donation, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) FindAll(ctx context.Context) ([]domain.Donation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) Update(ctx context.Context, id string, record domain.DonationRecord) (domain.Donation, error) {
	args := m.Called(ctx, id, record)
	return args.Get(0).(domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TestCreate_Success testa a criação de uma doação válida com data convertida.
func TestCreate_Success(t *testing.T) {
	mockRepo := new(MockDonationRepository)
	svc := donationservice.NewService(mockRepo, logger.NewLogger("error"))

	donorID := uuid.NewString()
	expectedDate := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(r domain.DonationRecord) bool {
		return r.Amount == 150.0 && r.Date.Equal(expectedDate) && r.DonorID != nil && *r.DonorID == donorID
	})).Return(domain.Donation{ID: uuid.NewString(), Amount: 150.0, Date: expectedDate}, nil)

	donation, err := svc.Create(context.Background(), domain.DonationInput{
		DonorID:  &donorID,
		Amount:   150.0,
		Date:     "2026-05-01",
		Method:   "transferencia",
		Campaign: "navidad",
	})

	assert.NoError(t, err)
	assert.Equal(t, 150.0, donation.Amount)
	mockRepo.AssertExpectations(t)
}

// TestCreate_Fail_AllFieldsListed testa que valor não-positivo e data
// inválida entram juntos na lista de erros.
func TestCreate_Fail_AllFieldsListed(t *testing.T) {
	mockRepo := new(MockDonationRepository)
	svc := donationservice.NewService(mockRepo, logger.NewLogger("error"))

	_, err := svc.Create(context.Background(), domain.DonationInput{
		Amount: -10,
		Date:   "not-a-date",
	})

	var vErr *apperror.ValidationError
	assert.True(t, errors.As(err, &vErr))

	fields := make([]string, 0, len(vErr.Fields))
	for _, f := range vErr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"amount", "date"}, fields)
	mockRepo.AssertNotCalled(t, "Save")
}

// TestCreate_Fail_ZeroAmount testa que valor zero é rejeitado (deve ser positivo).
func TestCreate_Fail_ZeroAmount(t *testing.T) {
	mockRepo := new(MockDonationRepository)
	svc := donationservice.NewService(mockRepo, logger.NewLogger("error"))

	_, err := svc.Create(context.Background(), domain.DonationInput{
		Amount: 0,
		Date:   "2026-05-01",
	})

	var vErr *apperror.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Fields, 1)
	assert.Equal(t, "amount", vErr.Fields[0].Field)
}

// TestCreate_AcceptsRFC3339 testa que timestamps completos também são aceitos.
func TestCreate_AcceptsRFC3339(t *testing.T) {
	mockRepo := new(MockDonationRepository)
	svc := donationservice.NewService(mockRepo, logger.NewLogger("error"))

	mockRepo.On("Save", mock.Anything, mock.Anything).
		Return(domain.Donation{ID: uuid.NewString()}, nil)

	_, err := svc.Create(context.Background(), domain.DonationInput{
		Amount: 25.5,
		Date:   "2026-05-01T10:30:00Z",
	})

	assert.NoError(t, err)
}

// TestUpdate_Fail_NotFound testa que um ID inexistente propaga o 404.
func TestUpdate_Fail_NotFound(t *testing.T) {
	mockRepo := new(MockDonationRepository)
	svc := donationservice.NewService(mockRepo, logger.NewLogger("error"))

	mockRepo.On("Update", mock.Anything, "missing-id", mock.Anything).
		Return(domain.Donation{}, apperror.NewNotFoundError("No encontrado"))

	_, err := svc.Update(context.Background(), "missing-id", domain.DonationInput{
		Amount: 10,
		Date:   "2026-05-01",
	})

	var nfErr *apperror.NotFoundError
	assert.True(t, errors.As(err, &nfErr))
}
