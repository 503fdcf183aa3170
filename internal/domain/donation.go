package domain

import (
	"context"
	"time"
)

// Donation representa uma doação registrada, opcionalmente vinculada a um contato.
type Donation struct {
	ID        string    `json:"id"`
	DonorID   *string   `json:"donor_id"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	Method    string    `json:"method"`
	Campaign  string    `json:"campaign"`
	ReceiptID string    `json:"receipt_id"`
	CreatedAt time.Time `json:"created_at"`

	// DonorName é preenchido apenas em leituras (JOIN com contacts).
	DonorName *string `json:"donor_name,omitempty"`
}

// DonationInput representa o payload de entrada para criação/atualização.
// A data chega como string ISO-8601 e é convertida pela camada de serviço.
type DonationInput struct {
	DonorID   *string `json:"donor_id"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Method    string  `json:"method"`
	Campaign  string  `json:"campaign"`
	ReceiptID string  `json:"receipt_id"`
}

// DonationRecord é a forma já validada que o repositório persiste.
type DonationRecord struct {
	DonorID   *string
	Amount    float64
	Date      time.Time
	Method    string
	Campaign  string
	ReceiptID string
}

// DonationRepository define o contrato de persistência para a entidade Donation.
type DonationRepository interface {
	Save(ctx context.Context, record DonationRecord) (Donation, error)
	FindByID(ctx context.Context, id string) (Donation, error)
	FindAll(ctx context.Context) ([]Donation, error)
	Update(ctx context.Context, id string, record DonationRecord) (Donation, error)
	Delete(ctx context.Context, id string) error
}

// DonationService define o contrato de lógica de negócio para a entidade Donation.
type DonationService interface {
	Create(ctx context.Context, input DonationInput) (Donation, error)
	GetByID(ctx context.Context, id string) (Donation, error)
	List(ctx context.Context) ([]Donation, error)
	Update(ctx context.Context, id string, input DonationInput) (Donation, error)
	Delete(ctx context.Context, id string) error
}
