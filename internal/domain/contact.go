package domain

import (
	"context"
	"time"
)

// Contact representa um contato da organização (doador, voluntário, parceiro).
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactInput representa o payload de entrada para criação/atualização.
type ContactInput struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// ContactFilter define os parâmetros de busca da listagem.
// A listagem é limitada e ordenada de forma fixa (sem paginação nesta versão).
type ContactFilter struct {
	Query string // Busca parcial por nome ou email
}

// ContactRepository define o contrato de persistência para a entidade Contact.
type ContactRepository interface {
	Save(ctx context.Context, input ContactInput) (Contact, error)
	FindByID(ctx context.Context, id string) (Contact, error)
	FindAll(ctx context.Context, filter ContactFilter) ([]Contact, error)
	Update(ctx context.Context, id string, input ContactInput) (Contact, error)
	Delete(ctx context.Context, id string) error
}

// ContactService define o contrato de lógica de negócio para a entidade Contact.
type ContactService interface {
	Create(ctx context.Context, input ContactInput) (Contact, error)
	GetByID(ctx context.Context, id string) (Contact, error)
	List(ctx context.Context, filter ContactFilter) ([]Contact, error)
	Update(ctx context.Context, id string, input ContactInput) (Contact, error)
	Delete(ctx context.Context, id string) error
}
