package domain

import (
	"context"
	"time"
)

// Event representa um evento/atividade da organização.
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventInput representa o payload de entrada para criação/atualização.
type EventInput struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// EventRecord é a forma já validada que o repositório persiste.
type EventRecord struct {
	Name        string
	Date        time.Time
	Location    string
	Description string
}

// EventRepository define o contrato de persistência para a entidade Event.
type EventRepository interface {
	Save(ctx context.Context, record EventRecord) (Event, error)
	FindByID(ctx context.Context, id string) (Event, error)
	FindAll(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, id string, record EventRecord) (Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService define o contrato de lógica de negócio para a entidade Event.
type EventService interface {
	Create(ctx context.Context, input EventInput) (Event, error)
	GetByID(ctx context.Context, id string) (Event, error)
	List(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, id string, input EventInput) (Event, error)
	Delete(ctx context.Context, id string) error
}
