package eventservice

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"

	"godonaciones/internal/domain"
	"godonaciones/internal/pkg/logger"
	"godonaciones/internal/pkg/validate"
)

// EventService implementa a lógica de negócio para eventos.
type EventService struct {
	Repo   domain.EventRepository
	Logger logger.Logger
}

// NewService cria uma nova instância do EventService.
func NewService(repo domain.EventRepository, log logger.Logger) *EventService {
	return &EventService{
		Repo:   repo,
		Logger: log,
	}
}

// toRecord valida a entrada e a converte na forma persistível.
func toRecord(input *domain.EventInput) (domain.EventRecord, error) {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Name, validation.Required, validation.Length(2, 0)),
		validation.Field(&input.Date, validation.Required, validation.By(validate.ISODate)),
	)
	if err != nil {
		return domain.EventRecord{}, validate.Translate(err)
	}

	date, err := validate.ParseISODate(input.Date)
	if err != nil {
		return domain.EventRecord{}, validate.Translate(err)
	}

	return domain.EventRecord{
		Name:        input.Name,
		Date:        date,
		Location:    input.Location,
		Description: input.Description,
	}, nil
}

// Create valida e persiste um novo evento.
func (s *EventService) Create(ctx context.Context, input domain.EventInput) (domain.Event, error) {
	record, err := toRecord(&input)
	if err != nil {
		return domain.Event{}, err
	}

	event, err := s.Repo.Save(ctx, record)
	if err != nil {
		return domain.Event{}, err
	}

	s.Logger.Info("Evento criado.", map[string]interface{}{"event_id": event.ID})
	return event, nil
}

// GetByID busca um evento pelo ID.
func (s *EventService) GetByID(ctx context.Context, id string) (domain.Event, error) {
	return s.Repo.FindByID(ctx, id)
}

// List lista os eventos em ordem cronológica.
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.Repo.FindAll(ctx)
}

// Update valida e atualiza um evento existente.
func (s *EventService) Update(ctx context.Context, id string, input domain.EventInput) (domain.Event, error) {
	record, err := toRecord(&input)
	if err != nil {
		return domain.Event{}, err
	}
	return s.Repo.Update(ctx, id, record)
}

// Delete remove um evento.
func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
