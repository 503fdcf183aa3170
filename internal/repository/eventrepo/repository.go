package eventrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"godonaciones/internal/domain"
	apperror "godonaciones/internal/errors"
	"godonaciones/internal/pkg/logger"
)

// listLimit é o teto fixo da listagem de eventos.
const listLimit = 200

// EventRepository implementa a interface domain.EventRepository.
type EventRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewEventRepository cria e retorna uma nova instância do Repositório.
func NewEventRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *EventRepository {
	return &EventRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

const eventColumns = `id, name, date, location, description, created_at`

func scanEvent(row interface{ Scan(...interface{}) error }) (domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Date,
		&e.Location,
		&e.Description,
		&e.CreatedAt,
	)
	return e, err
}

// Save insere um novo evento e retorna a entidade criada.
func (r *EventRepository) Save(ctx context.Context, record domain.EventRecord) (domain.Event, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	event := domain.Event{
		ID:          uuid.NewString(),
		Name:        record.Name,
		Date:        record.Date,
		Location:    record.Location,
		Description: record.Description,
		CreatedAt:   time.Now(),
	}

	const insertSQL = `INSERT INTO events (id, name, date, location, description, created_at)
	                   VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		event.ID,
		event.Name,
		event.Date,
		event.Location,
		event.Description,
		event.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir evento no DB.", err)
		return domain.Event{}, apperror.NewDBError("failed to insert event", err)
	}

	return event, nil
}

// FindByID busca um evento pelo ID.
func (r *EventRepository) FindByID(ctx context.Context, id string) (domain.Event, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	event, err := scanEvent(r.DB.QueryRowContext(ctxTimeout, query, id))

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Event{}, apperror.NewNotFoundError("No encontrado")
	}
	if err != nil {
		r.logger.Error("Falha ao buscar evento no DB.", err)
		return domain.Event{}, apperror.NewDBError("failed to find event", err)
	}

	return event, nil
}

// FindAll lista os eventos em ordem cronológica (próximos primeiro), com teto fixo.
func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date ASC LIMIT $1`

	rows, err := r.DB.QueryContext(ctxTimeout, query, listLimit)
	if err != nil {
		r.logger.Error("Falha ao listar eventos no DB.", err)
		return nil, apperror.NewDBError("failed to list events", err)
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		e, scanErr := scanEvent(rows)
		if scanErr != nil {
			return nil, apperror.NewDBError("failed to scan event row", scanErr)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate event rows", err)
	}

	return events, nil
}

// Update atualiza um evento existente. Zero linhas afetadas vira 404.
func (r *EventRepository) Update(ctx context.Context, id string, record domain.EventRecord) (domain.Event, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `UPDATE events
	                   SET name = $1, date = $2, location = $3, description = $4
	                   WHERE id = $5
	                   RETURNING ` + eventColumns

	event, err := scanEvent(r.DB.QueryRowContext(ctxTimeout, updateSQL,
		record.Name,
		record.Date,
		record.Location,
		record.Description,
		id,
	))

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Event{}, apperror.NewNotFoundError("No encontrado")
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar evento no DB.", err)
		return domain.Event{}, apperror.NewDBError("failed to update event", err)
	}

	return event, nil
}

// Delete remove um evento. ID inexistente vira 404.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar evento no DB.", err)
		return apperror.NewDBError("failed to delete event", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("failed to read affected rows", err)
	}
	if affected == 0 {
		return apperror.NewNotFoundError("No encontrado")
	}
	return nil
}
