package contactrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"godonaciones/internal/domain"
	apperror "godonaciones/internal/errors"
	"godonaciones/internal/pkg/cache"
	"godonaciones/internal/pkg/logger"
)

// contactCacheKey é o formato da chave de cache para contatos individuais.
const contactCacheKey = "contact:%s"

// cacheTTL é o tempo de vida das entradas de cache de contato.
const cacheTTL = 5 * time.Minute

// listLimit é o teto fixo da listagem (sem paginação nesta versão).
const listLimit = 500

// ContactRepository implementa a interface domain.ContactRepository.
// Leituras por ID usam a estratégia Cache-Aside sobre o Redis.
type ContactRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewContactRepository cria e retorna uma nova instância do Repositório.
func NewContactRepository(db *sql.DB, cacheClient cache.Client, dbTimeout time.Duration, log logger.Logger) *ContactRepository {
	return &ContactRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

const contactColumns = `id, name, type, email, phone, address, notes, created_at`

func scanContact(row interface{ Scan(...interface{}) error }) (domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Type,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.Notes,
		&c.CreatedAt,
	)
	return c, err
}

// Save insere um novo contato e retorna a entidade criada.
func (r *ContactRepository) Save(ctx context.Context, input domain.ContactInput) (domain.Contact, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	contact := domain.Contact{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Type:      input.Type,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		Notes:     input.Notes,
		CreatedAt: time.Now(),
	}

	const insertSQL = `INSERT INTO contacts (id, name, type, email, phone, address, notes, created_at)
	                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		contact.ID,
		contact.Name,
		contact.Type,
		contact.Email,
		contact.Phone,
		contact.Address,
		contact.Notes,
		contact.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir contato no DB.", err)
		return domain.Contact{}, apperror.NewDBError("failed to insert contact", err)
	}

	return contact, nil
}

// FindByID busca um contato pelo ID, utilizando a estratégia Cache-Aside.
func (r *ContactRepository) FindByID(ctx context.Context, id string) (domain.Contact, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(contactCacheKey, id)
	var contact domain.Contact

	// Cache HIT: retorna direto do Redis.
	if cachedData, err := r.Cache.Get(ctxTimeout, key); err == nil {
		if json.Unmarshal([]byte(cachedData), &contact) == nil {
			return contact, nil
		}
		// Entrada ilegível: segue para o DB e sobrescreve depois.
	}

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	contact, err := scanContact(r.DB.QueryRowContext(ctxTimeout, query, id))

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Contact{}, apperror.NewNotFoundError("No encontrado")
	}
	if err != nil {
		r.logger.Error("Falha ao buscar contato no DB.", err)
		return domain.Contact{}, apperror.NewDBError("failed to find contact", err)
	}

	// Popula o cache para futuras leituras. Falha de cache não é falha da operação.
	if contactJSON, marshalErr := json.Marshal(contact); marshalErr == nil {
		r.Cache.Set(ctxTimeout, key, contactJSON, cacheTTL)
	}

	return contact, nil
}

// FindAll lista os contatos, com busca parcial opcional por nome ou email.
// Ordenação fixa (mais recentes primeiro) e teto fixo de linhas.
func (r *ContactRepository) FindAll(ctx context.Context, filter domain.ContactFilter) ([]domain.Contact, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + contactColumns + ` FROM contacts
	          WHERE name ILIKE $1 OR email ILIKE $1
	          ORDER BY created_at DESC LIMIT $2`
	pattern := "%" + filter.Query + "%"

	rows, err := r.DB.QueryContext(ctxTimeout, query, pattern, listLimit)
	if err != nil {
		r.logger.Error("Falha ao listar contatos no DB.", err)
		return nil, apperror.NewDBError("failed to list contacts", err)
	}
	defer rows.Close()

	contacts := make([]domain.Contact, 0)
	for rows.Next() {
		c, scanErr := scanContact(rows)
		if scanErr != nil {
			return nil, apperror.NewDBError("failed to scan contact row", scanErr)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate contact rows", err)
	}

	return contacts, nil
}

// Update atualiza um contato existente e retorna a versão persistida.
// Zero linhas afetadas significa que o ID não existe (404).
func (r *ContactRepository) Update(ctx context.Context, id string, input domain.ContactInput) (domain.Contact, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `UPDATE contacts
	                   SET name = $1, type = $2, email = $3, phone = $4, address = $5, notes = $6
	                   WHERE id = $7
	                   RETURNING ` + contactColumns

	contact, err := scanContact(r.DB.QueryRowContext(ctxTimeout, updateSQL,
		input.Name,
		input.Type,
		input.Email,
		input.Phone,
		input.Address,
		input.Notes,
		id,
	))

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Contact{}, apperror.NewNotFoundError("No encontrado")
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar contato no DB.", err)
		return domain.Contact{}, apperror.NewDBError("failed to update contact", err)
	}

	// Invalida a entrada de cache desatualizada.
	r.Cache.Delete(ctxTimeout, fmt.Sprintf(contactCacheKey, id))

	return contact, nil
}

// Delete remove um contato. ID inexistente vira 404, nunca sucesso silencioso.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar contato no DB.", err)
		return apperror.NewDBError("failed to delete contact", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("failed to read affected rows", err)
	}
	if affected == 0 {
		return apperror.NewNotFoundError("No encontrado")
	}

	r.Cache.Delete(ctxTimeout, fmt.Sprintf(contactCacheKey, id))
	return nil
}
