package donationrepo

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

// listLimit é o teto fixo da listagem de doações.
const listLimit = 1000

// DonationRepository implementa a interface domain.DonationRepository.
type DonationRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewDonationRepository cria e retorna uma nova instância do Repositório.
func NewDonationRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *DonationRepository {
	return &DonationRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// scanDonation mapeia uma linha do JOIN com contacts para a entidade.
// donor_id e donor_name podem ser NULL (doação anônima ou contato removido).
func scanDonation(row interface{ Scan(...interface{}) error }) (domain.Donation, error) {
	var d domain.Donation
	var donorID, donorName sql.NullString

	err := row.Scan(
		&d.ID,
		&donorID,
		&d.Amount,
		&d.Date,
		&d.Method,
		&d.Campaign,
		&d.ReceiptID,
		&d.CreatedAt,
		&donorName,
	)
	if err != nil {
		return domain.Donation{}, err
	}

	if donorID.Valid {
		d.DonorID = &donorID.String
	}
	if donorName.Valid {
		d.DonorName = &donorName.String
	}
	return d, nil
}

const donationJoinSQL = `SELECT d.id, d.donor_id, d.amount, d.date, d.method, d.campaign, d.receipt_id, d.created_at,
                                c.name AS donor_name
                         FROM donations d
                         LEFT JOIN contacts c ON c.id = d.donor_id`

// Save insere uma nova doação e retorna a entidade criada.
func (r *DonationRepository) Save(ctx context.Context, record domain.DonationRecord) (domain.Donation, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	donation := domain.Donation{
		ID:        uuid.NewString(),
		DonorID:   record.DonorID,
		Amount:    record.Amount,
		Date:      record.Date,
		Method:    record.Method,
		Campaign:  record.Campaign,
		ReceiptID: record.ReceiptID,
		CreatedAt: time.Now(),
	}

	const insertSQL = `INSERT INTO donations (id, donor_id, amount, date, method, campaign, receipt_id, created_at)
	                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		donation.ID,
		donation.DonorID,
		donation.Amount,
		donation.Date,
		donation.Method,
		donation.Campaign,
		donation.ReceiptID,
		donation.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir doação no DB.", err)
		return domain.Donation{}, apperror.NewDBError("failed to insert donation", err)
	}

	return donation, nil
}

// FindByID busca uma doação pelo ID, com o nome do doador via JOIN.
func (r *DonationRepository) FindByID(ctx context.Context, id string) (domain.Donation, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := donationJoinSQL + ` WHERE d.id = $1`
	donation, err := scanDonation(r.DB.QueryRowContext(ctxTimeout, query, id))

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Donation{}, apperror.NewNotFoundError("No encontrado")
	}
	if err != nil {
		r.logger.Error("Falha ao buscar doação no DB.", err)
		return domain.Donation{}, apperror.NewDBError("failed to find donation", err)
	}

	return donation, nil
}

// FindAll lista as doações mais recentes, com nome do doador.
// Ordenação fixa por data (descendente) e teto fixo de linhas.
func (r *DonationRepository) FindAll(ctx context.Context) ([]domain.Donation, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := donationJoinSQL + ` ORDER BY d.date DESC LIMIT $1`

	rows, err := r.DB.QueryContext(ctxTimeout, query, listLimit)
	if err != nil {
		r.logger.Error("Falha ao listar doações no DB.", err)
		return nil, apperror.NewDBError("failed to list donations", err)
	}
	defer rows.Close()

	donations := make([]domain.Donation, 0)
	for rows.Next() {
		d, scanErr := scanDonation(rows)
		if scanErr != nil {
			return nil, apperror.NewDBError("failed to scan donation row", scanErr)
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate donation rows", err)
	}

	return donations, nil
}

// Update atualiza uma doação existente. Zero linhas afetadas vira 404.
func (r *DonationRepository) Update(ctx context.Context, id string, record domain.DonationRecord) (domain.Donation, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `UPDATE donations
	                   SET donor_id = $1, amount = $2, date = $3, method = $4, campaign = $5, receipt_id = $6
	                   WHERE id = $7
	                   RETURNING id, donor_id, amount, date, method, campaign, receipt_id, created_at`

	var d domain.Donation
	var donorID sql.NullString
	err := r.DB.QueryRowContext(ctxTimeout, updateSQL,
		record.DonorID,
		record.Amount,
		record.Date,
		record.Method,
		record.Campaign,
		record.ReceiptID,
		id,
	).Scan(
		&d.ID,
		&donorID,
		&d.Amount,
		&d.Date,
		&d.Method,
		&d.Campaign,
		&d.ReceiptID,
		&d.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Donation{}, apperror.NewNotFoundError("No encontrado")
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar doação no DB.", err)
		return domain.Donation{}, apperror.NewDBError("failed to update donation", err)
	}

	if donorID.Valid {
		d.DonorID = &donorID.String
	}
	return d, nil
}

// Delete remove uma doação. ID inexistente vira 404.
func (r *DonationRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM donations WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar doação no DB.", err)
		return apperror.NewDBError("failed to delete donation", err)
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
