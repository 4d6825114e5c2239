package postgres

import (
	// Go Internal Packages
	"context"
	"time"

	// Local Packages
	errors "swipepoint/errors"
	models "swipepoint/models"

	// External Packages
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentsRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentsRepository(pool *pgxpool.Pool) *PaymentsRepository {
	return &PaymentsRepository{pool: pool}
}

const paymentColumns = `id, reference, orderid, company_id, merchant_id, firstname, lastname,
	email, phone, amount, fee, fee_percentage, net_amount, card_number, status,
	callback_url, created_at, updated_at`

func scanPayment(row pgx.Row) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.Reference, &p.OrderID, &p.CompanyID, &p.MerchantID,
		&p.Firstname, &p.Lastname, &p.Email, &p.Phone, &p.Amount, &p.Fee,
		&p.FeePercentage, &p.NetAmount, &p.CardNumber, &p.Status,
		&p.CallbackURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PaymentsRepository) Insert(ctx context.Context, p models.Payment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		p.ID, p.Reference, p.OrderID, p.CompanyID, p.MerchantID, p.Firstname,
		p.Lastname, p.Email, p.Phone, p.Amount, p.Fee, p.FeePercentage,
		p.NetAmount, p.CardNumber, p.Status, p.CallbackURL, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return errors.InternalErr("insert payment", err)
	}
	return nil
}

func (r *PaymentsRepository) GetByReference(ctx context.Context, reference string) (models.Payment, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE reference = $1`, reference)
	p, err := scanPayment(row)
	if err == pgx.ErrNoRows {
		return models.Payment{}, errors.NotFoundErr("payment", reference)
	}
	if err != nil {
		return models.Payment{}, errors.InternalErr("get payment", err)
	}
	return p, nil
}

// FinalizeIfPending performs the conditional status flip in a single
// UPDATE guarded on the current status, so out of two concurrent
// finalizations exactly one wins.
func (r *PaymentsRepository) FinalizeIfPending(ctx context.Context, reference, status string) (models.Payment, bool, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE payments SET status = $1, updated_at = $2
		WHERE reference = $3 AND status = $4
		RETURNING `+paymentColumns,
		status, time.Now().UTC(), reference, models.StatusPending)

	p, err := scanPayment(row)
	if err == pgx.ErrNoRows {
		return models.Payment{}, false, nil
	}
	if err != nil {
		return models.Payment{}, false, errors.InternalErr("finalize payment", err)
	}
	return p, true, nil
}

func (r *PaymentsRepository) ListByMerchant(ctx context.Context, merchantID string) ([]models.Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE merchant_id = $1 ORDER BY created_at DESC`, merchantID)
	if err != nil {
		return nil, errors.InternalErr("list payments", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		p, scanErr := scanPayment(rows)
		if scanErr != nil {
			return nil, errors.InternalErr("scan payment", scanErr)
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.InternalErr("list payments", err)
	}
	return payments, nil
}

func (r *PaymentsRepository) DeleteByID(ctx context.Context, id, merchantID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM payments WHERE id = $1 AND merchant_id = $2`, id, merchantID)
	if err != nil {
		return errors.InternalErr("delete payment", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFoundErr("payment", id)
	}
	return nil
}
