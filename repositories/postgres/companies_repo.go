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

type CompaniesRepository struct {
	pool *pgxpool.Pool
}

func NewCompaniesRepository(pool *pgxpool.Pool) *CompaniesRepository {
	return &CompaniesRepository{pool: pool}
}

const companyColumns = `id, name, email, merchant_id, callback_url, created_at, updated_at`

func scanCompany(row pgx.Row) (models.Company, error) {
	var c models.Company
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.MerchantID, &c.CallbackURL,
		&c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *CompaniesRepository) Insert(ctx context.Context, c models.Company) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO companies (`+companyColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.Name, c.Email, c.MerchantID, c.CallbackURL, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return errors.InternalErr("insert company", err)
	}
	return nil
}

func (r *CompaniesRepository) GetByID(ctx context.Context, id string) (models.Company, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	c, err := scanCompany(row)
	if err == pgx.ErrNoRows {
		return models.Company{}, errors.NotFoundErr("company", id)
	}
	if err != nil {
		return models.Company{}, errors.InternalErr("get company", err)
	}
	return c, nil
}

func (r *CompaniesRepository) GetByMerchantID(ctx context.Context, merchantID string) (models.Company, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE merchant_id = $1`, merchantID)
	c, err := scanCompany(row)
	if err == pgx.ErrNoRows {
		return models.Company{}, errors.NotFoundErr("company", merchantID)
	}
	if err != nil {
		return models.Company{}, errors.InternalErr("get company", err)
	}
	return c, nil
}

func (r *CompaniesRepository) List(ctx context.Context) ([]models.Company, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.InternalErr("list companies", err)
	}
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		c, scanErr := scanCompany(rows)
		if scanErr != nil {
			return nil, errors.InternalErr("scan company", scanErr)
		}
		companies = append(companies, c)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.InternalErr("list companies", err)
	}
	return companies, nil
}

// Update rewrites the mutable fields. The merchant token is immutable
// once minted.
func (r *CompaniesRepository) Update(ctx context.Context, c models.Company) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE companies SET name = $1, email = $2, callback_url = $3, updated_at = $4
		WHERE id = $5`,
		c.Name, c.Email, c.CallbackURL, time.Now().UTC(), c.ID)
	if err != nil {
		return errors.InternalErr("update company", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFoundErr("company", c.ID)
	}
	return nil
}

// Delete removes the company only; its payments keep their merchant_id
// reference.
func (r *CompaniesRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return errors.InternalErr("delete company", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFoundErr("company", id)
	}
	return nil
}
