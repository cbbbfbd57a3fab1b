package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type providerRepository struct {
	db dbtx
}

func NewProviderRepository(db dbtx) repository.ProviderRepository {
	return &providerRepository{db: db}
}

const providerColumns = `id, name, COALESCE(contact_name, ''), email, COALESCE(phone, ''), COALESCE(address, ''), is_active, created_on, updated_on`

func scanProvider(row interface{ Scan(...any) error }) (*domain.Provider, error) {
	p := &domain.Provider{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&p.ID, &p.Name, &p.ContactName, &p.Email, &p.Phone, &p.Address, &p.IsActive, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	p.CreatedOn = createdOn.Format(time.RFC3339)
	p.UpdatedOn = updatedOn.Format(time.RFC3339)
	return p, nil
}

func (r *providerRepository) Create(ctx context.Context, p *domain.Provider) error {
	query := `INSERT INTO providers (name, contact_name, email, phone, address, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, p.Name, p.ContactName, p.Email, p.Phone, p.Address, true, now, now).Scan(&p.ID)
}

func (r *providerRepository) GetByID(ctx context.Context, id int32) (*domain.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE id = $1`
	p, err := scanProvider(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProviderNotFound
	}
	return p, err
}

func (r *providerRepository) GetByEmail(ctx context.Context, email string) (*domain.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE email = $1`
	p, err := scanProvider(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProviderNotFound
	}
	return p, err
}

func (r *providerRepository) Update(ctx context.Context, p *domain.Provider) error {
	query := `UPDATE providers SET name=$1, contact_name=$2, email=$3, phone=$4, address=$5, is_active=$6, updated_on=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, p.Name, p.ContactName, p.Email, p.Phone, p.Address, p.IsActive, time.Now(), p.ID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

func (r *providerRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM providers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

func (r *providerRepository) List(ctx context.Context) ([]domain.Provider, error) {
	return r.list(ctx, `SELECT `+providerColumns+` FROM providers ORDER BY created_on DESC`)
}

func (r *providerRepository) ListActive(ctx context.Context) ([]domain.Provider, error) {
	return r.list(ctx, `SELECT `+providerColumns+` FROM providers WHERE is_active = true ORDER BY name ASC`)
}

func (r *providerRepository) list(ctx context.Context, query string) ([]domain.Provider, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []domain.Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		providers = append(providers, *p)
	}
	return providers, rows.Err()
}
