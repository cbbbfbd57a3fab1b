package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository"
)

type productRepository struct {
	db dbtx
}

func NewProductRepository(db dbtx) repository.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, COALESCE(description, ''), price_cents, stock, state, provider_id, is_active, created_on, updated_on`

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	p := &domain.Product{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.State, &p.ProviderID, &p.IsActive, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	p.CreatedOn = createdOn.Format(time.RFC3339)
	p.UpdatedOn = updatedOn.Format(time.RFC3339)
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (name, description, price_cents, stock, state, provider_id, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.PriceCents, p.Stock, p.State, p.ProviderID, true, now, now).Scan(&p.ID)
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	return p, err
}

// GetByIDForUpdate takes a row lock so concurrent reservations of the same
// product serialize. Only meaningful inside RunAtomic; the lock is held until
// the transaction ends.
func (r *productRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	logger.DatabaseCall("SELECT FOR UPDATE", "products", "productID", id)
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	return p, err
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name=$1, description=$2, price_cents=$3, stock=$4, state=$5, provider_id=$6, is_active=$7, updated_on=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.PriceCents, p.Stock, p.State, p.ProviderID, p.IsActive, time.Now(), p.ID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_on DESC`)
}

func (r *productRepository) ListActive(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE is_active = true ORDER BY name ASC`)
}

func (r *productRepository) ListByProvider(ctx context.Context, providerID int32) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE provider_id = $1 ORDER BY name ASC`, providerID)
}

func (r *productRepository) list(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}
