package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type clientRepository struct {
	db dbtx
}

func NewClientRepository(db dbtx) repository.ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, name, phone, COALESCE(email, ''), COALESCE(address, ''), is_active, created_on, updated_on`

func scanClient(row interface{ Scan(...any) error }) (*domain.Client, error) {
	c := &domain.Client{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.IsActive, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	c.CreatedOn = createdOn.Format(time.RFC3339)
	c.UpdatedOn = updatedOn.Format(time.RFC3339)
	return c, nil
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (name, phone, email, address, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.Name, c.Phone, c.Email, c.Address, true, now, now).Scan(&c.ID)
}

func (r *clientRepository) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrClientNotFound
	}
	return c, err
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET name=$1, phone=$2, email=$3, address=$4, is_active=$5, updated_on=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Phone, c.Email, c.Address, c.IsActive, time.Now(), c.ID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	return r.list(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY created_on DESC`)
}

func (r *clientRepository) ListActive(ctx context.Context) ([]domain.Client, error) {
	return r.list(ctx, `SELECT `+clientColumns+` FROM clients WHERE is_active = true ORDER BY name ASC`)
}

func (r *clientRepository) list(ctx context.Context, query string) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}
