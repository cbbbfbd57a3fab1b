package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository"
)

type rentRepository struct {
	db dbtx
}

func NewRentRepository(db dbtx) repository.RentRepository {
	return &rentRepository{db: db}
}

const rentColumns = `id, client_id, kind, total_price_cents, duration_value, duration_unit, status, start_at, end_at, pickup_at, return_at, COALESCE(notes, ''), is_active, created_on, updated_on`

func scanRent(row interface{ Scan(...any) error }) (*domain.Rent, error) {
	rt := &domain.Rent{}
	err := row.Scan(&rt.ID, &rt.ClientID, &rt.Kind, &rt.TotalPriceCents, &rt.DurationValue, &rt.DurationUnit,
		&rt.Status, &rt.StartAt, &rt.EndAt, &rt.PickupAt, &rt.ReturnAt, &rt.Notes, &rt.IsActive, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// Create persists the rent together with its line items. Callers run it inside
// RunAtomic, so the inserts commit or roll back as one.
func (r *rentRepository) Create(ctx context.Context, rt *domain.Rent) error {
	logger.DatabaseCall("INSERT", "rents", "clientID", rt.ClientID, "items", len(rt.Items))

	query := `INSERT INTO rents (client_id, kind, total_price_cents, duration_value, duration_unit, status, start_at, end_at, notes, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, rt.ClientID, rt.Kind, rt.TotalPriceCents, rt.DurationValue, rt.DurationUnit,
		rt.Status, rt.StartAt, rt.EndAt, rt.Notes, true, now, now).Scan(&rt.ID)
	if err != nil {
		return fmt.Errorf("insert rent: %w", err)
	}

	itemQuery := `INSERT INTO rent_products (rent_id, product_id, unit_price_cents) VALUES ($1, $2, $3) RETURNING id`
	for i := range rt.Items {
		rt.Items[i].RentID = rt.ID
		if err := r.db.QueryRowContext(ctx, itemQuery, rt.ID, rt.Items[i].ProductID, rt.Items[i].UnitPriceCents).Scan(&rt.Items[i].ID); err != nil {
			return fmt.Errorf("insert rent item: %w", err)
		}
	}
	return nil
}

func (r *rentRepository) GetByID(ctx context.Context, id int32) (*domain.Rent, error) {
	rt, err := scanRent(r.db.QueryRowContext(ctx, `SELECT `+rentColumns+` FROM rents WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRentNotFound
	}
	if err != nil {
		return nil, err
	}
	if rt.Items, err = r.loadItems(ctx, rt.ID); err != nil {
		return nil, err
	}
	if rt.Client, err = r.loadClient(ctx, rt.ClientID); err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentRepository) GetByIDWithProducts(ctx context.Context, id int32) (*domain.Rent, error) {
	rt, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	for i := range rt.Items {
		p, err := scanProduct(r.db.QueryRowContext(ctx, query, rt.Items[i].ProductID))
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		if err != nil {
			return nil, err
		}
		rt.Items[i].Product = p
	}
	return rt, nil
}

func (r *rentRepository) Update(ctx context.Context, rt *domain.Rent) error {
	query := `UPDATE rents SET client_id=$1, kind=$2, total_price_cents=$3, duration_value=$4, duration_unit=$5, status=$6, start_at=$7, end_at=$8, pickup_at=$9, return_at=$10, notes=$11, is_active=$12, updated_on=$13 WHERE id=$14`
	res, err := r.db.ExecContext(ctx, query, rt.ClientID, rt.Kind, rt.TotalPriceCents, rt.DurationValue, rt.DurationUnit,
		rt.Status, rt.StartAt, rt.EndAt, rt.PickupAt, rt.ReturnAt, rt.Notes, rt.IsActive, time.Now(), rt.ID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrRentNotFound
	}
	return nil
}

// Delete removes the rent and its line items. Line items only ever leave the
// store this way; there is no single-item delete.
func (r *rentRepository) Delete(ctx context.Context, id int32) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM rent_products WHERE rent_id = $1`, id); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM rents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrRentNotFound
	}
	return nil
}

func (r *rentRepository) List(ctx context.Context) ([]domain.Rent, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+rentColumns+` FROM rents ORDER BY created_on DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rents []domain.Rent
	for rows.Next() {
		rt, err := scanRent(rows)
		if err != nil {
			return nil, err
		}
		rents = append(rents, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range rents {
		if rents[i].Items, err = r.loadItems(ctx, rents[i].ID); err != nil {
			return nil, err
		}
		if rents[i].Client, err = r.loadClient(ctx, rents[i].ClientID); err != nil {
			return nil, err
		}
	}
	return rents, nil
}

func (r *rentRepository) loadItems(ctx context.Context, rentID int32) ([]domain.RentItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, rent_id, product_id, unit_price_cents FROM rent_products WHERE rent_id = $1 ORDER BY id ASC`, rentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.RentItem
	for rows.Next() {
		var it domain.RentItem
		if err := rows.Scan(&it.ID, &it.RentID, &it.ProductID, &it.UnitPriceCents); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *rentRepository) loadClient(ctx context.Context, clientID int32) (*domain.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, clientID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrClientNotFound
	}
	return c, err
}
