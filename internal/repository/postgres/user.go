package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type userRepository struct {
	db dbtx
}

func NewUserRepository(db dbtx) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, first_name, last_name, email, COALESCE(phone, ''), password_hash, role, is_active, created_on, updated_on`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.IsActive, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format(time.RFC3339)
	u.UpdatedOn = updatedOn.Format(time.RFC3339)
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (first_name, last_name, email, phone, password_hash, role, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, u.FirstName, u.LastName, u.Email, u.Phone, u.PasswordHash, u.Role, true, now, now).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	return u, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	return u, err
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET first_name=$1, last_name=$2, email=$3, phone=$4, password_hash=$5, role=$6, is_active=$7, updated_on=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, u.FirstName, u.LastName, u.Email, u.Phone, u.PasswordHash, u.Role, u.IsActive, time.Now(), u.ID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
