package service

import (
	"context"
	"time"

	"rentaldesk-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, firstName, lastName, email, phone, password string, role domain.Role) (*domain.User, string, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type ClientService interface {
	Create(ctx context.Context, client *domain.Client) error
	Get(ctx context.Context, id int32) (*domain.Client, error)
	Update(ctx context.Context, id int32, patch UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Client, error)
	ListActive(ctx context.Context) ([]domain.Client, error)
}

type ProviderService interface {
	Create(ctx context.Context, provider *domain.Provider) error
	Get(ctx context.Context, id int32) (*domain.Provider, error)
	Update(ctx context.Context, id int32, patch UpdateProviderInput) (*domain.Provider, error)
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Provider, error)
	ListActive(ctx context.Context) ([]domain.Provider, error)
}

type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id int32) (*domain.Product, error)
	Update(ctx context.Context, id int32, patch UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Product, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
	ListByProvider(ctx context.Context, providerID int32) ([]domain.Product, error)
}

// RentService owns the rental lifecycle. Each operation runs as one atomic
// unit against the store; a failure inside leaves no inventory side effect.
type RentService interface {
	Create(ctx context.Context, input CreateRentInput) (*domain.Rent, error)
	Get(ctx context.Context, id int32) (*domain.Rent, error)
	List(ctx context.Context) ([]domain.Rent, error)
	Update(ctx context.Context, id int32, patch UpdateRentInput) (*domain.Rent, error)
	Pickup(ctx context.Context, id int32) (*domain.Rent, error)
	EndTime(ctx context.Context, id int32) (*domain.Rent, error)
	FlagForPickup(ctx context.Context, id int32) (*domain.Rent, error)
	Finalize(ctx context.Context, id int32) (*domain.Rent, error)
	Remove(ctx context.Context, id int32) error
}

type EmailService interface {
	SendOverdueRentReminder(ctx context.Context, toEmail, toName string, rentID int32, endAt time.Time) error
}

type CreateRentInput struct {
	ClientID        int32               `json:"client_id"`
	Kind            domain.RentKind     `json:"kind"`
	TotalPriceCents int32               `json:"total_price_cents"`
	DurationValue   int32               `json:"duration_value"`
	DurationUnit    domain.DurationUnit `json:"duration_unit"`
	StartAt         *time.Time          `json:"start_at,omitempty"` // Defaults to now
	ProductIDs      []int32             `json:"product_ids"`
	Notes           string              `json:"notes,omitempty"`
}

// UpdateRentInput is a field patch; nil means "leave unchanged". The derived
// end time is recomputed only when one of its inputs is patched.
type UpdateRentInput struct {
	ClientID        *int32               `json:"client_id,omitempty"`
	TotalPriceCents *int32               `json:"total_price_cents,omitempty"`
	DurationValue   *int32               `json:"duration_value,omitempty"`
	DurationUnit    *domain.DurationUnit `json:"duration_unit,omitempty"`
	StartAt         *time.Time           `json:"start_at,omitempty"`
	Notes           *string              `json:"notes,omitempty"`
}

type CreateProductInput struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	PriceCents  int32               `json:"price_cents"`
	Stock       int32               `json:"stock"`
	State       domain.ProductState `json:"state,omitempty"` // Optional; stock 0 forces UNAVAILABLE
	ProviderID  int32               `json:"provider_id"`
}

type UpdateProductInput struct {
	Name        *string              `json:"name,omitempty"`
	Description *string              `json:"description,omitempty"`
	PriceCents  *int32               `json:"price_cents,omitempty"`
	Stock       *int32               `json:"stock,omitempty"`
	State       *domain.ProductState `json:"state,omitempty"`
	ProviderID  *int32               `json:"provider_id,omitempty"`
	IsActive    *bool                `json:"is_active,omitempty"`
}

type UpdateClientInput struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Address  *string `json:"address,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type UpdateProviderInput struct {
	Name        *string `json:"name,omitempty"`
	ContactName *string `json:"contact_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
