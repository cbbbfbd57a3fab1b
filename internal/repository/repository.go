package repository

import (
	"context"

	"rentaldesk-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int32) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Client, error)
	ListActive(ctx context.Context) ([]domain.Client, error)
}

type ProviderRepository interface {
	Create(ctx context.Context, provider *domain.Provider) error
	GetByID(ctx context.Context, id int32) (*domain.Provider, error)
	GetByEmail(ctx context.Context, email string) (*domain.Provider, error)
	Update(ctx context.Context, provider *domain.Provider) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Provider, error)
	ListActive(ctx context.Context) ([]domain.Provider, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
	// GetByIDForUpdate locks the product row for the duration of the
	// surrounding transaction. Reservation correctness depends on it: two
	// concurrent reservations of the same product serialize on this lock.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Product, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
	ListByProvider(ctx context.Context, providerID int32) ([]domain.Product, error)
}

// RentRepository persists the rent aggregate as one unit: a rent travels with
// its line items, and items have no mutation API of their own.
type RentRepository interface {
	Create(ctx context.Context, rent *domain.Rent) error
	GetByID(ctx context.Context, id int32) (*domain.Rent, error)
	// GetByIDWithProducts loads the aggregate with each item's product
	// attached, for operations that touch inventory.
	GetByIDWithProducts(ctx context.Context, id int32) (*domain.Rent, error)
	Update(ctx context.Context, rent *domain.Rent) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Rent, error)
}

// Repos is the set of repositories handed to a transactional function. All of
// them are bound to the same transaction.
type Repos struct {
	Users     UserRepository
	Clients   ClientRepository
	Providers ProviderRepository
	Products  ProductRepository
	Rents     RentRepository
}

// Store is the collaborator boundary to persistent storage. RunAtomic executes
// fn with repositories bound to a single transaction: all writes commit on
// normal return and are discarded when fn returns an error.
type Store interface {
	Repos() Repos
	RunAtomic(ctx context.Context, fn func(r Repos) error) error
}
