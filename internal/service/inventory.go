package service

import (
	"context"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository"
)

// InventoryLedger owns product stock arithmetic. Reserve and Release are the
// only two primitives; every lifecycle transition is expressed in terms of how
// many times they fire. Both expect to run inside the caller's transaction and
// take the transaction-bound product repository per call.
type InventoryLedger struct{}

func NewInventoryLedger() *InventoryLedger {
	return &InventoryLedger{}
}

// Reserve checks one unit of the product out for a rent of the given kind.
// The row lock taken by GetByIDForUpdate is what keeps two concurrent
// reservations from both taking the last unit.
func (l *InventoryLedger) Reserve(ctx context.Context, products repository.ProductRepository, productID int32, kind domain.RentKind) (*domain.Product, error) {
	p, err := products.GetByIDForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, domain.ErrProductInactive
	}
	if p.Stock <= 0 || p.State == domain.ProductStateUnavailable {
		return nil, domain.ErrOutOfStock
	}
	if p.State.CheckedOut() {
		return nil, domain.ErrAlreadyCheckedOut
	}

	p.Stock--
	p.State = kind.CheckedOutState()
	if p.Stock == 0 {
		p.State = domain.ProductStateUnavailable
	}

	if err := products.Update(ctx, p); err != nil {
		return nil, err
	}
	logger.Debug("product reserved", "product_id", p.ID, "stock", p.Stock, "state", p.State)
	return p, nil
}

// Release returns one unit of the product. It is unconditional: a product can
// always come back. Callers must not release the same checkout twice.
func (l *InventoryLedger) Release(ctx context.Context, products repository.ProductRepository, productID int32) (*domain.Product, error) {
	p, err := products.GetByIDForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}

	p.Stock++
	p.State = domain.ProductStateAvailable

	if err := products.Update(ctx, p); err != nil {
		return nil, err
	}
	logger.Debug("product released", "product_id", p.ID, "stock", p.Stock)
	return p, nil
}
