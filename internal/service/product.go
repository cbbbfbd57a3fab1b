package service

import (
	"context"
	"fmt"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type productService struct {
	productRepo  repository.ProductRepository
	providerRepo repository.ProviderRepository
}

func NewProductService(productRepo repository.ProductRepository, providerRepo repository.ProviderRepository) ProductService {
	return &productService{
		productRepo:  productRepo,
		providerRepo: providerRepo,
	}
}

func (s *productService) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	if in.PriceCents <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", domain.ErrInvalidInput)
	}

	provider, err := s.providerRepo.GetByID(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}
	if !provider.IsActive {
		return nil, domain.ErrProviderInactive
	}

	state := in.State
	if state == "" {
		state = domain.ProductStateAvailable
	}
	// A product with no stock cannot be anything but unavailable.
	if in.Stock == 0 {
		state = domain.ProductStateUnavailable
	}

	p := &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
		State:       state,
		ProviderID:  in.ProviderID,
		IsActive:    true,
	}
	if err := s.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Get(ctx context.Context, id int32) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// Update patches product fields and keeps stock and state consistent: a
// manual state change to RENTED/LOANED consumes a unit, a change back to
// AVAILABLE restores it, and a stock of zero always forces UNAVAILABLE.
func (s *productService) Update(ctx context.Context, id int32, patch UpdateProductInput) (*domain.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.ProviderID != nil && *patch.ProviderID != p.ProviderID {
		newProvider, err := s.providerRepo.GetByID(ctx, *patch.ProviderID)
		if err != nil {
			return nil, err
		}
		if !newProvider.IsActive {
			return nil, domain.ErrProviderInactive
		}
		p.ProviderID = *patch.ProviderID
	}

	previousState := p.State
	previousStock := p.Stock

	newState := previousState
	if patch.State != nil {
		newState = *patch.State
	}
	newStock := previousStock
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must not be negative", domain.ErrInvalidInput)
		}
		newStock = *patch.Stock
	}

	if patch.State != nil && previousState != newState {
		switch {
		case previousState == domain.ProductStateAvailable && newState.CheckedOut():
			if previousStock <= 0 {
				return nil, domain.ErrOutOfStock
			}
			newStock = previousStock - 1
		case previousState.CheckedOut() && newState == domain.ProductStateAvailable:
			newStock = previousStock + 1
		}
	}

	if patch.Stock != nil && patch.State == nil {
		if newStock > 0 && previousState == domain.ProductStateUnavailable {
			newState = domain.ProductStateAvailable
		}
	}
	if newStock == 0 {
		newState = domain.ProductStateUnavailable
	}

	p.Stock = newStock
	p.State = newState

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.PriceCents != nil {
		if *patch.PriceCents <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
		}
		p.PriceCents = *patch.PriceCents
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}

	if err := s.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Delete(ctx context.Context, id int32) error {
	return s.productRepo.Delete(ctx, id)
}

func (s *productService) List(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *productService) ListActive(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.ListActive(ctx)
}

func (s *productService) ListByProvider(ctx context.Context, providerID int32) ([]domain.Product, error) {
	if _, err := s.providerRepo.GetByID(ctx, providerID); err != nil {
		return nil, err
	}
	return s.productRepo.ListByProvider(ctx, providerID)
}
