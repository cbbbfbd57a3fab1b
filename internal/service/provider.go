package service

import (
	"context"
	"errors"
	"fmt"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type providerService struct {
	providerRepo repository.ProviderRepository
}

func NewProviderService(providerRepo repository.ProviderRepository) ProviderService {
	return &providerService{providerRepo: providerRepo}
}

func (s *providerService) Create(ctx context.Context, p *domain.Provider) error {
	if p.Name == "" || p.Email == "" {
		return fmt.Errorf("%w: name and email are required", domain.ErrInvalidInput)
	}

	existing, err := s.providerRepo.GetByEmail(ctx, p.Email)
	if err != nil && !errors.Is(err, domain.ErrProviderNotFound) {
		return err
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}

	p.IsActive = true
	return s.providerRepo.Create(ctx, p)
}

func (s *providerService) Get(ctx context.Context, id int32) (*domain.Provider, error) {
	return s.providerRepo.GetByID(ctx, id)
}

func (s *providerService) Update(ctx context.Context, id int32, patch UpdateProviderInput) (*domain.Provider, error) {
	p, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != p.Email {
		existing, err := s.providerRepo.GetByEmail(ctx, *patch.Email)
		if err != nil && !errors.Is(err, domain.ErrProviderNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		p.Email = *patch.Email
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.ContactName != nil {
		p.ContactName = *patch.ContactName
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}

	if err := s.providerRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *providerService) Delete(ctx context.Context, id int32) error {
	return s.providerRepo.Delete(ctx, id)
}

func (s *providerService) List(ctx context.Context) ([]domain.Provider, error) {
	return s.providerRepo.List(ctx)
}

func (s *providerService) ListActive(ctx context.Context) ([]domain.Provider, error) {
	return s.providerRepo.ListActive(ctx)
}
