package service

import (
	"context"
	"fmt"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) Create(ctx context.Context, c *domain.Client) error {
	if c.Name == "" || c.Phone == "" {
		return fmt.Errorf("%w: name and phone are required", domain.ErrInvalidInput)
	}
	c.IsActive = true
	return s.clientRepo.Create(ctx, c)
}

func (s *clientService) Get(ctx context.Context, id int32) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *clientService) Update(ctx context.Context, id int32, patch UpdateClientInput) (*domain.Client, error) {
	c, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
	if patch.IsActive != nil {
		c.IsActive = *patch.IsActive
	}

	if err := s.clientRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *clientService) Delete(ctx context.Context, id int32) error {
	return s.clientRepo.Delete(ctx, id)
}

func (s *clientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.clientRepo.List(ctx)
}

func (s *clientService) ListActive(ctx context.Context) ([]domain.Client, error) {
	return s.clientRepo.ListActive(ctx)
}
