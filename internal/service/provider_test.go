package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaldesk-backend/internal/domain"
)

func TestProviderCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("activates the provider", func(t *testing.T) {
		repo := &fakeProviderRepo{providers: map[int32]domain.Provider{}}
		svc := NewProviderService(repo)

		p := &domain.Provider{ID: 1, Name: "ToolCorp", Email: "sales@toolcorp.test"}
		require.NoError(t, svc.Create(ctx, p))
		assert.True(t, p.IsActive)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		repo := &fakeProviderRepo{providers: map[int32]domain.Provider{
			1: {ID: 1, Name: "ToolCorp", Email: "sales@toolcorp.test", IsActive: true},
		}}
		svc := NewProviderService(repo)

		err := svc.Create(ctx, &domain.Provider{ID: 2, Name: "Copycat", Email: "sales@toolcorp.test"})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := NewProviderService(&fakeProviderRepo{providers: map[int32]domain.Provider{}})

		err := svc.Create(ctx, &domain.Provider{Name: "No Email"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestProviderUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("changing email checks uniqueness", func(t *testing.T) {
		repo := &fakeProviderRepo{providers: map[int32]domain.Provider{
			1: {ID: 1, Name: "ToolCorp", Email: "sales@toolcorp.test", IsActive: true},
			2: {ID: 2, Name: "Other", Email: "other@supply.test", IsActive: true},
		}}
		svc := NewProviderService(repo)

		taken := "other@supply.test"
		_, err := svc.Update(ctx, 1, UpdateProviderInput{Email: &taken})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

		fresh := "new@toolcorp.test"
		p, err := svc.Update(ctx, 1, UpdateProviderInput{Email: &fresh})
		require.NoError(t, err)
		assert.Equal(t, fresh, p.Email)
	})

	t.Run("deactivation", func(t *testing.T) {
		repo := &fakeProviderRepo{providers: map[int32]domain.Provider{
			1: {ID: 1, Name: "ToolCorp", Email: "sales@toolcorp.test", IsActive: true},
		}}
		svc := NewProviderService(repo)

		inactive := false
		p, err := svc.Update(ctx, 1, UpdateProviderInput{IsActive: &inactive})
		require.NoError(t, err)
		assert.False(t, p.IsActive)
	})
}
