package service

import (
	"context"
	"fmt"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository"
)

type rentService struct {
	store  repository.Store
	ledger *InventoryLedger
}

func NewRentService(store repository.Store, ledger *InventoryLedger) RentService {
	return &rentService{
		store:  store,
		ledger: ledger,
	}
}

func (in CreateRentInput) validate() error {
	if in.TotalPriceCents <= 0 {
		return fmt.Errorf("%w: total price must be positive", domain.ErrInvalidInput)
	}
	if in.DurationValue < 1 {
		return fmt.Errorf("%w: duration must be at least 1", domain.ErrInvalidInput)
	}
	if in.DurationUnit != domain.DurationUnitHours && in.DurationUnit != domain.DurationUnitDays {
		return fmt.Errorf("%w: duration unit must be HOURS or DAYS", domain.ErrInvalidInput)
	}
	if in.Kind != domain.RentKindRental && in.Kind != domain.RentKindLoan {
		return fmt.Errorf("%w: kind must be RENTAL or LOAN", domain.ErrInvalidInput)
	}
	if len(in.ProductIDs) == 0 {
		return fmt.Errorf("%w: at least one product is required", domain.ErrInvalidInput)
	}
	return nil
}

// Create books a new rent in state AWAITING_PICKUP, reserving one unit of
// every requested product. All reservations and the rent insert commit
// together; if any product cannot be reserved the whole call fails and the
// transaction rollback undoes the reservations already made.
func (s *rentService) Create(ctx context.Context, in CreateRentInput) (*domain.Rent, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var created *domain.Rent
	err := s.store.RunAtomic(ctx, func(r repository.Repos) error {
		client, err := r.Clients.GetByID(ctx, in.ClientID)
		if err != nil {
			return err
		}
		if !client.IsActive {
			return domain.ErrClientInactive
		}

		startAt := time.Now()
		if in.StartAt != nil {
			startAt = *in.StartAt
		}

		rent := &domain.Rent{
			ClientID:        in.ClientID,
			Kind:            in.Kind,
			TotalPriceCents: in.TotalPriceCents,
			DurationValue:   in.DurationValue,
			DurationUnit:    in.DurationUnit,
			Status:          domain.RentStatusAwaitingPickup,
			StartAt:         startAt,
			EndAt:           domain.ComputeEndAt(startAt, in.DurationValue, in.DurationUnit),
			Notes:           in.Notes,
			IsActive:        true,
		}

		for _, productID := range in.ProductIDs {
			p, err := s.ledger.Reserve(ctx, r.Products, productID, in.Kind)
			if err != nil {
				return err
			}
			rent.Items = append(rent.Items, domain.RentItem{
				ProductID:      p.ID,
				UnitPriceCents: p.PriceCents,
			})
		}

		if err := r.Rents.Create(ctx, rent); err != nil {
			return err
		}

		created, err = r.Rents.GetByID(ctx, rent.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("rent created", "rent_id", created.ID, "kind", created.Kind, "items", len(created.Items))
	created.CollapseClientRef()
	return created, nil
}

func (s *rentService) Get(ctx context.Context, id int32) (*domain.Rent, error) {
	rt, err := s.store.Repos().Rents.GetByIDWithProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	rt.CollapseClientRef()
	return rt, nil
}

func (s *rentService) List(ctx context.Context) ([]domain.Rent, error) {
	rents, err := s.store.Repos().Rents.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rents {
		rents[i].CollapseClientRef()
	}
	return rents, nil
}

// Pickup marks the rent as handed over to the client.
func (s *rentService) Pickup(ctx context.Context, id int32) (*domain.Rent, error) {
	return s.transition(ctx, id, domain.RentStatusAwaitingPickup, domain.RentStatusInProgress,
		func(rt *domain.Rent, _ repository.Repos) error {
			now := time.Now()
			rt.PickupAt = &now
			return nil
		})
}

// EndTime marks the rental period as over. Inventory stays out until the
// client actually returns the products.
func (s *rentService) EndTime(ctx context.Context, id int32) (*domain.Rent, error) {
	return s.transition(ctx, id, domain.RentStatusInProgress, domain.RentStatusPendingReturn, nil)
}

// FlagForPickup marks the products as ready to be collected from the client.
func (s *rentService) FlagForPickup(ctx context.Context, id int32) (*domain.Rent, error) {
	return s.transition(ctx, id, domain.RentStatusPendingReturn, domain.RentStatusCollectProduct, nil)
}

// Finalize closes the rent and returns every reserved product to stock.
func (s *rentService) Finalize(ctx context.Context, id int32) (*domain.Rent, error) {
	return s.transition(ctx, id, domain.RentStatusCollectProduct, domain.RentStatusFinished,
		func(rt *domain.Rent, r repository.Repos) error {
			for _, item := range rt.Items {
				if _, err := s.ledger.Release(ctx, r.Products, item.ProductID); err != nil {
					return err
				}
			}
			now := time.Now()
			rt.ReturnAt = &now
			return nil
		})
}

// transition advances a rent exactly one edge. A rent in any state other than
// the required one fails InvalidTransition, so a repeated call is rejected
// rather than silently swallowed.
func (s *rentService) transition(ctx context.Context, id int32, required, next domain.RentStatus, apply func(rt *domain.Rent, r repository.Repos) error) (*domain.Rent, error) {
	var updated *domain.Rent
	err := s.store.RunAtomic(ctx, func(r repository.Repos) error {
		rt, err := r.Rents.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if rt.Status != required {
			return &domain.InvalidTransitionError{Required: required, Actual: rt.Status}
		}

		rt.Status = next
		if apply != nil {
			if err := apply(rt, r); err != nil {
				return err
			}
		}

		if err := r.Rents.Update(ctx, rt); err != nil {
			return err
		}
		updated, err = r.Rents.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("rent transitioned", "rent_id", id, "from", required, "to", next)
	updated.CollapseClientRef()
	return updated, nil
}

// Update patches rent fields. The end time is derived from the effective
// merged values: patched ones where supplied, current ones otherwise. It never
// drives state or inventory.
func (s *rentService) Update(ctx context.Context, id int32, patch UpdateRentInput) (*domain.Rent, error) {
	if patch.TotalPriceCents != nil && *patch.TotalPriceCents <= 0 {
		return nil, fmt.Errorf("%w: total price must be positive", domain.ErrInvalidInput)
	}
	if patch.DurationValue != nil && *patch.DurationValue < 1 {
		return nil, fmt.Errorf("%w: duration must be at least 1", domain.ErrInvalidInput)
	}
	if patch.DurationUnit != nil && *patch.DurationUnit != domain.DurationUnitHours && *patch.DurationUnit != domain.DurationUnitDays {
		return nil, fmt.Errorf("%w: duration unit must be HOURS or DAYS", domain.ErrInvalidInput)
	}

	var updated *domain.Rent
	err := s.store.RunAtomic(ctx, func(r repository.Repos) error {
		rt, err := r.Rents.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.ClientID != nil && *patch.ClientID != rt.ClientID {
			newClient, err := r.Clients.GetByID(ctx, *patch.ClientID)
			if err != nil {
				return err
			}
			if !newClient.IsActive {
				return domain.ErrClientInactive
			}
			rt.ClientID = *patch.ClientID
		}

		// Effective values for the derived end time: new where patched,
		// current otherwise.
		effective := struct {
			startAt       time.Time
			durationValue int32
			durationUnit  domain.DurationUnit
		}{rt.StartAt, rt.DurationValue, rt.DurationUnit}

		recompute := false
		if patch.StartAt != nil {
			effective.startAt = *patch.StartAt
			recompute = true
		}
		if patch.DurationValue != nil {
			effective.durationValue = *patch.DurationValue
			recompute = true
		}
		if patch.DurationUnit != nil {
			effective.durationUnit = *patch.DurationUnit
			recompute = true
		}
		if recompute {
			rt.StartAt = effective.startAt
			rt.DurationValue = effective.durationValue
			rt.DurationUnit = effective.durationUnit
			rt.EndAt = domain.ComputeEndAt(effective.startAt, effective.durationValue, effective.durationUnit)
		}

		if patch.TotalPriceCents != nil {
			rt.TotalPriceCents = *patch.TotalPriceCents
		}
		if patch.Notes != nil {
			rt.Notes = *patch.Notes
		}

		if err := r.Rents.Update(ctx, rt); err != nil {
			return err
		}
		updated, err = r.Rents.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	updated.CollapseClientRef()
	return updated, nil
}

// Remove deletes the rent and its line items. A rent that still holds
// reserved inventory releases every product first; a FINISHED rent already
// released them.
func (s *rentService) Remove(ctx context.Context, id int32) error {
	err := s.store.RunAtomic(ctx, func(r repository.Repos) error {
		rt, err := r.Rents.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if rt.Status != domain.RentStatusFinished {
			for _, item := range rt.Items {
				if _, err := s.ledger.Release(ctx, r.Products, item.ProductID); err != nil {
					return err
				}
			}
		}

		return r.Rents.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	logger.Info("rent removed", "rent_id", id)
	return nil
}
