package domain

import "time"

type RentStatus string

const (
	RentStatusAwaitingPickup RentStatus = "AWAITING_PICKUP"
	RentStatusInProgress     RentStatus = "IN_PROGRESS"
	RentStatusPendingReturn  RentStatus = "PENDING_RETURN"
	RentStatusCollectProduct RentStatus = "COLLECT_PRODUCT"
	RentStatusFinished       RentStatus = "FINISHED"
)

type RentKind string

const (
	RentKindRental RentKind = "RENTAL"
	RentKindLoan   RentKind = "LOAN"
)

type DurationUnit string

const (
	DurationUnitHours DurationUnit = "HOURS"
	DurationUnitDays  DurationUnit = "DAYS"
)

type Rent struct {
	ID       int32    `json:"id"`
	ClientID int32    `json:"client_id,omitempty"`
	Client   *Client  `json:"client,omitempty"` // Populated when fetching the aggregate
	Kind     RentKind `json:"kind"`
	// Price snapshot supplied by the caller at creation, never recomputed.
	TotalPriceCents int32        `json:"total_price_cents"`
	DurationValue   int32        `json:"duration_value"`
	DurationUnit    DurationUnit `json:"duration_unit"`
	Status          RentStatus   `json:"status"`
	StartAt         time.Time    `json:"start_at"`
	EndAt           time.Time    `json:"end_at"` // Derived from StartAt + duration
	PickupAt        *time.Time   `json:"pickup_at,omitempty"`
	ReturnAt        *time.Time   `json:"return_at,omitempty"`
	Notes           string       `json:"notes,omitempty"`
	IsActive        bool         `json:"is_active"`
	Items           []RentItem   `json:"items"`
	CreatedOn       time.Time    `json:"created_on"`
	UpdatedOn       time.Time    `json:"updated_on"`
}

// RentItem is one product slot within a rent. Items are created with their
// parent rent and never mutated afterwards; UnitPriceCents is the product
// price captured at booking time.
type RentItem struct {
	ID             int32    `json:"id"`
	RentID         int32    `json:"rent_id"`
	ProductID      int32    `json:"product_id"`
	Product        *Product `json:"product,omitempty"` // Populated when inventory is touched
	UnitPriceCents int32    `json:"unit_price_cents"`
}

// ComputeEndAt derives the scheduled end of a rent from its start and duration.
func ComputeEndAt(startAt time.Time, durationValue int32, unit DurationUnit) time.Time {
	if unit == DurationUnitHours {
		return startAt.Add(time.Duration(durationValue) * time.Hour)
	}
	return startAt.AddDate(0, 0, int(durationValue))
}

// CheckedOutState maps a rent kind to the product state it puts inventory in.
func (k RentKind) CheckedOutState() ProductState {
	if k == RentKindLoan {
		return ProductStateLoaned
	}
	return ProductStateRented
}

// CollapseClientRef drops the redundant client id from the aggregate view once
// the full client object is attached.
func (r *Rent) CollapseClientRef() {
	if r.Client != nil {
		r.ClientID = 0
	}
}
