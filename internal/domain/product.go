package domain

type ProductState string

const (
	ProductStateAvailable   ProductState = "AVAILABLE"
	ProductStateRented      ProductState = "RENTED"
	ProductStateLoaned      ProductState = "LOANED"
	ProductStateUnavailable ProductState = "UNAVAILABLE"
)

// CheckedOut reports whether the product is out with a client.
func (s ProductState) CheckedOut() bool {
	return s == ProductStateRented || s == ProductStateLoaned
}

type Product struct {
	ID          int32        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	PriceCents  int32        `json:"price_cents"`
	Stock       int32        `json:"stock"`
	State       ProductState `json:"state"`
	ProviderID  int32        `json:"provider_id"`
	Provider    *Provider    `json:"provider,omitempty"` // Populated when fetching product details
	IsActive    bool         `json:"is_active"`
	CreatedOn   string       `json:"created_on"`
	UpdatedOn   string       `json:"updated_on"`
}
