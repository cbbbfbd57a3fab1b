package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the services. HTTP handlers map these to status
// codes; anything not matching one of them is an infrastructure failure.
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrProviderNotFound = errors.New("provider not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrRentNotFound     = errors.New("rent not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrClientInactive   = errors.New("client is inactive")
	ErrProviderInactive = errors.New("provider is inactive")
	ErrProductInactive  = errors.New("product is inactive")

	ErrOutOfStock        = errors.New("product has no stock available")
	ErrAlreadyCheckedOut = errors.New("product is already rented or loaned")

	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidTransition  = errors.New("invalid rent state transition")
	ErrEmailAlreadyExists = errors.New("email is already registered")
)

// InvalidTransitionError reports the state a lifecycle operation requires
// against the state the rent is actually in.
type InvalidTransitionError struct {
	Required RentStatus
	Actual   RentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("rent must be in state %q, current state is %q", e.Required, e.Actual)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
