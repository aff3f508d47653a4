package lifecycle

import (
	"errors"
	"fmt"

	"github.com/KAKULASANJAY/localbites/models"
)

var (
	ErrOrderNotFound = errors.New("Order not found")
	// ErrForbidden covers every actor/transition combination outside the
	// rights table: wrong role, wrong owner, wrong customer.
	ErrForbidden = errors.New("Not authorized to update this order")
	// ErrNotCancellable is the customer-facing refusal once an order has
	// moved past confirmed.
	ErrNotCancellable = errors.New("Order cannot be cancelled at this stage")
)

// TransitionError names both sides of a rejected status change.
type TransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("Cannot change status from '%s' to '%s'", e.From, e.To)
}
