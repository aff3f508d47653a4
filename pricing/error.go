package pricing

import "fmt"

// Kind classifies a validation failure. Handlers map kinds to HTTP statuses
// one-to-one.
type Kind int

const (
	KindRestaurantNotFound Kind = iota
	KindRestaurantUnavailable
	KindRestaurantClosed
	KindItemNotFound
	KindItemUnavailable
	KindCrossRestaurantOrder
	KindInvalidQuantity
	KindBelowMinimumOrder
)

// Error is a structured validation failure with a customer-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func errRestaurantNotFound() *Error {
	return &Error{Kind: KindRestaurantNotFound, Message: "Restaurant not found"}
}

func errRestaurantUnavailable() *Error {
	return &Error{Kind: KindRestaurantUnavailable, Message: "Restaurant is not available"}
}

func errRestaurantClosed() *Error {
	return &Error{Kind: KindRestaurantClosed, Message: "Restaurant is currently closed"}
}

func errItemNotFound(id uint) *Error {
	return &Error{Kind: KindItemNotFound, Message: fmt.Sprintf("Food item not found: %d", id)}
}

func errItemUnavailable(name string) *Error {
	return &Error{Kind: KindItemUnavailable, Message: fmt.Sprintf("%s is currently unavailable", name)}
}

func errCrossRestaurant() *Error {
	return &Error{Kind: KindCrossRestaurantOrder, Message: "All items must be from the same restaurant"}
}

func errInvalidQuantity(name string) *Error {
	return &Error{Kind: KindInvalidQuantity, Message: fmt.Sprintf("Quantity for %s must be at least 1", name)}
}

func errBelowMinimum(minOrder float64) *Error {
	return &Error{Kind: KindBelowMinimumOrder, Message: fmt.Sprintf("Minimum order amount is ₹%g", minOrder)}
}
