package lifecycle

import (
	"github.com/KAKULASANJAY/localbites/models"
)

// transitions is the authoritative state machine: current status -> allowed
// next statuses. Absent key means terminal.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPlaced:         {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed:      {models.StatusPreparing, models.StatusCancelled},
	models.StatusPreparing:      {models.StatusReady, models.StatusCancelled},
	models.StatusReady:          {models.StatusOutForDelivery},
	models.StatusOutForDelivery: {models.StatusDelivered},
	models.StatusDelivered:      {},
	models.StatusCancelled:      {},
}

// AllowedNext returns the valid next statuses from a given status.
func AllowedNext(from models.OrderStatus) []models.OrderStatus {
	return transitions[from]
}

// Terminal reports whether no transition leaves the given status.
func Terminal(s models.OrderStatus) bool {
	return len(transitions[s]) == 0
}

// CanTransition checks the table. It knows nothing about actors; callers do
// authorization first.
func CanTransition(from, to models.OrderStatus) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return &TransitionError{From: from, To: to}
}
