// Package lifecycle owns the order entity: creation through the pricing
// engine and the status state machine with role-based transition rights.
package lifecycle

import (
	"errors"
	"strings"
	"time"

	"github.com/KAKULASANJAY/localbites/catalog"
	"github.com/KAKULASANJAY/localbites/models"
	"github.com/KAKULASANJAY/localbites/pricing"

	"gorm.io/gorm"
)

// Actor is whoever is attempting a transition.
type Actor struct {
	UserID uint
	Role   models.UserRole
}

type Manager struct {
	db   *gorm.DB
	cat  catalog.Store
	mint func(time.Time) string // order number source, replaceable in tests
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db, cat: catalog.NewStore(db), mint: models.NewOrderNumber}
}

// PlaceInput carries everything needed to create an order.
type PlaceInput struct {
	CustomerID          uint
	RestaurantID        uint
	Lines               []pricing.Line
	DeliveryName        string
	DeliveryPhone       string
	DeliveryAddress     models.Address
	SpecialInstructions string
}

// Place validates and prices the cart, then persists the order with a fresh
// order number. On an order-number collision it mints once more; a second
// collision fails hard rather than looping.
func (m *Manager) Place(in PlaceInput) (*models.Order, error) {
	quote, err := pricing.ValidateAndPrice(m.cat, in.RestaurantID, in.Lines)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		items = append(items, models.OrderItem{
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Price:      line.Price,
			Quantity:   line.Quantity,
		})
	}

	now := time.Now()
	order := &models.Order{
		OrderNumber:         m.mint(now),
		CustomerID:          in.CustomerID,
		RestaurantID:        in.RestaurantID,
		Items:               items,
		ItemsTotal:          quote.ItemsTotal,
		DeliveryCharge:      quote.DeliveryCharge,
		TotalAmount:         quote.TotalAmount,
		Commission:          quote.Commission,
		Status:              models.StatusPlaced,
		DeliveryName:        in.DeliveryName,
		DeliveryPhone:       in.DeliveryPhone,
		DeliveryAddress:     in.DeliveryAddress,
		PaymentMethod:       models.PaymentCOD,
		PaymentStatus:       models.PaymentPending,
		SpecialInstructions: in.SpecialInstructions,
		PlacedAt:            now,
	}

	if err := m.db.Create(order).Error; err != nil {
		if !isDuplicateOrderNumber(err) {
			return nil, err
		}
		order.OrderNumber = m.mint(now)
		if err := m.db.Create(order).Error; err != nil {
			return nil, err
		}
	}
	return m.Get(order.ID)
}

// Get loads an order with its line items.
func (m *Manager) Get(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := m.db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Transition moves an order to the requested status on behalf of an actor.
// Authorization, the transition table, and the per-status side effects are
// all applied here; the status write and its timestamps go down as one
// guarded UPDATE so concurrent attempts cannot both succeed.
func (m *Manager) Transition(orderID uint, to models.OrderStatus, actor Actor, reason string) (*models.Order, error) {
	order, err := m.Get(orderID)
	if err != nil {
		return nil, err
	}

	if err := m.authorize(order, to, actor); err != nil {
		return nil, err
	}
	if err := CanTransition(order.Status, to); err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{"status": to}
	switch to {
	case models.StatusConfirmed:
		updates["confirmed_at"] = now
	case models.StatusReady:
		updates["prepared_at"] = now
	case models.StatusDelivered:
		updates["delivered_at"] = now
		updates["payment_status"] = models.PaymentPaid // COD collected
	case models.StatusCancelled:
		updates["cancelled_at"] = now
		updates["cancel_reason"] = cancelReason(reason, actor.Role)
	}

	return m.writeStatus(order, to, updates)
}

// writeStatus applies the change as a compare-and-set on the status the
// caller read. Zero rows means somebody else moved the order first; re-read
// and report against the fresh status.
func (m *Manager) writeStatus(order *models.Order, to models.OrderStatus, updates map[string]interface{}) (*models.Order, error) {
	res := m.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		current, err := m.Get(order.ID)
		if err != nil {
			return nil, err
		}
		return nil, &TransitionError{From: current.Status, To: to}
	}

	return m.Get(order.ID)
}

func (m *Manager) authorize(order *models.Order, to models.OrderStatus, actor Actor) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleRestaurant:
		restaurant, err := m.cat.FindRestaurantByOwner(actor.UserID)
		if err != nil || restaurant.ID != order.RestaurantID {
			return ErrForbidden
		}
		return nil
	case models.RoleCustomer:
		if to != models.StatusCancelled || order.CustomerID != actor.UserID {
			return ErrForbidden
		}
		// Customers may only cancel early; surfaced as its own error even
		// though the table would also reject the later stages.
		if order.Status != models.StatusPlaced && order.Status != models.StatusConfirmed {
			return ErrNotCancellable
		}
		return nil
	}
	return ErrForbidden
}

func cancelReason(reason string, role models.UserRole) string {
	if reason != "" {
		return reason
	}
	if role == models.RoleCustomer {
		return "Cancelled by customer"
	}
	return "Cancelled by restaurant"
}

func isDuplicateOrderNumber(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: orders.order_number")
}
