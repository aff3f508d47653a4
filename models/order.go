package models

import (
	"fmt"
	"math/rand"
	"time"
)

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "placed"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// AllStatuses in lifecycle order, terminal states last.
var AllStatuses = []OrderStatus{
	StatusPlaced, StatusConfirmed, StatusPreparing, StatusReady,
	StatusOutForDelivery, StatusDelivered, StatusCancelled,
}

type PaymentMethod string

const (
	PaymentCOD PaymentMethod = "cod"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Commission is the platform's cut of an order, snapshotted at order time.
type Commission struct {
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

type Order struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	OrderNumber string `json:"order_number" gorm:"uniqueIndex;not null"`

	CustomerID   uint       `json:"customer_id" gorm:"index;not null"`
	Customer     User       `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	RestaurantID uint       `json:"restaurant_id" gorm:"index;not null"`
	Restaurant   Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`

	// Totals are derived at creation and never recomputed.
	ItemsTotal     float64    `json:"items_total" gorm:"not null"`
	DeliveryCharge float64    `json:"delivery_charge" gorm:"default:0"`
	TotalAmount    float64    `json:"total_amount" gorm:"not null"`
	Commission     Commission `json:"commission" gorm:"embedded;embeddedPrefix:commission_"`

	Status OrderStatus `json:"status" gorm:"index;not null;default:'placed'"`

	DeliveryName    string  `json:"delivery_name" gorm:"not null"`
	DeliveryPhone   string  `json:"delivery_phone" gorm:"not null"`
	DeliveryAddress Address `json:"delivery_address" gorm:"embedded;embeddedPrefix:delivery_"`

	PaymentMethod PaymentMethod `json:"payment_method" gorm:"default:'cod'"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"default:'pending'"`

	SpecialInstructions string `json:"special_instructions"`

	PlacedAt     time.Time  `json:"placed_at"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	PreparedAt   *time.Time `json:"prepared_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CancelReason string     `json:"cancel_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is a line snapshotted from a MenuItem at order time. Later menu
// edits never touch placed orders.
type OrderItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	OrderID    uint    `json:"order_id" gorm:"index;not null"`
	MenuItemID uint    `json:"menu_item_id" gorm:"not null"`
	Name       string  `json:"name" gorm:"not null"`
	Price      float64 `json:"price" gorm:"not null"`
	Quantity   int     `json:"quantity" gorm:"not null"`
}

// NewOrderNumber mints a human-readable order number: LB + yymmdd + a 4-digit
// random disambiguator. Uniqueness is backed by the order_number index;
// callers retry once on collision.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("LB%s%04d", now.Format("060102"), rand.Intn(10000))
}
