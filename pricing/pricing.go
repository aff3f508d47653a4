// Package pricing validates a cart against live catalog state and computes
// order totals. ValidateAndPrice is pure with respect to storage: it reads,
// never writes — persisting the result is the caller's job.
package pricing

import (
	"github.com/KAKULASANJAY/localbites/catalog"
	"github.com/KAKULASANJAY/localbites/models"

	"github.com/shopspring/decimal"
)

// Line is one requested (menu item, quantity) pair.
type Line struct {
	MenuItemID uint `json:"food_item" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

// PricedLine is the snapshot copied out of the MenuItem at validation time.
// Orders hold these values, never a live menu reference.
type PricedLine struct {
	MenuItemID uint
	Name       string
	Price      float64
	Quantity   int
}

// Quote is the fully priced, immutable payload for one order.
type Quote struct {
	RestaurantID   uint
	Lines          []PricedLine
	ItemsTotal     float64
	DeliveryCharge float64
	TotalAmount    float64
	Commission     models.Commission
}

// ValidateAndPrice checks the cart against the restaurant and its menu,
// short-circuiting on the first failure in input order, and returns the
// priced snapshot.
func ValidateAndPrice(cat catalog.Store, restaurantID uint, lines []Line) (*Quote, error) {
	restaurant, err := cat.FindRestaurant(restaurantID)
	if err != nil {
		if err == catalog.ErrRestaurantNotFound {
			return nil, errRestaurantNotFound()
		}
		return nil, err
	}
	if !restaurant.IsApproved {
		return nil, errRestaurantUnavailable()
	}
	if !restaurant.IsOpen {
		return nil, errRestaurantClosed()
	}

	var priced []PricedLine
	var itemsTotal float64
	for _, line := range lines {
		item, err := cat.FindMenuItem(line.MenuItemID)
		if err != nil {
			if err == catalog.ErrMenuItemNotFound {
				return nil, errItemNotFound(line.MenuItemID)
			}
			return nil, err
		}
		if !item.IsAvailable {
			return nil, errItemUnavailable(item.Name)
		}
		if item.RestaurantID != restaurantID {
			return nil, errCrossRestaurant()
		}
		if line.Quantity < 1 {
			return nil, errInvalidQuantity(item.Name)
		}
		priced = append(priced, PricedLine{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   line.Quantity,
		})
		itemsTotal += item.Price * float64(line.Quantity)
	}

	if itemsTotal < restaurant.MinOrder {
		return nil, errBelowMinimum(restaurant.MinOrder)
	}

	return &Quote{
		RestaurantID:   restaurantID,
		Lines:          priced,
		ItemsTotal:     itemsTotal,
		DeliveryCharge: restaurant.DeliveryCharge,
		TotalAmount:    itemsTotal + restaurant.DeliveryCharge,
		Commission: models.Commission{
			Percentage: restaurant.CommissionPercentage,
			Amount:     CommissionAmount(itemsTotal, restaurant.CommissionPercentage),
		},
	}, nil
}

// CommissionAmount is round(itemsTotal * pct / 100) to the nearest currency
// unit, ties away from zero. decimal keeps 999 * 10 / 100 at exactly 99.9
// instead of a float neighbour.
func CommissionAmount(itemsTotal, percentage float64) float64 {
	amt := decimal.NewFromFloat(itemsTotal).
		Mul(decimal.NewFromFloat(percentage)).
		Div(decimal.NewFromInt(100)).
		Round(0)
	f, _ := amt.Float64()
	return f
}
