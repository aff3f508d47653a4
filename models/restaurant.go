package models

import "time"

// Address is embedded into Restaurant and Order (delivery address snapshot).
type Address struct {
	Street   string `json:"street"`
	Area     string `json:"area"`
	City     string `json:"city" gorm:"default:'Annavaram'"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark"`
}

type Restaurant struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	OwnerID     uint   `json:"owner_id" gorm:"uniqueIndex;not null"` // one restaurant per owner
	Owner       User   `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	// Cuisine holds a comma-separated subset of Cuisines.
	Cuisine string  `json:"cuisine"`
	Address Address `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Phone   string  `json:"phone" gorm:"not null"`
	Image   string  `json:"image" gorm:"default:'default-restaurant.jpg'"`

	IsApproved  bool   `json:"is_approved" gorm:"default:false"` // admin-controlled
	IsOpen      bool   `json:"is_open" gorm:"default:true"`      // owner-controlled
	OpeningTime string `json:"opening_time" gorm:"default:'09:00'"`
	ClosingTime string `json:"closing_time" gorm:"default:'22:00'"`

	Rating       float64 `json:"rating" gorm:"default:0"`
	TotalRatings int     `json:"total_ratings" gorm:"default:0"`
	DeliveryTime string  `json:"delivery_time" gorm:"default:'30-45 mins'"`
	IsVegOnly    bool    `json:"is_veg_only" gorm:"default:false"`

	MinOrder       float64 `json:"min_order" gorm:"default:100"`
	DeliveryCharge float64 `json:"delivery_charge" gorm:"default:20"`
	// CommissionPercentage is the platform's cut, 0–30, admin-controlled.
	// Stripped from public responses.
	CommissionPercentage float64 `json:"commission_percentage,omitempty" gorm:"default:10"`

	MenuItems []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type MenuItem struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	RestaurantID uint    `json:"restaurant_id" gorm:"index;not null"`
	Name         string  `json:"name" gorm:"not null"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" gorm:"not null"`
	Category     string  `json:"category" gorm:"not null"`
	Image        string  `json:"image" gorm:"default:'default-food.jpg'"`
	IsVeg        bool    `json:"is_veg" gorm:"default:true"`
	IsAvailable  bool    `json:"is_available" gorm:"default:true"`
	IsBestseller bool    `json:"is_bestseller" gorm:"default:false"`
	PrepTime     string  `json:"preparation_time" gorm:"column:preparation_time;default:'15-20 mins'"`
	SpiceLevel   string  `json:"spice_level" gorm:"default:'Medium'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cuisines is the closed set a restaurant may list itself under.
var Cuisines = []string{
	"North Indian", "South Indian", "Chinese", "Fast Food", "Street Food",
	"Biryani", "Pizza", "Desserts", "Beverages", "Thali", "Mughlai",
	"Italian", "Continental", "Other",
}

var cuisineSet = func() map[string]bool {
	m := make(map[string]bool, len(Cuisines))
	for _, c := range Cuisines {
		m[c] = true
	}
	return m
}()

func ValidCuisine(c string) bool {
	return cuisineSet[c]
}

// MenuCategories is the closed set of menu item categories.
var MenuCategories = []string{
	"Starters", "Main Course", "Breads", "Rice", "Biryani", "Chinese",
	"Pizza", "Burger", "Sandwich", "Rolls", "Snacks", "Desserts",
	"Beverages", "Thali", "Combo", "Sides", "Pasta", "Momos", "Other",
}

var menuCategorySet = func() map[string]bool {
	m := make(map[string]bool, len(MenuCategories))
	for _, c := range MenuCategories {
		m[c] = true
	}
	return m
}()

func ValidMenuCategory(c string) bool {
	return menuCategorySet[c]
}

// SpiceLevels for menu items.
var SpiceLevels = []string{"Mild", "Medium", "Spicy", "Extra Spicy"}

func ValidSpiceLevel(s string) bool {
	for _, l := range SpiceLevels {
		if l == s {
			return true
		}
	}
	return false
}
