package handlers

import (
	"net/http"

	"github.com/KAKULASANJAY/localbites/catalog"
	"github.com/KAKULASANJAY/localbites/config"
	"github.com/KAKULASANJAY/localbites/middleware"
	"github.com/KAKULASANJAY/localbites/models"

	"github.com/gin-gonic/gin"
)

// GetRestaurantMenu lists a restaurant's food items (public). Unavailable
// items are hidden unless available=false is passed. The response carries the
// flat list plus a category-grouped map.
func GetRestaurantMenu(c *gin.Context) {
	query := config.DB.Where("restaurant_id = ?", c.Param("restaurantId"))

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("vegOnly") == "true" {
		query = query.Where("is_veg = ?", true)
	}
	if c.Query("available") != "false" {
		query = query.Where("is_available = ?", true)
	}

	var items []models.MenuItem
	if err := query.Order("category asc, name asc").Find(&items).Error; err != nil {
		respondError(c, err)
		return
	}

	grouped := map[string][]models.MenuItem{}
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(items),
		"data":    items,
		"grouped": grouped,
	})
}

// GetFoodItem returns a single food item (public).
func GetFoodItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		respondFail(c, http.StatusNotFound, "Food item not found")
		return
	}
	respondData(c, http.StatusOK, item)
}

type CreateFoodItemRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Description  string  `json:"description" binding:"max=300"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	Category     string  `json:"category" binding:"required"`
	Image        string  `json:"image"`
	IsVeg        *bool   `json:"is_veg"`
	IsBestseller bool    `json:"is_bestseller"`
	PrepTime     string  `json:"preparation_time"`
	SpiceLevel   string  `json:"spice_level"`
}

// AddFoodItem adds an item to the caller's restaurant menu.
func AddFoodItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	restaurant, err := catalog.NewStore(config.DB).FindRestaurantByOwner(ownerID)
	if err != nil {
		respondFail(c, http.StatusNotFound, "You must have a restaurant to add food items")
		return
	}

	var req CreateFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}
	if !models.ValidMenuCategory(req.Category) {
		respondFail(c, http.StatusBadRequest, "Invalid category: "+req.Category)
		return
	}
	if req.SpiceLevel != "" && !models.ValidSpiceLevel(req.SpiceLevel) {
		respondFail(c, http.StatusBadRequest, "Invalid spice level: "+req.SpiceLevel)
		return
	}

	item := models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		IsAvailable:  true,
		IsVeg:        true,
		IsBestseller: req.IsBestseller,
	}
	if req.IsVeg != nil {
		item.IsVeg = *req.IsVeg
	}
	if req.Image != "" {
		item.Image = req.Image
	}
	if req.PrepTime != "" {
		item.PrepTime = req.PrepTime
	}
	if req.SpiceLevel != "" {
		item.SpiceLevel = req.SpiceLevel
	}

	if err := config.DB.Create(&item).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, item)
}

// loadOwnedFoodItem fetches the item and enforces transitive ownership:
// editing an item means owning its restaurant (or being admin when
// allowAdmin).
func loadOwnedFoodItem(c *gin.Context, allowAdmin bool) (*models.MenuItem, bool) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		respondFail(c, http.StatusNotFound, "Food item not found")
		return nil, false
	}

	if allowAdmin && middleware.GetRole(c) == models.RoleAdmin {
		return &item, true
	}

	restaurant, err := catalog.NewStore(config.DB).FindRestaurant(item.RestaurantID)
	if err != nil || restaurant.OwnerID != middleware.GetUserID(c) {
		respondFail(c, http.StatusForbidden, "Not authorized to modify this food item")
		return nil, false
	}
	return &item, true
}

// foodUpdatable mirrors the create surface; restaurant_id is immutable.
var foodUpdatable = map[string]bool{
	"name": true, "description": true, "price": true, "category": true,
	"image": true, "is_veg": true, "is_available": true,
	"is_bestseller": true, "preparation_time": true, "spice_level": true,
}

// UpdateFoodItem updates an item (owner or admin).
func UpdateFoodItem(c *gin.Context) {
	item, ok := loadOwnedFoodItem(c, true)
	if !ok {
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}
	if cat, ok := req["category"].(string); ok && !models.ValidMenuCategory(cat) {
		respondFail(c, http.StatusBadRequest, "Invalid category: "+cat)
		return
	}
	if price, ok := req["price"].(float64); ok && price <= 0 {
		respondFail(c, http.StatusBadRequest, "Price must be greater than 0")
		return
	}

	update := map[string]interface{}{}
	for k, v := range req {
		if foodUpdatable[k] {
			update[k] = v
		}
	}
	if len(update) > 0 {
		if err := config.DB.Model(item).Updates(update).Error; err != nil {
			respondError(c, err)
			return
		}
	}
	respondData(c, http.StatusOK, item)
}

// DeleteFoodItem removes an item (owner or admin).
func DeleteFoodItem(c *gin.Context) {
	item, ok := loadOwnedFoodItem(c, true)
	if !ok {
		return
	}
	if err := config.DB.Delete(item).Error; err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Food item deleted", nil)
}

// ToggleFoodAvailability flips availability (owner only).
func ToggleFoodAvailability(c *gin.Context) {
	item, ok := loadOwnedFoodItem(c, false)
	if !ok {
		return
	}
	if err := config.DB.Model(item).
		Update("is_available", !item.IsAvailable).Error; err != nil {
		respondError(c, err)
		return
	}
	item.IsAvailable = !item.IsAvailable
	respondData(c, http.StatusOK, item)
}
