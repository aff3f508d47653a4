package handlers

import (
	"net/http"
	"strings"

	"github.com/KAKULASANJAY/localbites/catalog"
	"github.com/KAKULASANJAY/localbites/config"
	"github.com/KAKULASANJAY/localbites/middleware"
	"github.com/KAKULASANJAY/localbites/models"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns approved restaurants (public). The commission
// percentage is platform-internal and stripped from the response.
func ListRestaurants(c *gin.Context) {
	query := config.DB.Where("is_approved = ?", true)

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR address_area LIKE ?", like, like)
	}
	if cuisine := c.Query("cuisine"); cuisine != "" {
		var conds []string
		var args []interface{}
		for _, cz := range strings.Split(cuisine, ",") {
			conds = append(conds, "cuisine LIKE ?")
			args = append(args, "%"+strings.TrimSpace(cz)+"%")
		}
		query = query.Where(strings.Join(conds, " OR "), args...)
	}
	if c.Query("vegOnly") == "true" {
		query = query.Where("is_veg_only = ?", true)
	}

	switch c.Query("sortBy") {
	case "rating":
		query = query.Order("rating desc")
	case "deliveryTime":
		query = query.Order("delivery_time asc")
	case "minOrder":
		query = query.Order("min_order asc")
	default:
		query = query.Order("created_at desc")
	}

	var restaurants []models.Restaurant
	if err := query.Find(&restaurants).Error; err != nil {
		respondError(c, err)
		return
	}
	for i := range restaurants {
		restaurants[i].CommissionPercentage = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(restaurants),
		"data":    restaurants,
	})
}

// GetRestaurant returns a single restaurant with its available menu (public).
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	err := config.DB.
		Preload("MenuItems", "is_available = ?", true).
		First(&restaurant, c.Param("id")).Error
	if err != nil {
		respondFail(c, http.StatusNotFound, "Restaurant not found")
		return
	}
	restaurant.CommissionPercentage = 0
	respondData(c, http.StatusOK, restaurant)
}

type CreateRestaurantRequest struct {
	Name           string         `json:"name" binding:"required,max=100"`
	Description    string         `json:"description" binding:"max=500"`
	Cuisine        []string       `json:"cuisine"`
	Address        models.Address `json:"address"`
	Phone          string         `json:"phone" binding:"required"`
	OpeningTime    string         `json:"opening_time"`
	ClosingTime    string         `json:"closing_time"`
	DeliveryTime   string         `json:"delivery_time"`
	MinOrder       *float64       `json:"min_order"`
	DeliveryCharge *float64       `json:"delivery_charge"`
	IsVegOnly      bool           `json:"is_veg_only"`
	Image          string         `json:"image"`
}

// CreateRestaurant registers the caller's restaurant. One per owner; it
// starts unapproved and takes no orders until an admin approves it.
func CreateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	if _, err := catalog.NewStore(config.DB).FindRestaurantByOwner(ownerID); err == nil {
		respondFail(c, http.StatusBadRequest, "You already have a registered restaurant")
		return
	}

	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Address.Street == "" || req.Address.Area == "" {
		respondFail(c, http.StatusBadRequest, "Please provide street address and area")
		return
	}
	for _, cz := range req.Cuisine {
		if !models.ValidCuisine(cz) {
			respondFail(c, http.StatusBadRequest, "Invalid cuisine: "+cz)
			return
		}
	}

	restaurant := models.Restaurant{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Cuisine:     strings.Join(req.Cuisine, ","),
		Address:     req.Address,
		Phone:       req.Phone,
		IsApproved:  false,
		IsOpen:      true,
		IsVegOnly:   req.IsVegOnly,
	}
	if req.OpeningTime != "" {
		restaurant.OpeningTime = req.OpeningTime
	}
	if req.ClosingTime != "" {
		restaurant.ClosingTime = req.ClosingTime
	}
	if req.DeliveryTime != "" {
		restaurant.DeliveryTime = req.DeliveryTime
	}
	if req.MinOrder != nil {
		restaurant.MinOrder = *req.MinOrder
	}
	if req.DeliveryCharge != nil {
		restaurant.DeliveryCharge = *req.DeliveryCharge
	}
	if req.Image != "" {
		restaurant.Image = req.Image
	}

	if err := config.DB.Create(&restaurant).Error; err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Restaurant created. Waiting for admin approval.", restaurant)
}

// GetMyRestaurant fetches the restaurant owned by the logged-in user
func GetMyRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	err := config.DB.Preload("MenuItems").
		Where("owner_id = ?", ownerID).First(&restaurant).Error
	if err != nil {
		respondFail(c, http.StatusNotFound, "You have not registered a restaurant yet")
		return
	}
	respondData(c, http.StatusOK, restaurant)
}

// restaurantUpdatable is the whitelist an owner may touch. Approval and
// commission are admin-only and deliberately absent.
var restaurantUpdatable = map[string]bool{
	"name": true, "description": true, "phone": true, "image": true,
	"cuisine": true, "is_open": true, "opening_time": true,
	"closing_time": true, "delivery_time": true, "min_order": true,
	"delivery_charge": true, "is_veg_only": true,
	"address_street": true, "address_area": true, "address_city": true,
	"address_pincode": true, "address_landmark": true,
}

// UpdateRestaurant updates whitelisted fields (owner or admin).
func UpdateRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		respondFail(c, http.StatusNotFound, "Restaurant not found")
		return
	}

	userID := middleware.GetUserID(c)
	if restaurant.OwnerID != userID && middleware.GetRole(c) != models.RoleAdmin {
		respondFail(c, http.StatusForbidden, "Not authorized to update this restaurant")
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	update := map[string]interface{}{}
	for k, v := range req {
		if !restaurantUpdatable[k] {
			continue
		}
		if k == "cuisine" {
			joined, ok := cuisineValue(v)
			if !ok {
				respondFail(c, http.StatusBadRequest, "Invalid cuisine")
				return
			}
			update[k] = joined
			continue
		}
		update[k] = v
	}
	if len(update) > 0 {
		if err := config.DB.Model(&restaurant).Updates(update).Error; err != nil {
			respondError(c, err)
			return
		}
	}
	respondData(c, http.StatusOK, restaurant)
}

// cuisineValue accepts either a JSON array of cuisines or a comma-separated
// string and normalizes it to the stored form. Every name must be in the
// closed Cuisines set.
func cuisineValue(v interface{}) (string, bool) {
	var names []string
	switch val := v.(type) {
	case string:
		if val == "" {
			return "", true
		}
		for _, cz := range strings.Split(val, ",") {
			names = append(names, strings.TrimSpace(cz))
		}
	case []interface{}:
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return "", false
			}
			names = append(names, s)
		}
	default:
		return "", false
	}
	for _, cz := range names {
		if !models.ValidCuisine(cz) {
			return "", false
		}
	}
	return strings.Join(names, ","), true
}

// ToggleRestaurantStatus flips open/closed (owner only).
func ToggleRestaurantStatus(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		respondFail(c, http.StatusNotFound, "Restaurant not found")
		return
	}
	if restaurant.OwnerID != middleware.GetUserID(c) {
		respondFail(c, http.StatusForbidden, "Not authorized")
		return
	}

	if err := config.DB.Model(&restaurant).
		Update("is_open", !restaurant.IsOpen).Error; err != nil {
		respondError(c, err)
		return
	}
	restaurant.IsOpen = !restaurant.IsOpen
	respondData(c, http.StatusOK, restaurant)
}
