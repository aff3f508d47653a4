package handlers

import (
	"net/http"
	"time"

	"github.com/KAKULASANJAY/localbites/config"
	"github.com/KAKULASANJAY/localbites/models"

	"github.com/gin-gonic/gin"
)

type revenueSums struct {
	Revenue    float64 `json:"revenue"`
	Commission float64 `json:"commission"`
}

// startOfDay returns midnight of t's calendar day in t's own zone, so the
// "today" stats roll over at local midnight rather than UTC midnight.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// GetDashboardStats is the admin dashboard rollup. Pure read-side: every sum
// coalesces to zero on an empty table.
func GetDashboardStats(c *gin.Context) {
	db := config.DB

	var totalUsers, totalRestaurants, approvedRestaurants int64
	var totalOrders, deliveredOrders, todayOrders int64

	db.Model(&models.User{}).Where("role = ?", models.RoleCustomer).Count(&totalUsers)
	db.Model(&models.Restaurant{}).Count(&totalRestaurants)
	db.Model(&models.Restaurant{}).Where("is_approved = ?", true).Count(&approvedRestaurants)
	db.Model(&models.Order{}).Count(&totalOrders)
	db.Model(&models.Order{}).Where("status = ?", models.StatusDelivered).Count(&deliveredOrders)

	var totals revenueSums
	if err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COALESCE(SUM(commission_amount), 0) AS commission").
		Where("status = ?", models.StatusDelivered).
		Scan(&totals).Error; err != nil {
		respondError(c, err)
		return
	}

	today := startOfDay(time.Now())
	db.Model(&models.Order{}).Where("created_at >= ?", today).Count(&todayOrders)

	var todayTotals revenueSums
	if err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COALESCE(SUM(commission_amount), 0) AS commission").
		Where("status = ? AND delivered_at >= ?", models.StatusDelivered, today).
		Scan(&todayTotals).Error; err != nil {
		respondError(c, err)
		return
	}

	byStatus, err := countByStatus(db.Model(&models.Order{}))
	if err != nil {
		respondError(c, err)
		return
	}

	var recentOrders []models.Order
	if err := db.Preload("Customer").Preload("Restaurant").
		Order("created_at desc").Limit(10).
		Find(&recentOrders).Error; err != nil {
		respondError(c, err)
		return
	}

	type topRestaurant struct {
		RestaurantID uint    `json:"restaurant_id"`
		Name         string  `json:"name"`
		OrderCount   int64   `json:"order_count"`
		Revenue      float64 `json:"revenue"`
	}
	var topRestaurants []topRestaurant
	err = db.Model(&models.Order{}).
		Select("orders.restaurant_id, restaurants.name, COUNT(*) AS order_count, SUM(orders.total_amount) AS revenue").
		Joins("JOIN restaurants ON restaurants.id = orders.restaurant_id").
		Where("orders.status = ?", models.StatusDelivered).
		Group("orders.restaurant_id, restaurants.name").
		Order("order_count desc").
		Limit(5).
		Scan(&topRestaurants).Error
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"users": gin.H{"total": totalUsers},
		"restaurants": gin.H{
			"total":    totalRestaurants,
			"approved": approvedRestaurants,
			"pending":  totalRestaurants - approvedRestaurants,
		},
		"orders": gin.H{
			"total":     totalOrders,
			"delivered": deliveredOrders,
			"today":     todayOrders,
			"byStatus":  byStatus,
		},
		"revenue": gin.H{
			"total":           totals.Revenue,
			"commission":      totals.Commission,
			"today":           todayTotals.Revenue,
			"todayCommission": todayTotals.Commission,
		},
		"recentOrders":   recentOrders,
		"topRestaurants": topRestaurants,
	})
}

// AdminGetRestaurants lists all restaurants, including unapproved ones.
func AdminGetRestaurants(c *gin.Context) {
	page, limit := pagination(c, 20)

	query := config.DB.Model(&models.Restaurant{})
	switch c.Query("approved") {
	case "true":
		query = query.Where("is_approved = ?", true)
	case "false":
		query = query.Where("is_approved = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}

	var restaurants []models.Restaurant
	err := query.Preload("Owner").
		Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&restaurants).Error
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, restaurants, len(restaurants), total, totalPages(total, limit))
}

type ApproveRestaurantRequest struct {
	Approved             *bool    `json:"approved" binding:"required"`
	CommissionPercentage *float64 `json:"commission_percentage"`
}

// ApproveRestaurant approves or rejects a restaurant, optionally setting its
// commission in the same call.
func ApproveRestaurant(c *gin.Context) {
	var req ApproveRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.CommissionPercentage != nil &&
		(*req.CommissionPercentage < 0 || *req.CommissionPercentage > 30) {
		respondFail(c, http.StatusBadRequest, "Commission must be between 0 and 30 percent")
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		respondFail(c, http.StatusNotFound, "Restaurant not found")
		return
	}

	update := map[string]interface{}{"is_approved": *req.Approved}
	if req.CommissionPercentage != nil {
		update["commission_percentage"] = *req.CommissionPercentage
	}
	if err := config.DB.Model(&restaurant).Updates(update).Error; err != nil {
		respondError(c, err)
		return
	}

	message := "Restaurant rejected"
	if *req.Approved {
		message = "Restaurant approved"
	}
	respondMessage(c, http.StatusOK, message, restaurant)
}

type UpdateCommissionRequest struct {
	CommissionPercentage *float64 `json:"commission_percentage" binding:"required"`
}

// UpdateCommission sets a restaurant's commission percentage (0–30).
func UpdateCommission(c *gin.Context) {
	var req UpdateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}
	if *req.CommissionPercentage < 0 || *req.CommissionPercentage > 30 {
		respondFail(c, http.StatusBadRequest, "Commission must be between 0 and 30 percent")
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		respondFail(c, http.StatusNotFound, "Restaurant not found")
		return
	}
	if err := config.DB.Model(&restaurant).
		Update("commission_percentage", *req.CommissionPercentage).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, restaurant)
}

// AdminGetUsers lists users, optionally filtered by role.
func AdminGetUsers(c *gin.Context) {
	page, limit := pagination(c, 20)

	query := config.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}

	var users []models.User
	err := query.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&users).Error
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, users, len(users), total, totalPages(total, limit))
}

// ToggleUserActive activates/deactivates a non-admin account.
func ToggleUserActive(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		respondFail(c, http.StatusNotFound, "User not found")
		return
	}
	if user.Role == models.RoleAdmin {
		respondFail(c, http.StatusBadRequest, "Cannot deactivate admin users")
		return
	}

	if err := config.DB.Model(&user).
		Update("is_active", !user.IsActive).Error; err != nil {
		respondError(c, err)
		return
	}
	user.IsActive = !user.IsActive
	respondData(c, http.StatusOK, user)
}

// AdminGetOrders lists all orders with status/restaurant/date filters.
func AdminGetOrders(c *gin.Context) {
	page, limit := pagination(c, 20)

	query := config.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}
	if start := c.Query("startDate"); start != "" {
		if t, err := time.Parse("2006-01-02", start); err == nil {
			query = query.Where("created_at >= ?", t)
		}
	}
	if end := c.Query("endDate"); end != "" {
		if t, err := time.Parse("2006-01-02", end); err == nil {
			query = query.Where("created_at <= ?", t.Add(24*time.Hour))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}

	var orders []models.Order
	err := query.Preload("Items").Preload("Customer").Preload("Restaurant").
		Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&orders).Error
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, orders, len(orders), total, totalPages(total, limit))
}
