package handlers

import (
	"net/http"
	"strconv"

	"github.com/KAKULASANJAY/localbites/catalog"
	"github.com/KAKULASANJAY/localbites/config"
	"github.com/KAKULASANJAY/localbites/lifecycle"
	"github.com/KAKULASANJAY/localbites/middleware"
	"github.com/KAKULASANJAY/localbites/models"
	"github.com/KAKULASANJAY/localbites/pricing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DeliveryAddressRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Street   string `json:"street" binding:"required"`
	Area     string `json:"area"`
	City     string `json:"city"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark"`
}

type PlaceOrderRequest struct {
	RestaurantID        uint                   `json:"restaurant_id" binding:"required"`
	Items               []pricing.Line         `json:"items" binding:"required,min=1"`
	DeliveryAddress     DeliveryAddressRequest `json:"delivery_address" binding:"required"`
	SpecialInstructions string                 `json:"special_instructions"`
}

// PlaceOrder creates a new cash-on-delivery order (customer only).
func PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := lifecycle.NewManager(config.DB).Place(lifecycle.PlaceInput{
		CustomerID:    middleware.GetUserID(c),
		RestaurantID:  req.RestaurantID,
		Lines:         req.Items,
		DeliveryName:  req.DeliveryAddress.Name,
		DeliveryPhone: req.DeliveryAddress.Phone,
		DeliveryAddress: models.Address{
			Street:   req.DeliveryAddress.Street,
			Area:     req.DeliveryAddress.Area,
			City:     req.DeliveryAddress.City,
			Pincode:  req.DeliveryAddress.Pincode,
			Landmark: req.DeliveryAddress.Landmark,
		},
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Order placed successfully!", order)
}

// GetMyOrders lists the customer's orders, newest first.
func GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	page, limit := pagination(c, 10)

	query := config.DB.Model(&models.Order{}).Where("customer_id = ?", customerID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}

	var orders []models.Order
	err := query.Preload("Items").Preload("Restaurant").
		Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&orders).Error
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, orders, len(orders), total, totalPages(total, limit))
}

// GetOrder returns one order. Readable by its customer, the restaurant's
// owner, or an admin — each right checked independently.
func GetOrder(c *gin.Context) {
	var order models.Order
	err := config.DB.Preload("Items").Preload("Restaurant").Preload("Customer").
		First(&order, c.Param("id")).Error
	if err != nil {
		respondFail(c, http.StatusNotFound, "Order not found")
		return
	}

	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	isCustomer := order.CustomerID == userID
	isOwner := false
	if role == models.RoleRestaurant {
		if r, err := catalog.NewStore(config.DB).FindRestaurantByOwner(userID); err == nil {
			isOwner = r.ID == order.RestaurantID
		}
	}
	if !isCustomer && !isOwner && role != models.RoleAdmin {
		respondFail(c, http.StatusForbidden, "Not authorized to view this order")
		return
	}

	respondData(c, http.StatusOK, order)
}

// GetRestaurantOrders lists the orders of the caller's restaurant with
// per-status counts for the dashboard.
func GetRestaurantOrders(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	restaurant, err := catalog.NewStore(config.DB).FindRestaurantByOwner(ownerID)
	if err != nil {
		respondFail(c, http.StatusNotFound, "Restaurant not found")
		return
	}

	page, limit := pagination(c, 20)
	query := config.DB.Model(&models.Order{}).Where("restaurant_id = ?", restaurant.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}

	var orders []models.Order
	err = query.Preload("Items").Preload("Customer").
		Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&orders).Error
	if err != nil {
		respondError(c, err)
		return
	}

	statusCounts, err := countByStatus(config.DB.Model(&models.Order{}).
		Where("restaurant_id = ?", restaurant.ID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"count":        len(orders),
		"total":        total,
		"pages":        totalPages(total, limit),
		"statusCounts": statusCounts,
		"data":         orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Reason string             `json:"reason"`
}

var knownStatus = func() map[models.OrderStatus]bool {
	m := map[models.OrderStatus]bool{}
	for _, s := range models.AllStatuses {
		m[s] = true
	}
	return m
}()

// UpdateOrderStatus advances an order through its lifecycle (restaurant
// owner or admin).
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}
	if !knownStatus[req.Status] || req.Status == models.StatusPlaced {
		respondFail(c, http.StatusBadRequest, "Invalid status")
		return
	}

	id, ok := paramUint(c, "id")
	if !ok {
		respondFail(c, http.StatusNotFound, "Order not found")
		return
	}

	order, err := lifecycle.NewManager(config.DB).Transition(id, req.Status, lifecycle.Actor{
		UserID: middleware.GetUserID(c),
		Role:   middleware.GetRole(c),
	}, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, order)
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder lets the customer cancel while the order is still placed or
// confirmed.
func CancelOrder(c *gin.Context) {
	var req CancelOrderRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	id, ok := paramUint(c, "id")
	if !ok {
		respondFail(c, http.StatusNotFound, "Order not found")
		return
	}

	order, err := lifecycle.NewManager(config.DB).Transition(id, models.StatusCancelled, lifecycle.Actor{
		UserID: middleware.GetUserID(c),
		Role:   models.RoleCustomer,
	}, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Order cancelled successfully", order)
}

func paramUint(c *gin.Context, key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

type statusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

func countByStatus(query *gorm.DB) ([]statusCount, error) {
	var counts []statusCount
	err := query.Select("status, COUNT(*) as count").
		Group("status").Scan(&counts).Error
	return counts, err
}
