package routes

import (
	"github.com/KAKULASANJAY/localbites/config"
	"github.com/KAKULASANJAY/localbites/handlers"
	"github.com/KAKULASANJAY/localbites/middleware"
	"github.com/KAKULASANJAY/localbites/models"

	"github.com/gin-gonic/gin"
)

func Setup(r *gin.Engine, cfg *config.Config) {
	auth := middleware.AuthRequired()
	customer := middleware.RoleRequired(models.RoleCustomer)
	restaurant := middleware.RoleRequired(models.RoleRestaurant)
	restaurantOrAdmin := middleware.RoleRequired(models.RoleRestaurant, models.RoleAdmin)

	api := r.Group("/api")

	// ── Auth ───────────────────────────────────────────────────────
	authGroup := api.Group("/auth", middleware.RateLimit(cfg.AuthRateLimit))
	{
		authGroup.POST("/register", handlers.Register)
		authGroup.POST("/login", handlers.Login)
		authGroup.GET("/me", auth, handlers.Me)
	}

	// ── Restaurants ────────────────────────────────────────────────
	restaurants := api.Group("/restaurants")
	{
		restaurants.GET("", handlers.ListRestaurants)
		restaurants.GET("/:id", handlers.GetRestaurant)
		restaurants.POST("", auth, restaurant, handlers.CreateRestaurant)
		restaurants.GET("/owner/my-restaurant", auth, restaurant, handlers.GetMyRestaurant)
		restaurants.PUT("/:id", auth, restaurantOrAdmin, handlers.UpdateRestaurant)
		restaurants.PUT("/:id/toggle-status", auth, restaurant, handlers.ToggleRestaurantStatus)
	}

	// ── Foods ──────────────────────────────────────────────────────
	foods := api.Group("/foods")
	{
		foods.GET("/restaurant/:restaurantId", handlers.GetRestaurantMenu)
		foods.GET("/:id", handlers.GetFoodItem)
		foods.POST("", auth, restaurant, handlers.AddFoodItem)
		foods.PUT("/:id", auth, restaurantOrAdmin, handlers.UpdateFoodItem)
		foods.DELETE("/:id", auth, restaurantOrAdmin, handlers.DeleteFoodItem)
		foods.PUT("/:id/toggle-availability", auth, restaurant, handlers.ToggleFoodAvailability)
	}

	// ── Orders ─────────────────────────────────────────────────────
	orders := api.Group("/orders", auth)
	{
		orders.POST("", customer, handlers.PlaceOrder)
		orders.GET("/my-orders", customer, handlers.GetMyOrders)
		orders.PUT("/:id/cancel", customer, handlers.CancelOrder)
		orders.GET("/restaurant", restaurant, handlers.GetRestaurantOrders)
		orders.PUT("/:id/status", restaurantOrAdmin, handlers.UpdateOrderStatus)
		orders.GET("/:id", handlers.GetOrder)
	}

	// ── Admin ──────────────────────────────────────────────────────
	admin := api.Group("/admin", auth, middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/stats", handlers.GetDashboardStats)
		admin.GET("/restaurants", handlers.AdminGetRestaurants)
		admin.PUT("/restaurants/:id/approve", handlers.ApproveRestaurant)
		admin.PUT("/restaurants/:id/commission", handlers.UpdateCommission)
		admin.GET("/users", handlers.AdminGetUsers)
		admin.PUT("/users/:id/toggle-active", handlers.ToggleUserActive)
		admin.GET("/orders", handlers.AdminGetOrders)
	}
}
