package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/KAKULASANJAY/localbites/config"
	"github.com/KAKULASANJAY/localbites/middleware"
	"github.com/KAKULASANJAY/localbites/models"
	"github.com/KAKULASANJAY/localbites/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDBSeq atomic.Int64

type env struct {
	router        *gin.Engine
	customerToken string
	ownerToken    string
	adminToken    string
	resto         models.Restaurant
	dosa          models.MenuItem
	otherItem     models.MenuItem
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := config.InitDB(dsn)
	require.NoError(t, err)

	e := &env{router: gin.New()}
	routes.Setup(e.router, &config.Config{AuthRateLimit: 1000})

	customer := models.User{Name: "Ravi", Email: "ravi@example.com", PasswordHash: "x", Role: models.RoleCustomer, IsActive: true}
	owner := models.User{Name: "Lakshmi", Email: "lakshmi@example.com", PasswordHash: "x", Role: models.RoleRestaurant, IsActive: true}
	admin := models.User{Name: "Admin", Email: "admin@example.com", PasswordHash: "x", Role: models.RoleAdmin, IsActive: true}
	outsider := models.User{Name: "Suresh", Email: "suresh@example.com", PasswordHash: "x", Role: models.RoleRestaurant, IsActive: true}
	for _, u := range []*models.User{&customer, &owner, &admin, &outsider} {
		require.NoError(t, db.Create(u).Error)
	}

	e.resto = models.Restaurant{
		OwnerID: owner.ID, Name: "Sri Annapurna", Phone: "9999999999",
		IsApproved: true, IsOpen: true,
		MinOrder: 100, DeliveryCharge: 20, CommissionPercentage: 10,
	}
	require.NoError(t, db.Create(&e.resto).Error)
	other := models.Restaurant{
		OwnerID: outsider.ID, Name: "Biryani House", Phone: "8888888888",
		IsApproved: false, IsOpen: true, MinOrder: 50,
	}
	require.NoError(t, db.Create(&other).Error)

	e.dosa = models.MenuItem{RestaurantID: e.resto.ID, Name: "Masala Dosa", Price: 60, Category: "Main Course", IsAvailable: true}
	require.NoError(t, db.Create(&e.dosa).Error)
	e.otherItem = models.MenuItem{RestaurantID: other.ID, Name: "Chicken Biryani", Price: 180, Category: "Biryani", IsAvailable: true}
	require.NoError(t, db.Create(&e.otherItem).Error)

	e.customerToken = mustToken(t, &customer)
	e.ownerToken = mustToken(t, &owner)
	e.adminToken = mustToken(t, &admin)
	return e
}

func mustToken(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := middleware.GenerateToken(u)
	require.NoError(t, err)
	return token
}

func (e *env) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(b)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func placeOrderBody(restaurantID, itemID uint, qty int) map[string]interface{} {
	return map[string]interface{}{
		"restaurant_id": restaurantID,
		"items": []map[string]interface{}{
			{"food_item": itemID, "quantity": qty},
		},
		"delivery_address": map[string]interface{}{
			"name":   "Ravi",
			"phone":  "7777777777",
			"street": "Temple Road",
			"area":   "Main Bazaar",
		},
	}
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	e := newEnv(t)

	w, res := e.do(t, http.MethodPost, "/api/orders", e.customerToken,
		placeOrderBody(e.resto.ID, e.dosa.ID, 2))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, res["success"])
	assert.Equal(t, "Order placed successfully!", res["message"])

	data := res["data"].(map[string]interface{})
	assert.Equal(t, 120.0, data["items_total"])
	assert.Equal(t, 140.0, data["total_amount"])
	assert.Equal(t, 12.0, data["commission"].(map[string]interface{})["amount"])
	assert.Equal(t, "placed", data["status"])
	assert.Equal(t, "cod", data["payment_method"])
	orderID := uint(data["id"].(float64))

	// Owner walks the order to delivered.
	for _, status := range []string{"confirmed", "preparing", "ready", "out_for_delivery", "delivered"} {
		w, res = e.do(t, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", orderID),
			e.ownerToken, map[string]interface{}{"status": status})
		require.Equal(t, http.StatusOK, w.Code, "to %s: %s", status, w.Body.String())
	}
	data = res["data"].(map[string]interface{})
	assert.Equal(t, "delivered", data["status"])
	assert.Equal(t, "paid", data["payment_status"])
	assert.NotNil(t, data["delivered_at"])
	assert.Equal(t, 140.0, data["total_amount"])

	// Terminal: no further transition, even for admin.
	w, res = e.do(t, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", orderID),
		e.adminToken, map[string]interface{}{"status": "preparing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, res["success"])
	assert.Equal(t, "Cannot change status from 'delivered' to 'preparing'", res["message"])
}

func TestCancelWindowOverHTTP(t *testing.T) {
	e := newEnv(t)

	w, res := e.do(t, http.MethodPost, "/api/orders", e.customerToken,
		placeOrderBody(e.resto.ID, e.dosa.ID, 2))
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := uint(res["data"].(map[string]interface{})["id"].(float64))

	for _, status := range []string{"confirmed", "preparing"} {
		w, _ = e.do(t, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", orderID),
			e.ownerToken, map[string]interface{}{"status": status})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, res = e.do(t, http.MethodPut, fmt.Sprintf("/api/orders/%d/cancel", orderID),
		e.customerToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Order cannot be cancelled at this stage", res["message"])
}

func TestCrossRestaurantCartOverHTTP(t *testing.T) {
	e := newEnv(t)

	body := placeOrderBody(e.resto.ID, e.dosa.ID, 2)
	body["items"] = []map[string]interface{}{
		{"food_item": e.dosa.ID, "quantity": 2},
		{"food_item": e.otherItem.ID, "quantity": 1},
	}
	w, res := e.do(t, http.MethodPost, "/api/orders", e.customerToken, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All items must be from the same restaurant", res["message"])
}

func TestPublicRestaurantListing(t *testing.T) {
	e := newEnv(t)

	w, res := e.do(t, http.MethodGet, "/api/restaurants", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, res["count"], "unapproved restaurants stay hidden")

	listed := res["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Sri Annapurna", listed["name"])
	_, leaked := listed["commission_percentage"]
	assert.False(t, leaked, "commission must be stripped from public responses")
}

func TestOrderVisibility(t *testing.T) {
	e := newEnv(t)

	w, res := e.do(t, http.MethodPost, "/api/orders", e.customerToken,
		placeOrderBody(e.resto.ID, e.dosa.ID, 2))
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := uint(res["data"].(map[string]interface{})["id"].(float64))
	path := fmt.Sprintf("/api/orders/%d", orderID)

	for _, token := range []string{e.customerToken, e.ownerToken, e.adminToken} {
		w, _ = e.do(t, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	// A different customer cannot read it.
	stranger := models.User{Name: "Kiran", Email: "kiran@example.com", PasswordHash: "x", Role: models.RoleCustomer, IsActive: true}
	require.NoError(t, config.DB.Create(&stranger).Error)
	w, _ = e.do(t, http.MethodGet, path, mustToken(t, &stranger), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminStatsEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	_, err := config.InitDB(dsn)
	require.NoError(t, err)

	r := gin.New()
	routes.Setup(r, &config.Config{AuthRateLimit: 1000})

	admin := models.User{Name: "Admin", Email: "admin@example.com", PasswordHash: "x", Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, config.DB.Create(&admin).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+mustToken(t, &admin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))

	data := res["data"].(map[string]interface{})
	revenue := data["revenue"].(map[string]interface{})
	assert.Equal(t, 0.0, revenue["total"])
	assert.Equal(t, 0.0, revenue["commission"])
	orders := data["orders"].(map[string]interface{})
	assert.Equal(t, 0.0, orders["total"])
}

func TestCuisineValidationOverHTTP(t *testing.T) {
	e := newEnv(t)

	newbie := models.User{Name: "Kiran", Email: "kiran@example.com", PasswordHash: "x", Role: models.RoleRestaurant, IsActive: true}
	require.NoError(t, config.DB.Create(&newbie).Error)
	newbieToken := mustToken(t, &newbie)

	w, envelope := e.do(t, http.MethodPost, "/api/restaurants", newbieToken, map[string]interface{}{
		"name":    "Kiran Tiffins",
		"phone":   "6666666666",
		"cuisine": []string{"South Indian", "Martian"},
		"address": map[string]string{"street": "Station Road", "area": "Old Town"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid cuisine: Martian", envelope["message"])

	// an update may send the cuisines as a JSON array; it is validated and
	// stored comma-joined like on create
	path := fmt.Sprintf("/api/restaurants/%d", e.resto.ID)
	w, _ = e.do(t, http.MethodPut, path, e.ownerToken, map[string]interface{}{
		"cuisine": []string{"South Indian", "Thali"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Restaurant
	require.NoError(t, config.DB.First(&stored, e.resto.ID).Error)
	assert.Equal(t, "South Indian,Thali", stored.Cuisine)

	w, envelope = e.do(t, http.MethodPut, path, e.ownerToken, map[string]interface{}{
		"cuisine": []string{"Martian"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid cuisine", envelope["message"])
}
