package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/controllers"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

// setupTestDBForOrders menggunakan SQLite in-memory khusus untuk OrderController
func setupTestDBForOrders() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(
		&models.MenuCategory{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		panic(err)
	}
	return db
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	orderCtrl := controllers.NewOrderController(db)
	router.POST("/orders", orderCtrl.CreateOrder)
	router.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	router.POST("/orders/:order_id/pay", orderCtrl.PayOrder)
	router.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)
	return router
}

func seedMenus(db *gorm.DB) (models.Menu, models.Menu) {
	category := models.MenuCategory{Name: "Main Course"}
	db.Create(&category)
	salmon := models.Menu{CategoryID: category.ID, Name: "Grilled Salmon", Price: 18.5, IsAvailable: true}
	pasta := models.Menu{CategoryID: category.ID, Name: "Pasta Carbonara", Price: 12.0, IsAvailable: true}
	db.Create(&salmon)
	db.Create(&pasta)
	return salmon, pasta
}

func TestCreateOrderComputesTotalFromMenuPrices(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders()
	router := setupOrderRouter(db)
	salmon, pasta := seedMenus(db)

	payload, _ := json.Marshal(map[string]interface{}{
		"customer_name":  "Dinda",
		"customer_phone": "555-0100",
		"items": []map[string]interface{}{
			{"menu_id": salmon.ID, "quantity": 2},
			{"menu_id": pasta.ID, "quantity": 1, "notes": "no bacon"},
		},
	})
	req, _ := http.NewRequest("POST", "/orders", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})

	// 2x18.5 + 1x12.0 = 49.0, harga diambil dari tabel menu bukan dari client
	assert.Equal(t, float64(49.0), data["total_amount"])
	assert.Equal(t, models.OrderPendingPayment, data["status"])
	assert.Len(t, data["order_items"].([]interface{}), 2)
}

func TestCreateOrderRejectsUnknownMenu(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	payload, _ := json.Marshal(map[string]interface{}{
		"customer_name": "Dinda",
		"items": []map[string]interface{}{
			{"menu_id": 999, "quantity": 1},
		},
	})
	req, _ := http.NewRequest("POST", "/orders", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Transaksi harus rollback: tidak boleh ada order yang tertinggal
	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateOrderRejectsUnavailableMenu(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	category := models.MenuCategory{Name: "Specials"}
	db.Create(&category)
	soldOut := models.Menu{CategoryID: category.ID, Name: "Seasonal Soup", Price: 8.0, IsAvailable: false}
	db.Create(&soldOut)

	payload, _ := json.Marshal(map[string]interface{}{
		"customer_name": "Raka",
		"items": []map[string]interface{}{
			{"menu_id": soldOut.ID, "quantity": 1},
		},
	})
	req, _ := http.NewRequest("POST", "/orders", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayOrderSimulatedPayment(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	order := models.Order{CustomerName: "Sari", Status: models.OrderPendingPayment, TotalAmount: 20.0}
	db.Create(&order)

	url := fmt.Sprintf("/orders/%d/pay", order.ID)
	req, _ := http.NewRequest("POST", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got models.Order
	db.First(&got, order.ID)
	assert.Equal(t, models.OrderPaid, got.Status)

	// Bayar dua kali harus ditolak
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", url, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelPaidOrderRejected(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	order := models.Order{CustomerName: "Sari", Status: models.OrderPaid, TotalAmount: 20.0}
	db.Create(&order)

	url := fmt.Sprintf("/orders/%d/cancel", order.ID)
	req, _ := http.NewRequest("POST", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var got models.Order
	db.First(&got, order.ID)
	assert.Equal(t, models.OrderPaid, got.Status)
}
