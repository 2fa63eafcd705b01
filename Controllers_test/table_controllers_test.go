package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/controllers"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

// setupTestDBForTables menggunakan SQLite in-memory khusus untuk TableController
func setupTestDBForTables() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.Table{}); err != nil {
		panic(err)
	}
	return db
}

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.POST("/tables", tableCtrl.CreateTable)
	router.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	router.POST("/tables/:table_id/deactivate", tableCtrl.DeactivateTable)
	return router
}

func TestCreateAndListTables(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router := setupTableRouter(db)

	payload := map[string]interface{}{
		"table_number": "A1",
		"capacity":     4,
		"location":     "indoor",
	}
	payloadBytes, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/tables", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Seed satu meja lagi langsung lewat DB
	db.Create(&models.Table{TableNumber: "B1", Capacity: 2, IsActive: true})

	req, err = http.NewRequest("GET", "/tables", nil)
	assert.NoError(t, err)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "List of tables", response["message"])

	// Daftar diurutkan berdasarkan kapasitas
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, float64(2), first["capacity"])
}

func TestCreateTableRequiresCapacity(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router := setupTableRouter(db)

	payload := map[string]interface{}{"table_number": "A1"}
	payloadBytes, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", "/tables", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeactivateTableHidesItFromList(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router := setupTableRouter(db)

	table := models.Table{TableNumber: "C1", Capacity: 6, IsActive: true}
	db.Create(&table)

	url := "/tables/" + strconv.Itoa(int(table.ID)) + "/deactivate"
	req, err := http.NewRequest("POST", url, nil)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, false, data["is_active"])

	// Meja nonaktif tidak muncul di daftar publik
	req, _ = http.NewRequest("GET", "/tables", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var listResponse map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResponse))
	assert.Empty(t, listResponse["data"])

	// Tapi tetap tampil dengan include_inactive=true
	req, _ = http.NewRequest("GET", "/tables?include_inactive=true", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResponse))
	assert.Len(t, listResponse["data"].([]interface{}), 1)
}

func TestUpdateTableCapacity(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router := setupTableRouter(db)

	table := models.Table{TableNumber: "D1", Capacity: 2, IsActive: true}
	db.Create(&table)

	payload := map[string]interface{}{"capacity": 8}
	payloadBytes, _ := json.Marshal(payload)

	url := "/tables/" + strconv.Itoa(int(table.ID))
	req, _ := http.NewRequest("PATCH", url, bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Table
	db.First(&got, table.ID)
	assert.Equal(t, 8, got.Capacity)
}
