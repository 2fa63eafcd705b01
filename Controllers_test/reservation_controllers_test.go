package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/controllers"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

// setupTestDBForReservations menggunakan SQLite in-memory khusus untuk
// ReservationController
func setupTestDBForReservations() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(
		&models.Table{},
		&models.CustomerProfile{},
		&models.Reservation{},
	); err != nil {
		panic(err)
	}
	return db
}

func setupReservationRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	resvCtrl := controllers.NewReservationController(db)
	router.POST("/reservations", resvCtrl.CreateReservation)
	router.GET("/reservations/:code", resvCtrl.GetReservationByCode)
	router.GET("/admin/reservations", resvCtrl.GetAllReservations)
	router.PATCH("/admin/reservations/:reservation_id", resvCtrl.UpdateReservationStatus)
	return router
}

func reservationPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":   "Ayu Lestari",
		"email":  "ayu@example.com",
		"phone":  "555-0101",
		"date":   "2026-09-10",
		"time":   "7:00 PM",
		"guests": "2",
	}
}

func postReservation(router *gin.Engine, payload map[string]interface{}) *httptest.ResponseRecorder {
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/reservations", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateReservationEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations()
	router := setupReservationRouter(db)

	db.Create(&models.Table{TableNumber: "T1", Capacity: 2, IsActive: true})
	db.Create(&models.Table{TableNumber: "T2", Capacity: 4, IsActive: true})

	w := postReservation(router, reservationPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, models.ReservationPending, data["status"])
	assert.Equal(t, "19:00:00", data["start_time"])
	assert.Equal(t, "21:00:00", data["end_time"])
	assert.NotEmpty(t, data["code"])

	// Meja terkecil yang cukup: kapasitas 2
	table := data["table"].(map[string]interface{})
	assert.Equal(t, float64(2), table["capacity"])
}

func TestCreateReservationLargePartyRejected(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations()
	router := setupReservationRouter(db)

	db.Create(&models.Table{TableNumber: "T1", Capacity: 10, IsActive: true})

	payload := reservationPayload()
	payload["guests"] = "more"
	w := postReservation(router, payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response["message"], "call us directly")
}

func TestCreateReservationConflictRejected(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations()
	router := setupReservationRouter(db)

	db.Create(&models.Table{TableNumber: "T1", Capacity: 2, IsActive: true})

	w := postReservation(router, reservationPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	// Jam yang sama di satu-satunya meja -> bentrok
	second := reservationPayload()
	second["phone"] = "555-0202"
	w = postReservation(router, second)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response["message"], "no tables available")
}

func TestCreateReservationMissingFields(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations()
	router := setupReservationRouter(db)

	payload := reservationPayload()
	delete(payload, "date")
	delete(payload, "phone")
	w := postReservation(router, payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	message := response["message"].(string)
	assert.True(t, strings.Contains(message, "date"))
	assert.True(t, strings.Contains(message, "phone"))
}

func TestGetReservationByCode(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations()
	router := setupReservationRouter(db)

	db.Create(&models.Table{TableNumber: "T1", Capacity: 4, IsActive: true})

	w := postReservation(router, reservationPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	code := created["data"].(map[string]interface{})["code"].(string)

	req, _ := http.NewRequest("GET", "/reservations/"+code, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Kode yang tidak dikenal -> 404
	req, _ = http.NewRequest("GET", "/reservations/not-a-real-code", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateReservationStatusEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations()
	router := setupReservationRouter(db)

	db.Create(&models.Table{TableNumber: "T1", Capacity: 4, IsActive: true})

	w := postReservation(router, reservationPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := int(created["data"].(map[string]interface{})["id"].(float64))

	confirm := func(status string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{"status": status})
		url := fmt.Sprintf("/admin/reservations/%d", id)
		req, _ := http.NewRequest("PATCH", url, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// pending -> completed dilarang
	assert.Equal(t, http.StatusBadRequest, confirm(models.ReservationCompleted).Code)

	// pending -> confirmed sah
	resp := confirm(models.ReservationConfirmed)
	assert.Equal(t, http.StatusOK, resp.Code)

	var updated map[string]interface{}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, models.ReservationConfirmed,
		updated["data"].(map[string]interface{})["status"])

	// confirmed -> pending dilarang
	assert.Equal(t, http.StatusBadRequest, confirm(models.ReservationPending).Code)
}

func TestGetAllReservationsFilters(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations()
	router := setupReservationRouter(db)

	db.Create(&models.Table{TableNumber: "T1", Capacity: 4, IsActive: true})
	db.Create(&models.Table{TableNumber: "T2", Capacity: 4, IsActive: true})

	first := reservationPayload()
	assert.Equal(t, http.StatusCreated, postReservation(router, first).Code)

	second := reservationPayload()
	second["date"] = "2026-09-11"
	second["phone"] = "555-0303"
	assert.Equal(t, http.StatusCreated, postReservation(router, second).Code)

	req, _ := http.NewRequest("GET", "/admin/reservations?date=2026-09-11", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	assert.Equal(t, "2026-09-11",
		data[0].(map[string]interface{})["reservation_date"])
}
