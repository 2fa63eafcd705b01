package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservation/events"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/services"
	"github.com/yeremiapane/restaurant-reservation/utils"
	"gorm.io/gorm"
)

type ReservationController struct {
	DB      *gorm.DB
	Service *services.ReservationService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{
		DB:      db,
		Service: services.NewReservationService(db),
	}
}

// CreateReservation -> form reservasi publik
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Phone           string `json:"phone"`
		Date            string `json:"date"`
		Time            string `json:"time"`
		Guests          string `json:"guests"`
		Occasion        string `json:"occasion"`
		SpecialRequests string `json:"specialRequests"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Service.CreateReservation(services.CreateReservationInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Date:            req.Date,
		Time:            req.Time,
		Guests:          req.Guests,
		Occasion:        req.Occasion,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondReservationError(c, err)
		return
	}

	events.BroadcastReservationCreate(*reservation)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}

// GetReservationByCode -> halaman konfirmasi publik, lookup pakai kode
func (rc *ReservationController) GetReservationByCode(c *gin.Context) {
	code := c.Param("code")

	reservation, err := rc.Service.GetByCode(code)
	if err != nil {
		respondReservationError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// GetAllReservations -> daftar reservasi untuk admin, bisa difilter
// tanggal dan status
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	query := rc.DB.Preload("Customer").Preload("Table").
		Order("reservation_date DESC, start_time ASC")

	if date := c.Query("date"); date != "" {
		query = query.Where("reservation_date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// GetReservationByID -> detail satu reservasi (admin)
func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid reservation id"))
		return
	}

	var reservation models.Reservation
	if err := rc.DB.Preload("Customer").Preload("Table").
		First(&reservation, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// UpdateReservationStatus -> transisi status (pending -> confirmed, dst.)
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid reservation id"))
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Service.UpdateStatus(uint(id), body.Status)
	if err != nil {
		respondReservationError(c, err)
		return
	}

	events.BroadcastReservationUpdate(*reservation)
	utils.RespondJSON(c, http.StatusOK, "Reservation status updated", reservation)
}

// respondReservationError memetakan error service ke status HTTP.
// Validation/capacity/availability -> 400 dengan pesan spesifik,
// not found -> 404, selain itu error backend generik -> 500.
func respondReservationError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var capacityErr *services.CapacityError
	var availabilityErr *services.AvailabilityError

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &capacityErr),
		errors.As(err, &availabilityErr):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrReservationNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
