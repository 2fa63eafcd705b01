package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
	"gorm.io/gorm"
)

type CustomerProfileController struct {
	DB *gorm.DB
}

func NewCustomerProfileController(db *gorm.DB) *CustomerProfileController {
	return &CustomerProfileController{DB: db}
}

// GetAllProfiles -> daftar profil tamu untuk admin, bisa dicari
// berdasarkan nomor telepon (?phone=...)
func (cpc *CustomerProfileController) GetAllProfiles(c *gin.Context) {
	query := cpc.DB.Order("created_at DESC")
	if phone := c.Query("phone"); phone != "" {
		query = query.Where("phone = ?", phone)
	}

	var profiles []models.CustomerProfile
	if err := query.Find(&profiles).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of customer profiles", profiles)
}

// GetProfileByID -> detail satu profil beserta riwayat reservasinya
func (cpc *CustomerProfileController) GetProfileByID(c *gin.Context) {
	idStr := c.Param("profile_id")
	id, _ := strconv.Atoi(idStr)

	var profile models.CustomerProfile
	if err := cpc.DB.First(&profile, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var reservations []models.Reservation
	if err := cpc.DB.Preload("Table").
		Where("customer_id = ?", profile.ID).
		Order("reservation_date DESC").
		Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer profile detail", gin.H{
		"profile":      profile,
		"reservations": reservations,
	})
}

// UpdateProfile -> admin memperbaiki data kontak profil tamu
func (cpc *CustomerProfileController) UpdateProfile(c *gin.Context) {
	idStr := c.Param("profile_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		FirstName   *string `json:"first_name"`
		LastName    *string `json:"last_name"`
		Email       *string `json:"email"`
		Preferences *string `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var profile models.CustomerProfile
	if err := cpc.DB.First(&profile, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.FirstName != nil {
		profile.FirstName = *body.FirstName
	}
	if body.LastName != nil {
		profile.LastName = *body.LastName
	}
	if body.Email != nil {
		profile.Email = *body.Email
	}
	if body.Preferences != nil {
		profile.Preferences = body.Preferences
	}

	if err := cpc.DB.Save(&profile).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer profile updated", profile)
}
