package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats mengambil statistik untuk dashboard admin
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no role found"))
		return
	}
	if roleInterface != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalReservations int64            `json:"total_reservations"`
		TodayReservations int64            `json:"today_reservations"`
		ByStatus          map[string]int64 `json:"reservations_by_status"`
		ActiveTables      int64            `json:"active_tables"`
		GuestProfiles     int64            `json:"guest_profiles"`
		TotalOrders       int64            `json:"total_orders"`
		PaidRevenue       float64          `json:"paid_revenue"`
		UnmatchedChats    int64            `json:"unmatched_chats"`
	}
	stats.ByStatus = make(map[string]int64)

	ac.DB.Model(&models.Reservation{}).Count(&stats.TotalReservations)
	ac.DB.Model(&models.Reservation{}).
		Where("reservation_date = ?", today).
		Count(&stats.TodayReservations)

	for _, status := range []string{
		models.ReservationPending,
		models.ReservationConfirmed,
		models.ReservationCancelled,
		models.ReservationCompleted,
	} {
		var count int64
		ac.DB.Model(&models.Reservation{}).Where("status = ?", status).Count(&count)
		stats.ByStatus[status] = count
	}

	ac.DB.Model(&models.Table{}).Where("is_active = ?", true).Count(&stats.ActiveTables)
	ac.DB.Model(&models.CustomerProfile{}).Where("is_guest = ?", true).Count(&stats.GuestProfiles)
	ac.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	ac.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderPaid).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&stats.PaidRevenue)
	ac.DB.Model(&models.ChatLog{}).Where("matched = ?", false).Count(&stats.UnmatchedChats)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

// ExportReservations mengekspor daftar reservasi sebagai CSV.
// Filter opsional: ?from=YYYY-MM-DD&to=YYYY-MM-DD
func (ac *AdminController) ExportReservations(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	query := ac.DB.Preload("Customer").Preload("Table").
		Order("reservation_date ASC, start_time ASC")
	if from := c.Query("from"); from != "" {
		query = query.Where("reservation_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("reservation_date <= ?", to)
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("reservations-%s.csv", time.Now().Format("20060102-150405"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{
		"code", "date", "start_time", "end_time", "table", "party_size",
		"customer", "phone", "email", "status", "special_requests",
	})

	for _, r := range reservations {
		requests := ""
		if r.SpecialRequests != nil {
			requests = *r.SpecialRequests
		}
		writer.Write([]string{
			r.Code,
			r.ReservationDate,
			r.StartTime,
			r.EndTime,
			r.Table.TableNumber,
			fmt.Sprintf("%d", r.PartySize),
			r.Customer.FullName(),
			r.Customer.Phone,
			r.Customer.Email,
			r.Status,
			requests,
		})
	}

	utils.InfoLogger.Printf("Exported %d reservations to CSV", len(reservations))
}
