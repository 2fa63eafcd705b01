package services

import (
	"time"

	"github.com/yeremiapane/restaurant-reservation/events"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
	"gorm.io/gorm"
)

// ReservationMonitor menandai reservasi confirmed yang jam selesainya
// sudah lewat menjadi completed, supaya slot meja kembali terbaca bebas
// tanpa admin harus menutup satu-satu.
type ReservationMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewReservationMonitor(db *gorm.DB) *ReservationMonitor {
	return &ReservationMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Minute,
	}
}

func (rm *ReservationMonitor) Start() {
	go func() {
		ticker := time.NewTicker(rm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rm.completeExpired()
			case <-rm.StopChan:
				return
			}
		}
	}()
}

func (rm *ReservationMonitor) Stop() {
	close(rm.StopChan)
}

func (rm *ReservationMonitor) completeExpired() {
	now := time.Now()
	today := now.Format("2006-01-02")
	currentTime := now.Format("15:04:05")

	var expired []models.Reservation
	err := rm.DB.
		Where("status = ?", models.ReservationConfirmed).
		Where("reservation_date < ? OR (reservation_date = ? AND end_time <= ?)",
			today, today, currentTime).
		Find(&expired).Error
	if err != nil {
		utils.ErrorLogger.Printf("Error fetching expired reservations: %v", err)
		return
	}

	for _, reservation := range expired {
		reservation.Status = models.ReservationCompleted
		if err := rm.DB.Save(&reservation).Error; err != nil {
			utils.ErrorLogger.Printf("Error completing reservation %d: %v", reservation.ID, err)
			continue
		}

		utils.InfoLogger.Printf("Reservation %s auto-completed (ended %s %s)",
			reservation.Code, reservation.ReservationDate, reservation.EndTime)
		events.BroadcastReservationUpdate(reservation)
	}
}
