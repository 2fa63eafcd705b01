package models

import "time"

// Status reservasi
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
)

// allowedTransitions memetakan status asal ke status tujuan yang sah.
// cancelled dan completed adalah status terminal.
var allowedTransitions = map[string][]string{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationCancelled, ReservationCompleted},
	ReservationCancelled: {},
	ReservationCompleted: {},
}

// ValidReservationStatus memeriksa apakah string adalah status yang dikenal
func ValidReservationStatus(s string) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition memeriksa apakah perpindahan status from -> to diizinkan
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Code            string          `gorm:"type:varchar(36);uniqueIndex;not null" json:"code"`
	CustomerID      uint            `gorm:"not null;index" json:"customer_id"`
	Customer        CustomerProfile `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"customer"`
	TableID         uint            `gorm:"not null;index:idx_reservations_table_date" json:"table_id"`
	Table           Table           `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	ReservationDate string          `gorm:"type:varchar(10);not null;index:idx_reservations_table_date" json:"reservation_date"` // YYYY-MM-DD
	StartTime       string          `gorm:"type:varchar(8);not null" json:"start_time"`                                          // HH:MM:SS
	EndTime         string          `gorm:"type:varchar(8);not null" json:"end_time"`                                            // HH:MM:SS
	PartySize       int             `gorm:"not null" json:"party_size"`
	SpecialRequests *string         `gorm:"type:text" json:"special_requests,omitempty"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`
}
