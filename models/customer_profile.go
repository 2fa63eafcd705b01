package models

import "time"

// CustomerProfile menampung data tamu untuk reservasi.
// Profil guest dibuat otomatis saat nomor telepon pertama kali booking,
// dan dipakai ulang untuk booking berikutnya dengan nomor yang sama.
type CustomerProfile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      *uint     `gorm:"index" json:"user_id,omitempty"`
	User        *User     `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	FirstName   string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName    string    `gorm:"type:varchar(100)" json:"last_name"`
	Phone       string    `gorm:"type:varchar(30);not null;index" json:"phone"`
	Email       string    `gorm:"type:varchar(255)" json:"email"`
	Preferences *string   `gorm:"type:text" json:"preferences,omitempty"`
	IsGuest     bool      `gorm:"not null;default:true" json:"is_guest"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// FullName menggabungkan first name dan last name
func (p *CustomerProfile) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
