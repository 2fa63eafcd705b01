package models

import "time"

// ChatLog menyimpan percakapan chatbot untuk ditinjau admin
type ChatLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"type:varchar(64);index" json:"session_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Reply     string    `gorm:"type:text;not null" json:"reply"`
	Matched   bool      `gorm:"not null;default:false" json:"matched"` // false = jawaban fallback
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
