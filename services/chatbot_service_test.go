package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

func setupChatDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.ChatLog{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestChatbotKeywordMatch(t *testing.T) {
	db := setupChatDB(t)
	svc := NewChatbotService(db)

	reply, matched, err := svc.Reply("sess-1", "How do I book a table for Friday?")
	assert.NoError(t, err)
	assert.True(t, matched)
	assert.Contains(t, reply, "Reservations page")

	reply, matched, err = svc.Reply("sess-1", "what are your opening HOURS?")
	assert.NoError(t, err)
	assert.True(t, matched)
	assert.Contains(t, reply, "11:00 AM")
}

func TestChatbotFallback(t *testing.T) {
	db := setupChatDB(t)
	svc := NewChatbotService(db)

	reply, matched, err := svc.Reply("sess-2", "zzzzz qwerty")
	assert.NoError(t, err)
	assert.False(t, matched)
	assert.Equal(t, chatFallbackReply, reply)
}

func TestChatbotFirstRuleWins(t *testing.T) {
	db := setupChatDB(t)
	svc := NewChatbotService(db)

	// "book" dan "menu" sama-sama cocok; rule reservasi lebih dulu
	reply, matched, err := svc.Reply("sess-3", "can I book a table and see the menu?")
	assert.NoError(t, err)
	assert.True(t, matched)
	assert.Contains(t, reply, "Reservations page")
}

func TestChatbotLogsConversation(t *testing.T) {
	db := setupChatDB(t)
	svc := NewChatbotService(db)

	_, _, err := svc.Reply("sess-4", "where is your location?")
	assert.NoError(t, err)
	_, _, err = svc.Reply("sess-4", "blub")
	assert.NoError(t, err)

	var logs []models.ChatLog
	assert.NoError(t, db.Where("session_id = ?", "sess-4").Order("id ASC").Find(&logs).Error)
	assert.Len(t, logs, 2)
	assert.True(t, logs[0].Matched)
	assert.False(t, logs[1].Matched)
	assert.Equal(t, chatFallbackReply, logs[1].Reply)
}
