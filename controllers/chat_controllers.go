package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/services"
	"github.com/yeremiapane/restaurant-reservation/utils"
	"gorm.io/gorm"
)

type ChatController struct {
	DB      *gorm.DB
	Service *services.ChatbotService
}

func NewChatController(db *gorm.DB) *ChatController {
	return &ChatController{
		DB:      db,
		Service: services.NewChatbotService(db),
	}
}

// SendMessage -> widget chatbot publik
func (cc *ChatController) SendMessage(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reply, matched, err := cc.Service.Reply(req.SessionID, req.Message)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Chat reply", gin.H{
		"reply":   reply,
		"matched": matched,
	})
}

// GetChatLogs -> admin meninjau percakapan, terutama yang fallback
// (?unmatched=true) untuk menambah rule baru
func (cc *ChatController) GetChatLogs(c *gin.Context) {
	query := cc.DB.Order("created_at DESC").Limit(200)
	if c.Query("unmatched") == "true" {
		query = query.Where("matched = ?", false)
	}

	var logs []models.ChatLog
	if err := query.Find(&logs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Chat logs", logs)
}
