package services

import (
	"strings"

	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
	"gorm.io/gorm"
)

// ChatbotService menjawab pesan widget support dengan pencocokan kata
// kunci sederhana. Tidak ada NLP; pesan yang tidak cocok mendapat
// jawaban fallback.
type ChatbotService struct {
	DB *gorm.DB
}

func NewChatbotService(db *gorm.DB) *ChatbotService {
	return &ChatbotService{DB: db}
}

type chatRule struct {
	keywords []string
	reply    string
}

// Urutan penting: rule pertama yang cocok yang dipakai
var chatRules = []chatRule{
	{
		keywords: []string{"reservation", "reserve", "book", "table"},
		reply:    "You can book a table from the Reservations page. Pick a date, time and party size and we will find the best table for you. Parties larger than 10 should call us directly.",
	},
	{
		keywords: []string{"hour", "open", "close", "closing"},
		reply:    "We are open every day from 11:00 AM until midnight. The kitchen takes last orders at 10:30 PM.",
	},
	{
		keywords: []string{"menu", "dish", "food", "eat"},
		reply:    "You can browse our full menu on the Menu page, organized by category. Everything is cooked fresh to order.",
	},
	{
		keywords: []string{"vegetarian", "vegan", "halal", "allergy", "gluten"},
		reply:    "We offer vegetarian and halal options, and we can accommodate most allergies. Mention it in the special requests of your reservation and our kitchen will take care of it.",
	},
	{
		keywords: []string{"cancel", "change", "reschedule"},
		reply:    "To cancel or change a reservation, call us with your reservation code and we will sort it out right away.",
	},
	{
		keywords: []string{"location", "address", "where", "parking"},
		reply:    "You can find us at Jalan Kemang Raya No. 12, South Jakarta. Free parking is available behind the building.",
	},
	{
		keywords: []string{"delivery", "takeaway", "take away", "pickup"},
		reply:    "We currently serve dine-in and pickup orders placed through the website. Delivery is not available yet.",
	},
	{
		keywords: []string{"payment", "pay", "card", "cash"},
		reply:    "We accept cash and all major cards at the restaurant. Online orders are paid on pickup.",
	},
}

const chatFallbackReply = "I'm sorry, I didn't quite catch that. You can ask me about reservations, our menu, opening hours, or our location - or call us and we'll be happy to help."

// Reply mencocokkan pesan dengan daftar kata kunci dan menyimpan
// percakapan ke chat log
func (cs *ChatbotService) Reply(sessionID, message string) (string, bool, error) {
	reply, matched := matchMessage(message)

	entry := models.ChatLog{
		SessionID: sessionID,
		Message:   message,
		Reply:     reply,
		Matched:   matched,
	}
	if err := cs.DB.Create(&entry).Error; err != nil {
		// Gagal menulis log tidak menggagalkan jawaban ke user
		utils.ErrorLogger.Printf("Error saving chat log: %v", err)
	}

	return reply, matched, nil
}

func matchMessage(message string) (string, bool) {
	lowered := strings.ToLower(message)
	for _, rule := range chatRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.reply, true
			}
		}
	}
	return chatFallbackReply, false
}
