package controllers

import (
    "context"
    "log"
    "net/http"
    "time"

    "github.com/gin-gonic/gin"

    "health-chatbot-backend/chatbot"
    "health-chatbot-backend/database"
    "health-chatbot-backend/models"
    "health-chatbot-backend/utils"
)

type ChatbotController struct {
    bot *chatbot.HealthBot
}

func NewChatbotController(bot *chatbot.HealthBot) *ChatbotController {
    return &ChatbotController{
        bot: bot,
    }
}

// HandleChat processes chat messages from the web widget
func (cc *ChatbotController) HandleChat(c *gin.Context) {
    var req models.ChatRequest

    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{
            "error":   "Invalid request format",
            "details": err.Error(),
        })
        return
    }

    channel := req.Channel
    if channel == "" {
        channel = models.ChannelWeb
    }

    reply, err := cc.bot.Handle(c.Request.Context(), req.Message, req.Language)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{
            "error":   "Failed to process message",
            "details": err.Error(),
        })
        return
    }

    saveExchange(c.Request.Context(), req.SessionID, req.UserID, channel, req.Message, reply, false)

    c.JSON(http.StatusOK, models.NewTextResponse(reply.Text, reply.Intent, reply.Language))
}

// TestChatbot answers a message without requiring a session, for manual
// checks from the admin dashboard. format=html returns the card markup
// alongside the raw text.
func (cc *ChatbotController) TestChatbot(c *gin.Context) {
    var req struct {
        Message  string `json:"message"`
        Language string `json:"language"`
        Format   string `json:"format"`
    }

    if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
        return
    }

    reply, err := cc.bot.Handle(c.Request.Context(), req.Message, req.Language)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{
            "error":   "Failed to process message",
            "details": err.Error(),
        })
        return
    }

    formatted := reply.Text
    if req.Format == "html" {
        formatted = utils.FormatForHTML(reply.Text)
    }

    c.JSON(http.StatusOK, gin.H{
        "message": req.Message,
        "response": gin.H{
            "raw":       reply.Text,
            "formatted": formatted,
        },
        "detected_language": reply.Language,
        "intent":            reply.Intent,
    })
}

// saveExchange stores one question/answer pair and bumps the daily
// counters. Storage failures are logged and do not fail the request.
func saveExchange(ctx context.Context, sessionID, userID string, channel models.MessageChannel, userMessage string, reply *chatbot.Reply, newUser bool) {
    msg := &models.Message{
        SessionID:   sessionID,
        UserID:      userID,
        Channel:     channel,
        UserMessage: userMessage,
        BotResponse: reply.Text,
        Intent:      reply.Intent,
        Language:    reply.Language,
        Timestamp:   time.Now(),
    }
    if err := database.SaveMessage(ctx, msg); err != nil {
        log.Printf("Failed to save message: %v", err)
    }

    if err := database.RecordQueryStatistics(ctx, channel, reply.Intent, newUser); err != nil {
        log.Printf("Failed to record statistics: %v", err)
    }
}
