// controllers/whatsapp_controller.go
package controllers

import (
    "context"
    "log"
    "net/http"

    "github.com/gin-gonic/gin"

    "health-chatbot-backend/chatbot"
    "health-chatbot-backend/database"
    "health-chatbot-backend/models"
    "health-chatbot-backend/services"
    "health-chatbot-backend/utils"
)

const whatsappApology = "Sorry, I'm experiencing technical difficulties. Please try again later or contact emergency services if this is urgent."

type WhatsAppController struct {
    whatsappService *services.WhatsAppService
    bot             *chatbot.HealthBot
}

func NewWhatsAppController(whatsappService *services.WhatsAppService, bot *chatbot.HealthBot) *WhatsAppController {
    return &WhatsAppController{
        whatsappService: whatsappService,
        bot:             bot,
    }
}

// VerifyWebhook handles the webhook verification request from WhatsApp
func (wc *WhatsAppController) VerifyWebhook(c *gin.Context) {
    mode := c.Query("hub.mode")
    token := c.Query("hub.verify_token")
    challenge := c.Query("hub.challenge")

    if mode == "subscribe" && token == wc.whatsappService.GetVerifyToken() {
        log.Println("WhatsApp webhook verified")
        c.String(http.StatusOK, challenge)
        return
    }

    c.JSON(http.StatusForbidden, gin.H{"error": "Verification failed"})
}

// HandleWebhook processes incoming WhatsApp messages
func (wc *WhatsAppController) HandleWebhook(c *gin.Context) {
    var webhookData models.WhatsAppWebhookData

    if err := c.ShouldBindJSON(&webhookData); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook data"})
        return
    }

    // Process asynchronously on a fresh context. The request context is
    // canceled as soon as this handler returns.
    go wc.processWebhookData(context.Background(), webhookData)

    // Respond immediately to WhatsApp
    c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func (wc *WhatsAppController) processWebhookData(ctx context.Context, webhookData models.WhatsAppWebhookData) {
    for _, entry := range webhookData.Entry {
        for _, change := range entry.Changes {
            if change.Field == "messages" {
                wc.processMessages(ctx, change.Value)
            }
        }
    }
}

// processMessages handles incoming messages and delivery updates
func (wc *WhatsAppController) processMessages(ctx context.Context, value models.WhatsAppValue) {
    for _, message := range value.Messages {
        wc.handleIncomingMessage(ctx, message, value.Contacts)
    }

    for _, status := range value.Statuses {
        wc.handleStatusUpdate(status)
    }
}

// handleIncomingMessage runs one message through the health pipeline
// and replies on the same number
func (wc *WhatsAppController) handleIncomingMessage(ctx context.Context, message models.WhatsAppMessage, contacts []models.WhatsAppContact) {
    if message.Type != "text" || message.Text == nil {
        if err := wc.whatsappService.SendTextMessage(message.From, "Sorry, I can only understand text messages right now."); err != nil {
            log.Printf("Failed to send WhatsApp reply: %v", err)
        }
        return
    }

    reply, err := wc.bot.Handle(ctx, message.Text.Body, "")
    if err != nil {
        log.Printf("Failed to process WhatsApp message from %s: %v", message.From, err)
        if sendErr := wc.whatsappService.SendTextMessage(message.From, whatsappApology); sendErr != nil {
            log.Printf("Failed to send WhatsApp reply: %v", sendErr)
        }
        return
    }

    _, created, err := database.UpsertUser(ctx, message.From, contactName(contacts, message.From), reply.Language)
    if err != nil {
        log.Printf("Failed to upsert WhatsApp user %s: %v", message.From, err)
    }

    if err := wc.whatsappService.MarkMessageAsRead(message.ID); err != nil {
        log.Printf("Failed to mark message as read: %v", err)
    }

    if err := wc.whatsappService.SendTextMessage(message.From, utils.FormatForMessaging(reply.Text)); err != nil {
        log.Printf("Failed to send WhatsApp reply: %v", err)
    }

    saveExchange(ctx, "whatsapp_"+message.From, message.From, models.ChannelWhatsApp, message.Text.Body, reply, created)
}

// contactName resolves the profile name Meta attaches to the webhook payload
func contactName(contacts []models.WhatsAppContact, waID string) string {
    for _, contact := range contacts {
        if contact.WaID == waID {
            return contact.Profile.Name
        }
    }
    return ""
}

// handleStatusUpdate logs message delivery updates
func (wc *WhatsAppController) handleStatusUpdate(status models.WhatsAppStatus) {
    log.Printf("Message %s to %s: %s", status.ID, status.RecipientID, status.Status)

    for _, statusErr := range status.Errors {
        log.Printf("WhatsApp error %d - %s: %s", statusErr.Code, statusErr.Title, statusErr.Message)
    }
}
