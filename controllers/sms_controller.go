// controllers/sms_controller.go
package controllers

import (
    "log"
    "net/http"

    "github.com/gin-gonic/gin"

    "health-chatbot-backend/chatbot"
    "health-chatbot-backend/database"
    "health-chatbot-backend/models"
    "health-chatbot-backend/services"
    "health-chatbot-backend/utils"
)

const smsApology = "Sorry, I'm experiencing technical difficulties. Please try again later."

type SMSController struct {
    bot *chatbot.HealthBot
}

func NewSMSController(bot *chatbot.HealthBot) *SMSController {
    return &SMSController{
        bot: bot,
    }
}

// HandleIncomingSMS answers a Twilio webhook with a TwiML reply.
// Twilio delivers the sender and text as form fields.
func (sc *SMSController) HandleIncomingSMS(c *gin.Context) {
    from := c.PostForm("From")
    body := c.PostForm("Body")

    if from == "" || body == "" {
        c.String(http.StatusBadRequest, "Invalid request")
        return
    }

    ctx := c.Request.Context()

    reply, err := sc.bot.Handle(ctx, body, "")
    if err != nil {
        log.Printf("Failed to process SMS from %s: %v", from, err)
        c.Data(http.StatusOK, "application/xml", []byte(services.BuildTwiML(smsApology)))
        return
    }

    _, created, err := database.UpsertUser(ctx, from, "", reply.Language)
    if err != nil {
        log.Printf("Failed to upsert SMS user %s: %v", from, err)
    }

    saveExchange(ctx, "sms_"+from, from, models.ChannelSMS, body, reply, created)

    c.Data(http.StatusOK, "application/xml", []byte(services.BuildTwiML(utils.FormatForMessaging(reply.Text))))
}
