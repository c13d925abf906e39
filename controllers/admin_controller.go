// controllers/admin_controller.go
package controllers

import (
    "context"
    "fmt"
    "log"
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"

    "health-chatbot-backend/database"
    "health-chatbot-backend/models"
    "health-chatbot-backend/services"
)

type AdminController struct {
    whatsappService *services.WhatsAppService
    smsService      *services.SMSService
}

func NewAdminController(whatsappService *services.WhatsAppService, smsService *services.SMSService) *AdminController {
    return &AdminController{
        whatsappService: whatsappService,
        smsService:      smsService,
    }
}

// GetUsers lists registered users for the dashboard
func (ac *AdminController) GetUsers(c *gin.Context) {
    users, err := database.ListUsers(c.Request.Context())
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
        return
    }

    c.JSON(http.StatusOK, gin.H{
        "users": users,
        "count": len(users),
    })
}

// GetMessages returns recent conversations across all channels
func (ac *AdminController) GetMessages(c *gin.Context) {
    messages, err := database.GetRecentMessages(c.Request.Context(), 100)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
        return
    }

    c.JSON(http.StatusOK, gin.H{
        "messages": messages,
        "count":    len(messages),
    })
}

// GetStatistics returns the last week of daily counters plus all-time totals
func (ac *AdminController) GetStatistics(c *gin.Context) {
    ctx := c.Request.Context()

    stats, err := database.GetStatistics(ctx, 7)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statistics"})
        return
    }

    var today interface{}
    if len(stats) > 0 {
        today = stats[0]
    }

    totalUsers, err := database.CountUsers(ctx)
    if err != nil {
        log.Printf("Failed to count users: %v", err)
    }
    totalMessages, err := database.CountMessages(ctx)
    if err != nil {
        log.Printf("Failed to count messages: %v", err)
    }

    c.JSON(http.StatusOK, gin.H{
        "today":   today,
        "history": stats,
        "totals": gin.H{
            "total_users":    totalUsers,
            "total_messages": totalMessages,
        },
        "channels": gin.H{
            "whatsapp": gin.H{
                "enabled":    ac.whatsappService.Enabled(),
                "sent_today": ac.whatsappService.SentToday(),
            },
            "sms": gin.H{
                "enabled": ac.smsService.Enabled(),
            },
        },
    })
}

// SendMessage pushes a notification to one user over SMS or WhatsApp
func (ac *AdminController) SendMessage(c *gin.Context) {
    var req struct {
        PhoneNumber string `json:"phone_number"`
        Message     string `json:"message"`
        Type        string `json:"type"`
    }

    if err := c.ShouldBindJSON(&req); err != nil || req.PhoneNumber == "" || req.Message == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number and message are required"})
        return
    }

    switch req.Type {
    case "whatsapp":
        to := ac.whatsappService.CleanPhoneNumber(req.PhoneNumber)
        if err := ac.whatsappService.SendTextMessage(to, req.Message); err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{
                "error":   "Failed to send message",
                "details": err.Error(),
            })
            return
        }
        c.JSON(http.StatusOK, gin.H{"success": true, "to": to, "channel": "whatsapp"})

    default:
        sid, err := ac.smsService.SendSMS(c.Request.Context(), req.PhoneNumber, req.Message)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{
                "error":   "Failed to send message",
                "details": err.Error(),
            })
            return
        }
        c.JSON(http.StatusOK, gin.H{"success": true, "message_sid": sid, "channel": "sms"})
    }
}

// GetOutbreakAlerts lists alerts currently in effect
func (ac *AdminController) GetOutbreakAlerts(c *gin.Context) {
    alerts, err := database.ListActiveOutbreakAlerts(c.Request.Context())
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alerts"})
        return
    }

    c.JSON(http.StatusOK, gin.H{
        "alerts": alerts,
        "count":  len(alerts),
    })
}

// CreateOutbreakAlert registers a new outbreak notice. With broadcast
// set, the alert also goes out over WhatsApp, optionally only to users
// of one preferred language.
func (ac *AdminController) CreateOutbreakAlert(c *gin.Context) {
    var req struct {
        models.OutbreakAlert
        Broadcast bool   `json:"broadcast"`
        Language  string `json:"language"`
    }

    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Disease name and alert message are required"})
        return
    }

    if req.CreatedBy == "" {
        req.CreatedBy = "System"
    }

    alert := req.OutbreakAlert
    if err := database.CreateOutbreakAlert(c.Request.Context(), &alert); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create alert"})
        return
    }

    if req.Broadcast {
        go ac.broadcastAlert(context.Background(), alert, req.Language)
    }

    c.JSON(http.StatusCreated, alert)
}

// DeactivateOutbreakAlert retires an alert by ID
func (ac *AdminController) DeactivateOutbreakAlert(c *gin.Context) {
    if err := database.DeactivateOutbreakAlert(c.Request.Context(), c.Param("id")); err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
        return
    }

    c.JSON(http.StatusOK, gin.H{"message": "Alert deactivated"})
}

// broadcastAlert fans an alert out to registered users
func (ac *AdminController) broadcastAlert(ctx context.Context, alert models.OutbreakAlert, language string) {
    var (
        users []models.User
        err   error
    )
    if language != "" {
        users, err = database.ListUsersByLanguage(ctx, language)
    } else {
        users, err = database.ListUsers(ctx)
    }
    if err != nil {
        log.Printf("Failed to load users for alert broadcast: %v", err)
        return
    }

    text := fmt.Sprintf("🚨 HEALTH ALERT: %s\n\n%s", strings.ToUpper(alert.DiseaseName), alert.AlertMessage)
    if len(alert.AffectedLocations) > 0 {
        text += "\n\nAffected areas: " + strings.Join(alert.AffectedLocations, ", ")
    }

    sent := 0
    for _, user := range users {
        if err := ac.whatsappService.SendTextMessage(user.PhoneNumber, text); err != nil {
            log.Printf("Failed to send alert to %s: %v", user.PhoneNumber, err)
            continue
        }
        sent++
    }

    log.Printf("Outbreak alert for %s broadcast to %d of %d users", alert.DiseaseName, sent, len(users))
}
