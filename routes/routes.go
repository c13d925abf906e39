package routes

import (
    "net/http"

    "github.com/gin-gonic/gin"

    "health-chatbot-backend/chatbot"
    "health-chatbot-backend/controllers"
    "health-chatbot-backend/database"
    "health-chatbot-backend/middleware"
    "health-chatbot-backend/services"
)

// SetupRoutes wires every HTTP endpoint. The bot and the messaging
// services are built in main because the reminder scheduler shares them.
func SetupRoutes(router *gin.Engine, bot *chatbot.HealthBot, whatsappService *services.WhatsAppService, smsService *services.SMSService, reminderService *services.ReminderService) {
    // Services only the HTTP handlers use
    geminiService := services.NewGeminiService()
    diagnosisService := services.NewDiagnosisService()

    // Initialize controllers
    chatbotController := controllers.NewChatbotController(bot)
    wsController := controllers.NewWebSocketController(bot)
    whatsappController := controllers.NewWhatsAppController(whatsappService, bot)
    smsController := controllers.NewSMSController(bot)
    adminController := controllers.NewAdminController(whatsappService, smsService)
    healthController := controllers.NewHealthController(geminiService, diagnosisService, reminderService)

    router.GET("/health", func(c *gin.Context) {
        if err := database.HealthCheck(); err != nil {
            c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
            return
        }
        c.JSON(http.StatusOK, gin.H{"status": "healthy"})
    })

    // Citizen-facing endpoints
    api := router.Group("/api")
    {
        api.POST("/chat", chatbotController.HandleChat)
        api.GET("/ws", wsController.HandleWebSocket)

        api.POST("/image-diagnosis", healthController.ImageDiagnosis)
        api.GET("/hospitals", healthController.GetHospitals)
        api.POST("/assist", healthController.Assist)

        api.POST("/healthlog", healthController.LogHealthEvent)
        api.GET("/healthlog/:user_id", healthController.GetHealthLog)

        api.POST("/reminders/child", healthController.CreateChildReminders)
        api.GET("/reminders/:phone", healthController.GetReminders)
        api.POST("/reminders/:id/complete", healthController.CompleteReminder)

        api.GET("/doctors", healthController.GetDoctors)
    }

    // WhatsApp webhook endpoints (called by Meta)
    whatsapp := router.Group("/api/whatsapp")
    {
        whatsapp.GET("/webhook", whatsappController.VerifyWebhook)
        whatsapp.POST("/webhook", middleware.VerifyWhatsAppSignature(), whatsappController.HandleWebhook)
    }

    // SMS webhook (called by Twilio)
    router.POST("/api/sms/webhook", smsController.HandleIncomingSMS)

    // Admin dashboard endpoints
    admin := router.Group("/api")
    {
        admin.POST("/test-chatbot", chatbotController.TestChatbot)
        admin.GET("/users", adminController.GetUsers)
        admin.GET("/messages", adminController.GetMessages)
        admin.GET("/statistics", adminController.GetStatistics)
        admin.POST("/send-message", adminController.SendMessage)

        admin.GET("/outbreak-alerts", adminController.GetOutbreakAlerts)
        admin.POST("/outbreak-alerts", adminController.CreateOutbreakAlert)
        admin.PUT("/outbreak-alerts/:id/deactivate", adminController.DeactivateOutbreakAlert)
    }

    // 404 handler
    router.NoRoute(func(c *gin.Context) {
        c.JSON(404, gin.H{
            "error": "Route not found",
            "path":  c.Request.URL.Path,
        })
    })
}
