package main

import (
    "context"
    "fmt"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/gin-contrib/cors"
    "github.com/gin-gonic/gin"

    "health-chatbot-backend/chatbot"
    "health-chatbot-backend/config"
    "health-chatbot-backend/database"
    "health-chatbot-backend/routes"
    "health-chatbot-backend/services"
)

func main() {
    // Load configuration
    if err := config.Load(); err != nil {
        log.Fatalf("Failed to load configuration: %v", err)
    }

    cfg := config.Get()

    // Set Gin mode
    if cfg.Environment == "production" {
        gin.SetMode(gin.ReleaseMode)
    }

    // Connect to MongoDB and the local event log
    if err := database.Connect(cfg); err != nil {
        log.Fatalf("Failed to connect to database: %v", err)
    }
    defer database.Disconnect()

    // Load the health knowledge base and build the symptom index
    kb, err := chatbot.LoadKnowledgeBase(cfg.KnowledgePath)
    if err != nil {
        log.Fatalf("Failed to load knowledge base: %v", err)
    }
    space := chatbot.BuildSymptomIndex(kb)
    log.Printf("Knowledge base loaded from %s", cfg.KnowledgePath)

    // Wire the chatbot pipeline
    translationService := services.NewTranslationService()
    bot := chatbot.NewHealthBot(kb, space, chatbot.NewLanguageService(translationService))

    // Verify WhatsApp configuration
    if err := verifyWhatsAppConfig(); err != nil {
        log.Printf("WARNING: WhatsApp integration may not work properly: %v", err)
        // Continue running without WhatsApp if not configured
    } else {
        log.Println("WhatsApp configuration verified successfully")
    }

    // The webhook handlers and the reminder scheduler share these
    whatsappService := services.NewWhatsAppService()
    smsService := services.NewSMSService()
    reminderService := services.NewReminderService(whatsappService, smsService, kb)

    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()

    if err := database.SeedDoctors(ctx); err != nil {
        log.Printf("Failed to seed doctors: %v", err)
    }

    reminderService.Start(ctx)

    // Create Gin router
    router := gin.New()

    // Add middleware
    router.Use(gin.Recovery())
    router.Use(gin.Logger())

    if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
        log.Fatalf("Invalid trusted proxies: %v", err)
    }

    router.Use(cors.New(corsConfig(cfg)))

    // Setup all routes
    routes.SetupRoutes(router, bot, whatsappService, smsService, reminderService)

    // Log available endpoints
    logAvailableEndpoints(router)

    // Create HTTP server
    srv := &http.Server{
        Addr:         ":" + cfg.Port,
        Handler:      router,
        ReadTimeout:  15 * time.Second,
        WriteTimeout: 15 * time.Second,
        IdleTimeout:  60 * time.Second,
    }

    // Start server in a goroutine
    go func() {
        log.Printf("Server starting on port %s", cfg.Port)
        log.Printf("Health check: http://localhost:%s/health", cfg.Port)
        log.Printf("WhatsApp webhook URL: http://localhost:%s/api/whatsapp/webhook", cfg.Port)

        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatalf("Failed to start server: %v", err)
        }
    }()

    // Wait for interrupt signal to gracefully shutdown the server
    quit := make(chan os.Signal, 1)
    signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
    <-quit

    log.Println("Shutting down server...")
    cancel()

    // Graceful shutdown with timeout
    shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
    defer shutdownCancel()

    if err := srv.Shutdown(shutdownCtx); err != nil {
        log.Printf("Server forced to shutdown: %v", err)
    }

    log.Println("Server exited")
}

// corsConfig builds the CORS policy from the configured origins
func corsConfig(cfg *config.Config) cors.Config {
    corsCfg := cors.DefaultConfig()
    corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")

    for _, origin := range cfg.Security.AllowedOrigins {
        if origin == "*" {
            corsCfg.AllowAllOrigins = true
            return corsCfg
        }
    }

    corsCfg.AllowOrigins = cfg.Security.AllowedOrigins
    corsCfg.AllowCredentials = true
    return corsCfg
}

// verifyWhatsAppConfig checks if WhatsApp configuration is present
func verifyWhatsAppConfig() error {
    required := []string{
        "WHATSAPP_ACCESS_TOKEN",
        "WHATSAPP_PHONE_NUMBER_ID",
        "WHATSAPP_VERIFY_TOKEN",
    }

    missing := []string{}
    for _, key := range required {
        if os.Getenv(key) == "" {
            missing = append(missing, key)
        }
    }

    if len(missing) > 0 {
        return fmt.Errorf("missing required environment variables: %v", missing)
    }

    return nil
}

// logAvailableEndpoints logs all registered routes
func logAvailableEndpoints(router *gin.Engine) {
    log.Println("\nAvailable endpoints:")
    for _, route := range router.Routes() {
        log.Printf("  %s %s", route.Method, route.Path)
    }
    log.Println("")
}
