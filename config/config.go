package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
    // Server
    Port        string
    Environment string

    // Database
    Database DatabaseConfig

    // Local event log storage
    SQLite SQLiteConfig

    // Knowledge base document
    KnowledgePath string

    // AI Service
    AI AIConfig

    // Translation Service
    Translate TranslateConfig

    // SMS Service
    SMS SMSConfig

    // Vaccination reminders
    Reminder ReminderConfig

    // Security
    Security SecurityConfig
}

type DatabaseConfig struct {
    Type     string // "mongodb"
    URI      string
    Name     string
    Host     string
    Port     string
    Username string
    Password string

    // Connection pool settings
    MaxConnections int
    MinConnections int
    MaxIdleTime    time.Duration
}

type SQLiteConfig struct {
    Path string
}

type AIConfig struct {
    Provider  string // "gemini"
    APIKey    string
    Model     string
    MaxTokens int
    Timeout   time.Duration
}

type TranslateConfig struct {
    Endpoint string
    Timeout  time.Duration
}

type SMSConfig struct {
    Provider   string // "twilio"
    AccountSID string
    AuthToken  string
    FromNumber string
}

type ReminderConfig struct {
    Enabled   bool
    Hour      int // hour of day, 0-23
    DaysAhead int
}

type SecurityConfig struct {
    AllowedOrigins []string
    TrustedProxies []string
}

var cfg *Config

// Load initializes the configuration
func Load() error {
    // Load .env file
    if err := godotenv.Load(); err != nil {
        log.Println("No .env file found, using environment variables")
    }

    cfg = &Config{
        Port:        getEnv("PORT", "8080"),
        Environment: getEnv("ENVIRONMENT", "development"),

        Database: DatabaseConfig{
            Type:     getEnv("DB_TYPE", "mongodb"),
            URI:      getEnv("DATABASE_URL", ""),
            Name:     getEnv("DB_NAME", "health_chatbot"),
            Host:     getEnv("DB_HOST", "localhost"),
            Port:     getEnv("DB_PORT", "27017"),
            Username: getEnv("DB_USERNAME", ""),
            Password: getEnv("DB_PASSWORD", ""),

            MaxConnections: getEnvAsInt("DB_MAX_CONNECTIONS", 100),
            MinConnections: getEnvAsInt("DB_MIN_CONNECTIONS", 10),
            MaxIdleTime:    getEnvAsDuration("DB_MAX_IDLE_TIME", "30m"),
        },

        SQLite: SQLiteConfig{
            Path: getEnv("HEALTH_LOG_DB_PATH", "./data/health_logs.db"),
        },

        KnowledgePath: getEnv("KNOWLEDGE_BASE_PATH", "./data/health_knowledge_base.json"),

        AI: AIConfig{
            Provider:  getEnv("AI_PROVIDER", "gemini"),
            APIKey:    getEnv("GOOGLE_API_KEY", ""),
            Model:     getEnv("AI_MODEL", "gemini-1.5-flash"),
            MaxTokens: getEnvAsInt("AI_MAX_TOKENS", 1000),
            Timeout:   getEnvAsDuration("AI_TIMEOUT", "30s"),
        },

        Translate: TranslateConfig{
            Endpoint: getEnv("TRANSLATE_ENDPOINT", "https://translate.googleapis.com/translate_a/single"),
            Timeout:  getEnvAsDuration("TRANSLATE_TIMEOUT", "10s"),
        },

        SMS: SMSConfig{
            Provider:   getEnv("SMS_PROVIDER", "twilio"),
            AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
            AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
            FromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
        },

        Reminder: ReminderConfig{
            Enabled:   getEnvAsBool("REMINDERS_ENABLED", true),
            Hour:      getEnvAsInt("REMINDER_HOUR", 9),
            DaysAhead: getEnvAsInt("REMINDER_DAYS_AHEAD", 30),
        },

        Security: SecurityConfig{
            AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
            TrustedProxies: getEnvAsSlice("TRUSTED_PROXIES", []string{}),
        },
    }

    // Validate configuration
    if err := validate(); err != nil {
        return fmt.Errorf("configuration validation failed: %w", err)
    }

    return nil
}

// Get returns the loaded configuration
func Get() *Config {
    if cfg == nil {
        log.Fatal("Configuration not loaded. Call Load() first")
    }
    return cfg
}

// Helper functions
func getEnv(key, defaultValue string) string {
    if value := os.Getenv(key); value != "" {
        return value
    }
    return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
    valueStr := getEnv(key, "")
    if value, err := strconv.Atoi(valueStr); err == nil {
        return value
    }
    return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
    valueStr := getEnv(key, "")
    if value, err := strconv.ParseBool(valueStr); err == nil {
        return value
    }
    return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
    valueStr := getEnv(key, defaultValue)
    if duration, err := time.ParseDuration(valueStr); err == nil {
        return duration
    }
    duration, _ := time.ParseDuration(defaultValue)
    return duration
}

func getEnvAsSlice(key string, defaultValue []string) []string {
    value := getEnv(key, "")
    if value == "" {
        return defaultValue
    }
    // Simple comma-separated parsing
    return strings.Split(value, ",")
}

func validate() error {
    // Validate required fields
    if cfg.Database.Type == "mongodb" && cfg.Database.URI == "" {
        if cfg.Database.Host == "" || cfg.Database.Port == "" {
            return fmt.Errorf("database URI or host/port must be provided")
        }
    }

    if cfg.Reminder.Hour < 0 || cfg.Reminder.Hour > 23 {
        return fmt.Errorf("reminder hour must be between 0 and 23")
    }

    // The bot answers without these, so only warn
    if cfg.AI.APIKey == "" {
        log.Println("GOOGLE_API_KEY not set, AI assist endpoints will be disabled")
    }
    if cfg.SMS.AccountSID == "" || cfg.SMS.AuthToken == "" {
        log.Println("Twilio credentials not set, outbound SMS will be disabled")
    }

    return nil
}

// BuildDatabaseURI constructs the database URI if not provided
func (c *Config) BuildDatabaseURI() string {
    if c.Database.URI != "" {
        return c.Database.URI
    }

    switch c.Database.Type {
    case "mongodb":
        if c.Database.Username != "" && c.Database.Password != "" {
            return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s",
                c.Database.Username,
                c.Database.Password,
                c.Database.Host,
                c.Database.Port,
                c.Database.Name,
            )
        }
        return fmt.Sprintf("mongodb://%s:%s/%s",
            c.Database.Host,
            c.Database.Port,
            c.Database.Name,
        )
    default:
        return ""
    }
}
