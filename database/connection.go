package database

import (
	"context"
	"fmt"
	"time"

	"health-chatbot-backend/config"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect establishes every storage backend the service needs:
// MongoDB for conversation data and the local SQLite store for health
// event logs.
func Connect(cfg *config.Config) error {
    switch cfg.Database.Type {
    case "mongodb":
        if err := ConnectMongoDB(cfg); err != nil {
            return err
        }
    default:
        return fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
    }

    if err := OpenHealthLog(cfg.SQLite.Path); err != nil {
        return fmt.Errorf("failed to open health log store: %w", err)
    }
    return nil
}

// Disconnect closes all storage backends
func Disconnect() error {
    if err := CloseHealthLog(); err != nil {
        return err
    }

    cfg := config.Get()
    switch cfg.Database.Type {
    case "mongodb":
        return DisconnectMongoDB()
    default:
        return nil
    }
}

// HealthCheck pings every storage backend
func HealthCheck() error {
    cfg := config.Get()

    switch cfg.Database.Type {
    case "mongodb":
        client := GetMongoClient()
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if err := client.Ping(ctx, readpref.Primary()); err != nil {
            return err
        }
    default:
        return fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
    }

    return PingHealthLog()
}
