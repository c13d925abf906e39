package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"health-chatbot-backend/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
    mongoClient *mongo.Client
    mongoDB     *mongo.Database
)

// ConnectMongoDB establishes connection to MongoDB
func ConnectMongoDB(cfg *config.Config) error {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    // Set client options
    clientOptions := options.Client().
        ApplyURI(cfg.BuildDatabaseURI()).
        SetMaxPoolSize(uint64(cfg.Database.MaxConnections)).
        SetMinPoolSize(uint64(cfg.Database.MinConnections)).
        SetMaxConnIdleTime(cfg.Database.MaxIdleTime)

    // Connect to MongoDB
    client, err := mongo.Connect(ctx, clientOptions)
    if err != nil {
        return fmt.Errorf("failed to connect to MongoDB: %w", err)
    }

    // Ping the database
    if err := client.Ping(ctx, readpref.Primary()); err != nil {
        return fmt.Errorf("failed to ping MongoDB: %w", err)
    }

    mongoClient = client
    mongoDB = client.Database(cfg.Database.Name)

    log.Printf("Connected to MongoDB database: %s", cfg.Database.Name)

    // Create indexes
    if err := createIndexes(ctx); err != nil {
        return fmt.Errorf("failed to create indexes: %w", err)
    }

    return nil
}

// GetMongoDB returns the MongoDB database instance
func GetMongoDB() *mongo.Database {
    if mongoDB == nil {
        log.Fatal("MongoDB not initialized")
    }
    return mongoDB
}

// GetMongoClient returns the MongoDB client
func GetMongoClient() *mongo.Client {
    if mongoClient == nil {
        log.Fatal("MongoDB client not initialized")
    }
    return mongoClient
}

// GetCollection returns a handle to a named collection
func GetCollection(name string) *mongo.Collection {
    return GetMongoDB().Collection(name)
}

// createIndexes creates necessary indexes
func createIndexes(ctx context.Context) error {
    // Messages indexes
    messagesCollection := mongoDB.Collection("messages")
    messageIndexes := []mongo.IndexModel{
        {
            Keys: bson.D{{Key: "session_id", Value: 1}},
        },
        {
            Keys: bson.D{{Key: "user_id", Value: 1}},
        },
        {
            Keys: bson.D{{Key: "timestamp", Value: -1}},
        },
    }

    if _, err := messagesCollection.Indexes().CreateMany(ctx, messageIndexes); err != nil {
        return fmt.Errorf("failed to create message indexes: %w", err)
    }

    // Users indexes
    usersCollection := mongoDB.Collection("users")
    userIndexes := []mongo.IndexModel{
        {
            Keys:    bson.D{{Key: "phone_number", Value: 1}},
            Options: options.Index().SetUnique(true),
        },
        {
            Keys: bson.D{{Key: "language", Value: 1}},
        },
    }

    if _, err := usersCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
        return fmt.Errorf("failed to create user indexes: %w", err)
    }

    // Statistics indexes, one document per day
    statsCollection := mongoDB.Collection("statistics")
    statsIndexes := []mongo.IndexModel{
        {
            Keys:    bson.D{{Key: "date", Value: 1}},
            Options: options.Index().SetUnique(true),
        },
    }

    if _, err := statsCollection.Indexes().CreateMany(ctx, statsIndexes); err != nil {
        return fmt.Errorf("failed to create statistics indexes: %w", err)
    }

    // Outbreak alert indexes
    alertsCollection := mongoDB.Collection("outbreak_alerts")
    alertIndexes := []mongo.IndexModel{
        {
            Keys: bson.D{
                {Key: "is_active", Value: 1},
                {Key: "created_at", Value: -1},
            },
        },
    }

    if _, err := alertsCollection.Indexes().CreateMany(ctx, alertIndexes); err != nil {
        return fmt.Errorf("failed to create outbreak alert indexes: %w", err)
    }

    // Vaccination reminder indexes
    remindersCollection := mongoDB.Collection("vaccination_reminders")
    reminderIndexes := []mongo.IndexModel{
        {
            Keys: bson.D{{Key: "phone_number", Value: 1}},
        },
        {
            Keys: bson.D{
                {Key: "reminder_sent", Value: 1},
                {Key: "due_date", Value: 1},
            },
        },
    }

    if _, err := remindersCollection.Indexes().CreateMany(ctx, reminderIndexes); err != nil {
        return fmt.Errorf("failed to create reminder indexes: %w", err)
    }

    log.Println("Database indexes created successfully")
    return nil
}

// DisconnectMongoDB closes the MongoDB connection
func DisconnectMongoDB() error {
    if mongoClient == nil {
        return nil
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    if err := mongoClient.Disconnect(ctx); err != nil {
        return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
    }

    log.Println("Disconnected from MongoDB")
    return nil
}
