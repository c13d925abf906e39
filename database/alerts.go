package database

import (
    "context"
    "fmt"
    "log"
    "time"

    "health-chatbot-backend/models"

    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/bson/primitive"
    "go.mongodb.org/mongo-driver/mongo/options"
)

// CreateOutbreakAlert stores a new alert. Severity defaults to medium.
func CreateOutbreakAlert(ctx context.Context, alert *models.OutbreakAlert) error {
    if alert.SeverityLevel == "" {
        alert.SeverityLevel = "medium"
    }
    alert.IsActive = true
    alert.CreatedAt = time.Now()

    result, err := GetCollection("outbreak_alerts").InsertOne(ctx, alert)
    if err != nil {
        return fmt.Errorf("failed to create outbreak alert: %w", err)
    }
    if id, ok := result.InsertedID.(primitive.ObjectID); ok {
        alert.ID = id
    }
    return nil
}

// ListActiveOutbreakAlerts returns unexpired active alerts, newest first
func ListActiveOutbreakAlerts(ctx context.Context) ([]models.OutbreakAlert, error) {
    filter := bson.M{
        "is_active": true,
        "$or": []bson.M{
            {"expires_at": bson.M{"$exists": false}},
            {"expires_at": nil},
            {"expires_at": bson.M{"$gt": time.Now()}},
        },
    }

    opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
    cursor, err := GetCollection("outbreak_alerts").Find(ctx, filter, opts)
    if err != nil {
        return nil, fmt.Errorf("failed to query outbreak alerts: %w", err)
    }
    defer cursor.Close(ctx)

    var alerts []models.OutbreakAlert
    if err := cursor.All(ctx, &alerts); err != nil {
        return nil, fmt.Errorf("failed to decode outbreak alerts: %w", err)
    }
    return alerts, nil
}

// DeactivateOutbreakAlert retires an alert by id
func DeactivateOutbreakAlert(ctx context.Context, id string) error {
    objectID, err := primitive.ObjectIDFromHex(id)
    if err != nil {
        return fmt.Errorf("invalid alert id: %w", err)
    }

    result, err := GetCollection("outbreak_alerts").UpdateOne(ctx,
        bson.M{"_id": objectID},
        bson.M{"$set": bson.M{"is_active": false}})
    if err != nil {
        return fmt.Errorf("failed to deactivate outbreak alert: %w", err)
    }
    if result.MatchedCount == 0 {
        return fmt.Errorf("outbreak alert %s not found", id)
    }
    return nil
}

// SeedDoctors inserts the sample doctors once, on an empty collection
func SeedDoctors(ctx context.Context) error {
    collection := GetCollection("doctors")

    count, err := collection.CountDocuments(ctx, bson.M{})
    if err != nil {
        return fmt.Errorf("failed to count doctors: %w", err)
    }
    if count > 0 {
        return nil
    }

    doctors := []interface{}{
        models.Doctor{Name: "Dr. Asha Singh", Specialty: "General Physician", Location: "Village Clinic", Phone: "9876543210"},
        models.Doctor{Name: "Dr. Ramesh Kumar", Specialty: "Pediatrician", Location: "District Hospital", Phone: "9123456780"},
        models.Doctor{Name: "Dr. Priya Patel", Specialty: "Gynecologist", Location: "Community Health Center", Phone: "9988776655"},
    }

    if _, err := collection.InsertMany(ctx, doctors); err != nil {
        return fmt.Errorf("failed to seed doctors: %w", err)
    }
    log.Println("Sample doctors seeded")
    return nil
}

// ListDoctors returns all registered doctors
func ListDoctors(ctx context.Context) ([]models.Doctor, error) {
    cursor, err := GetCollection("doctors").Find(ctx, bson.M{})
    if err != nil {
        return nil, fmt.Errorf("failed to query doctors: %w", err)
    }
    defer cursor.Close(ctx)

    var doctors []models.Doctor
    if err := cursor.All(ctx, &doctors); err != nil {
        return nil, fmt.Errorf("failed to decode doctors: %w", err)
    }
    return doctors, nil
}
