package database

import (
    "context"
    "fmt"
    "time"

    "health-chatbot-backend/models"

    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/bson/primitive"
    "go.mongodb.org/mongo-driver/mongo/options"
)

// CreateVaccinationReminder schedules a reminder for a phone number
func CreateVaccinationReminder(ctx context.Context, reminder *models.VaccinationReminder) error {
    reminder.ReminderSent = false
    reminder.CreatedAt = time.Now()

    result, err := GetCollection("vaccination_reminders").InsertOne(ctx, reminder)
    if err != nil {
        return fmt.Errorf("failed to create vaccination reminder: %w", err)
    }
    if id, ok := result.InsertedID.(primitive.ObjectID); ok {
        reminder.ID = id
    }
    return nil
}

// DueVaccinationReminders returns unsent reminders whose due date has arrived
func DueVaccinationReminders(ctx context.Context) ([]models.VaccinationReminder, error) {
    filter := bson.M{
        "reminder_sent": false,
        "due_date":      bson.M{"$lte": time.Now()},
    }

    opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
    cursor, err := GetCollection("vaccination_reminders").Find(ctx, filter, opts)
    if err != nil {
        return nil, fmt.Errorf("failed to query due reminders: %w", err)
    }
    defer cursor.Close(ctx)

    var reminders []models.VaccinationReminder
    if err := cursor.All(ctx, &reminders); err != nil {
        return nil, fmt.Errorf("failed to decode due reminders: %w", err)
    }
    return reminders, nil
}

// UpcomingReminders returns a user's unsent reminders due within the next
// daysAhead days. Overdue reminders are included.
func UpcomingReminders(ctx context.Context, phoneNumber string, daysAhead int) ([]models.VaccinationReminder, error) {
    filter := bson.M{
        "phone_number":  phoneNumber,
        "reminder_sent": false,
        "due_date":      bson.M{"$lte": time.Now().AddDate(0, 0, daysAhead)},
    }

    opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
    cursor, err := GetCollection("vaccination_reminders").Find(ctx, filter, opts)
    if err != nil {
        return nil, fmt.Errorf("failed to query upcoming reminders: %w", err)
    }
    defer cursor.Close(ctx)

    var reminders []models.VaccinationReminder
    if err := cursor.All(ctx, &reminders); err != nil {
        return nil, fmt.Errorf("failed to decode upcoming reminders: %w", err)
    }
    return reminders, nil
}

// MarkReminderSent records that the reminder message went out
func MarkReminderSent(ctx context.Context, id primitive.ObjectID) error {
    now := time.Now()
    _, err := GetCollection("vaccination_reminders").UpdateOne(ctx,
        bson.M{"_id": id},
        bson.M{"$set": bson.M{
            "reminder_sent":    true,
            "reminder_sent_at": now,
        }})
    if err != nil {
        return fmt.Errorf("failed to mark reminder sent: %w", err)
    }
    return nil
}

// CompleteReminder marks a vaccination as done so no further reminders go out
func CompleteReminder(ctx context.Context, id string) error {
    objectID, err := primitive.ObjectIDFromHex(id)
    if err != nil {
        return fmt.Errorf("invalid reminder id: %w", err)
    }

    var reminder models.VaccinationReminder
    err = GetCollection("vaccination_reminders").FindOne(ctx, bson.M{"_id": objectID}).Decode(&reminder)
    if err != nil {
        return fmt.Errorf("vaccination reminder %s not found: %w", id, err)
    }

    notes := reminder.Notes
    if notes == "" {
        notes = "Completed"
    } else {
        notes = notes + " - Completed"
    }

    now := time.Now()
    _, err = GetCollection("vaccination_reminders").UpdateOne(ctx,
        bson.M{"_id": objectID},
        bson.M{"$set": bson.M{
            "reminder_sent":    true,
            "reminder_sent_at": now,
            "notes":            notes,
        }})
    if err != nil {
        return fmt.Errorf("failed to complete reminder: %w", err)
    }
    return nil
}
