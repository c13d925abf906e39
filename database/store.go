package database

import (
    "context"
    "fmt"
    "time"

    "health-chatbot-backend/models"

    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/mongo/options"
)

// SaveMessage stores one conversation turn
func SaveMessage(ctx context.Context, message *models.Message) error {
    if message.Timestamp.IsZero() {
        message.Timestamp = time.Now()
    }

    _, err := GetCollection("messages").InsertOne(ctx, message)
    if err != nil {
        return fmt.Errorf("failed to save message: %w", err)
    }
    return nil
}

// GetSessionMessages returns the turns of one session, oldest first
func GetSessionMessages(ctx context.Context, sessionID string, limit int64) ([]models.Message, error) {
    opts := options.Find().
        SetSort(bson.D{{Key: "timestamp", Value: 1}}).
        SetLimit(limit)

    cursor, err := GetCollection("messages").Find(ctx, bson.M{"session_id": sessionID}, opts)
    if err != nil {
        return nil, fmt.Errorf("failed to query session messages: %w", err)
    }
    defer cursor.Close(ctx)

    var messages []models.Message
    if err := cursor.All(ctx, &messages); err != nil {
        return nil, fmt.Errorf("failed to decode session messages: %w", err)
    }
    return messages, nil
}

// GetRecentMessages returns the latest turns across all sessions
func GetRecentMessages(ctx context.Context, limit int64) ([]models.Message, error) {
    opts := options.Find().
        SetSort(bson.D{{Key: "timestamp", Value: -1}}).
        SetLimit(limit)

    cursor, err := GetCollection("messages").Find(ctx, bson.M{}, opts)
    if err != nil {
        return nil, fmt.Errorf("failed to query messages: %w", err)
    }
    defer cursor.Close(ctx)

    var messages []models.Message
    if err := cursor.All(ctx, &messages); err != nil {
        return nil, fmt.Errorf("failed to decode messages: %w", err)
    }
    return messages, nil
}

// UpsertUser creates or refreshes the user behind a phone number. The
// bool reports whether a new user document was created. Name and
// language only overwrite when non-empty.
func UpsertUser(ctx context.Context, phoneNumber, name, language string) (*models.User, bool, error) {
    now := time.Now()

    set := bson.M{"updated_at": now}
    if name != "" {
        set["name"] = name
    }
    if language != "" {
        set["language"] = language
    }

    update := bson.M{
        "$set": set,
        "$setOnInsert": bson.M{
            "phone_number": phoneNumber,
            "created_at":   now,
        },
    }

    collection := GetCollection("users")
    result, err := collection.UpdateOne(ctx, bson.M{"phone_number": phoneNumber}, update,
        options.Update().SetUpsert(true))
    if err != nil {
        return nil, false, fmt.Errorf("failed to upsert user: %w", err)
    }

    var user models.User
    if err := collection.FindOne(ctx, bson.M{"phone_number": phoneNumber}).Decode(&user); err != nil {
        return nil, false, fmt.Errorf("failed to load user: %w", err)
    }
    return &user, result.UpsertedCount > 0, nil
}

// FindUserByPhone looks up a user without creating one. Returns
// mongo.ErrNoDocuments when the phone number is unknown.
func FindUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
    var user models.User
    if err := GetCollection("users").FindOne(ctx, bson.M{"phone_number": phoneNumber}).Decode(&user); err != nil {
        return nil, err
    }
    return &user, nil
}

// ListUsers returns all registered users, newest first
func ListUsers(ctx context.Context) ([]models.User, error) {
    opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

    cursor, err := GetCollection("users").Find(ctx, bson.M{}, opts)
    if err != nil {
        return nil, fmt.Errorf("failed to query users: %w", err)
    }
    defer cursor.Close(ctx)

    var users []models.User
    if err := cursor.All(ctx, &users); err != nil {
        return nil, fmt.Errorf("failed to decode users: %w", err)
    }
    return users, nil
}

// CountUsers returns the total number of registered users
func CountUsers(ctx context.Context) (int64, error) {
    count, err := GetCollection("users").CountDocuments(ctx, bson.M{})
    if err != nil {
        return 0, fmt.Errorf("failed to count users: %w", err)
    }
    return count, nil
}

// CountMessages returns the total number of stored conversations
func CountMessages(ctx context.Context) (int64, error) {
    count, err := GetCollection("messages").CountDocuments(ctx, bson.M{})
    if err != nil {
        return 0, fmt.Errorf("failed to count messages: %w", err)
    }
    return count, nil
}

// ListUsersByLanguage returns users who prefer the given language
func ListUsersByLanguage(ctx context.Context, language string) ([]models.User, error) {
    cursor, err := GetCollection("users").Find(ctx, bson.M{"language": language})
    if err != nil {
        return nil, fmt.Errorf("failed to query users by language: %w", err)
    }
    defer cursor.Close(ctx)

    var users []models.User
    if err := cursor.All(ctx, &users); err != nil {
        return nil, fmt.Errorf("failed to decode users: %w", err)
    }
    return users, nil
}

// statisticsDate formats the daily statistics bucket key
func statisticsDate(t time.Time) string {
    return t.Format("2006-01-02")
}

// counterForIntent maps an intent to its daily statistics counter.
// Greetings and fallbacks only count toward the message total.
func counterForIntent(intent models.MessageIntent) string {
    switch intent {
    case models.IntentSymptomQuery:
        return "symptom_queries"
    case models.IntentVaccination:
        return "vaccination_queries"
    case models.IntentPrevention:
        return "prevention_queries"
    case models.IntentEmergency:
        return "emergency_queries"
    default:
        return ""
    }
}

// counterForChannel maps a channel to its daily statistics counter
func counterForChannel(channel models.MessageChannel) string {
    switch channel {
    case models.ChannelWhatsApp:
        return "whatsapp_messages"
    case models.ChannelSMS:
        return "sms_messages"
    default:
        return "web_messages"
    }
}

// RecordQueryStatistics bumps today's counters for one handled message
func RecordQueryStatistics(ctx context.Context, channel models.MessageChannel, intent models.MessageIntent, newUser bool) error {
    inc := bson.M{
        "total_messages":            1,
        counterForChannel(channel): 1,
    }
    if counter := counterForIntent(intent); counter != "" {
        inc[counter] = 1
    }
    if newUser {
        inc["unique_users"] = 1
    }

    today := statisticsDate(time.Now())
    update := bson.M{
        "$inc":         inc,
        "$setOnInsert": bson.M{"date": today},
    }

    _, err := GetCollection("statistics").UpdateOne(ctx, bson.M{"date": today}, update,
        options.Update().SetUpsert(true))
    if err != nil {
        return fmt.Errorf("failed to record statistics: %w", err)
    }
    return nil
}

// GetStatistics returns the daily statistics for the last N days,
// newest first
func GetStatistics(ctx context.Context, days int) ([]models.HealthStatistics, error) {
    since := statisticsDate(time.Now().AddDate(0, 0, -days))

    opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
    cursor, err := GetCollection("statistics").Find(ctx, bson.M{"date": bson.M{"$gte": since}}, opts)
    if err != nil {
        return nil, fmt.Errorf("failed to query statistics: %w", err)
    }
    defer cursor.Close(ctx)

    var stats []models.HealthStatistics
    if err := cursor.All(ctx, &stats); err != nil {
        return nil, fmt.Errorf("failed to decode statistics: %w", err)
    }
    return stats, nil
}
