package models

import (
    "time"

    "go.mongodb.org/mongo-driver/bson/primitive"
)

// HealthStatistics aggregates daily query counters, one document per day
type HealthStatistics struct {
    ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
    Date               string             `bson:"date" json:"date"`
    TotalMessages      int                `bson:"total_messages" json:"total_messages"`
    WhatsAppMessages   int                `bson:"whatsapp_messages" json:"whatsapp_messages"`
    SMSMessages        int                `bson:"sms_messages" json:"sms_messages"`
    WebMessages        int                `bson:"web_messages" json:"web_messages"`
    UniqueUsers        int                `bson:"unique_users" json:"unique_users"`
    SymptomQueries     int                `bson:"symptom_queries" json:"symptom_queries"`
    VaccinationQueries int                `bson:"vaccination_queries" json:"vaccination_queries"`
    PreventionQueries  int                `bson:"prevention_queries" json:"prevention_queries"`
    EmergencyQueries   int                `bson:"emergency_queries" json:"emergency_queries"`
}

type OutbreakAlert struct {
    ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
    DiseaseName       string             `bson:"disease_name" json:"disease_name" binding:"required"`
    AlertMessage      string             `bson:"alert_message" json:"alert_message" binding:"required"`
    AffectedLocations []string           `bson:"affected_locations" json:"affected_locations"`
    SeverityLevel     string             `bson:"severity_level" json:"severity_level"`
    IsActive          bool               `bson:"is_active" json:"is_active"`
    CreatedBy         string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
    CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
    ExpiresAt         *time.Time         `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
}

type VaccinationReminder struct {
    ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
    PhoneNumber    string             `bson:"phone_number" json:"phone_number"`
    VaccineName    string             `bson:"vaccine_name" json:"vaccine_name"`
    DueDate        time.Time          `bson:"due_date" json:"due_date"`
    ReminderSent   bool               `bson:"reminder_sent" json:"reminder_sent"`
    ReminderSentAt *time.Time         `bson:"reminder_sent_at,omitempty" json:"reminder_sent_at,omitempty"`
    AgeGroup       string             `bson:"age_group" json:"age_group"`
    Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
    CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// HealthLog is a lightweight event record kept in the local SQLite store
type HealthLog struct {
    ID        int64  `json:"id"`
    UserID    string `json:"user_id"`
    Event     string `json:"event"`
    Date      string `json:"date"`
    CreatedAt string `json:"created_at"`
}

// Hospital is a nearby facility suggestion returned by the AI assist
type Hospital struct {
    Name    string  `json:"name"`
    Address string  `json:"address"`
    Lat     float64 `json:"lat"`
    Lon     float64 `json:"lon"`
}
