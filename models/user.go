package models

import (
    "time"

    "go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a citizen reachable over WhatsApp or SMS, keyed by phone number
type User struct {
    ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
    PhoneNumber string             `bson:"phone_number" json:"phone_number"`
    Name        string             `bson:"name,omitempty" json:"name,omitempty"`
    Age         int                `bson:"age,omitempty" json:"age,omitempty"`
    Language    string             `bson:"language" json:"language"`
    Location    string             `bson:"location,omitempty" json:"location,omitempty"`
    CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
    UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

type Doctor struct {
    ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
    Name      string             `bson:"name" json:"name"`
    Specialty string             `bson:"specialty" json:"specialty"`
    Location  string             `bson:"location" json:"location"`
    Phone     string             `bson:"phone" json:"phone"`
}
