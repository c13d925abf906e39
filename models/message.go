package models

import (
    "time"

    "go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageIntent string

const (
    IntentGreeting     MessageIntent = "greeting"
    IntentEmergency    MessageIntent = "emergency"
    IntentVaccination  MessageIntent = "vaccination"
    IntentPrevention   MessageIntent = "prevention"
    IntentSymptomQuery MessageIntent = "symptom_query"
    IntentFallback     MessageIntent = "fallback"
)

// MessageChannel represents the communication channel
type MessageChannel string

const (
    ChannelWeb      MessageChannel = "web"
    ChannelWhatsApp MessageChannel = "whatsapp"
    ChannelSMS      MessageChannel = "sms"
)

// Message is one stored conversation turn
type Message struct {
    ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
    SessionID   string                 `bson:"session_id" json:"session_id"`
    UserID      string                 `bson:"user_id,omitempty" json:"user_id,omitempty"`
    Channel     MessageChannel         `bson:"channel" json:"channel"`
    UserMessage string                 `bson:"user_message" json:"user_message"`
    BotResponse string                 `bson:"bot_response" json:"bot_response"`
    Intent      MessageIntent          `bson:"intent" json:"intent"`
    Language    string                 `bson:"language" json:"language"`
    Timestamp   time.Time              `bson:"timestamp" json:"timestamp"`
    Metadata    map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

type ChatRequest struct {
    Message   string                 `json:"message" binding:"required"`
    SessionID string                 `json:"session_id" binding:"required"`
    UserID    string                 `json:"user_id,omitempty"`
    Language  string                 `json:"language,omitempty"`
    Channel   MessageChannel         `json:"channel,omitempty"`
    Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type ChatResponse struct {
    Response     string                 `json:"response"`
    Intent       MessageIntent          `json:"intent"`
    Language     string                 `json:"language"`
    ResponseType ResponseType           `json:"response_type,omitempty"`
    Data         map[string]interface{} `json:"data,omitempty"`
}

type ResponseType string

const (
    ResponseTypeText ResponseType = "text"
    ResponseTypeHTML ResponseType = "html"
)

// Helper to create a plain text response
func NewTextResponse(text string, intent MessageIntent, language string) *ChatResponse {
    return &ChatResponse{
        Response:     text,
        Intent:       intent,
        Language:     language,
        ResponseType: ResponseTypeText,
    }
}
