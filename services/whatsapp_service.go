// services/whatsapp_service.go
package services

import (
    "bytes"
    "encoding/json"
    "fmt"
    "io"
    "log"
    "net/http"
    "os"
    "strings"
    "sync"
    "time"

    "health-chatbot-backend/models"
)

type WhatsAppService struct {
    apiURL        string
    apiVersion    string
    accessToken   string
    phoneNumberID string
    verifyToken   string
    httpClient    *http.Client

    // Status tracking
    statusMu        sync.RWMutex
    lastMessageTime time.Time
    dailyCount      map[string]int
}

func NewWhatsAppService() *WhatsAppService {
    return &WhatsAppService{
        apiURL:        "https://graph.facebook.com",
        apiVersion:    "v18.0",
        accessToken:   os.Getenv("WHATSAPP_ACCESS_TOKEN"),
        phoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
        verifyToken:   os.Getenv("WHATSAPP_VERIFY_TOKEN"),
        httpClient: &http.Client{
            Timeout: 30 * time.Second,
        },
        dailyCount: make(map[string]int),
    }
}

// GetVerifyToken returns the webhook verification token
func (ws *WhatsAppService) GetVerifyToken() string {
    return ws.verifyToken
}

// Enabled reports whether outbound sending is configured
func (ws *WhatsAppService) Enabled() bool {
    return ws.accessToken != "" && ws.phoneNumberID != ""
}

// SendTextMessage sends a plain text message
func (ws *WhatsAppService) SendTextMessage(to string, message string) error {
    if !ws.Enabled() {
        return fmt.Errorf("whatsapp credentials not configured")
    }

    to = ws.CleanPhoneNumber(to)

    payload := models.WhatsAppSendMessage{
        MessagingProduct: "whatsapp",
        RecipientType:    "individual",
        To:               to,
        Type:             "text",
        Text: &models.WhatsAppText{
            Body: message,
        },
    }

    return ws.sendRequest(payload)
}

// MarkMessageAsRead marks an incoming message as read
func (ws *WhatsAppService) MarkMessageAsRead(messageID string) error {
    if !ws.Enabled() {
        return fmt.Errorf("whatsapp credentials not configured")
    }

    payload := map[string]interface{}{
        "messaging_product": "whatsapp",
        "status":            "read",
        "message_id":        messageID,
    }

    return ws.sendRequest(payload)
}

// sendRequest posts a payload to the WhatsApp messages endpoint
func (ws *WhatsAppService) sendRequest(payload interface{}) error {
    url := fmt.Sprintf("%s/%s/%s/messages", ws.apiURL, ws.apiVersion, ws.phoneNumberID)

    jsonPayload, err := json.Marshal(payload)
    if err != nil {
        return fmt.Errorf("failed to marshal payload: %w", err)
    }

    req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonPayload))
    if err != nil {
        return fmt.Errorf("failed to create request: %w", err)
    }

    req.Header.Set("Authorization", "Bearer "+ws.accessToken)
    req.Header.Set("Content-Type", "application/json")

    resp, err := ws.httpClient.Do(req)
    if err != nil {
        return fmt.Errorf("failed to send request: %w", err)
    }
    defer resp.Body.Close()

    body, err := io.ReadAll(resp.Body)
    if err != nil {
        return fmt.Errorf("failed to read response: %w", err)
    }

    if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
        var errorResp map[string]interface{}
        if err := json.Unmarshal(body, &errorResp); err == nil {
            log.Printf("WhatsApp API error details: %+v", errorResp)
            return fmt.Errorf("WhatsApp API error: %v", errorResp)
        }
        return fmt.Errorf("WhatsApp API error: %s", string(body))
    }

    ws.updateMessageStatus()
    return nil
}

// CleanPhoneNumber strips formatting and prefixes the country code for
// bare 10-digit numbers
func (ws *WhatsAppService) CleanPhoneNumber(phone string) string {
    cleaned := strings.Map(func(r rune) rune {
        if r >= '0' && r <= '9' {
            return r
        }
        return -1
    }, phone)

    if len(cleaned) == 10 {
        cleaned = "91" + cleaned
    }

    return cleaned
}

// updateMessageStatus updates internal message tracking
func (ws *WhatsAppService) updateMessageStatus() {
    ws.statusMu.Lock()
    defer ws.statusMu.Unlock()

    ws.lastMessageTime = time.Now()

    today := time.Now().Format("2006-01-02")
    ws.dailyCount[today]++
}

// SentToday returns how many messages went out today
func (ws *WhatsAppService) SentToday() int {
    ws.statusMu.RLock()
    defer ws.statusMu.RUnlock()

    return ws.dailyCount[time.Now().Format("2006-01-02")]
}
