package services

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "health-chatbot-backend/models"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func newTestWhatsAppService(server *httptest.Server) *WhatsAppService {
    return &WhatsAppService{
        apiURL:        server.URL,
        apiVersion:    "v18.0",
        accessToken:   "test-token",
        phoneNumberID: "12345",
        httpClient:    &http.Client{Timeout: 5 * time.Second},
        dailyCount:    make(map[string]int),
    }
}

func TestSendTextMessagePostsPayload(t *testing.T) {
    var gotAuth string
    var gotPayload models.WhatsAppSendMessage
    server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        gotAuth = r.Header.Get("Authorization")
        require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
        w.Write([]byte(`{"messages":[{"id":"wamid.test"}]}`))
    }))
    defer server.Close()

    ws := newTestWhatsAppService(server)
    err := ws.SendTextMessage("+91 98765 43210", "hello there")

    require.NoError(t, err)
    assert.Equal(t, "Bearer test-token", gotAuth)
    assert.Equal(t, "whatsapp", gotPayload.MessagingProduct)
    assert.Equal(t, "individual", gotPayload.RecipientType)
    assert.Equal(t, "919876543210", gotPayload.To)
    assert.Equal(t, "text", gotPayload.Type)
    require.NotNil(t, gotPayload.Text)
    assert.Equal(t, "hello there", gotPayload.Text.Body)
}

func TestSendTextMessageAPIError(t *testing.T) {
    server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusUnauthorized)
        w.Write([]byte(`{"error":{"message":"Invalid OAuth access token","code":190}}`))
    }))
    defer server.Close()

    ws := newTestWhatsAppService(server)
    err := ws.SendTextMessage("919876543210", "hello")

    require.Error(t, err)
    assert.Contains(t, err.Error(), "WhatsApp API error")
}

func TestSendTextMessageWithoutCredentials(t *testing.T) {
    ws := &WhatsAppService{dailyCount: make(map[string]int)}

    err := ws.SendTextMessage("919876543210", "hello")

    require.Error(t, err)
    assert.Contains(t, err.Error(), "not configured")
}

func TestCleanPhoneNumber(t *testing.T) {
    ws := &WhatsAppService{}

    assert.Equal(t, "919876543210", ws.CleanPhoneNumber("9876543210"))
    assert.Equal(t, "919876543210", ws.CleanPhoneNumber("+91 98765-43210"))
    assert.Equal(t, "919876543210", ws.CleanPhoneNumber("whatsapp:+919876543210"))
    assert.Equal(t, "14155550100", ws.CleanPhoneNumber("+1 415 555 0100"))
}

func TestSentTodayTracksDeliveries(t *testing.T) {
    server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Write([]byte(`{"messages":[{"id":"wamid.test"}]}`))
    }))
    defer server.Close()

    ws := newTestWhatsAppService(server)
    assert.Equal(t, 0, ws.SentToday())

    require.NoError(t, ws.SendTextMessage("919876543210", "one"))
    require.NoError(t, ws.SendTextMessage("919876543210", "two"))

    assert.Equal(t, 2, ws.SentToday())
}
