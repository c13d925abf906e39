package services

import (
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func geminiPayload(text string) string {
    quoted, _ := json.Marshal(text)
    return fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":%s}]}}]}`, quoted)
}

func newTestGeminiService(server *httptest.Server) *GeminiService {
    return &GeminiService{
        apiKey:     "test-key",
        apiURL:     server.URL,
        maxTokens:  500,
        httpClient: &http.Client{Timeout: 5 * time.Second},
    }
}

func TestGenerateHealthAnswer(t *testing.T) {
    var gotPrompt string
    server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        var payload struct {
            Contents []struct {
                Parts []struct {
                    Text string `json:"text"`
                } `json:"parts"`
            } `json:"contents"`
        }
        require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
        gotPrompt = payload.Contents[0].Parts[0].Text
        w.Write([]byte(geminiPayload("Stay hydrated and rest. See a doctor if symptoms persist.")))
    }))
    defer server.Close()

    s := newTestGeminiService(server)
    answer, err := s.GenerateHealthAnswer(context.Background(), "how do I recover from flu?", "en")

    require.NoError(t, err)
    assert.Contains(t, answer, "Stay hydrated")
    assert.Contains(t, gotPrompt, "healthcare information assistant")
    assert.Contains(t, gotPrompt, "how do I recover from flu?")
}

func TestFindNearbyHospitalsParsesFencedJSON(t *testing.T) {
    server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        raw := "```json\n[{\"name\":\"District Hospital\",\"address\":\"MG Road\",\"lat\":12.97,\"lon\":77.59}]\n```"
        w.Write([]byte(geminiPayload(raw)))
    }))
    defer server.Close()

    s := newTestGeminiService(server)
    hospitals, err := s.FindNearbyHospitals(context.Background(), 12.97, 77.59)

    require.NoError(t, err)
    require.Len(t, hospitals, 1)
    assert.Equal(t, "District Hospital", hospitals[0].Name)
    assert.Equal(t, "MG Road", hospitals[0].Address)
    assert.InDelta(t, 12.97, hospitals[0].Lat, 1e-9)
    assert.InDelta(t, 77.59, hospitals[0].Lon, 1e-9)
}

func TestFindNearbyHospitalsRejectsProseOnlyReply(t *testing.T) {
    server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Write([]byte(geminiPayload("I am unable to list facilities for that location.")))
    }))
    defer server.Close()

    s := newTestGeminiService(server)
    _, err := s.FindNearbyHospitals(context.Background(), 0, 0)

    assert.Error(t, err)
}

func TestGenerateWithoutAPIKey(t *testing.T) {
    s := &GeminiService{}

    _, err := s.GenerateHealthAnswer(context.Background(), "question", "en")

    require.Error(t, err)
    assert.Contains(t, err.Error(), "not configured")
}

func TestGenerateAPIError(t *testing.T) {
    server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
    }))
    defer server.Close()

    s := newTestGeminiService(server)
    _, err := s.GenerateHealthAnswer(context.Background(), "question", "en")

    require.Error(t, err)
    assert.Contains(t, err.Error(), "AI API error")
}
