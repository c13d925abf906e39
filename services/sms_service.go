package services

import (
    "context"
    "encoding/json"
    "encoding/xml"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"
    "time"

    "health-chatbot-backend/config"
)

// SMSService delivers outbound text messages through the Twilio REST API.
// Inbound SMS arrives over the Twilio webhook and is answered with TwiML.
type SMSService struct {
    accountSID string
    authToken  string
    fromNumber string
    apiURL     string
    httpClient *http.Client
}

func NewSMSService() *SMSService {
    cfg := config.Get()
    return &SMSService{
        accountSID: cfg.SMS.AccountSID,
        authToken:  cfg.SMS.AuthToken,
        fromNumber: cfg.SMS.FromNumber,
        apiURL:     "https://api.twilio.com/2010-04-01",
        httpClient: &http.Client{
            Timeout: 30 * time.Second,
        },
    }
}

// Enabled reports whether outbound sending is configured
func (s *SMSService) Enabled() bool {
    return s.accountSID != "" && s.authToken != "" && s.fromNumber != ""
}

// SendSMS sends one message and returns the Twilio message SID
func (s *SMSService) SendSMS(ctx context.Context, to, body string) (string, error) {
    if !s.Enabled() {
        return "", fmt.Errorf("twilio credentials not configured")
    }

    endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.apiURL, s.accountSID)

    form := url.Values{}
    form.Set("To", to)
    form.Set("From", s.fromNumber)
    form.Set("Body", body)

    req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
    if err != nil {
        return "", fmt.Errorf("failed to create SMS request: %w", err)
    }
    req.SetBasicAuth(s.accountSID, s.authToken)
    req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

    resp, err := s.httpClient.Do(req)
    if err != nil {
        return "", fmt.Errorf("failed to send SMS: %w", err)
    }
    defer resp.Body.Close()

    respBody, err := io.ReadAll(resp.Body)
    if err != nil {
        return "", fmt.Errorf("failed to read Twilio response: %w", err)
    }

    if resp.StatusCode < 200 || resp.StatusCode > 299 {
        var apiErr struct {
            Code    int    `json:"code"`
            Message string `json:"message"`
        }
        if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
            return "", fmt.Errorf("Twilio error %d: %s", apiErr.Code, apiErr.Message)
        }
        return "", fmt.Errorf("Twilio error: %s", string(respBody))
    }

    var result struct {
        SID    string `json:"sid"`
        Status string `json:"status"`
    }
    if err := json.Unmarshal(respBody, &result); err != nil {
        return "", fmt.Errorf("failed to decode Twilio response: %w", err)
    }
    return result.SID, nil
}

type twimlResponse struct {
    XMLName xml.Name `xml:"Response"`
    Message string   `xml:"Message"`
}

// BuildTwiML wraps a reply in the TwiML envelope Twilio webhooks expect
func BuildTwiML(message string) string {
    out, err := xml.Marshal(twimlResponse{Message: message})
    if err != nil {
        return xml.Header + "<Response></Response>"
    }
    return xml.Header + string(out)
}
