package services

import (
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"

    "health-chatbot-backend/config"

    "github.com/abadojack/whatlanggo"
)

// TranslationService detects message language and translates text through
// the public Google translate endpoint. It satisfies the bot's
// TranslationProvider interface.
type TranslationService struct {
    endpoint   string
    httpClient *http.Client
}

func NewTranslationService() *TranslationService {
    cfg := config.Get()
    return &TranslationService{
        endpoint: cfg.Translate.Endpoint,
        httpClient: &http.Client{
            Timeout: cfg.Translate.Timeout,
        },
    }
}

// DetectLanguage returns the ISO 639-1 code of the text's language
func (ts *TranslationService) DetectLanguage(text string) (string, error) {
    if strings.TrimSpace(text) == "" {
        return "", fmt.Errorf("cannot detect language of empty text")
    }

    info := whatlanggo.Detect(text)
    if info.Lang == -1 {
        return "", fmt.Errorf("could not detect language")
    }

    code := info.Lang.Iso6391()
    if code == "" {
        return "", fmt.Errorf("no ISO 639-1 code for detected language %s", info.Lang.String())
    }
    return code, nil
}

// Translate converts text between languages. An empty sourceLang means
// the endpoint should auto-detect the source.
func (ts *TranslationService) Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
    if sourceLang == "" {
        sourceLang = "auto"
    }

    params := url.Values{}
    params.Set("client", "gtx")
    params.Set("sl", sourceLang)
    params.Set("tl", targetLang)
    params.Set("dt", "t")
    params.Set("q", text)

    req, err := http.NewRequestWithContext(ctx, "GET", ts.endpoint+"?"+params.Encode(), nil)
    if err != nil {
        return "", fmt.Errorf("failed to create translate request: %w", err)
    }

    resp, err := ts.httpClient.Do(req)
    if err != nil {
        return "", fmt.Errorf("failed to call translate endpoint: %w", err)
    }
    defer resp.Body.Close()

    body, err := io.ReadAll(resp.Body)
    if err != nil {
        return "", fmt.Errorf("failed to read translate response: %w", err)
    }

    if resp.StatusCode != http.StatusOK {
        return "", fmt.Errorf("translate endpoint returned %d: %s", resp.StatusCode, string(body))
    }

    translated, err := parseTranslateResponse(body)
    if err != nil {
        return "", err
    }
    return translated, nil
}

// parseTranslateResponse extracts the translated text from the endpoint's
// nested-array payload: [[["translated","original",...], ...], ...]
func parseTranslateResponse(body []byte) (string, error) {
    var payload []interface{}
    if err := json.Unmarshal(body, &payload); err != nil {
        return "", fmt.Errorf("failed to decode translate response: %w", err)
    }
    if len(payload) == 0 {
        return "", fmt.Errorf("empty translate response")
    }

    segments, ok := payload[0].([]interface{})
    if !ok {
        return "", fmt.Errorf("unexpected translate response shape")
    }

    var sb strings.Builder
    for _, seg := range segments {
        parts, ok := seg.([]interface{})
        if !ok || len(parts) == 0 {
            continue
        }
        if chunk, ok := parts[0].(string); ok {
            sb.WriteString(chunk)
        }
    }

    if sb.Len() == 0 {
        return "", fmt.Errorf("translate response contained no text")
    }
    return sb.String(), nil
}
