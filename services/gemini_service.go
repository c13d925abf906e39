package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"health-chatbot-backend/config"
	"health-chatbot-backend/models"
	"health-chatbot-backend/utils"
)

const healthAssistPreamble = "You are a multilingual healthcare information assistant. " +
	"Provide evidence-based, non-diagnostic guidance, include red-flag warnings, " +
	"and urge seeking professional care for emergencies. Avoid definitive diagnoses."

type GeminiService struct {
	apiKey     string
	apiURL     string
	maxTokens  int
	httpClient *http.Client
}

func NewGeminiService() *GeminiService {
	cfg := config.Get()
	return &GeminiService{
		apiKey:    cfg.AI.APIKey,
		apiURL:    fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent", cfg.AI.Model),
		maxTokens: cfg.AI.MaxTokens,
		httpClient: &http.Client{
			Timeout: cfg.AI.Timeout,
		},
	}
}

// Enabled reports whether an API key is configured
func (s *GeminiService) Enabled() bool {
	return s.apiKey != ""
}

// GenerateHealthAnswer answers a free-form health question that the
// knowledge base cannot cover
func (s *GeminiService) GenerateHealthAnswer(ctx context.Context, question, language string) (string, error) {
	prompt := fmt.Sprintf("%s\n\nAnswer in the language with ISO 639-1 code %q.\n\nQuestion: %s",
		healthAssistPreamble, language, question)

	return s.generate(ctx, prompt, 0.7, s.maxTokens)
}

// FindNearbyHospitals asks the model for up to 5 facilities around the
// given coordinates
func (s *GeminiService) FindNearbyHospitals(ctx context.Context, lat, lon float64) ([]models.Hospital, error) {
	prompt := fmt.Sprintf(
		"Find up to 5 real hospitals or medical clinics near latitude %v and longitude %v.\n"+
			"For each hospital, provide its name, full address, latitude, and longitude.\n"+
			"Return the result as a raw JSON array of objects. Each object must have the following keys: "+
			"\"name\", \"address\", \"lat\", \"lon\".\n"+
			"Do not add any introductory text, explanations, or markdown formatting like ```json. "+
			"Only output the raw JSON array.",
		lat, lon)

	text, err := s.generate(ctx, prompt, 0.2, s.maxTokens)
	if err != nil {
		return nil, err
	}

	var hospitals []models.Hospital
	if err := utils.DecodeModelJSON(text, &hospitals); err != nil {
		log.Printf("Failed to parse hospital suggestions: %v", err)
		return nil, fmt.Errorf("failed to parse hospital suggestions: %w", err)
	}
	return hospitals, nil
}

func (s *GeminiService) generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("AI service not configured")
	}

	endpoint := fmt.Sprintf("%s?key=%s", s.apiURL, s.apiKey)

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     temperature,
			"maxOutputTokens": maxTokens,
		},
		"safetySettings": []map[string]interface{}{
			{
				"category":  "HARM_CATEGORY_HARASSMENT",
				"threshold": "BLOCK_ONLY_HIGH",
			},
			{
				"category":  "HARM_CATEGORY_HATE_SPEECH",
				"threshold": "BLOCK_ONLY_HIGH",
			},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error: %s", string(body))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	for _, candidate := range result.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}

	return "", fmt.Errorf("no response generated")
}
