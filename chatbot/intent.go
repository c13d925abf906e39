package chatbot

import (
    "strings"

    "health-chatbot-backend/models"
)

type intentRule struct {
    intent   models.MessageIntent
    keywords []string
}

// IntentRouter picks exactly one intent per message. Rules are checked
// in fixed priority order and the first hit wins; a message matching
// no rule falls through to SymptomQuery.
type IntentRouter struct {
    rules []intentRule
}

func NewIntentRouter() *IntentRouter {
    return &IntentRouter{
        rules: []intentRule{
            {models.IntentGreeting, []string{
                "hello", "hi", "hey", "namaste",
            }},
            {models.IntentEmergency, []string{
                "emergency", "urgent", "ambulance", "help",
            }},
            {models.IntentVaccination, []string{
                "vaccine", "vaccination", "immunization",
            }},
            {models.IntentPrevention, []string{
                "prevent", "prevention", "healthy", "tips", "diet", "exercise",
            }},
        },
    }
}

// Classify is a pure per-message classifier with no state across
// calls. Matching is case-insensitive substring containment.
func (r *IntentRouter) Classify(message string) models.MessageIntent {
    message = strings.ToLower(message)

    for _, rule := range r.rules {
        if containsAnyKeyword(message, rule.keywords) {
            return rule.intent
        }
    }
    return models.IntentSymptomQuery
}

func containsAnyKeyword(message string, keywords []string) bool {
    for _, keyword := range keywords {
        if strings.Contains(message, keyword) {
            return true
        }
    }
    return false
}
