package chatbot

import (
    "testing"

    "github.com/stretchr/testify/assert"

    "health-chatbot-backend/models"
)

func TestClassifyPriorityOrder(t *testing.T) {
    router := NewIntentRouter()

    tests := []struct {
        message string
        want    models.MessageIntent
    }{
        {"Hello", models.IntentGreeting},
        {"HELLO, I need an ambulance", models.IntentGreeting},
        {"namaste doctor", models.IntentGreeting},
        {"call an ambulance now", models.IntentEmergency},
        {"its urgent, my father collapsed", models.IntentEmergency},
        {"I need help", models.IntentEmergency},
        {"vaccine schedule please", models.IntentVaccination},
        {"is immunization due for my baby", models.IntentVaccination},
        {"how to prevent dengue", models.IntentPrevention},
        {"give me a good diet plan", models.IntentPrevention},
        {"how to stay HEALTHY", models.IntentPrevention},
        {"I have a fever and cough", models.IntentSymptomQuery},
        {"my stomach hurts badly", models.IntentSymptomQuery},
    }

    for _, tt := range tests {
        assert.Equal(t, tt.want, router.Classify(tt.message), "message: %q", tt.message)
    }
}

func TestClassifyDefaultsToSymptomQuery(t *testing.T) {
    router := NewIntentRouter()
    assert.Equal(t, models.IntentSymptomQuery, router.Classify("my tooth was broken yesterday"))
}

func TestClassifyFirstMatchSuppressesLowerRules(t *testing.T) {
    router := NewIntentRouter()

    // Both greeting and emergency words present, greeting has priority 1.
    assert.Equal(t, models.IntentGreeting, router.Classify("hey, emergency at home"))

    // Emergency beats vaccination when both match.
    assert.Equal(t, models.IntentEmergency, router.Classify("urgent: vaccine question"))
}

func TestClassifyMatchesSubstrings(t *testing.T) {
    router := NewIntentRouter()

    // Containment is plain substring search, so words embedding a
    // keyword trigger the rule too.
    assert.Equal(t, models.IntentGreeting, router.Classify("this fever is back"))
    assert.Equal(t, models.IntentGreeting, router.Classify("my child has a rash"))
}
