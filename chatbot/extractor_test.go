package chatbot

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestExtractSymptomsFoldsCaseAndPunctuation(t *testing.T) {
    got := ExtractSymptoms("I have a Fever and Headache!!!")
    assert.Equal(t, []string{"fever", "headache"}, got)
}

func TestExtractSymptomsNoneRecognized(t *testing.T) {
    got := ExtractSymptoms("I feel great today")
    assert.Empty(t, got)
}

func TestExtractSymptomsKeepsDuplicatesInOrder(t *testing.T) {
    got := ExtractSymptoms("fever, then cough, then fever again")
    assert.Equal(t, []string{"fever", "cough", "fever"}, got)
}

func TestExtractSymptomsStripsDigits(t *testing.T) {
    got := ExtractSymptoms("temperature 102 since 2 days, fever103")
    assert.Equal(t, []string{"temperature", "fever"}, got)
}

func TestExtractSymptomsExactMembershipOnly(t *testing.T) {
    // No stemming: plural or inflected forms outside the vocabulary
    // are not recognized.
    got := ExtractSymptoms("fevers and coughing all night")
    assert.Empty(t, got)
}

func TestPreprocessTextCollapsesWhitespace(t *testing.T) {
    assert.Equal(t, "fever and chills", preprocessText("  Fever \t and\n chills!! "))
}
