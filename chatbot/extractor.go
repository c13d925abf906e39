package chatbot

import (
    "regexp"
    "strings"
)

// Closed vocabulary of recognized symptom words. Matching is exact
// token membership, no stemming and no fuzzy lookup.
var symptomKeywordList = []string{
    "fever", "headache", "cough", "cold", "pain", "ache", "nausea",
    "vomiting", "diarrhea", "weakness", "fatigue", "dizziness",
    "breathing", "chest", "stomach", "throat", "runny", "nose",
    "chills", "sweating", "temperature", "thirst", "urination",
    "weight", "loss", "blurred", "vision", "muscle", "cramps",
}

var symptomKeywords = make(map[string]bool)

func init() {
    for _, word := range symptomKeywordList {
        symptomKeywords[word] = true
    }
}

var nonAlphabetic = regexp.MustCompile(`[^a-zA-Z\s]`)

// preprocessText lowercases the input, strips digits and punctuation
// and collapses runs of whitespace to single spaces.
func preprocessText(text string) string {
    text = strings.ToLower(text)
    text = nonAlphabetic.ReplaceAllString(text, "")
    return strings.Join(strings.Fields(text), " ")
}

// ExtractSymptoms returns the recognized symptom tokens in order of
// first occurrence. Duplicates are kept. An empty result means no
// symptoms were identified, which is a normal outcome, not an error.
func ExtractSymptoms(text string) []string {
    tokens := strings.Fields(preprocessText(text))

    var found []string
    for _, token := range tokens {
        if symptomKeywords[token] {
            found = append(found, token)
        }
    }
    return found
}
