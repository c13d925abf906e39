package chatbot

import (
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "health-chatbot-backend/models"
)

func composerFixture() *ResponseComposer {
    kb := NewEmptyKnowledgeBase()

    kb.Diseases["dengue_fever"] = DiseaseInfo{
        Description:    "A mosquito-borne viral infection.",
        Symptoms:       []string{"high fever", "severe headache"},
        Prevention:     []string{"Eliminate stagnant water"},
        WhenToSeekHelp: []string{"Bleeding from gums"},
    }
    kb.DiseaseOrder = []string{"dengue_fever"}

    kb.PreventiveHealth["exercise"] = PreventiveCategory{
        Topics: map[string][]string{"recommendations": {"Walk 30 minutes daily"}},
        Order:  []string{"recommendations"},
    }
    kb.PreventiveHealth["nutrition"] = PreventiveCategory{
        Topics: map[string][]string{"guidelines": {"Eat fruits and vegetables"}},
        Order:  []string{"guidelines"},
    }
    kb.PreventiveOrder = []string{"exercise", "nutrition"}

    kb.VaccinationSchedules["children"] = VaccinationSchedule{
        Vaccines: map[string][]string{"6_weeks": {"BCG", "OPV"}},
        Order:    []string{"6_weeks"},
    }
    kb.VaccinationSchedules["adults"] = VaccinationSchedule{
        Vaccines: map[string][]string{
            "annual":         {"Influenza vaccine"},
            "special_groups": {"Hepatitis B for healthcare workers"},
        },
        Order: []string{"annual", "special_groups"},
    }

    kb.EmergencyContacts["national_helplines"] = ContactGroup{
        Numbers: map[string]string{"ambulance": "108", "police": "100", "health_helpline": "104"},
        Order:   []string{"ambulance", "police", "health_helpline"},
    }

    return NewResponseComposer(kb)
}

func englishRequest(message string) RequestContext {
    return RequestContext{
        RawMessage:       message,
        WorkingMessage:   message,
        OriginalLanguage: DefaultLanguage,
        WorkingLanguage:  DefaultLanguage,
    }
}

func TestComposeAppendsDisclaimerForEveryIntent(t *testing.T) {
    c := composerFixture()
    matches := []DiseaseMatch{{Disease: "dengue_fever", Score: 0.9}}

    intents := []struct {
        intent   models.MessageIntent
        symptoms []string
        matches  []DiseaseMatch
    }{
        {models.IntentGreeting, nil, nil},
        {models.IntentEmergency, nil, nil},
        {models.IntentVaccination, nil, nil},
        {models.IntentPrevention, nil, nil},
        {models.IntentSymptomQuery, []string{"fever"}, matches},
        {models.IntentFallback, nil, nil},
    }

    for _, tt := range intents {
        got := c.Compose(englishRequest("hello"), tt.intent, tt.symptoms, tt.matches)
        assert.True(t, strings.HasSuffix(got.Text, Disclaimer), "intent %s", tt.intent)
    }
}

func TestComposeIsDeterministic(t *testing.T) {
    c := composerFixture()
    req := englishRequest("I have a fever")
    matches := []DiseaseMatch{{Disease: "dengue_fever", Score: 0.9}}

    first := c.Compose(req, models.IntentSymptomQuery, []string{"fever"}, matches)
    second := c.Compose(req, models.IntentSymptomQuery, []string{"fever"}, matches)
    assert.Equal(t, first.Text, second.Text)

    // Prevention renders several map-backed sections; byte equality
    // here depends on the preserved document order.
    first = c.Compose(englishRequest("how to stay healthy"), models.IntentPrevention, nil, nil)
    second = c.Compose(englishRequest("how to stay healthy"), models.IntentPrevention, nil, nil)
    assert.Equal(t, first.Text, second.Text)
}

func TestComposeGreetingEnglishMenu(t *testing.T) {
    c := composerFixture()

    got := c.Compose(englishRequest("hello"), models.IntentGreeting, nil, nil)

    assert.False(t, got.Localized)
    assert.Contains(t, got.Text, "I can help you with:")
    assert.Equal(t, 5, strings.Count(got.Text, "• "))
}

func TestComposeGreetingCannedHindi(t *testing.T) {
    c := composerFixture()
    req := RequestContext{
        RawMessage:       "नमस्ते",
        WorkingMessage:   "hello",
        OriginalLanguage: "hi",
        WorkingLanguage:  DefaultLanguage,
    }

    got := c.Compose(req, models.IntentGreeting, nil, nil)

    assert.True(t, got.Localized)
    assert.Contains(t, got.Text, "नमस्ते! मैं आपका स्वास्थ्य सहायक हूं।")
    assert.True(t, strings.HasSuffix(got.Text, Disclaimer))
}

func TestComposeGreetingUnknownLanguageFallsBackToEnglish(t *testing.T) {
    c := composerFixture()
    req := RequestContext{
        RawMessage:       "hello",
        WorkingMessage:   "hello",
        OriginalLanguage: "gu",
        WorkingLanguage:  DefaultLanguage,
    }

    got := c.Compose(req, models.IntentGreeting, nil, nil)

    assert.False(t, got.Localized)
    assert.Contains(t, got.Text, "I can help you with:")
}

func TestComposeEmergencyBuildsHelplineBlock(t *testing.T) {
    c := composerFixture()

    got := c.Compose(englishRequest("emergency"), models.IntentEmergency, nil, nil)

    assert.Contains(t, got.Text, "🚨 EMERGENCY CONTACTS")
    assert.Contains(t, got.Text, "• Ambulance: 108")
    assert.Contains(t, got.Text, "• Health Helpline: 104")
    assert.Contains(t, got.Text, "call 108 immediately")

    // Bullets keep document order.
    ambulance := strings.Index(got.Text, "• Ambulance")
    police := strings.Index(got.Text, "• Police")
    helpline := strings.Index(got.Text, "• Health Helpline")
    assert.Less(t, ambulance, police)
    assert.Less(t, police, helpline)
}

func TestComposeEmergencyCannedHindi(t *testing.T) {
    c := composerFixture()
    req := RequestContext{
        RawMessage:       "मदद",
        WorkingMessage:   "help",
        OriginalLanguage: "hi",
        WorkingLanguage:  DefaultLanguage,
    }

    got := c.Compose(req, models.IntentEmergency, nil, nil)

    assert.True(t, got.Localized)
    assert.Contains(t, got.Text, "एम्बुलेंस: 108")
}

func TestComposeVaccinationChildrenBranch(t *testing.T) {
    c := composerFixture()

    got := c.Compose(englishRequest("vaccine for my baby"), models.IntentVaccination, nil, nil)

    assert.Contains(t, got.Text, "VACCINATION SCHEDULE (CHILDREN)")
    assert.Contains(t, strings.ToLower(got.Text), "6 weeks")
    assert.Contains(t, got.Text, "BCG, OPV")
}

func TestComposeVaccinationAdultsSkipSpecialGroups(t *testing.T) {
    c := composerFixture()

    got := c.Compose(englishRequest("adult vaccine schedule"), models.IntentVaccination, nil, nil)

    assert.Contains(t, got.Text, "VACCINATION SCHEDULE (ADULTS)")
    assert.Contains(t, got.Text, "• Annual: Influenza vaccine")
    assert.NotContains(t, got.Text, "Special Groups")
    assert.NotContains(t, got.Text, "Hepatitis B for healthcare workers")
}

func TestComposePreventionBranches(t *testing.T) {
    c := composerFixture()

    exercise := c.Compose(englishRequest("exercise tips"), models.IntentPrevention, nil, nil)
    assert.Contains(t, exercise.Text, "Walk 30 minutes daily")
    assert.NotContains(t, exercise.Text, "Eat fruits and vegetables")

    diet := c.Compose(englishRequest("diet advice"), models.IntentPrevention, nil, nil)
    assert.Contains(t, diet.Text, "Eat fruits and vegetables")
    assert.NotContains(t, diet.Text, "Walk 30 minutes daily")

    all := c.Compose(englishRequest("prevention tips"), models.IntentPrevention, nil, nil)
    assert.Contains(t, all.Text, "Walk 30 minutes daily")
    assert.Contains(t, all.Text, "Eat fruits and vegetables")
}

func TestComposeSymptomMatches(t *testing.T) {
    c := composerFixture()
    matches := []DiseaseMatch{{Disease: "dengue_fever", Score: 0.7}}

    got := c.Compose(englishRequest("I have a fever"), models.IntentSymptomQuery, []string{"fever"}, matches)

    require.Contains(t, got.Text, "📋 Based on your symptoms, here's what I found:")
    assert.Contains(t, got.Text, "🔍 DENGUE FEVER")
    assert.Contains(t, got.Text, "A mosquito-borne viral infection.")
    assert.Contains(t, got.Text, "🤒 SYMPTOMS")
    assert.Contains(t, got.Text, "• high fever")
    assert.Contains(t, got.Text, "🛡️ PREVENTION")
    assert.Contains(t, got.Text, "⚠️ SEEK MEDICAL HELP IF:")
    assert.Contains(t, got.Text, sectionSeparator)

    // The similarity score stays internal, only ordering uses it.
    assert.NotContains(t, got.Text, "0.7")
}

func TestComposeSymptomMatchesOmitsAbsentSections(t *testing.T) {
    kb := NewEmptyKnowledgeBase()
    kb.Diseases["mystery"] = DiseaseInfo{Description: "Sparse entry.", Symptoms: []string{"fever"}}
    kb.DiseaseOrder = []string{"mystery"}
    c := NewResponseComposer(kb)

    got := c.Compose(englishRequest("fever"), models.IntentSymptomQuery, []string{"fever"},
        []DiseaseMatch{{Disease: "mystery", Score: 0.5}})

    assert.Contains(t, got.Text, "🤒 SYMPTOMS")
    assert.NotContains(t, got.Text, "🛡️ PREVENTION")
    assert.NotContains(t, got.Text, "⚠️ SEEK MEDICAL HELP IF:")
}

func TestComposeNoMatchFallbackPointsToHelplines(t *testing.T) {
    c := composerFixture()

    got := c.Compose(englishRequest("I have chills"), models.IntentSymptomQuery, []string{"chills"}, nil)

    assert.Contains(t, got.Text, "couldn't match your symptoms")
    assert.Contains(t, got.Text, "108")
    assert.Contains(t, got.Text, "102")
}

func TestComposeFallbackAsksForSymptoms(t *testing.T) {
    c := composerFixture()

    got := c.Compose(englishRequest("ok"), models.IntentFallback, nil, nil)

    assert.Contains(t, got.Text, "I couldn't identify any symptoms. Could you please describe how you're feeling?")
    assert.Contains(t, got.Text, "• Vaccination schedules")
}

func TestComposeEmptyKnowledgeBaseStillResponds(t *testing.T) {
    c := NewResponseComposer(NewEmptyKnowledgeBase())

    emergency := c.Compose(englishRequest("emergency"), models.IntentEmergency, nil, nil)
    assert.Contains(t, emergency.Text, "call 108 immediately")
    assert.True(t, strings.HasSuffix(emergency.Text, Disclaimer))

    vaccination := c.Compose(englishRequest("vaccine for my baby"), models.IntentVaccination, nil, nil)
    assert.Contains(t, vaccination.Text, "VACCINATION SCHEDULE (CHILDREN)")
    assert.True(t, strings.HasSuffix(vaccination.Text, Disclaimer))
}

func TestTitleCase(t *testing.T) {
    assert.Equal(t, "6 Weeks", titleCase("6_weeks"))
    assert.Equal(t, "Health Helpline", titleCase("health_helpline"))
    assert.Equal(t, "Birth", titleCase("birth"))
}
