package chatbot

import (
    "fmt"
    "strings"

    "health-chatbot-backend/models"
)

// Disclaimer closes every response the bot produces, whatever the intent.
const Disclaimer = "⚠️ Disclaimer: This information is for educational purposes only. Please consult a healthcare professional for medical advice."

var sectionSeparator = strings.Repeat("─", 40)

// RequestContext carries one message through the pipeline stages.
// WorkingMessage is the English text routing and matching ran on; it
// equals RawMessage when translation was skipped or failed.
type RequestContext struct {
    RawMessage       string
    WorkingMessage   string
    OriginalLanguage string
    WorkingLanguage  string
}

// ComposedResponse is the rendered text plus whether it came from a
// canned translation already in the user's language, in which case the
// caller must not translate it again.
type ComposedResponse struct {
    Text      string
    Localized bool
}

type templateKey struct {
    intent   models.MessageIntent
    language string
}

// ResponseComposer renders deterministic, emoji-marked plaintext per
// intent. The canned template map is filled once at construction and
// never mutated, so a single composer serves concurrent requests.
type ResponseComposer struct {
    kb        *KnowledgeBase
    templates map[templateKey]string
}

func NewResponseComposer(kb *KnowledgeBase) *ResponseComposer {
    if kb == nil {
        kb = NewEmptyKnowledgeBase()
    }
    c := &ResponseComposer{
        kb:        kb,
        templates: make(map[templateKey]string),
    }
    c.templates[templateKey{models.IntentGreeting, "en"}] = greetingMenuEN
    c.templates[templateKey{models.IntentGreeting, "hi"}] = greetingHI
    c.templates[templateKey{models.IntentGreeting, "bn"}] = greetingBN
    c.templates[templateKey{models.IntentGreeting, "te"}] = greetingTE
    c.templates[templateKey{models.IntentGreeting, "ta"}] = greetingTA
    c.templates[templateKey{models.IntentEmergency, "hi"}] = emergencyHI
    return c
}

// Compose renders the response body for the chosen intent and appends
// the disclaimer. Output is fully determined by its inputs: same
// intent and same knowledge yield byte-identical text.
func (c *ResponseComposer) Compose(req RequestContext, intent models.MessageIntent, symptoms []string, matches []DiseaseMatch) ComposedResponse {
    var body string
    localized := false

    switch intent {
    case models.IntentGreeting:
        body, localized = c.canned(models.IntentGreeting, req.OriginalLanguage)
    case models.IntentEmergency:
        if canned, ok := c.templates[templateKey{models.IntentEmergency, req.OriginalLanguage}]; ok {
            body, localized = canned, req.OriginalLanguage != DefaultLanguage
        } else {
            body = c.renderEmergencyContacts()
        }
    case models.IntentVaccination:
        body = c.renderVaccinationSchedule(req.WorkingMessage)
    case models.IntentPrevention:
        body = c.renderPreventiveTips(req.WorkingMessage)
    case models.IntentSymptomQuery:
        if len(matches) > 0 {
            body = c.renderDiseaseMatches(matches)
        } else {
            body = noMatchFallback
        }
    default:
        body = describeSymptomsMenu
    }

    text := strings.TrimRight(body, "\n") + "\n\n" + Disclaimer
    return ComposedResponse{Text: text, Localized: localized}
}

// canned returns the template for (intent, language), falling back to
// the English one. The bool reports whether the text is already in the
// user's non-English language.
func (c *ResponseComposer) canned(intent models.MessageIntent, lang string) (string, bool) {
    if text, ok := c.templates[templateKey{intent, lang}]; ok {
        return text, lang != DefaultLanguage
    }
    return c.templates[templateKey{intent, DefaultLanguage}], false
}

func (c *ResponseComposer) renderEmergencyContacts() string {
    lines := []string{"🚨 EMERGENCY CONTACTS", ""}

    helplines := c.kb.NationalHelplines()
    for _, service := range helplines.Order {
        lines = append(lines, fmt.Sprintf("• %s: %s", titleCase(service), helplines.Numbers[service]))
    }
    if len(helplines.Order) > 0 {
        lines = append(lines, "")
    }

    lines = append(lines, "If this is a medical emergency, call 108 immediately!")
    return strings.Join(lines, "\n")
}

func (c *ResponseComposer) renderVaccinationSchedule(message string) string {
    message = strings.ToLower(message)
    ageGroup := "adults"
    if strings.Contains(message, "child") || strings.Contains(message, "baby") {
        ageGroup = "children"
    }

    lines := []string{fmt.Sprintf("💉 VACCINATION SCHEDULE (%s)", strings.ToUpper(ageGroup)), ""}

    schedule := c.kb.Schedule(ageGroup)
    for _, label := range schedule.Order {
        if ageGroup == "adults" && label == "special_groups" {
            continue
        }
        lines = append(lines, fmt.Sprintf("• %s: %s", titleCase(label), strings.Join(schedule.Vaccines[label], ", ")))
    }

    lines = append(lines, "", "Please consult your doctor or nearest health center before vaccination.")
    return strings.Join(lines, "\n")
}

func (c *ResponseComposer) renderPreventiveTips(message string) string {
    message = strings.ToLower(message)

    var categories []string
    switch {
    case strings.Contains(message, "exercise"):
        categories = []string{"exercise"}
    case strings.Contains(message, "diet"), strings.Contains(message, "nutrition"):
        categories = []string{"nutrition"}
    default:
        categories = c.kb.PreventiveOrder
    }

    lines := []string{"🌿 PREVENTIVE HEALTH TIPS", ""}
    for _, name := range categories {
        category, ok := c.kb.PreventiveHealth[name]
        if !ok {
            continue
        }
        lines = append(lines, categoryEmoji(name)+" "+strings.ToUpper(strings.ReplaceAll(name, "_", " ")))
        for _, topic := range category.Order {
            for _, tip := range category.Topics[topic] {
                lines = append(lines, "• "+tip)
            }
        }
        lines = append(lines, "")
    }
    return strings.Join(lines, "\n")
}

func (c *ResponseComposer) renderDiseaseMatches(matches []DiseaseMatch) string {
    lines := []string{"📋 Based on your symptoms, here's what I found:", ""}

    for _, match := range matches {
        info, _ := c.kb.Disease(match.Disease)

        lines = append(lines, "🔍 "+strings.ToUpper(strings.ReplaceAll(match.Disease, "_", " ")))
        lines = append(lines, info.Description, "")

        if len(info.Symptoms) > 0 {
            lines = append(lines, "🤒 SYMPTOMS")
            for _, symptom := range info.Symptoms {
                lines = append(lines, "• "+symptom)
            }
            lines = append(lines, "")
        }

        if len(info.Prevention) > 0 {
            lines = append(lines, "🛡️ PREVENTION")
            for _, step := range info.Prevention {
                lines = append(lines, "• "+step)
            }
            lines = append(lines, "")
        }

        if len(info.WhenToSeekHelp) > 0 {
            lines = append(lines, "⚠️ SEEK MEDICAL HELP IF:")
            for _, warning := range info.WhenToSeekHelp {
                lines = append(lines, "• "+warning)
            }
            lines = append(lines, "")
        }

        lines = append(lines, sectionSeparator, "")
    }
    return strings.Join(lines, "\n")
}

func categoryEmoji(name string) string {
    switch name {
    case "exercise":
        return "💪"
    case "nutrition":
        return "🥗"
    case "hygiene":
        return "🧼"
    case "mental_health":
        return "🧠"
    default:
        return "💡"
    }
}

// titleCase turns a snake_case key into a display label, for example
// "6_weeks" becomes "6 Weeks".
func titleCase(key string) string {
    words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
    for i, word := range words {
        if word == "" {
            continue
        }
        words[i] = strings.ToUpper(word[:1]) + word[1:]
    }
    return strings.Join(words, " ")
}

const greetingMenuEN = `Hello! I'm your Health Assistant. 🏥

I can help you with:
• Symptom analysis and disease information
• Prevention tips and healthy living advice
• Vaccination schedules for children and adults
• Emergency contact numbers
• Outbreak alerts in your area

How can I assist you today?`

const greetingHI = `नमस्ते! मैं आपका स्वास्थ्य सहायक हूं। मैं आपकी लक्षणों, रोकथाम सुझावों, टीकाकरण कार्यक्रम और आपातकालीन संपर्कों में मदद कर सकता हूं। आप क्या जानना चाहते हैं?`

const greetingBN = `হ্যালো! আমি আপনার স্বাস্থ্য সহায়ক। আমি লক্ষণ, প্রতিরোধ টিপস, টিকাদান সময়সূচী এবং জরুরি যোগাযোগে আপনাকে সাহায্য করতে পারি। আপনি কী জানতে চান?`

const greetingTE = `హలో! నేను మీ ఆరోగ్య సహాయకుడిని. లక్షణాలు, నివారణ చిట్కాలు, టీకా షెడ్యూల్‌లు మరియు అత్యవసర సంప్రదింపులలో నేను మీకు సహాయపడగలను. మీరు ఏమి తెలుసుకోవాలనుకుంటున్నారు?`

const greetingTA = `வணக்கம்! நான் உங்கள் சுகாதார உதவியாளர். அறிகுறிகள், தடுப்பு குறிப்புகள், தடுப்பூசி அட்டவணைகள் மற்றும் அவசரகால தொடர்புகளில் உங்களுக்கு உதவ முடியும். நீங்கள் என்ன தெரிந்து கொள்ள விரும்புகிறீர்கள்?`

const emergencyHI = `🚨 आपातकालीन सहायता

• एम्बुलेंस: 108
• पुलिस: 100
• फायर ब्रिगेड: 101
• स्वास्थ्य हेल्पलाइन: 104

यदि यह चिकित्सा आपातकाल है, तो तुरंत 108 पर कॉल करें!`

const noMatchFallback = `I understand you're not feeling well, but I couldn't match your symptoms to a specific condition. 😟

Please consult a healthcare professional for a proper diagnosis.

📞 For immediate help:
• Call 108 for emergency ambulance
• Call 102 for free health advice`

const describeSymptomsMenu = `I couldn't identify any symptoms. Could you please describe how you're feeling?

For example: "I have a fever and headache"

You can also ask me about:
• Prevention tips
• Vaccination schedules
• Emergency contacts`
