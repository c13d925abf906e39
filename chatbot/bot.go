package chatbot

import (
    "context"

    "health-chatbot-backend/models"
)

// Reply is the outcome of handling one message.
type Reply struct {
    Text     string
    Language string
    Intent   models.MessageIntent
}

// HealthBot runs the full pipeline: language detection, translation to
// the working language, intent routing, symptom matching and response
// composition. It holds no per-request state, so one bot instance
// serves all concurrent requests.
type HealthBot struct {
    kb       *KnowledgeBase
    space    *SymptomVectorSpace
    router   *IntentRouter
    composer *ResponseComposer
    language *LanguageService
}

// NewHealthBot wires a bot from its prebuilt parts. The vector space
// comes from BuildSymptomIndex so construction stays an explicit,
// one-time step before any request is served.
func NewHealthBot(kb *KnowledgeBase, space *SymptomVectorSpace, language *LanguageService) *HealthBot {
    if kb == nil {
        kb = NewEmptyKnowledgeBase()
    }
    return &HealthBot{
        kb:       kb,
        space:    space,
        router:   NewIntentRouter(),
        composer: NewResponseComposer(kb),
        language: language,
    }
}

// KnowledgeBase exposes the reference data the bot answers from.
func (b *HealthBot) KnowledgeBase() *KnowledgeBase {
    return b.kb
}

// Handle answers one user message. knownLanguage may be empty, in
// which case the language is detected from the text. A reply is always
// produced for well-formed input; translation problems degrade to
// English text instead of failing the request.
func (b *HealthBot) Handle(ctx context.Context, message string, knownLanguage string) (*Reply, error) {
    original := knownLanguage
    if original == "" {
        original = b.language.Detect(message)
    }

    working := message
    if original != DefaultLanguage {
        working = b.language.Translate(ctx, message, DefaultLanguage, original).Text
    }

    req := RequestContext{
        RawMessage:       message,
        WorkingMessage:   working,
        OriginalLanguage: original,
        WorkingLanguage:  DefaultLanguage,
    }

    intent := b.router.Classify(working)

    var symptoms []string
    var matches []DiseaseMatch
    if intent == models.IntentSymptomQuery {
        symptoms = ExtractSymptoms(working)
        if len(symptoms) == 0 {
            intent = models.IntentFallback
        } else {
            matches = b.space.Match(symptoms)
        }
    }

    composed := b.composer.Compose(req, intent, symptoms, matches)

    text := composed.Text
    if !composed.Localized && original != DefaultLanguage {
        text = b.language.Translate(ctx, text, original, DefaultLanguage).Text
    }

    return &Reply{Text: text, Language: original, Intent: intent}, nil
}
