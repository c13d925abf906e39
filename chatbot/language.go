package chatbot

import (
    "context"
    "log"
)

// DefaultLanguage is the working language: intent routing, symptom
// extraction and matching all run on English text.
const DefaultLanguage = "en"

// Languages the bot will answer in besides English.
var supportedLanguages = map[string]bool{
    "hi": true, "bn": true, "te": true, "ta": true, "gu": true,
    "kn": true, "ml": true, "pa": true, "mr": true,
}

// TranslationProvider is the external capability behind language
// handling. Both operations may fail; LanguageService absorbs that.
type TranslationProvider interface {
    DetectLanguage(text string) (string, error)
    Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error)
}

// TranslationResult reports the outcome of a translation attempt.
// Translated is false when the provider failed and Text still carries
// the original, untranslated input.
type TranslationResult struct {
    Text       string
    Translated bool
}

// LanguageService wraps a TranslationProvider with the failure
// tolerance the pipeline relies on: detection collapses to English on
// any problem and translation falls back to the input text.
type LanguageService struct {
    provider TranslationProvider
}

func NewLanguageService(provider TranslationProvider) *LanguageService {
    return &LanguageService{provider: provider}
}

// Detect returns the language code of text, restricted to the
// supported set. Unsupported or undetectable input comes back as the
// default language.
func (s *LanguageService) Detect(text string) string {
    if s == nil || s.provider == nil {
        return DefaultLanguage
    }
    lang, err := s.provider.DetectLanguage(text)
    if err != nil {
        return DefaultLanguage
    }
    if !supportedLanguages[lang] {
        return DefaultLanguage
    }
    return lang
}

// Translate converts text from sourceLang to targetLang. Equal
// languages pass the text through unchanged. Provider failure is never
// propagated: the caller gets the original text back and can keep
// going with it.
func (s *LanguageService) Translate(ctx context.Context, text, targetLang, sourceLang string) TranslationResult {
    if sourceLang == targetLang {
        return TranslationResult{Text: text, Translated: true}
    }
    if s == nil || s.provider == nil {
        return TranslationResult{Text: text, Translated: false}
    }

    translated, err := s.provider.Translate(ctx, text, targetLang, sourceLang)
    if err != nil {
        log.Printf("Translation %s -> %s failed: %v", sourceLang, targetLang, err)
        return TranslationResult{Text: text, Translated: false}
    }
    if translated == "" {
        return TranslationResult{Text: text, Translated: false}
    }
    return TranslationResult{Text: translated, Translated: true}
}
