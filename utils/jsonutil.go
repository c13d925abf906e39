package utils

import (
    "encoding/json"
    "fmt"
    "regexp"
    "strings"
)

var jsonFencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// DecodeModelJSON parses JSON out of model output that may be raw JSON,
// JSON wrapped in a markdown code fence, or JSON buried in prose.
func DecodeModelJSON(input string, target interface{}) error {
    input = strings.TrimSpace(input)
    if input == "" {
        return fmt.Errorf("empty model output")
    }

    if err := json.Unmarshal([]byte(input), target); err == nil {
        return nil
    }

    if fenced := extractFromFence(input); fenced != "" {
        if err := json.Unmarshal([]byte(fenced), target); err == nil {
            return nil
        }
    }

    if embedded := extractEmbeddedJSON(input); embedded != "" {
        if err := json.Unmarshal([]byte(embedded), target); err == nil {
            return nil
        }
    }

    return fmt.Errorf("no parseable JSON in model output: %s", truncate(input, 100))
}

func extractFromFence(input string) string {
    if matches := jsonFencePattern.FindStringSubmatch(input); len(matches) > 1 {
        return strings.TrimSpace(matches[1])
    }
    return ""
}

// extractEmbeddedJSON returns the first balanced JSON object or array
// found in the text, honoring string literals and escapes.
func extractEmbeddedJSON(input string) string {
    for _, pair := range [][2]rune{{'[', ']'}, {'{', '}'}} {
        if start := strings.IndexRune(input, pair[0]); start >= 0 {
            if extracted := scanBalanced(input[start:], pair[0], pair[1]); extracted != "" {
                return extracted
            }
        }
    }
    return ""
}

func scanBalanced(input string, open, close rune) string {
    depth := 0
    inString := false
    escape := false

    for i, ch := range input {
        if escape {
            escape = false
            continue
        }
        switch {
        case ch == '\\':
            escape = true
        case ch == '"':
            inString = !inString
        case inString:
        case ch == open:
            depth++
        case ch == close:
            depth--
            if depth == 0 {
                return input[:i+1]
            }
        }
    }
    return ""
}

func truncate(s string, maxLen int) string {
    if len(s) <= maxLen {
        return s
    }
    return s[:maxLen] + "..."
}
