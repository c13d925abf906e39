package utils

import (
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
)

const sampleDiseaseReply = `📋 Based on your symptoms, here's what I found:

🔍 DENGUE FEVER
A mosquito-borne viral infection common during monsoon season.

🤒 SYMPTOMS
• high fever
• severe headache

🛡️ PREVENTION
• use mosquito nets

⚠️ SEEK MEDICAL HELP IF:
• bleeding from nose or gums

────────────────────────────────────────

⚠️ Disclaimer: This information is for educational purposes only. Please consult a healthcare professional for medical advice.`

func TestFormatForHTMLBuildsConditionCards(t *testing.T) {
    out := FormatForHTML(sampleDiseaseReply)

    assert.True(t, strings.HasPrefix(out, "<style>"))
    assert.Contains(t, out, `<div class="health-response-header">`)
    assert.Contains(t, out, "here&#39;s what I found")
    assert.Contains(t, out, `<div class="health-condition-card">`)
    assert.Contains(t, out, `<h3 class="condition-title">DENGUE FEVER</h3>`)
    assert.Contains(t, out, `<p class="condition-desc">A mosquito-borne viral infection common during monsoon season.</p>`)
    assert.Contains(t, out, "<li>high fever</li>")
    assert.Contains(t, out, "<li>use mosquito nets</li>")
    assert.Contains(t, out, "<h4>Seek Medical Help If</h4>")
    assert.Contains(t, out, "<li>bleeding from nose or gums</li>")
    assert.Contains(t, out, `<div class="health-disclaimer"><strong>Disclaimer:</strong>`)
}

func TestFormatForHTMLEscapesMarkup(t *testing.T) {
    out := FormatForHTML("🔍 TEST\n<script>alert(1)</script>\n\n⚠️ Disclaimer: stay safe.")

    assert.NotContains(t, out, "<script>")
    assert.Contains(t, out, "&lt;script&gt;")
}

func TestFormatForHTMLWithoutConditions(t *testing.T) {
    out := FormatForHTML("🙏 Hello! How can I help?\n• option one\n\n⚠️ Disclaimer: educational only.")

    assert.NotContains(t, out, `<div class="health-condition-card">`)
    assert.Contains(t, out, "<strong>Disclaimer:</strong> educational only.")
}

func TestFormatForHTMLEmptyInput(t *testing.T) {
    assert.Equal(t, "", FormatForHTML(""))
}

func TestFormatForMessagingReflowsBullets(t *testing.T) {
    out := FormatForMessaging("Options: • first • second")

    assert.Equal(t, "Options: \n• first \n• second", out)
}

func TestFormatForMessagingBreaksSeparators(t *testing.T) {
    out := FormatForMessaging("top\n─────\nbottom")

    assert.NotContains(t, out, "─")
    assert.Contains(t, out, "\n\n")
}
