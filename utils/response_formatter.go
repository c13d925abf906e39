package utils

import (
    "html"
    "strings"
)

// FormatForMessaging reflows a composed reply for WhatsApp and SMS.
// Bullets get pushed onto their own line and separator rules become
// blank lines, which reads better in messaging clients.
func FormatForMessaging(text string) string {
    out := strings.ReplaceAll(text, "• ", "\n• ")
    out = strings.ReplaceAll(out, "─────", "\n\n")
    return out
}

// conditionCard collects the pieces of one disease block while walking
// the composed reply line by line.
type conditionCard struct {
    title       string
    description []string
    symptoms    []string
    prevention  []string
    warnings    []string
}

// FormatForHTML converts a composed reply into styled HTML for the web
// dashboard. Disease blocks become cards; greeting and menu replies keep
// only their header and disclaimer since they carry no condition data.
func FormatForHTML(responseText string) string {
    if responseText == "" {
        return ""
    }

    escaped := html.EscapeString(responseText)

    var (
        header     string
        disclaimer string
        cards      []conditionCard
        current    *conditionCard
        section    *[]string
    )

    flush := func() {
        if current != nil {
            cards = append(cards, *current)
            current = nil
        }
        section = nil
    }

    for _, line := range strings.Split(escaped, "\n") {
        line = strings.TrimSpace(line)
        switch {
        case line == "":
            continue
        case strings.HasPrefix(line, "📋 "):
            header = strings.TrimPrefix(line, "📋 ")
        case strings.HasPrefix(line, "🔍 "):
            flush()
            current = &conditionCard{title: strings.TrimPrefix(line, "🔍 ")}
        case strings.HasPrefix(line, "🤒 SYMPTOMS"):
            if current != nil {
                section = &current.symptoms
            }
        case strings.HasPrefix(line, "🛡️ PREVENTION"):
            if current != nil {
                section = &current.prevention
            }
        case strings.HasPrefix(line, "⚠️ SEEK MEDICAL HELP IF:"):
            if current != nil {
                section = &current.warnings
            }
        case strings.HasPrefix(line, "⚠️ Disclaimer:"):
            disclaimer = strings.TrimSpace(strings.TrimPrefix(line, "⚠️ Disclaimer:"))
        case strings.HasPrefix(line, "─"):
            flush()
        case strings.HasPrefix(line, "• "):
            if section != nil {
                *section = append(*section, strings.TrimPrefix(line, "• "))
            }
        default:
            if current != nil && section == nil {
                current.description = append(current.description, line)
            }
        }
    }
    flush()

    var sb strings.Builder
    sb.WriteString(healthResponseCSS)
    if header != "" {
        sb.WriteString("\n")
        sb.WriteString(`<div class="health-response-header">` + header + `</div>`)
    }
    for _, card := range cards {
        sb.WriteString("\n")
        writeConditionCard(&sb, card)
    }
    if disclaimer != "" {
        sb.WriteString("\n")
        sb.WriteString(`<div class="health-disclaimer"><strong>Disclaimer:</strong> ` + disclaimer + `</div>`)
    }
    return sb.String()
}

func writeConditionCard(sb *strings.Builder, card conditionCard) {
    sb.WriteString(`<div class="health-condition-card">`)
    if card.title != "" {
        sb.WriteString(`<h3 class="condition-title">` + card.title + `</h3>`)
    }
    if len(card.description) > 0 {
        sb.WriteString(`<p class="condition-desc">` + strings.Join(card.description, " ") + `</p>`)
    }
    writeCardSection(sb, "symptom-section", "Symptoms", "symptom-list", card.symptoms)
    writeCardSection(sb, "prevention-section", "Prevention", "prevention-list", card.prevention)
    writeCardSection(sb, "warning-section", "Seek Medical Help If", "warning-list", card.warnings)
    sb.WriteString(`</div>`)
}

func writeCardSection(sb *strings.Builder, sectionClass, heading, listClass string, items []string) {
    if len(items) == 0 {
        return
    }
    sb.WriteString(`<div class="` + sectionClass + `">`)
    sb.WriteString(`<h4>` + heading + `</h4>`)
    sb.WriteString(`<ul class="` + listClass + `">`)
    for _, item := range items {
        sb.WriteString(`<li>` + item + `</li>`)
    }
    sb.WriteString(`</ul>`)
    sb.WriteString(`</div>`)
}

const healthResponseCSS = `<style>
.health-response-header {
    font-size: 1.2em;
    color: #2c3e50;
    margin-bottom: 20px;
    text-align: center;
}
.health-condition-card {
    background-color: #f8f9fa;
    border-left: 4px solid #3498db;
    padding: 15px;
    margin-bottom: 20px;
    border-radius: 5px;
    box-shadow: 0 2px 4px rgba(0,0,0,0.1);
}
.condition-title {
    color: #2980b9;
    margin-top: 0;
    margin-bottom: 10px;
    font-size: 1.4em;
}
.condition-desc {
    color: #34495e;
    margin-bottom: 15px;
}
h4 {
    color: #2c3e50;
    margin-top: 15px;
    margin-bottom: 10px;
    font-size: 1.1em;
    border-bottom: 1px solid #eee;
    padding-bottom: 5px;
}
.symptom-section h4 {
    color: #e74c3c;
}
.prevention-section h4 {
    color: #27ae60;
}
.warning-section h4 {
    color: #f39c12;
}
.symptom-list, .prevention-list, .warning-list {
    padding-left: 20px;
    margin-top: 10px;
    margin-bottom: 15px;
    list-style-type: none;
}
.symptom-list li, .prevention-list li, .warning-list li {
    position: relative;
    padding-left: 20px;
    margin-bottom: 5px;
    line-height: 1.5;
}
.symptom-list li:before {
    content: "•";
    color: #e74c3c;
    font-size: 18px;
    position: absolute;
    left: 0;
    top: -2px;
}
.prevention-list li:before {
    content: "•";
    color: #27ae60;
    font-size: 18px;
    position: absolute;
    left: 0;
    top: -2px;
}
.warning-list li:before {
    content: "•";
    color: #f39c12;
    font-size: 18px;
    position: absolute;
    left: 0;
    top: -2px;
}
.health-disclaimer {
    font-size: 0.9em;
    color: #7f8c8d;
    padding: 10px;
    margin-top: 20px;
    border-top: 1px solid #eee;
    text-align: center;
}
</style>`
