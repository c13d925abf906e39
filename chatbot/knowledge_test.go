package chatbot

import (
    "os"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func writeTempKnowledge(t *testing.T, content string) string {
    t.Helper()
    path := filepath.Join(t.TempDir(), "knowledge.json")
    require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
    return path
}

func TestLoadKnowledgeBaseMissingFile(t *testing.T) {
    kb, err := LoadKnowledgeBase(filepath.Join(t.TempDir(), "absent.json"))

    require.NoError(t, err)
    require.NotNil(t, kb)
    assert.Empty(t, kb.Diseases)
    assert.Empty(t, kb.PreventiveHealth)
    assert.Empty(t, kb.VaccinationSchedules)
    assert.Empty(t, kb.EmergencyContacts)

    // The degenerate knowledge base still supports the whole pipeline.
    assert.Zero(t, BuildSymptomIndex(kb).Size())
}

func TestLoadKnowledgeBaseInvalidJSON(t *testing.T) {
    path := writeTempKnowledge(t, `{"diseases": {`)

    _, err := LoadKnowledgeBase(path)
    assert.Error(t, err)
}

func TestLoadKnowledgeBasePreservesDocumentOrder(t *testing.T) {
    path := writeTempKnowledge(t, `{
        "diseases": {
            "zeta": {"description": "z", "symptoms": ["fever"]},
            "alpha": {"description": "a", "symptoms": ["cough"]}
        },
        "preventive_health": {
            "zz_last": {"tips": ["one"]},
            "aa_first": {"tips": ["two"]}
        },
        "vaccination_schedules": {
            "children": {"birth": ["BCG"], "6_weeks": ["OPV"], "9_months": ["MR"]}
        },
        "emergency_contacts": {
            "national_helplines": {"police": "100", "ambulance": "108"}
        }
    }`)

    kb, err := LoadKnowledgeBase(path)
    require.NoError(t, err)

    assert.Equal(t, []string{"zeta", "alpha"}, kb.DiseaseOrder)
    assert.Equal(t, []string{"zz_last", "aa_first"}, kb.PreventiveOrder)
    assert.Equal(t, []string{"birth", "6_weeks", "9_months"}, kb.Schedule("children").Order)
    assert.Equal(t, []string{"police", "ambulance"}, kb.NationalHelplines().Order)
}

func TestLoadKnowledgeBaseParsesEntries(t *testing.T) {
    path := writeTempKnowledge(t, `{
        "diseases": {
            "dengue": {
                "description": "Mosquito-borne infection.",
                "symptoms": ["high fever"],
                "prevention": ["use nets"],
                "when_to_seek_help": ["bleeding"]
            }
        }
    }`)

    kb, err := LoadKnowledgeBase(path)
    require.NoError(t, err)

    info, ok := kb.Disease("dengue")
    require.True(t, ok)
    assert.Equal(t, "Mosquito-borne infection.", info.Description)
    assert.Equal(t, []string{"high fever"}, info.Symptoms)
    assert.Equal(t, []string{"use nets"}, info.Prevention)
    assert.Equal(t, []string{"bleeding"}, info.WhenToSeekHelp)
}

func TestLoadKnowledgeBaseIgnoresUnknownSections(t *testing.T) {
    path := writeTempKnowledge(t, `{
        "comment": {"anything": ["goes"]},
        "diseases": {"flu": {"symptoms": ["fever"]}}
    }`)

    kb, err := LoadKnowledgeBase(path)
    require.NoError(t, err)
    assert.Len(t, kb.Diseases, 1)
}

func TestLoadShippedKnowledgeFile(t *testing.T) {
    kb, err := LoadKnowledgeBase(filepath.Join("..", "data", "health_knowledge_base.json"))
    require.NoError(t, err)

    assert.GreaterOrEqual(t, len(kb.Diseases), 8)
    assert.Equal(t, len(kb.Diseases), len(kb.DiseaseOrder))

    assert.Equal(t, "108", kb.NationalHelplines().Numbers["ambulance"])
    assert.NotEmpty(t, kb.Schedule("children").Vaccines["6_weeks"])
    assert.NotEmpty(t, kb.Schedule("adults").Vaccines["annual"])
    assert.Contains(t, kb.PreventiveHealth, "exercise")
    assert.Contains(t, kb.PreventiveHealth, "nutrition")

    // Every shipped disease participates in symptom matching.
    assert.Equal(t, len(kb.Diseases), BuildSymptomIndex(kb).Size())
}
