package chatbot

import (
    "encoding/json"
    "fmt"
    "log"
    "os"
)

// DiseaseInfo is one entry of the diseases mapping. Any of the list
// fields may be empty when the source document omits them.
type DiseaseInfo struct {
    Description    string   `json:"description"`
    Symptoms       []string `json:"symptoms"`
    Prevention     []string `json:"prevention"`
    WhenToSeekHelp []string `json:"when_to_seek_help"`
}

// PreventiveCategory groups tips by sub-topic, keeping document order
// of the sub-topics so rendering stays deterministic.
type PreventiveCategory struct {
    Topics map[string][]string
    Order  []string
}

// VaccinationSchedule maps an age or frequency label to its vaccines.
type VaccinationSchedule struct {
    Vaccines map[string][]string
    Order    []string
}

// ContactGroup maps a service name to its phone number.
type ContactGroup struct {
    Numbers map[string]string
    Order   []string
}

// KnowledgeBase is the static reference data behind every response.
// It is loaded once at startup and never mutated afterwards, so it is
// safe to share across concurrent requests without locking.
type KnowledgeBase struct {
    Diseases     map[string]DiseaseInfo
    DiseaseOrder []string

    PreventiveHealth map[string]PreventiveCategory
    PreventiveOrder  []string

    VaccinationSchedules map[string]VaccinationSchedule
    EmergencyContacts    map[string]ContactGroup
}

// NewEmptyKnowledgeBase returns a usable knowledge base with no data.
func NewEmptyKnowledgeBase() *KnowledgeBase {
    return &KnowledgeBase{
        Diseases:             make(map[string]DiseaseInfo),
        PreventiveHealth:     make(map[string]PreventiveCategory),
        VaccinationSchedules: make(map[string]VaccinationSchedule),
        EmergencyContacts:    make(map[string]ContactGroup),
    }
}

// LoadKnowledgeBase reads the knowledge document from path. A missing
// file is not an error: the bot then runs with an empty knowledge base
// and degrades to generic responses.
func LoadKnowledgeBase(path string) (*KnowledgeBase, error) {
    file, err := os.Open(path)
    if err != nil {
        if os.IsNotExist(err) {
            log.Printf("Knowledge base not found at %s, continuing with empty knowledge", path)
            return NewEmptyKnowledgeBase(), nil
        }
        return nil, fmt.Errorf("failed to open knowledge base: %w", err)
    }
    defer file.Close()

    kb := NewEmptyKnowledgeBase()
    if err := kb.decode(json.NewDecoder(file)); err != nil {
        return nil, fmt.Errorf("failed to parse knowledge base: %w", err)
    }
    log.Printf("Knowledge base loaded: %d diseases, %d preventive categories",
        len(kb.Diseases), len(kb.PreventiveHealth))
    return kb, nil
}

// Disease looks up one disease entry by its raw key.
func (kb *KnowledgeBase) Disease(name string) (DiseaseInfo, bool) {
    info, ok := kb.Diseases[name]
    return info, ok
}

// Schedule returns the vaccination schedule for an age group
// ("children" or "adults"), empty when the group is unknown.
func (kb *KnowledgeBase) Schedule(ageGroup string) VaccinationSchedule {
    return kb.VaccinationSchedules[ageGroup]
}

// NationalHelplines returns the national emergency contact numbers.
func (kb *KnowledgeBase) NationalHelplines() ContactGroup {
    return kb.EmergencyContacts["national_helplines"]
}

// decode walks the JSON token stream by hand instead of unmarshalling
// into plain maps. Go maps do not keep key order, and the document
// order of diseases, schedule labels and tip categories drives both
// the vector space row layout and deterministic response rendering.
func (kb *KnowledgeBase) decode(dec *json.Decoder) error {
    if err := expectDelim(dec, '{'); err != nil {
        return err
    }
    for dec.More() {
        key, err := nextKey(dec)
        if err != nil {
            return err
        }
        switch key {
        case "diseases":
            err = kb.decodeDiseases(dec)
        case "preventive_health":
            err = kb.decodePreventiveHealth(dec)
        case "vaccination_schedules":
            err = kb.decodeSchedules(dec)
        case "emergency_contacts":
            err = kb.decodeContacts(dec)
        default:
            err = skipValue(dec)
        }
        if err != nil {
            return err
        }
    }
    return expectDelim(dec, '}')
}

func (kb *KnowledgeBase) decodeDiseases(dec *json.Decoder) error {
    if err := expectDelim(dec, '{'); err != nil {
        return err
    }
    for dec.More() {
        name, err := nextKey(dec)
        if err != nil {
            return err
        }
        var info DiseaseInfo
        if err := dec.Decode(&info); err != nil {
            return err
        }
        kb.Diseases[name] = info
        kb.DiseaseOrder = append(kb.DiseaseOrder, name)
    }
    return expectDelim(dec, '}')
}

func (kb *KnowledgeBase) decodePreventiveHealth(dec *json.Decoder) error {
    if err := expectDelim(dec, '{'); err != nil {
        return err
    }
    for dec.More() {
        name, err := nextKey(dec)
        if err != nil {
            return err
        }
        category := PreventiveCategory{Topics: make(map[string][]string)}
        if err := expectDelim(dec, '{'); err != nil {
            return err
        }
        for dec.More() {
            topic, err := nextKey(dec)
            if err != nil {
                return err
            }
            var tips []string
            if err := dec.Decode(&tips); err != nil {
                return err
            }
            category.Topics[topic] = tips
            category.Order = append(category.Order, topic)
        }
        if err := expectDelim(dec, '}'); err != nil {
            return err
        }
        kb.PreventiveHealth[name] = category
        kb.PreventiveOrder = append(kb.PreventiveOrder, name)
    }
    return expectDelim(dec, '}')
}

func (kb *KnowledgeBase) decodeSchedules(dec *json.Decoder) error {
    if err := expectDelim(dec, '{'); err != nil {
        return err
    }
    for dec.More() {
        ageGroup, err := nextKey(dec)
        if err != nil {
            return err
        }
        schedule := VaccinationSchedule{Vaccines: make(map[string][]string)}
        if err := expectDelim(dec, '{'); err != nil {
            return err
        }
        for dec.More() {
            label, err := nextKey(dec)
            if err != nil {
                return err
            }
            var vaccines []string
            if err := dec.Decode(&vaccines); err != nil {
                return err
            }
            schedule.Vaccines[label] = vaccines
            schedule.Order = append(schedule.Order, label)
        }
        if err := expectDelim(dec, '}'); err != nil {
            return err
        }
        kb.VaccinationSchedules[ageGroup] = schedule
    }
    return expectDelim(dec, '}')
}

func (kb *KnowledgeBase) decodeContacts(dec *json.Decoder) error {
    if err := expectDelim(dec, '{'); err != nil {
        return err
    }
    for dec.More() {
        groupName, err := nextKey(dec)
        if err != nil {
            return err
        }
        group := ContactGroup{Numbers: make(map[string]string)}
        if err := expectDelim(dec, '{'); err != nil {
            return err
        }
        for dec.More() {
            service, err := nextKey(dec)
            if err != nil {
                return err
            }
            var number string
            if err := dec.Decode(&number); err != nil {
                return err
            }
            group.Numbers[service] = number
            group.Order = append(group.Order, service)
        }
        if err := expectDelim(dec, '}'); err != nil {
            return err
        }
        kb.EmergencyContacts[groupName] = group
    }
    return expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
    tok, err := dec.Token()
    if err != nil {
        return err
    }
    delim, ok := tok.(json.Delim)
    if !ok || delim != want {
        return fmt.Errorf("expected %q, got %v", want, tok)
    }
    return nil
}

func nextKey(dec *json.Decoder) (string, error) {
    tok, err := dec.Token()
    if err != nil {
        return "", err
    }
    key, ok := tok.(string)
    if !ok {
        return "", fmt.Errorf("expected object key, got %v", tok)
    }
    return key, nil
}

func skipValue(dec *json.Decoder) error {
    var ignored json.RawMessage
    return dec.Decode(&ignored)
}
