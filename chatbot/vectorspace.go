package chatbot

import (
    "math"
    "regexp"
    "sort"
    "strings"
)

// DiseaseMatch pairs a disease with its cosine similarity to the query.
type DiseaseMatch struct {
    Disease string  `json:"disease"`
    Score   float64 `json:"score"`
}

const (
    similarityThreshold = 0.1
    maxMatches          = 3
)

// SymptomVectorSpace holds one tf-idf weighted vector per disease over
// a uni/bi-gram vocabulary drawn from the symptom lists. The space is
// immutable after construction; row i corresponds to diseaseNames[i].
type SymptomVectorSpace struct {
    vocabulary   map[string]int
    idf          []float64
    rows         [][]float64
    diseaseNames []string
}

var termPattern = regexp.MustCompile(`\w\w+`)

// analyzeTerms lowercases the text, tokenizes on runs of two or more
// word characters, drops stop words and emits unigrams plus bigrams of
// the remaining tokens.
func analyzeTerms(text string) []string {
    raw := termPattern.FindAllString(strings.ToLower(text), -1)
    words := make([]string, 0, len(raw))
    for _, w := range raw {
        if !englishStopWords[w] {
            words = append(words, w)
        }
    }

    terms := make([]string, 0, len(words)*2)
    terms = append(terms, words...)
    for i := 0; i+1 < len(words); i++ {
        terms = append(terms, words[i]+" "+words[i+1])
    }
    return terms
}

// BuildSymptomIndex derives the vector space from the disease symptom
// lists. Diseases with no symptoms stay retrievable by lookup but get
// no row here. Term weights use smoothed idf, ln((1+n)/(1+df))+1, and
// every row is L2-normalized so cosine similarity reduces to a dot
// product at query time.
func BuildSymptomIndex(kb *KnowledgeBase) *SymptomVectorSpace {
    space := &SymptomVectorSpace{vocabulary: make(map[string]int)}
    if kb == nil {
        return space
    }

    var docs [][]string
    for _, name := range kb.DiseaseOrder {
        info := kb.Diseases[name]
        if len(info.Symptoms) == 0 {
            continue
        }
        docs = append(docs, analyzeTerms(strings.Join(info.Symptoms, " ")))
        space.diseaseNames = append(space.diseaseNames, name)
    }
    if len(docs) == 0 {
        return space
    }

    df := make(map[string]int)
    for _, terms := range docs {
        seen := make(map[string]bool)
        for _, term := range terms {
            if !seen[term] {
                seen[term] = true
                df[term]++
            }
        }
    }

    vocab := make([]string, 0, len(df))
    for term := range df {
        vocab = append(vocab, term)
    }
    sort.Strings(vocab)
    for i, term := range vocab {
        space.vocabulary[term] = i
    }

    space.idf = make([]float64, len(vocab))
    n := float64(len(docs))
    for term, i := range space.vocabulary {
        space.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
    }

    space.rows = make([][]float64, len(docs))
    for d, terms := range docs {
        space.rows[d] = space.vectorize(terms)
    }
    return space
}

// Size returns the number of diseases represented in the space.
func (s *SymptomVectorSpace) Size() int {
    if s == nil {
        return 0
    }
    return len(s.rows)
}

// Match scores the symptom tokens against every disease row and keeps
// the top 3 whose similarity strictly exceeds the threshold. Ties keep
// the disease order of the knowledge document.
func (s *SymptomVectorSpace) Match(symptoms []string) []DiseaseMatch {
    if s == nil || len(symptoms) == 0 || len(s.rows) == 0 {
        return nil
    }

    query := s.vectorize(analyzeTerms(strings.Join(symptoms, " ")))

    matches := make([]DiseaseMatch, len(s.rows))
    for i, row := range s.rows {
        var dot float64
        for j := range row {
            dot += row[j] * query[j]
        }
        matches[i] = DiseaseMatch{Disease: s.diseaseNames[i], Score: dot}
    }
    sort.SliceStable(matches, func(a, b int) bool {
        return matches[a].Score > matches[b].Score
    })

    var top []DiseaseMatch
    for _, match := range matches {
        if len(top) == maxMatches || match.Score <= similarityThreshold {
            break
        }
        top = append(top, match)
    }
    return top
}

// vectorize turns analyzed terms into an L2-normalized tf-idf vector.
// Terms outside the fitted vocabulary are ignored.
func (s *SymptomVectorSpace) vectorize(terms []string) []float64 {
    vec := make([]float64, len(s.idf))
    for _, term := range terms {
        if i, ok := s.vocabulary[term]; ok {
            vec[i]++
        }
    }

    var norm float64
    for i := range vec {
        vec[i] *= s.idf[i]
        norm += vec[i] * vec[i]
    }
    if norm > 0 {
        norm = math.Sqrt(norm)
        for i := range vec {
            vec[i] /= norm
        }
    }
    return vec
}
