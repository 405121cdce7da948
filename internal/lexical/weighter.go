// Package lexical scores term-level overlap and whole-document lexical
// similarity between a resume and a job posting.
package lexical

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ErrWeighterUnavailable is returned by weighters that cannot weight terms.
// Scorers treat it as a capability degradation and fall back to Jaccard.
var ErrWeighterUnavailable = errors.New("term weighter unavailable")

// TermWeights is a document-term weight matrix. Weights[d][t] is the weight
// of Terms[t] in document d.
type TermWeights struct {
	Terms   []string
	Weights [][]float64
}

// Weighter builds a private term weighting over a small corpus.
// Implementations must not retain state between calls.
type Weighter interface {
	Weigh(docs []string) (*TermWeights, error)
}

// NopWeighter is the null weighter. It always reports ErrWeighterUnavailable.
type NopWeighter struct{}

// Weigh implements Weighter
func (NopWeighter) Weigh([]string) (*TermWeights, error) {
	return nil, ErrWeighterUnavailable
}

// TFIDFConfig controls vocabulary construction.
type TFIDFConfig struct {
	MinNGram    int
	MaxNGram    int
	MinDF       int     // minimum number of documents a term must appear in
	MaxDF       float64 // maximum fraction of documents a term may appear in
	MaxFeatures int     // keep the most frequent terms; 0 keeps all

	// StrictMaxDF compares document frequency against MaxDF*n directly, the
	// way scikit-learn does. With a resume/job pair that prunes every shared
	// term, so by default the cutoff is rounded up to a whole document count
	// instead, which keeps terms present in both texts.
	StrictMaxDF bool
}

// DefaultTFIDFConfig returns 1-2 grams, min_df 1, max_df 0.95, 5000 features.
func DefaultTFIDFConfig() TFIDFConfig {
	return TFIDFConfig{
		MinNGram:    1,
		MaxNGram:    2,
		MinDF:       1,
		MaxDF:       0.95,
		MaxFeatures: 5000,
	}
}

// TFIDF weights terms by raw frequency scaled by smoothed inverse document
// frequency, idf = ln((1+n)/(1+df)) + 1, with each row L2-normalized.
// English stop words are removed before n-grams are formed.
type TFIDF struct {
	config TFIDFConfig
}

// NewTFIDF returns a TFIDF weighter. Invalid config fields fall back to defaults.
func NewTFIDF(config TFIDFConfig) *TFIDF {
	def := DefaultTFIDFConfig()
	if config.MinNGram < 1 {
		config.MinNGram = def.MinNGram
	}
	if config.MaxNGram < config.MinNGram {
		config.MaxNGram = config.MinNGram
	}
	if config.MinDF < 1 {
		config.MinDF = def.MinDF
	}
	if config.MaxDF <= 0 || config.MaxDF > 1 {
		config.MaxDF = def.MaxDF
	}
	if config.MaxFeatures < 0 {
		config.MaxFeatures = 0
	}
	return &TFIDF{config: config}
}

var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Weigh implements Weighter
func (w *TFIDF) Weigh(docs []string) (*TermWeights, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("tfidf: empty corpus")
	}

	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	total := make(map[string]int)
	for i, doc := range docs {
		counts[i] = w.countTerms(doc)
		for term, c := range counts[i] {
			df[term]++
			total[term] += c
		}
	}

	maxDocs := w.config.MaxDF * float64(len(docs))
	if !w.config.StrictMaxDF {
		maxDocs = math.Ceil(maxDocs)
	}
	terms := make([]string, 0, len(df))
	for term, n := range df {
		if n < w.config.MinDF || float64(n) > maxDocs {
			continue
		}
		terms = append(terms, term)
	}

	if w.config.MaxFeatures > 0 && len(terms) > w.config.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if total[terms[i]] != total[terms[j]] {
				return total[terms[i]] > total[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:w.config.MaxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	weights := make([][]float64, len(docs))
	for i := range docs {
		row := make([]float64, len(terms))
		var norm float64
		for t, term := range terms {
			tf := counts[i][term]
			if tf == 0 {
				continue
			}
			idf := math.Log((1+n)/(1+float64(df[term]))) + 1
			row[t] = float64(tf) * idf
			norm += row[t] * row[t]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for t := range row {
				row[t] /= norm
			}
		}
		weights[i] = row
	}

	return &TermWeights{Terms: terms, Weights: weights}, nil
}

func (w *TFIDF) countTerms(doc string) map[string]int {
	counts := make(map[string]int)
	var tokens []string
	for _, tok := range tokenRe.FindAllString(strings.ToLower(doc), -1) {
		if _, stop := englishStopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}

	for n := w.config.MinNGram; n <= w.config.MaxNGram; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			counts[strings.Join(tokens[i:i+n], " ")]++
		}
	}
	return counts
}
