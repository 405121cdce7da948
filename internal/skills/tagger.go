package skills

import (
	"context"
	"errors"
	"strings"
)

// ErrTaggerUnavailable is returned by taggers that have no NLP backend.
var ErrTaggerUnavailable = errors.New("nlp tagger unavailable")

// Entity is a named entity found by a tagger.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Tags is the raw output of a tagger before filtering.
type Tags struct {
	Entities    []Entity `json:"entities"`
	NounPhrases []string `json:"noun_phrases"`
}

// Tagger finds named entities and noun phrases in text.
// Implementations must be safe for concurrent use.
type Tagger interface {
	Tag(ctx context.Context, text string) (*Tags, error)
}

// NopTagger is the null tagger. It always reports ErrTaggerUnavailable.
type NopTagger struct{}

// Tag implements Tagger
func (NopTagger) Tag(context.Context, string) (*Tags, error) {
	return nil, ErrTaggerUnavailable
}

var (
	entityLabels = map[string]bool{"ORG": true, "PRODUCT": true, "GPE": true}

	entityKeywords = []string{"tech", "soft", "system", "platform", "framework"}

	phraseKeywords = []string{"development", "programming", "analysis", "management", "design"}
)

const maxPhraseWords = 3

// filterEntities keeps organization, product and place entities whose text
// mentions an infrastructure keyword. Original casing is preserved.
func filterEntities(entities []Entity) []string {
	kept := []string{}
	seen := make(map[string]struct{})
	for _, ent := range entities {
		if !entityLabels[strings.ToUpper(ent.Label)] {
			continue
		}
		text := strings.TrimSpace(ent.Text)
		if !containsAny(strings.ToLower(text), entityKeywords) {
			continue
		}
		if _, exists := seen[text]; exists {
			continue
		}
		seen[text] = struct{}{}
		kept = append(kept, text)
	}
	return kept
}

// filterNounPhrases keeps lowercase phrases of at most three words that
// mention a job-function keyword.
func filterNounPhrases(phrases []string) []string {
	kept := []string{}
	seen := make(map[string]struct{})
	for _, phrase := range phrases {
		p := strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
		if p == "" || len(strings.Fields(p)) > maxPhraseWords {
			continue
		}
		if !containsAny(p, phraseKeywords) {
			continue
		}
		if _, exists := seen[p]; exists {
			continue
		}
		seen[p] = struct{}{}
		kept = append(kept, p)
	}
	return kept
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
