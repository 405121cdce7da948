package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/skillmatch/internal/llm"
	"github.com/jonathan/skillmatch/internal/prompts"
)

// TaggerError is returned when the LLM tagger cannot produce tags.
type TaggerError struct {
	Message string
	Cause   error
}

func (e *TaggerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("tagger error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("tagger error: %s", e.Message)
}

func (e *TaggerError) Unwrap() error {
	return e.Cause
}

// LLMTagger tags entities and noun phrases through an LLM client.
type LLMTagger struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewLLMTagger returns a tagger that calls client at the given model tier.
// An empty tier defaults to TierLite.
func NewLLMTagger(client llm.Client, tier llm.ModelTier) *LLMTagger {
	if tier == "" {
		tier = llm.TierLite
	}
	return &LLMTagger{client: client, tier: tier}
}

// Tag implements Tagger
func (t *LLMTagger) Tag(ctx context.Context, text string) (*Tags, error) {
	if t.client == nil {
		return nil, ErrTaggerUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return &Tags{}, nil
	}

	prompt, err := prompts.Render("tagging.json", "tag-entities-and-phrases", map[string]string{
		"Text": text,
	})
	if err != nil {
		return nil, &TaggerError{
			Message: "failed to build tagging prompt",
			Cause:   err,
		}
	}

	jsonResp, err := t.client.GenerateJSON(ctx, prompt, t.tier)
	if err != nil {
		return nil, &TaggerError{
			Message: "failed to generate tags from LLM",
			Cause:   err,
		}
	}

	jsonResp = llm.CleanJSONBlock(jsonResp)

	var tags Tags
	if err := json.Unmarshal([]byte(jsonResp), &tags); err != nil {
		return nil, &TaggerError{
			Message: "failed to parse JSON response",
			Cause:   err,
		}
	}

	return &tags, nil
}
