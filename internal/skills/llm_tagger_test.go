package skills

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/llm"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
}

func (m *MockLLMClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return `{"entities": [], "noun_phrases": []}`, nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string {
	return "mock-model"
}

func (m *MockLLMClient) Close() error {
	return nil
}

func TestLLMTagger_Success(t *testing.T) {
	var gotPrompt string
	var gotTier llm.ModelTier
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
			gotPrompt = prompt
			gotTier = tier
			return "```json\n{\"entities\": [{\"text\": \"Databricks Platform\", \"label\": \"PRODUCT\"}], \"noun_phrases\": [\"data analysis\"]}\n```", nil
		},
	}

	tags, err := NewLLMTagger(client, "").Tag(context.Background(), "Ran data analysis on the Databricks Platform")
	require.NoError(t, err)

	assert.Equal(t, llm.TierLite, gotTier)
	assert.Contains(t, gotPrompt, "Ran data analysis on the Databricks Platform")
	assert.NotContains(t, gotPrompt, "{{.Text}}")
	assert.Equal(t, []Entity{{Text: "Databricks Platform", Label: "PRODUCT"}}, tags.Entities)
	assert.Equal(t, []string{"data analysis"}, tags.NounPhrases)
}

func TestLLMTagger_EmptyTextSkipsCall(t *testing.T) {
	called := false
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			called = true
			return "{}", nil
		},
	}

	tags, err := NewLLMTagger(client, llm.TierStandard).Tag(context.Background(), "   ")
	require.NoError(t, err)
	assert.False(t, called)
	assert.Empty(t, tags.Entities)
}

func TestLLMTagger_APIError(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}

	_, err := NewLLMTagger(client, llm.TierLite).Tag(context.Background(), "text")
	require.Error(t, err)

	var taggerErr *TaggerError
	require.ErrorAs(t, err, &taggerErr)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestLLMTagger_InvalidJSON(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "not json", nil
		},
	}

	_, err := NewLLMTagger(client, llm.TierLite).Tag(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON response")
}

func TestLLMTagger_NilClientUnavailable(t *testing.T) {
	_, err := NewLLMTagger(nil, llm.TierLite).Tag(context.Background(), "text")
	assert.ErrorIs(t, err, ErrTaggerUnavailable)
}

func TestNopTagger(t *testing.T) {
	tags, err := NopTagger{}.Tag(context.Background(), "text")
	assert.Nil(t, tags)
	assert.ErrorIs(t, err, ErrTaggerUnavailable)
}
