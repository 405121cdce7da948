package feedback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/types"
)

// wellFormedResume passes every structural check
func wellFormedResume() string {
	body := strings.Repeat("Managed releases and led planning while the team developed and implemented services. ", 30)
	return "Experience\n" + body + "\nSkills\nGo, SQL\nEducation\nBSc\nImproved latency by 40%."
}

func TestSuggestions_WellFormedResume(t *testing.T) {
	assert.Empty(t, Suggestions(wellFormedResume(), nil))
}

func TestSuggestions_ImportantKeywords(t *testing.T) {
	missing := []types.KeywordSignal{
		{Keyword: "kubernetes", Importance: types.ImportanceHigh},
		{Keyword: "terraform", Importance: types.ImportanceLow},
		{Keyword: "aws", Importance: types.ImportanceHigh},
	}

	tips := Suggestions(wellFormedResume(), missing)

	require.Len(t, tips, 1)
	assert.Equal(t, "Add these important keywords: kubernetes, aws", tips[0])
}

func TestSuggestions_OnlyFirstTenMissingKeywordsChecked(t *testing.T) {
	var missing []types.KeywordSignal
	for i := 0; i < 10; i++ {
		missing = append(missing, types.KeywordSignal{Keyword: "low", Importance: types.ImportanceLow})
	}
	missing = append(missing, types.KeywordSignal{Keyword: "late", Importance: types.ImportanceHigh})

	assert.Empty(t, Suggestions(wellFormedResume(), missing))
}

func TestSuggestions_AtMostFiveKeywords(t *testing.T) {
	var missing []types.KeywordSignal
	for _, k := range []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"} {
		missing = append(missing, types.KeywordSignal{Keyword: k, Importance: types.ImportanceHigh})
	}

	tips := Suggestions(wellFormedResume(), missing)

	require.NotEmpty(t, tips)
	assert.Equal(t, "Add these important keywords: a1, a2, a3, a4, a5", tips[0])
}

func TestSuggestions_ShortBareResume(t *testing.T) {
	tips := Suggestions("Python developer with Flask.", nil)

	assert.Len(t, tips, 5)
	assert.Contains(t, tips[0], "too short")
	assert.Contains(t, tips[1], "Experience")
	assert.Contains(t, tips[2], "Skills")
	assert.Contains(t, tips[3], "Education")
	assert.Contains(t, tips[4], "quantifiable")
}

func TestSuggestions_LongResume(t *testing.T) {
	resume := wellFormedResume() + strings.Repeat(" filler", 1000)

	tips := Suggestions(resume, nil)

	require.Len(t, tips, 1)
	assert.Contains(t, tips[0], "too long")
}

func TestSkillGaps(t *testing.T) {
	gaps := SkillGaps([]string{"python"}, []string{"aws"})

	assert.Equal(t, []types.SkillGap{
		{Skill: "python", Status: types.SkillStatusFound, RelevanceScore: 1.0},
		{Skill: "aws", Status: types.SkillStatusMissing, RelevanceScore: 0.0},
	}, gaps)
}

func TestKeywordDensity(t *testing.T) {
	signals := types.KeywordSignals{
		Matching: []types.KeywordSignal{{Keyword: "python", CombinedScore: 0.25}},
		Missing:  []types.KeywordSignal{{Keyword: "aws", JobWeight: 0.4}},
	}

	density := KeywordDensity(signals)

	assert.Equal(t, map[string]float64{"python": 0.25, "aws": -0.4}, density)
}

func TestKeywordDensity_TopTenEach(t *testing.T) {
	var signals types.KeywordSignals
	for i := 0; i < 15; i++ {
		signals.Matching = append(signals.Matching, types.KeywordSignal{Keyword: "m" + strings.Repeat("x", i), CombinedScore: 0.1})
		signals.Missing = append(signals.Missing, types.KeywordSignal{Keyword: "n" + strings.Repeat("x", i), JobWeight: 0.1})
	}

	assert.Len(t, KeywordDensity(signals), 20)
}

func TestGenerate_NilResult(t *testing.T) {
	fb := Generate("", nil)

	require.NotNil(t, fb)
	assert.NotEmpty(t, fb.Suggestions)
	assert.Empty(t, fb.SkillGaps)
	assert.Empty(t, fb.KeywordDensity)
}

func TestGenerate_FromResult(t *testing.T) {
	result := &types.MatchResult{
		MatchingSkills: []string{"python"},
		MissingSkills:  []string{"aws"},
		KeywordSignals: types.KeywordSignals{
			Missing: []types.KeywordSignal{{Keyword: "aws", JobWeight: 0.3, Importance: types.ImportanceHigh}},
		},
	}

	fb := Generate(wellFormedResume(), result)

	assert.Equal(t, []string{"Add these important keywords: aws"}, fb.Suggestions)
	assert.Len(t, fb.SkillGaps, 2)
	assert.Equal(t, -0.3, fb.KeywordDensity["aws"])
}
