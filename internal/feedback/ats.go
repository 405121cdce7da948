// Package feedback turns a match result into ATS-friendliness advice.
package feedback

import (
	"strings"

	"github.com/jonathan/skillmatch/internal/types"
)

const (
	maxSuggestions      = 5
	maxKeywordsChecked  = 10
	maxKeywordsAdvised  = 5
	maxDensityKeywords  = 10
	minResumeWords      = 300
	maxResumeWords      = 1000
	minActionVerbsFound = 3
)

var actionVerbs = []string{
	"managed", "led", "developed", "created", "implemented", "achieved", "increased", "decreased",
}

var quantifierMarkers = []string{"%", "$", "increase", "decrease", "improved"}

// Generate returns the suggestions, skill gap table and keyword density map
// for a resume. It reads only the missing keywords and skill lists of result.
func Generate(resumeText string, result *types.MatchResult) *types.ATSFeedback {
	fb := &types.ATSFeedback{
		Suggestions:    []string{},
		SkillGaps:      []types.SkillGap{},
		KeywordDensity: map[string]float64{},
	}
	if result == nil {
		result = &types.MatchResult{}
	}

	fb.Suggestions = Suggestions(resumeText, result.KeywordSignals.Missing)
	fb.SkillGaps = SkillGaps(result.MatchingSkills, result.MissingSkills)
	fb.KeywordDensity = KeywordDensity(result.KeywordSignals)
	return fb
}

// Suggestions runs the fixed ATS checklist and returns at most five tips.
func Suggestions(resumeText string, missing []types.KeywordSignal) []string {
	tips := []string{}

	var important []string
	for i, kw := range missing {
		if i >= maxKeywordsChecked {
			break
		}
		if kw.Importance == types.ImportanceHigh && len(important) < maxKeywordsAdvised {
			important = append(important, kw.Keyword)
		}
	}
	if len(important) > 0 {
		tips = append(tips, "Add these important keywords: "+strings.Join(important, ", "))
	}

	words := len(strings.Fields(resumeText))
	switch {
	case words < minResumeWords:
		tips = append(tips, "Resume might be too short. Consider adding more detail to your experience and skills.")
	case words > maxResumeWords:
		tips = append(tips, "Resume might be too long. Consider condensing to 1-2 pages.")
	}

	lower := strings.ToLower(resumeText)
	if !strings.Contains(lower, "experience") && !strings.Contains(lower, "work history") {
		tips = append(tips, "Consider adding a clear 'Experience' or 'Work History' section.")
	}
	if !strings.Contains(lower, "skills") {
		tips = append(tips, "Consider adding a dedicated 'Skills' section.")
	}
	if !strings.Contains(lower, "education") {
		tips = append(tips, "Consider adding an 'Education' section if applicable.")
	}

	quantified := false
	for _, marker := range quantifierMarkers {
		if strings.Contains(resumeText, marker) {
			quantified = true
			break
		}
	}
	if !quantified {
		tips = append(tips, "Add quantifiable achievements (percentages, dollar amounts, metrics).")
	}

	verbs := 0
	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			verbs++
		}
	}
	if verbs < minActionVerbsFound {
		tips = append(tips, "Use more action verbs to describe your accomplishments.")
	}

	if len(tips) > maxSuggestions {
		tips = tips[:maxSuggestions]
	}
	return tips
}

// SkillGaps lists matched skills as found (relevance 1) followed by missing
// skills (relevance 0).
func SkillGaps(matched, missing []string) []types.SkillGap {
	gaps := make([]types.SkillGap, 0, len(matched)+len(missing))
	for _, s := range matched {
		gaps = append(gaps, types.SkillGap{Skill: s, Status: types.SkillStatusFound, RelevanceScore: 1.0})
	}
	for _, s := range missing {
		gaps = append(gaps, types.SkillGap{Skill: s, Status: types.SkillStatusMissing, RelevanceScore: 0.0})
	}
	return gaps
}

// KeywordDensity maps the top matching keywords to their combined score and
// the top missing keywords to their negated job weight.
func KeywordDensity(signals types.KeywordSignals) map[string]float64 {
	density := make(map[string]float64)
	for i, kw := range signals.Matching {
		if i >= maxDensityKeywords {
			break
		}
		density[kw.Keyword] = kw.CombinedScore
	}
	for i, kw := range signals.Missing {
		if i >= maxDensityKeywords {
			break
		}
		density[kw.Keyword] = -kw.JobWeight
	}
	return density
}
