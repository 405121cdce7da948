// Package ranking combines the lexical, semantic, skill and experience
// signals of a resume/job pair into one explainable match score.
package ranking

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/skillmatch/internal/parsing"
	"github.com/jonathan/skillmatch/internal/types"
)

// Weights assigns each component score its share of the overall score.
type Weights struct {
	Lexical         float64
	KeywordOverlap  float64
	Semantic        float64
	SkillMatch      float64
	ExperienceMatch float64
}

// DefaultWeights are the fixed aggregation weights.
var DefaultWeights = Weights{
	Lexical:         0.25,
	KeywordOverlap:  0.20,
	Semantic:        0.20,
	SkillMatch:      0.25,
	ExperienceMatch: 0.10,
}

const weightTolerance = 1e-9

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Lexical + w.KeywordOverlap + w.Semantic + w.SkillMatch + w.ExperienceMatch
}

// Validate checks that every weight is non-negative and the weights sum to 1.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"lexical":          w.Lexical,
		"keyword_overlap":  w.KeywordOverlap,
		"semantic":         w.Semantic,
		"skill_match":      w.SkillMatch,
		"experience_match": w.ExperienceMatch,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s must be non-negative, got %f", name, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %f", sum)
	}
	return nil
}

// Combine returns the weighted sum of the component scores.
func (w Weights) Combine(s types.ComponentScores) float64 {
	return w.Lexical*s.Lexical +
		w.KeywordOverlap*s.KeywordOverlap +
		w.Semantic*s.Semantic +
		w.SkillMatch*s.SkillMatch +
		w.ExperienceMatch*s.ExperienceMatch
}

// Experience sub-score credits
const (
	yearsCredit        = 0.4
	partialYearsCredit = 0.2
	positionCredit     = 0.3
	industryCredit     = 0.3
)

// MatchSkills compares two skill lists case-insensitively. MatchScore is the
// fraction of job skills the resume covers; Matched and Missing partition the
// job skill set. All lists are sorted and never nil.
func MatchSkills(resumeSkills, jobSkills []string) *types.SkillMatch {
	resume := parsing.NormalizeSkills(resumeSkills)
	job := parsing.NormalizeSkills(jobSkills)

	resumeSet := make(map[string]struct{}, len(resume))
	for _, s := range resume {
		resumeSet[s] = struct{}{}
	}
	jobSet := make(map[string]struct{}, len(job))
	for _, s := range job {
		jobSet[s] = struct{}{}
	}

	result := &types.SkillMatch{
		Matched: []string{},
		Missing: []string{},
		Extra:   []string{},
	}
	for _, s := range job {
		if _, ok := resumeSet[s]; ok {
			result.Matched = append(result.Matched, s)
		} else {
			result.Missing = append(result.Missing, s)
		}
	}
	for _, s := range resume {
		if _, ok := jobSet[s]; !ok {
			result.Extra = append(result.Extra, s)
		}
	}

	if len(job) > 0 {
		result.MatchScore = float64(len(result.Matched)) / float64(len(job))
	}
	return result
}

// MatchExperience scores years and position fit. Years earn 0.4 when the
// requirement is met or absent and 0.2*(have/need) otherwise; positions earn
// 0.3 when any required title occurs in a resume position or when either side
// lists none; industry always earns 0.3. The sum is capped at 1.0.
func MatchExperience(resume types.ResumeExperience, job types.JobRequirements) *types.ExperienceMatch {
	have := derefInt(resume.TotalYears)
	need := derefInt(job.MinYears)
	if have < 0 {
		have = 0
	}

	result := &types.ExperienceMatch{
		Details: types.ExperienceDetails{
			ResumeYears:   have,
			RequiredYears: need,
		},
	}

	score := 0.0
	if need > 0 {
		if have >= need {
			result.YearsMatch = true
			score += yearsCredit
		} else {
			score += partialYearsCredit * (float64(have) / float64(need))
		}
	} else {
		score += yearsCredit
	}

	required := nonBlank(job.Positions)
	held := nonBlank(resume.Positions)
	if len(required) > 0 && len(held) > 0 {
		if title, ok := findPosition(required, held); ok {
			result.PositionMatch = true
			result.Details.MatchedPosition = title
			score += positionCredit
		}
	} else {
		score += positionCredit
	}

	score += industryCredit

	result.ExperienceScore = math.Max(0, math.Min(1.0, score))
	return result
}

// findPosition returns the first required title contained in a held position.
func findPosition(required, held []string) (string, bool) {
	sorted := append([]string(nil), required...)
	sort.Strings(sorted)
	for _, req := range sorted {
		r := strings.ToLower(req)
		for _, pos := range held {
			if strings.Contains(strings.ToLower(pos), r) {
				return req, true
			}
		}
	}
	return "", false
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
