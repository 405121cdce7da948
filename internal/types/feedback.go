// Package types provides type definitions for structured data used throughout the skillmatch system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Skill gap statuses
const (
	SkillStatusFound   = "found"
	SkillStatusMissing = "missing"
)

// SkillGap is one row of the found/missing skill table
type SkillGap struct {
	Skill          string  `json:"skill"`
	Status         string  `json:"status"`
	RelevanceScore float64 `json:"relevance_score"`
}

// ATSFeedback is the applicant-tracking-system advice derived from a match
type ATSFeedback struct {
	Suggestions    []string           `json:"suggestions"`
	SkillGaps      []SkillGap         `json:"skill_gaps"`
	KeywordDensity map[string]float64 `json:"keyword_density"` // positive for matching, negative for missing
}
