// Package types provides type definitions for structured data used throughout the skillmatch system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Importance tiers a missing keyword by its weight in the job text
type Importance string

// Importance values
const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// ImportanceForWeight maps a job-side term weight to its importance tier.
func ImportanceForWeight(jobWeight float64) Importance {
	switch {
	case jobWeight > 0.1:
		return ImportanceHigh
	case jobWeight > 0.05:
		return ImportanceMedium
	default:
		return ImportanceLow
	}
}

// KeywordSignal is the weight of a single term on both sides of a match
type KeywordSignal struct {
	Keyword       string     `json:"keyword"`
	ResumeWeight  float64    `json:"resume_weight"`
	JobWeight     float64    `json:"job_weight"`
	CombinedScore float64    `json:"combined_score"`
	Importance    Importance `json:"importance,omitempty"` // set on missing keywords only
}

// Lexical scoring methods
const (
	LexicalMethodTFIDF   = "tfidf"
	LexicalMethodJaccard = "jaccard"
)

// KeywordOverlap is the output of the keyword overlap scorer
type KeywordOverlap struct {
	OverlapScore float64         `json:"overlap_score"`
	Matching     []KeywordSignal `json:"matching"`
	Missing      []KeywordSignal `json:"missing"`
	Method       string          `json:"method"`
}

// LexicalScore is the whole-document lexical similarity
type LexicalScore struct {
	Score  float64 `json:"score"`
	Method string  `json:"method"`
}

// SentencePair links a resume sentence to its closest job sentence
type SentencePair struct {
	ResumeSentence string  `json:"resume_sentence"`
	JobSentence    string  `json:"job_sentence"`
	Similarity     float64 `json:"similarity"`
}

// SemanticResult is the output of the semantic similarity scorer
type SemanticResult struct {
	OverallSimilarity float64        `json:"overall_similarity"`
	Evidence          []SentencePair `json:"evidence"`

	// Degraded is set when the embedding capability was unavailable, failed or timed out
	Degraded bool `json:"degraded,omitempty"`
}

// SkillMatch is the output of the skill-set matcher
type SkillMatch struct {
	MatchScore float64  `json:"match_score"`
	Matched    []string `json:"matched"`
	Missing    []string `json:"missing"`
	Extra      []string `json:"extra"`
}

// ExperienceMatch is the output of the experience matcher
type ExperienceMatch struct {
	ExperienceScore float64           `json:"experience_score"`
	YearsMatch      bool              `json:"years_match"`
	PositionMatch   bool              `json:"position_match"`
	Details         ExperienceDetails `json:"details"`
}

// ExperienceDetails records the inputs the experience score was computed from
type ExperienceDetails struct {
	ResumeYears     int    `json:"resume_years"`
	RequiredYears   int    `json:"required_years"`
	MatchedPosition string `json:"matched_position,omitempty"`
}
