// Package types provides type definitions for structured data used throughout the skillmatch system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// MatchRequest is the input to a single resume/job match
type MatchRequest struct {
	ResumeText       string           `json:"resume_text"`
	JobText          string           `json:"job_text"`
	ResumeSkills     []string         `json:"resume_skills,omitempty" validate:"omitempty,dive,max=200"`
	JobSkills        []string         `json:"job_skills,omitempty" validate:"omitempty,dive,max=200"`
	ResumeExperience ResumeExperience `json:"resume_experience"`
	JobRequirements  JobRequirements  `json:"job_requirements"`
}

// ResumeExperience is the structured experience data known about a candidate
type ResumeExperience struct {
	TotalYears *int     `json:"total_years,omitempty" validate:"omitempty,gte=0,lte=80"`
	Positions  []string `json:"positions,omitempty"`
}

// JobRequirements is the structured experience requirement of a job posting
type JobRequirements struct {
	MinYears  *int     `json:"min_years,omitempty" validate:"omitempty,gte=0,lte=80"`
	Positions []string `json:"positions,omitempty"`
}

// MatchResult is the explainable output of a match
type MatchResult struct {
	OverallMatchScore    float64           `json:"overall_match_score"`
	ComponentScores      ComponentScores   `json:"component_scores"`
	MatchingSkills       []string          `json:"matching_skills"`
	MissingSkills        []string          `json:"missing_skills"`
	ExtraSkills          []string          `json:"extra_skills"`
	KeywordSignals       KeywordSignals    `json:"keyword_signals"`
	SemanticEvidence     []SentencePair    `json:"semantic_evidence"`
	ExperienceDetails    ExperienceDetails `json:"experience_details"`
	DegradedCapabilities []string          `json:"degraded_capabilities,omitempty"`
}

// ComponentScores holds the five weighted signals, each in [0,1]
type ComponentScores struct {
	Lexical         float64 `json:"lexical"`
	KeywordOverlap  float64 `json:"keyword_overlap"`
	Semantic        float64 `json:"semantic"`
	SkillMatch      float64 `json:"skill_match"`
	ExperienceMatch float64 `json:"experience_match"`
}

// KeywordSignals groups the matching and missing keyword evidence
type KeywordSignals struct {
	Matching []KeywordSignal `json:"matching"`
	Missing  []KeywordSignal `json:"missing"`
}
