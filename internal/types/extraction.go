// Package types provides type definitions for structured data used throughout the skillmatch system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ExtractionResult holds everything the skill extractor found in one text.
// AllSkills is the canonical skill set used for matching; soft skills and
// NLP candidates are reported but excluded from it.
type ExtractionResult struct {
	AllSkills            []string       `json:"all_skills"`
	TechnicalSkills      []string       `json:"technical_skills"`
	SoftSkills           []string       `json:"soft_skills"`
	ProgrammingLanguages []string       `json:"programming_languages"`
	FrameworksTools      []string       `json:"frameworks_tools"`
	NLPEntities          []string       `json:"nlp_entities"`
	SkillCandidates      []string       `json:"skill_candidates"`
	Certifications       []string       `json:"certifications"`
	Experience           ExperienceData `json:"experience"`

	// DegradedCapabilities names optional capabilities that fell back during extraction
	DegradedCapabilities []string `json:"degraded_capabilities,omitempty"`
}

// ExperienceData holds years-of-experience hints found in a text
type ExperienceData struct {
	TotalYears *int         `json:"total_years"`
	SkillYears []SkillYears `json:"skill_years"`
	Mentions   []int        `json:"experience_mentions"`
}

// SkillYears is a per-skill years estimate
type SkillYears struct {
	Skill string `json:"skill"`
	Years int    `json:"years"`
}

// NewExtractionResult returns a result with every collection non-nil.
func NewExtractionResult() *ExtractionResult {
	return &ExtractionResult{
		AllSkills:            []string{},
		TechnicalSkills:      []string{},
		SoftSkills:           []string{},
		ProgrammingLanguages: []string{},
		FrameworksTools:      []string{},
		NLPEntities:          []string{},
		SkillCandidates:      []string{},
		Certifications:       []string{},
		Experience: ExperienceData{
			SkillYears: []SkillYears{},
			Mentions:   []int{},
		},
	}
}
