// Package skills extracts known skills, certifications and years of
// experience from free text.
package skills

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/skillmatch/internal/parsing"
	"github.com/jonathan/skillmatch/internal/types"
)

// CapabilityNLPTagger names the tagger in degradation notices.
const CapabilityNLPTagger = "nlp_tagger"

// DefaultTaggerTimeout bounds a single tagging request
const DefaultTaggerTimeout = 30 * time.Second

// Extractor finds vocabulary skills in text. It holds no mutable state and is
// safe for concurrent use.
type Extractor struct {
	tagger        Tagger
	taggerTimeout time.Duration
	logger        *zap.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTagger sets the NLP tagger. The default is NopTagger.
func WithTagger(tagger Tagger) Option {
	return func(e *Extractor) {
		if tagger != nil {
			e.tagger = tagger
		}
	}
}

// WithTaggerTimeout bounds each tagging request. Non-positive values keep the default.
func WithTaggerTimeout(timeout time.Duration) Option {
	return func(e *Extractor) {
		if timeout > 0 {
			e.taggerTimeout = timeout
		}
	}
}

// WithLogger sets the logger used for degradation notices.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor returns an Extractor configured with opts.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		tagger:        NopTagger{},
		taggerTimeout: DefaultTaggerTimeout,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns every skill, certification and experience hint found in
// text. It never fails: empty text yields a result with empty collections and
// a failing or slow tagger only empties the NLP fields.
func (e *Extractor) Extract(ctx context.Context, text string) *types.ExtractionResult {
	result := e.ExtractSkills(text)
	if text == "" {
		return result
	}

	if ok := e.tag(ctx, text, result); !ok {
		result.DegradedCapabilities = append(result.DegradedCapabilities, CapabilityNLPTagger)
	}
	return result
}

// ExtractSkills is Extract without the NLP tagger. It only matches the
// built-in vocabularies and patterns, so it never blocks.
func (e *Extractor) ExtractSkills(text string) *types.ExtractionResult {
	result := types.NewExtractionResult()
	if text == "" {
		return result
	}

	folded := parsing.FoldText(text)
	result.TechnicalSkills = technicalVocabulary.match(folded)
	result.SoftSkills = softVocabulary.match(folded)
	result.ProgrammingLanguages = programmingVocabulary.match(folded)
	result.FrameworksTools = frameworksVocabulary.match(folded)
	result.AllSkills = union(result.TechnicalSkills, result.ProgrammingLanguages, result.FrameworksTools)

	result.Certifications = extractCertifications(text)
	result.Experience = extractExperience(text)

	e.logger.Debug("skills extracted",
		zap.Int("all_skills", len(result.AllSkills)),
		zap.Int("soft_skills", len(result.SoftSkills)),
		zap.Int("certifications", len(result.Certifications)),
	)
	return result
}

// tag runs the NLP tagger under the tagger timeout and stores its filtered
// output. It reports false when the tagger was unavailable, failed or ran
// out of time.
func (e *Extractor) tag(ctx context.Context, text string, result *types.ExtractionResult) bool {
	tagCtx, cancel := context.WithTimeout(ctx, e.taggerTimeout)
	defer cancel()

	tags, err := e.tagger.Tag(tagCtx, text)
	if err != nil {
		level := e.logger.Warn
		if errors.Is(err, ErrTaggerUnavailable) {
			level = e.logger.Debug
		}
		reason := err.Error()
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			reason = "tagging timed out after " + e.taggerTimeout.String()
		}
		level("capability degraded",
			zap.String("capability", CapabilityNLPTagger),
			zap.String("reason", reason),
		)
		return false
	}
	if tags == nil {
		return true
	}

	result.NLPEntities = filterEntities(tags.Entities)
	result.SkillCandidates = filterNounPhrases(tags.NounPhrases)
	return true
}

func union(lists ...[]string) []string {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, s := range list {
			set[s] = struct{}{}
		}
	}
	return sortedKeys(set)
}
