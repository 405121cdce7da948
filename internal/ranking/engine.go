package ranking

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skillmatch/internal/lexical"
	"github.com/jonathan/skillmatch/internal/semantic"
	"github.com/jonathan/skillmatch/internal/skills"
	"github.com/jonathan/skillmatch/internal/types"
)

// Engine runs the five scorers over one request and aggregates them. It is
// immutable after construction and safe for concurrent use.
type Engine struct {
	extractor *skills.Extractor
	lexical   *lexical.Scorer
	semantic  *semantic.Scorer
	weights   Weights
	validate  *validator.Validate
	logger    *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithExtractor sets the skill extractor used when a request omits skills.
func WithExtractor(extractor *skills.Extractor) Option {
	return func(e *Engine) {
		if extractor != nil {
			e.extractor = extractor
		}
	}
}

// WithLexicalScorer sets the keyword overlap and lexical similarity scorer.
func WithLexicalScorer(scorer *lexical.Scorer) Option {
	return func(e *Engine) {
		if scorer != nil {
			e.lexical = scorer
		}
	}
}

// WithSemanticScorer sets the embedding similarity scorer.
func WithSemanticScorer(scorer *semantic.Scorer) Option {
	return func(e *Engine) {
		if scorer != nil {
			e.semantic = scorer
		}
	}
}

// WithWeights overrides DefaultWeights. NewEngine rejects weights that do not sum to 1.
func WithWeights(weights Weights) Option {
	return func(e *Engine) {
		e.weights = weights
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine returns an Engine. Components not supplied through opts use
// their defaults: vocabulary extraction without a tagger, TF-IDF weighting
// and no embedder.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		weights:  DefaultWeights,
		validate: validator.New(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.extractor == nil {
		e.extractor = skills.NewExtractor(skills.WithLogger(e.logger))
	}
	if e.lexical == nil {
		e.lexical = lexical.NewScorer(lexical.WithLogger(e.logger))
	}
	if e.semantic == nil {
		e.semantic = semantic.NewScorer(semantic.WithLogger(e.logger))
	}
	if err := e.weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine weights: %w", err)
	}
	return e, nil
}

// Weights returns the aggregation weights in use.
func (e *Engine) Weights() Weights {
	return e.weights
}

// scores collects every scorer output of one request.
type scores struct {
	lexical    *types.LexicalScore
	keywords   *types.KeywordOverlap
	semantic   *types.SemanticResult
	skills     *types.SkillMatch
	experience *types.ExperienceMatch
}

// Match scores req. Skills and years absent from the request are extracted
// from the corresponding text first. Any scorer failure, including a
// recovered panic or caller cancellation, fails the whole request with an
// *AnalysisFailedError.
func (e *Engine) Match(ctx context.Context, req *types.MatchRequest) (*types.MatchResult, error) {
	if req == nil {
		return nil, &AnalysisFailedError{Message: "match request is nil"}
	}
	if err := e.validate.Struct(req); err != nil {
		return nil, &AnalysisFailedError{Message: "invalid match request", Cause: err}
	}

	in, err := e.prepare(req)
	if err != nil {
		return nil, &AnalysisFailedError{Message: "skill extraction failed", Cause: err}
	}

	var s scores
	g, gCtx := errgroup.WithContext(ctx)

	goSafe(g, "lexical similarity", func() (err error) {
		s.lexical, err = e.lexical.Similarity(in.ResumeText, in.JobText)
		return err
	})
	goSafe(g, "keyword overlap", func() (err error) {
		s.keywords, err = e.lexical.KeywordOverlap(in.ResumeText, in.JobText)
		return err
	})
	goSafe(g, "semantic similarity", func() (err error) {
		s.semantic, err = e.semantic.Score(gCtx, in.ResumeText, in.JobText)
		return err
	})
	goSafe(g, "skill match", func() error {
		s.skills = MatchSkills(in.ResumeSkills, in.JobSkills)
		return nil
	})
	goSafe(g, "experience match", func() error {
		s.experience = MatchExperience(in.ResumeExperience, in.JobRequirements)
		return nil
	})

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			e.logger.Info("match cancelled", zap.Error(err))
		} else {
			e.logger.Error("match failed", zap.Error(err))
		}
		return nil, &AnalysisFailedError{Message: "scoring failed", Cause: err}
	}
	if err := ctx.Err(); err != nil {
		e.logger.Info("match cancelled", zap.Error(err))
		return nil, &AnalysisFailedError{Message: "match cancelled", Cause: err}
	}

	var degraded []string

	if s.keywords.Method == types.LexicalMethodJaccard || s.lexical.Method == types.LexicalMethodJaccard {
		degraded = append(degraded, lexical.CapabilityTermWeighting)
	}
	if s.semantic.Degraded {
		degraded = append(degraded, semantic.CapabilityEmbeddings)
	}

	result := e.aggregate(&s)
	result.DegradedCapabilities = dedupe(degraded)

	e.logger.Info("match completed",
		zap.Float64("overall_match_score", result.OverallMatchScore),
		zap.Float64("lexical", result.ComponentScores.Lexical),
		zap.Float64("keyword_overlap", result.ComponentScores.KeywordOverlap),
		zap.Float64("semantic", result.ComponentScores.Semantic),
		zap.Float64("skill_match", result.ComponentScores.SkillMatch),
		zap.Float64("experience_match", result.ComponentScores.ExperienceMatch),
		zap.Strings("degraded_capabilities", result.DegradedCapabilities),
	)
	return result, nil
}

// prepare returns a copy of req with absent skills and years filled from
// the extractor. Only vocabulary extraction runs here; the NLP tagger output
// plays no part in scoring.
func (e *Engine) prepare(req *types.MatchRequest) (*types.MatchRequest, error) {
	in := *req
	needResume := len(req.ResumeSkills) == 0 || req.ResumeExperience.TotalYears == nil
	needJob := len(req.JobSkills) == 0 || req.JobRequirements.MinYears == nil

	var resumeExt, jobExt *types.ExtractionResult
	var g errgroup.Group
	if needResume {
		goSafe(&g, "resume extraction", func() error {
			resumeExt = e.extractor.ExtractSkills(req.ResumeText)
			return nil
		})
	}
	if needJob {
		goSafe(&g, "job extraction", func() error {
			jobExt = e.extractor.ExtractSkills(req.JobText)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if resumeExt != nil {
		if len(in.ResumeSkills) == 0 {
			in.ResumeSkills = resumeExt.AllSkills
		}
		if in.ResumeExperience.TotalYears == nil {
			in.ResumeExperience.TotalYears = resumeExt.Experience.TotalYears
		}
	}
	if jobExt != nil {
		if len(in.JobSkills) == 0 {
			in.JobSkills = jobExt.AllSkills
		}
		if in.JobRequirements.MinYears == nil {
			in.JobRequirements.MinYears = jobExt.Experience.TotalYears
		}
	}
	return &in, nil
}

func (e *Engine) aggregate(s *scores) *types.MatchResult {
	components := types.ComponentScores{
		Lexical:         s.lexical.Score,
		KeywordOverlap:  s.keywords.OverlapScore,
		Semantic:        s.semantic.OverallSimilarity,
		SkillMatch:      s.skills.MatchScore,
		ExperienceMatch: s.experience.ExperienceScore,
	}

	return &types.MatchResult{
		OverallMatchScore: e.weights.Combine(components),
		ComponentScores:   components,
		MatchingSkills:    s.skills.Matched,
		MissingSkills:     s.skills.Missing,
		ExtraSkills:       s.skills.Extra,
		KeywordSignals: types.KeywordSignals{
			Matching: s.keywords.Matching,
			Missing:  s.keywords.Missing,
		},
		SemanticEvidence:  s.semantic.Evidence,
		ExperienceDetails: s.experience.Details,
	}
}

// goSafe runs fn on g and turns a panic into an error naming the step.
func goSafe(g *errgroup.Group, step string, fn func() error) {
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s panicked: %v", step, r)
			}
		}()
		if err := fn(); err != nil {
			return fmt.Errorf("%s: %w", step, err)
		}
		return nil
	})
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := set[v]; ok {
			continue
		}
		set[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
