package lexical

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/skillmatch/internal/parsing"
	"github.com/jonathan/skillmatch/internal/types"
)

// CapabilityTermWeighting names the weighter in degradation notices.
const CapabilityTermWeighting = "term_weighting"

// maxSignals caps each keyword list in the output.
const maxSignals = 20

var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Scorer computes keyword overlap and whole-document lexical similarity.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	weighter Weighter
	logger   *zap.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWeighter sets the term weighter. The default is TFIDF with DefaultTFIDFConfig.
func WithWeighter(weighter Weighter) Option {
	return func(s *Scorer) {
		if weighter != nil {
			s.weighter = weighter
		}
	}
}

// WithLogger sets the logger used for degradation notices.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scorer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScorer returns a Scorer configured with opts.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		weighter: NewTFIDF(DefaultTFIDFConfig()),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// KeywordOverlap compares the weighted terms of resume and job text.
// OverlapScore is the fraction of the pair's vocabulary present in both
// texts. An empty job text yields a zero score and empty lists; an empty
// resume still reports the job's terms as missing.
func (s *Scorer) KeywordOverlap(resumeText, jobText string) (*types.KeywordOverlap, error) {
	resume := parsing.NormalizeText(resumeText)
	job := parsing.NormalizeText(jobText)

	result := &types.KeywordOverlap{
		Matching: []types.KeywordSignal{},
		Missing:  []types.KeywordSignal{},
		Method:   types.LexicalMethodTFIDF,
	}
	if job == "" {
		return result, nil
	}

	tw, err := s.weigh(resume, job)
	if err != nil {
		return nil, err
	}
	if tw == nil {
		return jaccardOverlap(resume, job), nil
	}

	for t, term := range tw.Terms {
		rw, jw := tw.Weights[0][t], tw.Weights[1][t]
		switch {
		case rw > 0 && jw > 0:
			result.Matching = append(result.Matching, types.KeywordSignal{
				Keyword:       term,
				ResumeWeight:  rw,
				JobWeight:     jw,
				CombinedScore: rw * jw,
			})
		case jw > 0:
			result.Missing = append(result.Missing, types.KeywordSignal{
				Keyword:       term,
				JobWeight:     jw,
				CombinedScore: jw,
				Importance:    types.ImportanceForWeight(jw),
			})
		}
	}

	if len(tw.Terms) > 0 {
		result.OverlapScore = float64(len(result.Matching)) / float64(len(tw.Terms))
	}

	sort.SliceStable(result.Matching, func(i, j int) bool {
		return result.Matching[i].CombinedScore > result.Matching[j].CombinedScore
	})
	sort.SliceStable(result.Missing, func(i, j int) bool {
		return result.Missing[i].JobWeight > result.Missing[j].JobWeight
	})
	result.Matching = truncate(result.Matching)
	result.Missing = truncate(result.Missing)

	return result, nil
}

// Similarity is the cosine similarity of the two weighted documents, or
// their word-set Jaccard index when no weighter is available.
func (s *Scorer) Similarity(resumeText, jobText string) (*types.LexicalScore, error) {
	resume := parsing.NormalizeText(resumeText)
	job := parsing.NormalizeText(jobText)

	if resume == "" || job == "" {
		return &types.LexicalScore{Method: types.LexicalMethodTFIDF}, nil
	}

	tw, err := s.weigh(resume, job)
	if err != nil {
		return nil, err
	}
	if tw == nil {
		return &types.LexicalScore{
			Score:  jaccard(wordSet(resume), wordSet(job)),
			Method: types.LexicalMethodJaccard,
		}, nil
	}

	return &types.LexicalScore{
		Score:  clamp01(cosine(tw.Weights[0], tw.Weights[1])),
		Method: types.LexicalMethodTFIDF,
	}, nil
}

// weigh returns nil weights without error when the weighter is unavailable.
func (s *Scorer) weigh(resume, job string) (*TermWeights, error) {
	tw, err := s.weighter.Weigh([]string{resume, job})
	if err != nil {
		if errors.Is(err, ErrWeighterUnavailable) {
			s.logger.Warn("capability degraded",
				zap.String("capability", CapabilityTermWeighting),
				zap.String("reason", err.Error()),
			)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to weigh terms: %w", err)
	}
	if len(tw.Weights) != 2 {
		return nil, fmt.Errorf("failed to weigh terms: expected 2 weight rows, got %d", len(tw.Weights))
	}
	return tw, nil
}

func jaccardOverlap(resume, job string) *types.KeywordOverlap {
	resumeWords := wordSet(resume)
	jobWords := wordSet(job)

	result := &types.KeywordOverlap{
		Matching: []types.KeywordSignal{},
		Missing:  []types.KeywordSignal{},
		Method:   types.LexicalMethodJaccard,
	}

	var common, missing []string
	for w := range jobWords {
		if _, ok := resumeWords[w]; ok {
			common = append(common, w)
		} else {
			missing = append(missing, w)
		}
	}
	sort.Strings(common)
	sort.Strings(missing)

	if len(jobWords) > 0 {
		result.OverlapScore = float64(len(common)) / float64(len(jobWords))
	}
	for _, w := range common {
		result.Matching = append(result.Matching, types.KeywordSignal{
			Keyword: w, ResumeWeight: 1.0, JobWeight: 1.0, CombinedScore: 1.0,
		})
	}
	for _, w := range missing {
		result.Missing = append(result.Missing, types.KeywordSignal{
			Keyword: w, JobWeight: 1.0, CombinedScore: 1.0, Importance: types.ImportanceMedium,
		})
	}
	result.Matching = truncate(result.Matching)
	result.Missing = truncate(result.Missing)
	return result
}

// wordSet returns the distinct words of text longer than two characters.
func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range wordRe.FindAllString(text, -1) {
		if utf8.RuneCountInString(w) > 2 {
			set[w] = struct{}{}
		}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func truncate(signals []types.KeywordSignal) []types.KeywordSignal {
	if len(signals) > maxSignals {
		return signals[:maxSignals]
	}
	return signals
}
