// Package semantic scores embedding-space similarity between a resume and a
// job posting at the document and sentence level.
package semantic

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/skillmatch/internal/llm"
	"github.com/jonathan/skillmatch/internal/parsing"
	"github.com/jonathan/skillmatch/internal/types"
)

// CapabilityEmbeddings names the embedder in degradation notices.
const CapabilityEmbeddings = "embeddings"

const (
	// DefaultTimeout bounds a single embedding request
	DefaultTimeout = 10 * time.Second

	maxEvidenceSentences = 10
	maxEvidencePairs     = 10
	minPairSimilarity    = 0.3
	maxSentenceChars     = 100
)

// Scorer compares texts through an injected embedder. It holds no mutable
// state and is safe for concurrent use.
type Scorer struct {
	embedder llm.Embedder
	timeout  time.Duration
	logger   *zap.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithEmbedder sets the embedder. The default is llm.NopEmbedder.
func WithEmbedder(embedder llm.Embedder) Option {
	return func(s *Scorer) {
		if embedder != nil {
			s.embedder = embedder
		}
	}
}

// WithTimeout bounds each embedding request. Non-positive values keep the default.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Scorer) {
		if timeout > 0 {
			s.timeout = timeout
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
		embedder: llm.NopEmbedder{},
		timeout:  DefaultTimeout,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns the cosine similarity of the mean sentence embeddings of
// both texts, plus the best job sentence for each of the first resume
// sentences. An unavailable, failing or slow embedder yields a zero score
// with Degraded set. The caller's own cancellation is returned as an error.
func (s *Scorer) Score(ctx context.Context, resumeText, jobText string) (*types.SemanticResult, error) {
	result := &types.SemanticResult{Evidence: []types.SentencePair{}}

	resumeSentences := parsing.SplitSentences(parsing.NormalizeText(resumeText))
	jobSentences := parsing.SplitSentences(parsing.NormalizeText(jobText))
	if len(resumeSentences) == 0 || len(jobSentences) == 0 {
		return result, nil
	}

	vectors, err := s.embed(ctx, append(append([]string{}, resumeSentences...), jobSentences...))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.degrade(err)
		result.Degraded = true
		return result, nil
	}

	resumeVecs := vectors[:len(resumeSentences)]
	jobVecs := vectors[len(resumeSentences):]

	result.OverallSimilarity = clamp01(cosine(mean(resumeVecs), mean(jobVecs)))
	result.Evidence = evidence(resumeSentences, jobSentences, resumeVecs, jobVecs)
	return result, nil
}

func (s *Scorer) embed(ctx context.Context, sentences []string) ([][]float64, error) {
	embedCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	vectors, err := s.embedder.EmbedStrings(embedCtx, sentences)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(sentences) {
		return nil, errors.New("embedder returned a vector count different from the sentence count")
	}
	return vectors, nil
}

func (s *Scorer) degrade(err error) {
	level := s.logger.Warn
	if errors.Is(err, llm.ErrEmbeddingsUnavailable) {
		level = s.logger.Debug
	}
	reason := err.Error()
	if errors.Is(err, context.DeadlineExceeded) {
		reason = "embedding timed out after " + s.timeout.String()
	}
	level("capability degraded",
		zap.String("capability", CapabilityEmbeddings),
		zap.String("reason", reason),
	)
}

// evidence pairs each of the first resume sentences with its closest job
// sentence, keeping pairs above minPairSimilarity.
func evidence(resumeSentences, jobSentences []string, resumeVecs, jobVecs [][]float64) []types.SentencePair {
	pairs := []types.SentencePair{}
	for i := 0; i < len(resumeSentences) && i < maxEvidenceSentences; i++ {
		best := 0.0
		bestJob := ""
		for j := range jobSentences {
			sim := cosine(resumeVecs[i], jobVecs[j])
			if sim > best {
				best = sim
				bestJob = jobSentences[j]
			}
		}
		if best > minPairSimilarity {
			pairs = append(pairs, types.SentencePair{
				ResumeSentence: truncateSentence(resumeSentences[i]),
				JobSentence:    truncateSentence(bestJob),
				Similarity:     clamp01(best),
			})
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].Similarity > pairs[b].Similarity
	})
	if len(pairs) > maxEvidencePairs {
		pairs = pairs[:maxEvidencePairs]
	}
	return pairs
}

func truncateSentence(s string) string {
	if utf8.RuneCountInString(s) <= maxSentenceChars {
		return s
	}
	return string([]rune(s)[:maxSentenceChars]) + "..."
}

func mean(vectors [][]float64) []float64 {
	if len(vectors) == 0 {
		return nil
	}
	out := make([]float64, len(vectors[0]))
	for _, v := range vectors {
		for i := range out {
			if i < len(v) {
				out[i] += v[i]
			}
		}
	}
	for i := range out {
		out[i] /= float64(len(vectors))
	}
	return out
}

func cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
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
