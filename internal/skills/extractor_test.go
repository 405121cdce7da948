package skills

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// MockTagger implements Tagger for testing
type MockTagger struct {
	TagFunc func(ctx context.Context, text string) (*Tags, error)
}

func (m *MockTagger) Tag(ctx context.Context, text string) (*Tags, error) {
	if m.TagFunc != nil {
		return m.TagFunc(ctx, text)
	}
	return &Tags{}, nil
}

func TestExtract_ResumeScenario(t *testing.T) {
	e := NewExtractor()
	result := e.Extract(context.Background(), "I am a Python developer with Flask and Docker experience, 3 years.")

	assert.Equal(t, []string{"docker", "flask", "python"}, result.AllSkills)
	assert.Equal(t, []string{"docker", "flask", "python"}, result.TechnicalSkills)
	assert.Equal(t, []string{"python"}, result.ProgrammingLanguages)
	assert.Equal(t, []string{"docker", "flask"}, result.FrameworksTools)
	require.NotNil(t, result.Experience.TotalYears)
	assert.Equal(t, 3, *result.Experience.TotalYears)
}

func TestExtract_JobScenario(t *testing.T) {
	e := NewExtractor()
	result := e.Extract(context.Background(), "Seeking Python developer, 5 years experience, AWS required.")

	assert.Equal(t, []string{"aws", "python"}, result.AllSkills)
	require.NotNil(t, result.Experience.TotalYears)
	assert.Equal(t, 5, *result.Experience.TotalYears)
	assert.Equal(t, []int{5}, result.Experience.Mentions)
}

func TestExtract_EmptyText(t *testing.T) {
	result := NewExtractor().Extract(context.Background(), "")

	assert.Empty(t, result.AllSkills)
	assert.NotNil(t, result.AllSkills)
	assert.Empty(t, result.SoftSkills)
	assert.Empty(t, result.Certifications)
	assert.Nil(t, result.Experience.TotalYears)
	assert.Empty(t, result.Experience.SkillYears)
	assert.Empty(t, result.DegradedCapabilities)
}

func TestExtract_WordBoundaries(t *testing.T) {
	e := NewExtractor()

	result := e.Extract(context.Background(), "Built SPAs in JavaScript.")
	assert.Contains(t, result.AllSkills, "javascript")
	assert.NotContains(t, result.AllSkills, "java")

	result = e.Extract(context.Background(), "Systems programming in C++ and C#")
	assert.Contains(t, result.AllSkills, "c++")
	assert.Contains(t, result.AllSkills, "c#")
	assert.NotContains(t, result.AllSkills, "c")

	result = e.Extract(context.Background(), "Embedded firmware in C, shipped via CI/CD")
	assert.Contains(t, result.AllSkills, "c")
	assert.Contains(t, result.AllSkills, "ci/cd")
}

func TestExtract_AliasesMapToCanonicalNames(t *testing.T) {
	result := NewExtractor().Extract(context.Background(), "Golang services on K8s, frontend in ReactJS with Node.js and sklearn models")

	assert.Contains(t, result.AllSkills, "go")
	assert.Contains(t, result.AllSkills, "kubernetes")
	assert.Contains(t, result.AllSkills, "react")
	assert.Contains(t, result.AllSkills, "nodejs")
	assert.Contains(t, result.AllSkills, "scikit-learn")
	assert.NotContains(t, result.AllSkills, "javascript")
	assert.NotContains(t, result.AllSkills, "golang")
	assert.NotContains(t, result.AllSkills, "k8s")
}

func TestExtract_MultiWordSkillsUseContainment(t *testing.T) {
	result := NewExtractor().Extract(context.Background(), "Applied Machine Learning with strong  Problem Solving and Time Management")

	assert.Contains(t, result.TechnicalSkills, "machine learning")
	assert.Contains(t, result.SoftSkills, "problem solving")
	assert.Contains(t, result.SoftSkills, "time management")
	assert.NotContains(t, result.AllSkills, "problem solving")
}

func TestExtract_SoftSkillsExcludedFromAllSkills(t *testing.T) {
	result := NewExtractor().Extract(context.Background(), "Leadership, communication and teamwork")

	assert.Equal(t, []string{"communication", "leadership", "teamwork"}, result.SoftSkills)
	assert.Empty(t, result.AllSkills)
}

func TestExtract_ResultsSortedAndDeduplicated(t *testing.T) {
	result := NewExtractor().Extract(context.Background(), "python Python PYTHON docker aws Docker")

	assert.Equal(t, []string{"aws", "docker", "python"}, result.AllSkills)
}

func TestExtract_TaggerOutputFiltered(t *testing.T) {
	tagger := &MockTagger{
		TagFunc: func(_ context.Context, _ string) (*Tags, error) {
			return &Tags{
				Entities: []Entity{
					{Text: "Acme Software", Label: "ORG"},
					{Text: "Acme Software", Label: "ORG"},
					{Text: "Salesforce Platform", Label: "PRODUCT"},
					{Text: "Acme Bank", Label: "ORG"},
					{Text: "TechStars", Label: "PERSON"},
				},
				NounPhrases: []string{
					"Software Development",
					"data analysis",
					"large scale distributed systems design",
					"the team",
				},
			}, nil
		},
	}

	result := NewExtractor(WithTagger(tagger)).Extract(context.Background(), "anything at all")

	assert.Equal(t, []string{"Acme Software", "Salesforce Platform"}, result.NLPEntities)
	assert.Equal(t, []string{"software development", "data analysis"}, result.SkillCandidates)
	assert.Empty(t, result.AllSkills)
	assert.Empty(t, result.DegradedCapabilities)
}

func TestExtract_NopTaggerDegradesQuietly(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := NewExtractor(WithLogger(zap.New(core)))

	result := e.Extract(context.Background(), "Python developer")

	assert.Equal(t, []string{"python"}, result.AllSkills)
	assert.Empty(t, result.NLPEntities)
	assert.Empty(t, result.SkillCandidates)
	assert.Equal(t, []string{CapabilityNLPTagger}, result.DegradedCapabilities)

	notices := logs.FilterMessage("capability degraded").All()
	require.Len(t, notices, 1)
	assert.Equal(t, zapcore.DebugLevel, notices[0].Level)
}

func TestExtract_TaggerFailureLoggedAsWarning(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	tagger := &MockTagger{
		TagFunc: func(_ context.Context, _ string) (*Tags, error) {
			return nil, errors.New("backend exploded")
		},
	}

	result := NewExtractor(WithTagger(tagger), WithLogger(zap.New(core))).Extract(context.Background(), "Go and Rust")

	assert.Equal(t, []string{"go", "rust"}, result.AllSkills)
	assert.Equal(t, []string{CapabilityNLPTagger}, result.DegradedCapabilities)

	notices := logs.FilterMessage("capability degraded").All()
	require.Len(t, notices, 1)
	assert.Equal(t, zapcore.WarnLevel, notices[0].Level)
	assert.Equal(t, CapabilityNLPTagger, notices[0].ContextMap()["capability"])
}

func TestExtract_SlowTaggerTimesOut(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	tagger := &MockTagger{
		TagFunc: func(ctx context.Context, _ string) (*Tags, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	e := NewExtractor(WithTagger(tagger), WithTaggerTimeout(20*time.Millisecond), WithLogger(zap.New(core)))

	start := time.Now()
	result := e.Extract(context.Background(), "Python developer")

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, []string{"python"}, result.AllSkills)
	assert.Empty(t, result.NLPEntities)
	assert.Equal(t, []string{CapabilityNLPTagger}, result.DegradedCapabilities)

	notices := logs.FilterMessage("capability degraded").All()
	require.Len(t, notices, 1)
	assert.Equal(t, zapcore.WarnLevel, notices[0].Level)
	assert.Contains(t, notices[0].ContextMap()["reason"], "timed out")
}

func TestExtractSkills_SkipsTagger(t *testing.T) {
	var calls atomic.Int32
	tagger := &MockTagger{
		TagFunc: func(context.Context, string) (*Tags, error) {
			calls.Add(1)
			return &Tags{NounPhrases: []string{"data analysis"}}, nil
		},
	}

	result := NewExtractor(WithTagger(tagger)).ExtractSkills("Seeking Python developer, 5 years experience, AWS required.")

	assert.Equal(t, []string{"aws", "python"}, result.AllSkills)
	require.NotNil(t, result.Experience.TotalYears)
	assert.Equal(t, 5, *result.Experience.TotalYears)
	assert.Empty(t, result.SkillCandidates)
	assert.Empty(t, result.DegradedCapabilities)
	assert.Zero(t, calls.Load())
}

func TestExtract_Certifications(t *testing.T) {
	text := `Certifications:
AWS Certified Solutions Architect
PMP, Certified Scrum Master
CompTIA Security+
Lean Six Sigma Green Belt
Cisco CCNA
pmp`

	result := NewExtractor().Extract(context.Background(), text)

	assert.Equal(t, []string{
		"AWS Certified Solutions Architect",
		"Cisco CCNA",
		"CompTIA Security+",
		"Lean Six Sigma Green Belt",
		"PMP",
		"Scrum Master",
	}, result.Certifications)
}

func TestVocabulary(t *testing.T) {
	langs := Vocabulary(CategoryProgramming)
	assert.Contains(t, langs, "go")
	assert.NotContains(t, langs, "golang")
	assert.IsIncreasing(t, langs)

	assert.Contains(t, Vocabulary(CategorySoft), "leadership")
	assert.Nil(t, Vocabulary(Category("unknown")))
}
