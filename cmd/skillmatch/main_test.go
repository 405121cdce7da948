package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/schemas"
	"github.com/jonathan/skillmatch/internal/types"
)

const (
	testResume = "I am a Python developer with Flask and Docker experience, 3 years."
	testJob    = "Seeking Python developer, 5 years experience, AWS required."
)

// runCLI executes the root command in-process and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("SKILLMATCH_LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// writeInputs writes the resume and job fixtures and returns their paths.
func writeInputs(t *testing.T, resume, job string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	resumePath := filepath.Join(dir, "resume.txt")
	jobPath := filepath.Join(dir, "job.txt")
	require.NoError(t, os.WriteFile(resumePath, []byte(resume), 0644))
	require.NoError(t, os.WriteFile(jobPath, []byte(job), 0644))
	return resumePath, jobPath
}

func TestMatchCommand_TextFiles(t *testing.T) {
	resumePath, jobPath := writeInputs(t, testResume, testJob)

	stdout, _, err := runCLI(t, "match", "--resume", resumePath, "--job", jobPath)
	require.NoError(t, err)

	assert.NoError(t, schemas.ValidateMatchResult([]byte(stdout)))
	var result types.MatchResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, []string{"python"}, result.MatchingSkills)
	assert.Equal(t, []string{"aws"}, result.MissingSkills)
	assert.Equal(t, 0.5, result.ComponentScores.SkillMatch)
	assert.Contains(t, result.DegradedCapabilities, "embeddings")
}

func TestMatchCommand_RequestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "request.json")
	request := `{
		"resume_text": "Go engineer for 7 years.",
		"job_text": "Go engineer wanted, 5 years.",
		"resume_skills": ["Go", "Kubernetes"],
		"job_skills": ["go", "terraform"],
		"resume_experience": {"total_years": 7},
		"job_requirements": {"min_years": 5}
	}`
	require.NoError(t, os.WriteFile(path, []byte(request), 0644))
	outPath := filepath.Join(dir, "result.json")

	stdout, _, err := runCLI(t, "match", "--request", path, "--out", outPath)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	doc, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var result types.MatchResult
	require.NoError(t, json.Unmarshal(doc, &result))
	assert.Equal(t, []string{"go"}, result.MatchingSkills)
	assert.Equal(t, []string{"terraform"}, result.MissingSkills)
	assert.InDelta(t, 1.0, result.ComponentScores.ExperienceMatch, 1e-9)
}

func TestMatchCommand_InvalidRequestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"resume_text": 42}`), 0644))

	_, _, err := runCLI(t, "match", "--request", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid match request")
}

func TestMatchCommand_FlagsValidation(t *testing.T) {
	resumePath, jobPath := writeInputs(t, testResume, testJob)

	tests := []struct {
		name string
		args []string
	}{
		{name: "no input", args: []string{"match"}},
		{name: "resume without job", args: []string{"match", "--resume", resumePath}},
		{name: "request and resume", args: []string{"match", "--request", "r.json", "--resume", resumePath, "--job", jobPath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestMatchCommand_YearOverrides(t *testing.T) {
	resumePath, jobPath := writeInputs(t, testResume, testJob)

	stdout, _, err := runCLI(t, "match", "--resume", resumePath, "--job", jobPath, "--resume-years", "10", "--min-years", "5")
	require.NoError(t, err)

	var result types.MatchResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, 10, result.ExperienceDetails.ResumeYears)
	assert.InDelta(t, 1.0, result.ComponentScores.ExperienceMatch, 1e-9)
}

func TestMatchCommand_DisableTFIDF(t *testing.T) {
	t.Setenv("SKILLMATCH_DISABLE_TFIDF", "true")
	resumePath, jobPath := writeInputs(t, testResume, testJob)

	stdout, _, err := runCLI(t, "match", "--resume", resumePath, "--job", jobPath)
	require.NoError(t, err)

	var result types.MatchResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Contains(t, result.DegradedCapabilities, "term_weighting")
}

func TestMatchCommand_Verbose(t *testing.T) {
	resumePath, jobPath := writeInputs(t, testResume, testJob)

	_, stderr, err := runCLI(t, "match", "--resume", resumePath, "--job", jobPath, "--verbose")
	require.NoError(t, err)

	assert.Contains(t, stderr, "MATCH RESULT")
}

func TestMatchCommand_EmbeddingsRequireAPIKey(t *testing.T) {
	t.Setenv("SKILLMATCH_USE_EMBEDDINGS", "true")
	t.Setenv("SKILLMATCH_API_KEY", "")
	resumePath, jobPath := writeInputs(t, testResume, testJob)

	_, _, err := runCLI(t, "match", "--resume", resumePath, "--job", jobPath)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}

func TestExtractSkillsCommand(t *testing.T) {
	resumePath, _ := writeInputs(t, testResume, testJob)

	stdout, _, err := runCLI(t, "extract-skills", "--in", resumePath)
	require.NoError(t, err)

	var extraction types.ExtractionResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &extraction))
	assert.ElementsMatch(t, []string{"python", "flask", "docker"}, extraction.AllSkills)
	require.NotNil(t, extraction.Experience.TotalYears)
	assert.Equal(t, 3, *extraction.Experience.TotalYears)
}

func TestExtractSkillsCommand_MissingInput(t *testing.T) {
	_, _, err := runCLI(t, "extract-skills")
	assert.Error(t, err)

	_, _, err = runCLI(t, "extract-skills", "--in", "/nonexistent/resume.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestATSFeedbackCommand(t *testing.T) {
	resumePath, jobPath := writeInputs(t, testResume, testJob)

	stdout, _, err := runCLI(t, "ats-feedback", "--resume", resumePath, "--job", jobPath)
	require.NoError(t, err)

	var report struct {
		OverallMatchScore float64            `json:"overall_match_score"`
		Suggestions       []string           `json:"suggestions"`
		SkillGaps         []types.SkillGap   `json:"skill_gaps"`
		KeywordDensity    map[string]float64 `json:"keyword_density"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Greater(t, report.OverallMatchScore, 0.0)
	assert.NotEmpty(t, report.Suggestions)
	assert.LessOrEqual(t, len(report.Suggestions), 5)
	assert.Contains(t, report.SkillGaps, types.SkillGap{Skill: "aws", Status: types.SkillStatusMissing})
	assert.Greater(t, report.KeywordDensity["python"], 0.0)
}
