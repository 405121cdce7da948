package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/ingestion"
	"github.com/jonathan/skillmatch/internal/schemas"
	"github.com/jonathan/skillmatch/internal/types"
)

// requestFlags select the match input: a JSON request document, or a resume
// and job text file with optional skill and year overrides.
type requestFlags struct {
	requestFile  string
	resumeFile   string
	jobFile      string
	resumeSkills []string
	jobSkills    []string
	resumeYears  int
	minYears     int
}

func (f *requestFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.requestFile, "request", "", "Path to a match request JSON file")
	flags.StringVar(&f.resumeFile, "resume", "", "Path to the resume text file (- for stdin)")
	flags.StringVar(&f.jobFile, "job", "", "Path to the job description text file")
	flags.StringSliceVar(&f.resumeSkills, "resume-skills", nil, "Resume skills; extracted from the resume when omitted")
	flags.StringSliceVar(&f.jobSkills, "job-skills", nil, "Required job skills; extracted from the job when omitted")
	flags.IntVar(&f.resumeYears, "resume-years", 0, "Total years of experience on the resume")
	flags.IntVar(&f.minYears, "min-years", 0, "Minimum years of experience the job requires")

	cmd.MarkFlagsMutuallyExclusive("request", "resume")
	cmd.MarkFlagsMutuallyExclusive("request", "job")
	cmd.MarkFlagsRequiredTogether("resume", "job")
	cmd.MarkFlagsOneRequired("request", "resume")
}

// load builds the match request. Request files are checked against the
// match request schema before decoding.
func (f *requestFlags) load(cmd *cobra.Command) (*types.MatchRequest, error) {
	if f.requestFile != "" {
		doc, err := os.ReadFile(f.requestFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read request file: %w", err)
		}
		if err := schemas.ValidateMatchRequest(doc); err != nil {
			return nil, fmt.Errorf("invalid match request: %w", err)
		}
		var req types.MatchRequest
		if err := json.Unmarshal(doc, &req); err != nil {
			return nil, fmt.Errorf("failed to decode match request: %w", err)
		}
		return &req, nil
	}

	resumeText, _, err := ingestion.IngestFromFile(f.resumeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	jobText, _, err := ingestion.IngestFromFile(f.jobFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read job description: %w", err)
	}

	req := &types.MatchRequest{
		ResumeText:   resumeText,
		JobText:      jobText,
		ResumeSkills: f.resumeSkills,
		JobSkills:    f.jobSkills,
	}
	if cmd.Flags().Changed("resume-years") {
		years := f.resumeYears
		req.ResumeExperience.TotalYears = &years
	}
	if cmd.Flags().Changed("min-years") {
		years := f.minYears
		req.JobRequirements.MinYears = &years
	}
	return req, nil
}
