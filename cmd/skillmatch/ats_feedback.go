package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/feedback"
	"github.com/jonathan/skillmatch/internal/types"
)

// atsReport is the ats-feedback command output
type atsReport struct {
	OverallMatchScore float64 `json:"overall_match_score"`
	*types.ATSFeedback
}

func newATSFeedbackCmd(global *globalOptions) *cobra.Command {
	var (
		req     requestFlags
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "ats-feedback",
		Short: "Suggest ATS improvements for a resume against a job description",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := global.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = rt.logger.Sync() }()

			request, err := req.load(cmd)
			if err != nil {
				return err
			}

			ctx := contextOf(cmd)
			comps, err := buildComponents(ctx, rt.cfg, rt.logger)
			if err != nil {
				return err
			}
			defer comps.Close()

			result, err := comps.engine.Match(ctx, request)
			if err != nil {
				return err
			}

			fb := feedback.Generate(request.ResumeText, result)
			rt.printer.PrintSuggestions(fb.Suggestions)

			doc, err := json.MarshalIndent(atsReport{OverallMatchScore: result.OverallMatchScore, ATSFeedback: fb}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal ATS feedback: %w", err)
			}
			return writeOutput(cmd, outFile, doc)
		},
	}

	req.register(cmd)
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Path to output JSON file (default stdout)")
	return cmd
}
