package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/schemas"
)

func newMatchCmd(global *globalOptions) *cobra.Command {
	var (
		req     requestFlags
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score a resume against a job description",
		Long:  "Score a resume against a job description and print the match result JSON, which validates against the match_result schema.",
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

			doc, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal match result: %w", err)
			}
			if err := schemas.ValidateMatchResult(doc); err != nil {
				return fmt.Errorf("match result failed validation: %w", err)
			}

			rt.printer.PrintMatchResult(result)
			rt.printer.PrintSemanticEvidence(result.SemanticEvidence)
			return writeOutput(cmd, outFile, doc)
		},
	}

	req.register(cmd)
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Path to output JSON file (default stdout)")
	return cmd
}
