package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/ingestion"
)

func newExtractSkillsCmd(global *globalOptions) *cobra.Command {
	var inFile, outFile string

	cmd := &cobra.Command{
		Use:   "extract-skills",
		Short: "Extract skills, certifications and years of experience from a text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := global.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = rt.logger.Sync() }()

			text, _, err := ingestion.IngestFromFile(inFile)
			if err != nil {
				return err
			}

			ctx := contextOf(cmd)
			comps, err := buildComponents(ctx, rt.cfg, rt.logger)
			if err != nil {
				return err
			}
			defer comps.Close()

			extraction := comps.extractor.Extract(ctx, text)
			rt.printer.PrintExtraction("EXTRACTED SKILLS", extraction)

			doc, err := json.MarshalIndent(extraction, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal extraction: %w", err)
			}
			return writeOutput(cmd, outFile, doc)
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Path to resume or job description text file (- for stdin)")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Path to output JSON file (default stdout)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
