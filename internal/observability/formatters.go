// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skillmatch/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// writeList writes up to limit items under heading, then a "... and N more" line.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintMatchResult outputs the overall score, the component breakdown and
// the skill partition of a match.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	c := result.ComponentScores
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall match:     %5.1f%%\n\n", result.OverallMatchScore*100))
	sb.WriteString(fmt.Sprintf("Lexical:           %.2f\n", c.Lexical))
	sb.WriteString(fmt.Sprintf("Keyword overlap:   %.2f\n", c.KeywordOverlap))
	sb.WriteString(fmt.Sprintf("Semantic:          %.2f\n", c.Semantic))
	sb.WriteString(fmt.Sprintf("Skill match:       %.2f\n", c.SkillMatch))
	sb.WriteString(fmt.Sprintf("Experience match:  %.2f\n", c.ExperienceMatch))
	sb.WriteString("\n")

	writeList(&sb, "Matching skills", result.MatchingSkills, maxItemsToShow)
	writeList(&sb, "Missing skills", result.MissingSkills, maxItemsToShow)

	if len(result.KeywordSignals.Missing) > 0 {
		sb.WriteString("Missing keywords:\n")
		count := min(len(result.KeywordSignals.Missing), maxItemsToShow)
		for i := 0; i < count; i++ {
			kw := result.KeywordSignals.Missing[i]
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", kw.Keyword, kw.Importance))
		}
		sb.WriteString("\n")
	}

	if len(result.DegradedCapabilities) > 0 {
		sb.WriteString(fmt.Sprintf("⚠ degraded: %s\n", strings.Join(result.DegradedCapabilities, ", ")))
	}

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSemanticEvidence outputs the best-aligned sentence pairs.
func (p *Printer) PrintSemanticEvidence(evidence []types.SentencePair) {
	if len(evidence) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(evidence), maxItemsToShow)
	for i := 0; i < count; i++ {
		pair := evidence[i]
		sb.WriteString(fmt.Sprintf("#%d  similarity %.2f\n", i+1, pair.Similarity))
		sb.WriteString(fmt.Sprintf("    resume: %s\n", pair.ResumeSentence))
		sb.WriteString(fmt.Sprintf("    job:    %s\n", pair.JobSentence))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(evidence) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more pairs", len(evidence)-maxItemsToShow))
	}

	p.printBox("SEMANTIC EVIDENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExtraction outputs the skills and experience found in one text.
func (p *Printer) PrintExtraction(title string, extraction *types.ExtractionResult) {
	if extraction == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills found:  %d\n", len(extraction.AllSkills)))
	if extraction.Experience.TotalYears != nil {
		sb.WriteString(fmt.Sprintf("Total years:   %d\n", *extraction.Experience.TotalYears))
	}
	sb.WriteString("\n")

	writeList(&sb, "Languages", extraction.ProgrammingLanguages, maxItemsToShow)
	writeList(&sb, "Frameworks & tools", extraction.FrameworksTools, maxItemsToShow)
	writeList(&sb, "Soft skills", extraction.SoftSkills, 3)
	writeList(&sb, "Certifications", extraction.Certifications, 3)

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs ATS suggestions, or a pass notice when there are none.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) PrintSuggestions(suggestions []string) {
	if len(suggestions) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO ATS SUGGESTIONS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	for i, s := range suggestions {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, s))
		if i < len(suggestions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("ATS SUGGESTIONS", sb.String())
}
