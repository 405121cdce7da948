// Package ingestion reads resume and job description text for the CLI.
package ingestion

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// MaxDocumentBytes bounds a single resume or job description file.
const MaxDocumentBytes = 1 << 20

var (
	innerSpacePattern = regexp.MustCompile(`\s+`)
	blankRunPattern   = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes line endings, collapses runs of spaces inside lines
// and reduces blank runs to one empty line. Headings and bullets keep their
// markers so sentence splitting still sees line boundaries.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := blankRunPattern.ReplaceAllString(strings.Join(cleaned, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	// Markdown headings lose their indentation
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := len(line) - len(trimmed)
	if isBulletLine(trimmed) {
		return strings.Repeat(" ", indent) + trimmed
	}
	return strings.Repeat(" ", indent) + innerSpacePattern.ReplaceAllString(trimmed, " ")
}

func isBulletLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// ReadText reads at most MaxDocumentBytes from r and returns the cleaned text.
func ReadText(r io.Reader, source string) (string, *Metadata, error) {
	content, err := io.ReadAll(io.LimitReader(r, MaxDocumentBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	if len(content) > MaxDocumentBytes {
		return "", nil, fmt.Errorf("%s exceeds %d bytes", source, MaxDocumentBytes)
	}

	cleaned := CleanText(string(content))
	return cleaned, NewMetadata(cleaned, source), nil
}

// IngestFromFile reads a text file and returns its cleaned text with metadata.
// The path "-" reads standard input.
func IngestFromFile(path string) (string, *Metadata, error) {
	if path == "-" {
		return ReadText(os.Stdin, "stdin")
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadText(f, path)
}
