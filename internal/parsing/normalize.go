// Package parsing provides text normalization shared by every scorer.
package parsing

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// anything outside word characters, whitespace and . , ; : ! ? - ( )
	disallowedRe = regexp.MustCompile(`[^\p{L}\p{N}_\s.,;:!?()-]`)
	sentenceRe   = regexp.MustCompile(`[.!?]+`)
)

// minSentenceChars is the shortest fragment SplitSentences keeps (exclusive).
const minSentenceChars = 10

// NormalizeText returns the canonical lowercase form of raw text used by all scorers.
// Whitespace runs collapse to one space and characters outside the whitelist become
// spaces. Empty input yields an empty string. NormalizeText is idempotent.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFKC.String(text)
	text = norm.NFKC.String(strings.ToLower(text))
	text = disallowedRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// FoldText lowercases text and collapses whitespace but keeps symbols such as
// "+", "#" and "/" so that vocabulary entries like "c++" or "ci/cd" stay findable.
func FoldText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(norm.NFKC.String(text))
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// SplitSentences splits normalized text on . ! ? and drops fragments of
// ten characters or fewer.
func SplitSentences(text string) []string {
	if text == "" {
		return nil
	}

	parts := sentenceRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		s := strings.TrimSpace(part)
		if utf8.RuneCountInString(s) > minSentenceChars {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// NormalizeSkillName returns the canonical identity of a skill: lowercase,
// trimmed, inner whitespace collapsed.
func NormalizeSkillName(skillName string) string {
	if skillName == "" {
		return ""
	}
	normalized := strings.ToLower(strings.TrimSpace(skillName))
	return whitespaceRe.ReplaceAllString(normalized, " ")
}

// NormalizeSkills normalizes, deduplicates and sorts a skill list. Blank
// entries are dropped. The result is never nil.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	normalized := make([]string, 0, len(skills))

	for _, skill := range skills {
		name := NormalizeSkillName(skill)
		if name == "" {
			continue
		}
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		normalized = append(normalized, name)
	}

	sort.Strings(normalized)
	return normalized
}
