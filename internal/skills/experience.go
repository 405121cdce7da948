package skills

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/skillmatch/internal/parsing"
	"github.com/jonathan/skillmatch/internal/types"
)

// yearPatterns capture N in "N years of experience" style phrases and the
// reversed "experience of N years" / "experience, N years" orderings.
var yearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(?i)(\d+)\+?\s*(?:yrs?|years?)\s+(?:of\s+)?(?:experience|exp)`),
	regexp.MustCompile(`(?i)experience[,:;]?\s+(?:of\s+)?(\d+)\+?\s*(?:yrs?|years?)`),
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s+(?:in|with|of)`),
	regexp.MustCompile(`(?i)(\d+)\+?\s*(?:yrs?|years?)\s+(?:in|with|of)`),
}

const skillPhrase = `[a-z][\w.+#/-]*(?:[ \t]+[\w.+#/-]+){0,3}`

var (
	// "5 years of python", "3 yrs kubernetes operations"
	yearsThenSkillRe = regexp.MustCompile(`(?i)\b(\d+)\+?[ \t]*(?:yrs?|years?)[ \t]+(?:of[ \t]+)?(` + skillPhrase + `)`)
	// "Python: 5 years", "Go - 3 yrs"
	skillThenYearsRe = regexp.MustCompile(`(?i)\b(` + skillPhrase + `)[ \t]*[:\-][ \t]*(\d+)\+?[ \t]*(?:yrs?|years?)\b`)
)

// leading words stripped from a captured skill phrase
var skillPhraseFillers = map[string]bool{
	"experience": true,
	"exp":        true,
	"in":         true,
	"with":       true,
	"of":         true,
	"using":      true,
	"as":         true,
	"at":         true,
}

// extractExperience collects years-of-experience hints. TotalYears is the
// largest N matched by any year pattern; Mentions lists each matched number
// once, in text order. Captures that do not parse as integers are skipped.
func extractExperience(text string) types.ExperienceData {
	data := types.ExperienceData{
		SkillYears: []types.SkillYears{},
		Mentions:   []int{},
	}
	if text == "" {
		return data
	}

	mentionsAt := make(map[int]int)
	for _, pattern := range yearPatterns {
		for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
			years, err := strconv.Atoi(text[loc[2]:loc[3]])
			if err != nil {
				continue
			}
			mentionsAt[loc[2]] = years
		}
	}

	offsets := make([]int, 0, len(mentionsAt))
	for offset := range mentionsAt {
		offsets = append(offsets, offset)
	}
	sort.Ints(offsets)
	for _, offset := range offsets {
		years := mentionsAt[offset]
		data.Mentions = append(data.Mentions, years)
		if data.TotalYears == nil || years > *data.TotalYears {
			y := years
			data.TotalYears = &y
		}
	}

	data.SkillYears = extractSkillYears(text)
	return data
}

func extractSkillYears(text string) []types.SkillYears {
	seen := make(map[types.SkillYears]struct{})
	pairs := []types.SkillYears{}

	add := func(rawYears, rawSkill string) {
		years, err := strconv.Atoi(rawYears)
		if err != nil {
			return
		}
		skill := cleanSkillPhrase(rawSkill)
		if skill == "" {
			return
		}
		pair := types.SkillYears{Skill: skill, Years: years}
		if _, exists := seen[pair]; exists {
			return
		}
		seen[pair] = struct{}{}
		pairs = append(pairs, pair)
	}

	for _, m := range yearsThenSkillRe.FindAllStringSubmatch(text, -1) {
		add(m[1], m[2])
	}
	for _, m := range skillThenYearsRe.FindAllStringSubmatch(text, -1) {
		add(m[2], m[1])
	}
	return pairs
}

func cleanSkillPhrase(phrase string) string {
	words := strings.Fields(parsing.NormalizeSkillName(phrase))
	for len(words) > 0 && skillPhraseFillers[words[0]] {
		words = words[1:]
	}
	if len(words) == 0 {
		return ""
	}
	skill := strings.Join(words, " ")
	return strings.TrimRight(skill, ".,;:-")
}
