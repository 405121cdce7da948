package skills

import (
	"regexp"
	"sort"
	"strings"
)

// Certification patterns are matched case-insensitively against the original
// text. Free-form name tails are bounded to a few words on one line.
var certificationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:AWS|Amazon)\s+(?:Certified\s+)?(?:Solutions\s+Architect|Developer|SysOps|DevOps)\b`),
	regexp.MustCompile(`(?i)\bMicrosoft\s+(?:Certified:?\s+)?(?:Azure|Office|SQL)(?:[ \t]+\w+){1,3}\b`),
	regexp.MustCompile(`(?i)\bGoogle\s+(?:Cloud\s+)?(?:Certified\s+)?(?:Professional|Associate)(?:[ \t]+\w+){1,3}\b`),
	regexp.MustCompile(`(?i)\bCisco\s+(?:Certified\s+)?(?:CCNA|CCNP|CCIE)\b`),
	regexp.MustCompile(`(?i)\bCompTIA\s+(?:A|Network|Security|Linux)\+`),
	regexp.MustCompile(`(?i)\b(?:PMP|PRINCE2|Scrum\s+Master|Product\s+Owner)\b`),
	regexp.MustCompile(`(?i)\b(?:CPA|CFA|FRM|CRM)\b`),
	regexp.MustCompile(`(?i)\b(?:Lean\s+)?Six\s+Sigma\s+(?:Green|Black)\s+Belt\b`),
}

// extractCertifications returns the certifications mentioned in text,
// de-duplicated case-insensitively and sorted.
func extractCertifications(text string) []string {
	seen := make(map[string]struct{})
	certifications := []string{}

	for _, pattern := range certificationPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			cert := strings.Join(strings.Fields(match), " ")
			key := strings.ToLower(cert)
			if _, exists := seen[key]; exists {
				continue
			}
			seen[key] = struct{}{}
			certifications = append(certifications, cert)
		}
	}

	sort.Strings(certifications)
	return certifications
}
