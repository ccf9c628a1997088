package utils

import "strings"

// restrictedTerms maps a lowercase term to the reason it is flagged in
// cannabis marketing copy. State regulators prohibit unsubstantiated
// medical claims and anything appealing to minors.
var restrictedTerms = map[string]string{
	"cure":         "unsubstantiated medical claim",
	"cures":        "unsubstantiated medical claim",
	"heal":         "unsubstantiated medical claim",
	"heals":        "unsubstantiated medical claim",
	"treats":       "unsubstantiated medical claim",
	"fda approved": "false regulatory claim",
	"prescription": "false regulatory claim",
	"candy":        "appeals to minors",
	"kid":          "appeals to minors",
	"kids":         "appeals to minors",
	"cartoon":      "appeals to minors",
	"safe":         "safety claim requires disclaimer",
	"harmless":     "safety claim requires disclaimer",
}

// ComplianceViolation is one flagged term in a piece of ad copy.
type ComplianceViolation struct {
	Term   string `json:"term"`
	Reason string `json:"reason"`
}

// ScanContent checks marketing copy against the restricted-term list and
// returns every violation found. Matching is case-insensitive on whole
// words (multi-word terms are matched as substrings).
func ScanContent(content string) []ComplianceViolation {
	lowered := strings.ToLower(content)
	words := map[string]bool{}
	for _, w := range strings.FieldsFunc(lowered, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		words[w] = true
	}

	violations := []ComplianceViolation{}
	for term, reason := range restrictedTerms {
		if strings.Contains(term, " ") {
			if strings.Contains(lowered, term) {
				violations = append(violations, ComplianceViolation{Term: term, Reason: reason})
			}
		} else if words[term] {
			violations = append(violations, ComplianceViolation{Term: term, Reason: reason})
		}
	}
	return violations
}
