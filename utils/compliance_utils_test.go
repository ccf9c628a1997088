package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanContentCleanCopy(t *testing.T) {
	violations := ScanContent("Our new indica blend is available at dispensaries statewide.")
	assert.Empty(t, violations)
}

func TestScanContentFlagsMedicalClaims(t *testing.T) {
	violations := ScanContent("This tincture cures insomnia fast!")
	assert.Len(t, violations, 1)
	assert.Equal(t, "cures", violations[0].Term)
	assert.Equal(t, "unsubstantiated medical claim", violations[0].Reason)
}

func TestScanContentCaseInsensitive(t *testing.T) {
	violations := ScanContent("CANDY flavored gummies")
	assert.Len(t, violations, 1)
	assert.Equal(t, "candy", violations[0].Term)
}

func TestScanContentMultiWordTerm(t *testing.T) {
	violations := ScanContent("Our products are FDA Approved.")
	found := false
	for _, v := range violations {
		if v.Term == "fda approved" {
			found = true
		}
	}
	assert.True(t, found, "expected fda approved to be flagged")
}

func TestScanContentWholeWordsOnly(t *testing.T) {
	// "securely" contains "cure" but must not be flagged.
	violations := ScanContent("Your data is stored securely.")
	assert.Empty(t, violations)
}

func TestScanContentMultipleViolations(t *testing.T) {
	violations := ScanContent("Safe, harmless candy that cures everything")
	terms := map[string]bool{}
	for _, v := range violations {
		terms[v.Term] = true
	}
	assert.True(t, terms["safe"])
	assert.True(t, terms["harmless"])
	assert.True(t, terms["candy"])
	assert.True(t, terms["cures"])
}

func TestScanContentEmptyInput(t *testing.T) {
	assert.Empty(t, ScanContent(""))
}
