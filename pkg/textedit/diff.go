package textedit

import (
	"bytes"

	"github.com/pmezard/go-difflib/difflib"
)

const diffContext = 3

// UnifiedDiff renders a unified diff between original and modified.
// It returns an empty string when the inputs are equal.
func UnifiedDiff(path string, original, modified []byte) (string, error) {
	if bytes.Equal(original, modified) {
		return "", nil
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(modified)),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  diffContext,
	})
}

// DiffStats counts the lines added and removed between two texts.
func DiffStats(original, modified []byte) (additions, deletions int) {
	matcher := difflib.NewMatcher(
		difflib.SplitLines(string(original)),
		difflib.SplitLines(string(modified)),
	)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'r':
			deletions += op.I2 - op.I1
			additions += op.J2 - op.J1
		case 'd':
			deletions += op.I2 - op.I1
		case 'i':
			additions += op.J2 - op.J1
		}
	}
	return additions, deletions
}
