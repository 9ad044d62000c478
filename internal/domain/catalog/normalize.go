package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// NormalizeName trims a submitted name and collapses runs of internal
// whitespace to single spaces. The normalized form is what gets stored.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FoldName returns the case-folded form of a normalized name, used as the
// case-insensitive comparison key.
func FoldName(s string) string {
	return folder.String(NormalizeName(s))
}

// SplitCategoryNames splits a "/"-delimited category submission (e.g.
// "Pain Relief / Antipyretic") into normalized pieces. Empty pieces are
// dropped; duplicates are kept so resolution order mirrors the input.
func SplitCategoryNames(raw string) []string {
	var names []string
	for _, piece := range strings.Split(raw, "/") {
		if name := NormalizeName(piece); name != "" {
			names = append(names, name)
		}
	}
	return names
}
