package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Text returns a word-diff style rendering of the change from from to to:
// deleted text is wrapped in [-...-] and inserted text in {+...+}.
func Text(from, to string) string {
	buf := &strings.Builder{}
	for _, d := range diffs(from, to) {
		switch d.Type {
		case diffpatch.DiffDelete:
			buf.WriteString("[-")
			buf.WriteString(d.Text)
			buf.WriteString("-]")
		case diffpatch.DiffInsert:
			buf.WriteString("{+")
			buf.WriteString(d.Text)
			buf.WriteString("+}")
		case diffpatch.DiffEqual:
			buf.WriteString(d.Text)
		}
	}
	return buf.String()
}

// ColorText is Text with terminal colors in place of markers.
func ColorText(from, to string) string {
	return diffpatch.New().DiffPrettyText(diffs(from, to))
}

// Distance returns the Levenshtein distance between from and to.
func Distance(from, to string) int {
	dmp := diffpatch.New()
	return dmp.DiffLevenshtein(dmp.DiffMain(from, to, false))
}

func diffs(from, to string) []diffpatch.Diff {
	dmp := diffpatch.New()
	doMultiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	res := dmp.DiffMain(from, to, doMultiLine)
	return dmp.DiffCleanupSemantic(res)
}
