package engine

import (
	"regexp"
	"strings"
)

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// TrimNarration splits narration into paragraphs on blank-line boundaries and
// keeps at most maxParagraphs of them, in their original order, rejoined with
// a single blank line. A pure text transform with no state dependency.
func TrimNarration(text string, maxParagraphs int) string {
	if maxParagraphs <= 0 {
		return ""
	}

	paragraphs := paragraphBreak.Split(strings.TrimSpace(text), -1)
	if len(paragraphs) > maxParagraphs {
		paragraphs = paragraphs[:maxParagraphs]
	}

	return strings.Join(paragraphs, "\n\n")
}
