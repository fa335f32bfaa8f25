package chunker

import (
	"regexp"
	"strings"
)

// a paragraph break is one or more blank lines, possibly containing spaces
var paragraphBreakRegex = regexp.MustCompile(`\n[ \t]*\n+`)

type Options struct {
	MinChunkLength int // chunks shorter than this after normalization are dropped
}

// Page is one unit handed over by the external extraction step.
type Page struct {
	Number int
	Text   string
}

// Chunk is the atomic unit of retrieval: one cleaned paragraph of a page.
type Chunk struct {
	Page int
	Text string
}

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	return paragraphBreakRegex.Split(text, -1)
}
