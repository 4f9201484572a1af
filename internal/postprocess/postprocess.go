package postprocess

import (
	"regexp"
	"strings"
)

var (
	markdownRe   = regexp.MustCompile("[*_`#>]")
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Clean strips markdown emphasis/heading/quote markers, collapses runs of
// whitespace into single spaces, and trims the result. Idempotent:
// Clean(Clean(x)) == Clean(x).
func Clean(text string) string {
	text = markdownRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Truncate cuts text to the first maxWords words and appends an ellipsis
// marker when something was dropped. maxWords <= 0 disables truncation.
func Truncate(text string, maxWords int) string {
	if maxWords <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ") + "..."
}

// Processor cleans and bounds synthesized answers for display and speech.
type Processor struct {
	maxWords int
}

func NewProcessor(maxWords int) *Processor {
	return &Processor{maxWords: maxWords}
}

func (p *Processor) Process(text string) string {
	return Truncate(Clean(text), p.maxWords)
}
