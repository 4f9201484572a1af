package classifier

import "strings"

// Lexicon holds the three term sets driving the scope gate.
// DenyContext catches unrelated senses of ocean-adjacent words (films,
// bands, companies); DenyTopics hard-blocks subjects the bot must never
// answer. Either deny set wins over any allow match.
type Lexicon struct {
	Allow       []string
	DenyContext []string
	DenyTopics  []string
}

// DefaultLexicon returns the built-in marine vocabulary.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Allow: []string{
			"ocean", "marine", "sea", "coast", "shore", "beach", "reef", "aquatic",
			"plastic", "pollution", "fishing", "whale", "dolphin", "shark",
			"turtle", "seal", "krill", "plankton", "habitat", "ecosystem", "biodiversity",
			"maritime", "ship", "navigation", "currents", "waves", "tsunami", "coral",
			"kelp", "mangrove", "algae", "seaweed", "seagrass", "ocean floor", "deep sea",
			"underwater", "marine biology", "marine life", "climate change ocean",
		},
		DenyContext: []string{
			"movie", "film", "actor", "actress", "director",
			"song", "music", "album", "band",
			"company", "corporation", "startup", "business",
			"software", "game", "app",
			"football", "cricket", "basketball", "team", "match", "tournament",
			"whale company", "big fish movie", "orca energy",
		},
		DenyTopics: []string{
			"president", "prime minister", "election", "politics", "government",
			"stock", "market", "share", "investment", "bitcoin", "crypto",
			"ai chatbot", "chatgpt", "artificial intelligence",
		},
	}
}

// Classifier is a lexical gate deciding whether a question is in scope.
// It is deliberately conservative: a question matching no list at all is
// rejected, because the fallback synthesis path is expensive and must not
// run on unrelated topics.
type Classifier struct {
	lexicon Lexicon
}

// New creates a classifier over the given lexicon. Terms are matched
// case-insensitively as substrings of the question.
func New(lexicon Lexicon) *Classifier {
	return &Classifier{lexicon: Lexicon{
		Allow:       lowerAll(lexicon.Allow),
		DenyContext: lowerAll(lexicon.DenyContext),
		DenyTopics:  lowerAll(lexicon.DenyTopics),
	}}
}

func lowerAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = strings.ToLower(t)
	}
	return out
}

// NewDefault creates a classifier over the built-in lexicon.
func NewDefault() *Classifier {
	return New(DefaultLexicon())
}

// Classify reports whether the question is in scope. Deny terms are
// checked first and dominate allow matches.
func (c *Classifier) Classify(question string) bool {
	q := strings.ToLower(question)
	for _, term := range c.lexicon.DenyContext {
		if strings.Contains(q, term) {
			return false
		}
	}
	for _, term := range c.lexicon.DenyTopics {
		if strings.Contains(q, term) {
			return false
		}
	}
	for _, term := range c.lexicon.Allow {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}
