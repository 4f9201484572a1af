package domain

import "context"

// Chunk is a bounded fragment of the marine reference corpus.
type Chunk struct {
	ID    string
	Text  string
	Index int
}

// SearchResult represents a matching chunk with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Assessment captures how close the retrieved context is to a question:
// a cosine similarity score and a strict verbatim-substring containment signal.
type Assessment struct {
	Score       float64
	Containment bool
}

// Decision selects the answering strategy for a question.
type Decision int

const (
	OutOfScope Decision = iota
	InScopeFallback
	InScopeGrounded
)

func (d Decision) String() string {
	switch d {
	case OutOfScope:
		return "out_of_scope"
	case InScopeFallback:
		return "in_scope_fallback"
	case InScopeGrounded:
		return "in_scope_grounded"
	}
	return "unknown"
}

// Answer statuses returned to the API layer.
const (
	StatusSuccess = "success"
	StatusIgnored = "ignored"
	StatusError   = "error"
)

// Answer is the final payload produced for one question. It is never
// mutated after post-processing.
type Answer struct {
	Status        string `json:"status"`
	Question      string `json:"question"`
	Text          string `json:"answer"`
	MarineRelated bool   `json:"marine_related"`
	Reason        string `json:"reason,omitempty"`
}

// Embedder converts free text into a numeric vector representation.
// Question and context must always go through the same embedder instance;
// scores across embedding spaces are meaningless.
type Embedder interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float64, error)
}

// VectorStore persists chunk vectors and supports similarity search.
// Search returns up to topK results ranked best match first; zero results
// is a valid, non-error outcome. Implementations must be safe for
// concurrent reads.
type VectorStore interface {
	Init(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, chunks []Chunk, vectors [][]float64) error
	Search(ctx context.Context, vector []float64, topK int) ([]SearchResult, error)
	Clear(ctx context.Context) error
}

// Generator produces free text from a prompt using an external model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Chunker splits corpus documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(docID, content string) []Chunk
}

// Pipeline answers questions end to end.
type Pipeline interface {
	Ask(ctx context.Context, question string) Answer
}
