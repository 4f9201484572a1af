package similarity

import (
	"context"
	"fmt"
	"math"
	"strings"

	"marinebot/internal/domain"
)

// Scorer computes how close the retrieved context is to a question.
// The score is cosine similarity between the question embedding and a
// single embedding of the whole joined context, not a per-chunk average.
type Scorer struct {
	embedder domain.Embedder
}

func NewScorer(embedder domain.Embedder) *Scorer {
	return &Scorer{embedder: embedder}
}

// Assess scores the question against the context. questionVec must come
// from the same embedder this scorer holds; the caller already has it from
// retrieval, so only the context is embedded here. An empty context yields
// a zero assessment without touching the embedder.
func (s *Scorer) Assess(ctx context.Context, questionVec []float64, question, contextText string) (domain.Assessment, error) {
	if strings.TrimSpace(contextText) == "" {
		return domain.Assessment{}, nil
	}
	contextVec, err := s.embedder.Embed(ctx, contextText)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("context embedding failed: %w", err)
	}
	return domain.Assessment{
		Score:       Cosine(questionVec, contextVec),
		Containment: Contains(question, contextText),
	}, nil
}

// Contains reports whether the full lowercased question appears verbatim
// in the lowercased context. Intentionally strict; it is a precision
// safeguard used alongside the score, never alone.
func Contains(question, contextText string) bool {
	return strings.Contains(strings.ToLower(contextText), strings.ToLower(question))
}

// Cosine returns the cosine similarity of two vectors, 0 when either has
// zero magnitude.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
