package similarity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marinebot/internal/domain"
)

type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
	calls   int
}

func (f *fakeEmbedder) Name() string { return "fake" }

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors[text], nil
}

func TestCosine(t *testing.T) {
	t.Run("Identical direction is 1", func(t *testing.T) {
		assert.InDelta(t, 1.0, Cosine([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-9)
	})

	t.Run("Orthogonal is 0", func(t *testing.T) {
		assert.InDelta(t, 0.0, Cosine([]float64{1, 0}, []float64{0, 1}), 1e-9)
	})

	t.Run("Opposite direction is -1", func(t *testing.T) {
		assert.InDelta(t, -1.0, Cosine([]float64{1, 0}, []float64{-1, 0}), 1e-9)
	})

	t.Run("Zero vector scores 0", func(t *testing.T) {
		assert.Equal(t, 0.0, Cosine([]float64{0, 0}, []float64{1, 1}))
	})
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("Blue Whales", "facts about blue whales and krill"))
	assert.False(t, Contains("blue whales", "facts about whales"))
	assert.True(t, Contains("KELP", "kelp forests"))
}

func TestAssess(t *testing.T) {
	t.Run("Empty context skips embedding", func(t *testing.T) {
		emb := &fakeEmbedder{}
		s := NewScorer(emb)
		a, err := s.Assess(context.Background(), []float64{1, 0}, "question", "  ")
		require.NoError(t, err)
		assert.Equal(t, domain.Assessment{}, a)
		assert.Zero(t, emb.calls)
	})

	t.Run("Scores context against question vector", func(t *testing.T) {
		emb := &fakeEmbedder{vectors: map[string][]float64{
			"whales eat krill": {1, 0},
		}}
		s := NewScorer(emb)
		a, err := s.Assess(context.Background(), []float64{1, 0}, "whales", "whales eat krill")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, a.Score, 1e-9)
		assert.True(t, a.Containment)
	})

	t.Run("Embedder failure propagates", func(t *testing.T) {
		emb := &fakeEmbedder{err: errors.New("down")}
		s := NewScorer(emb)
		_, err := s.Assess(context.Background(), []float64{1}, "q", "context")
		assert.Error(t, err)
	})
}
