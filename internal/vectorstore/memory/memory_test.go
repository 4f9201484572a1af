package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marinebot/internal/domain"
)

func TestStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Init rejects invalid dimension", func(t *testing.T) {
		s := NewStorage()
		assert.Error(t, s.Init(ctx, 0))
	})

	t.Run("Upsert validates dimensions and lengths", func(t *testing.T) {
		s := NewStorage()
		require.NoError(t, s.Init(ctx, 2))
		assert.Error(t, s.Upsert(ctx, []domain.Chunk{{ID: "a"}}, nil))
		assert.Error(t, s.Upsert(ctx, []domain.Chunk{{ID: "a"}}, [][]float64{{1, 2, 3}}))
	})

	t.Run("Search ranks by descending similarity", func(t *testing.T) {
		s := NewStorage()
		require.NoError(t, s.Init(ctx, 2))
		require.NoError(t, s.Upsert(ctx,
			[]domain.Chunk{{ID: "far", Index: 0}, {ID: "near", Index: 1}, {ID: "mid", Index: 2}},
			[][]float64{{0, 1}, {1, 0}, {1, 1}},
		))
		res, err := s.Search(ctx, []float64{1, 0}, 3)
		require.NoError(t, err)
		require.Len(t, res, 3)
		assert.Equal(t, "near", res[0].Chunk.ID)
		assert.Equal(t, "mid", res[1].Chunk.ID)
		assert.Equal(t, "far", res[2].Chunk.ID)
	})

	t.Run("Ties keep insertion order", func(t *testing.T) {
		s := NewStorage()
		require.NoError(t, s.Init(ctx, 2))
		require.NoError(t, s.Upsert(ctx,
			[]domain.Chunk{{ID: "first"}, {ID: "second"}},
			[][]float64{{2, 0}, {1, 0}},
		))
		res, err := s.Search(ctx, []float64{1, 0}, 2)
		require.NoError(t, err)
		assert.Equal(t, "first", res[0].Chunk.ID)
		assert.Equal(t, "second", res[1].Chunk.ID)
	})

	t.Run("TopK larger than corpus returns all", func(t *testing.T) {
		s := NewStorage()
		require.NoError(t, s.Init(ctx, 1))
		require.NoError(t, s.Upsert(ctx, []domain.Chunk{{ID: "only"}}, [][]float64{{1}}))
		res, err := s.Search(ctx, []float64{1}, 10)
		require.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("Empty store returns zero results without error", func(t *testing.T) {
		s := NewStorage()
		require.NoError(t, s.Init(ctx, 2))
		res, err := s.Search(ctx, []float64{1, 0}, 3)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("Clear empties the store", func(t *testing.T) {
		s := NewStorage()
		require.NoError(t, s.Init(ctx, 1))
		require.NoError(t, s.Upsert(ctx, []domain.Chunk{{ID: "x"}}, [][]float64{{1}}))
		require.NoError(t, s.Clear(ctx))
		res, err := s.Search(ctx, []float64{1}, 1)
		require.NoError(t, err)
		assert.Empty(t, res)
	})
}
