package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marinebot/internal/chunker"
	"marinebot/internal/config"
	"marinebot/internal/vectorstore/memory"
)

type stubEmbedder struct {
	calls int
}

func (s *stubEmbedder) Name() string { return "stub" }

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	s.calls++
	v := make([]float64, 2)
	for _, r := range text {
		v[int(r)%2]++
	}
	return v, nil
}

func TestIngestCorpus(t *testing.T) {
	emb := &stubEmbedder{}
	store := memory.NewStorage()
	ch := chunker.NewCharacterChunker(20, 5)
	docs := []string{
		"Coral reefs host thousands of marine species and need warm water.",
		"Kelp forests grow in cold coastal waters.",
	}

	var progressed []int
	total, err := IngestCorpus(context.Background(), emb, store, ch, docs, func(done, _ int) {
		progressed = append(progressed, done)
	})
	require.NoError(t, err)
	require.Greater(t, total, 0)
	assert.Equal(t, total, emb.calls, "one embedding per chunk")
	assert.Equal(t, []int{total}, progressed, "single batch for a small corpus")

	vec, err := emb.Embed(context.Background(), "coral reefs")
	require.NoError(t, err)
	results, err := store.Search(context.Background(), vec, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, results, "ingested chunks are searchable in the same process")
}

func TestIngestCorpusEmpty(t *testing.T) {
	_, err := IngestCorpus(context.Background(), &stubEmbedder{}, memory.NewStorage(), chunker.NewCharacterChunker(20, 5), nil, nil)
	assert.Error(t, err)
}

func TestSeedMemoryStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"title": "Reefs", "content": "Coral reefs host thousands of marine species."},
		{"title": "Kelp", "content": "Kelp forests grow in cold coastal waters."}
	]`), 0o644))

	t.Run("Memory store is seeded at startup", func(t *testing.T) {
		cfg := &config.AppConfig{}
		emb := &stubEmbedder{}
		store := memory.NewStorage()

		chunks, err := SeedMemoryStore(context.Background(), cfg, emb, store, path)
		require.NoError(t, err)
		require.Greater(t, chunks, 0)

		vec, err := emb.Embed(context.Background(), "coral reefs")
		require.NoError(t, err)
		results, err := store.Search(context.Background(), vec, 3)
		require.NoError(t, err)
		assert.NotEmpty(t, results, "serving process sees the index without a separate indexer run")
	})

	t.Run("Persistent backends are not reseeded", func(t *testing.T) {
		cfg := &config.AppConfig{}
		cfg.VectorStore.Type = "qdrant"
		emb := &stubEmbedder{}

		chunks, err := SeedMemoryStore(context.Background(), cfg, emb, memory.NewStorage(), path)
		require.NoError(t, err)
		assert.Zero(t, chunks)
		assert.Zero(t, emb.calls)
	})
}
