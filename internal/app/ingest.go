package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"marinebot/internal/config"
	"marinebot/internal/corpus"
	"marinebot/internal/domain"
)

const upsertBatchSize = 100

// IngestCorpus chunks, embeds, and upserts documents into the store.
// Chunk indexes are reassigned globally across documents so insertion
// order matches the store's tie-break order. The progress callback, if
// non-nil, is invoked after each upserted batch with the running chunk
// count. Returns the number of chunks indexed.
//
// The memory store keeps its index in-process, so entry points that
// serve queries over it must call this at startup; a separately run
// indexer would build an index the serving process never sees.
func IngestCorpus(ctx context.Context, emb domain.Embedder, store domain.VectorStore, ch domain.Chunker, documents []string, progress func(done, total int)) (int, error) {
	if len(documents) == 0 {
		return 0, errors.New("corpus contains no documents")
	}

	var chunks []domain.Chunk
	for i, doc := range documents {
		chunks = append(chunks, ch.Chunk("doc"+strconv.Itoa(i), doc)...)
	}
	for i := range chunks {
		chunks[i].Index = i
	}

	initialized := false
	for start := 0; start < len(chunks); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(chunks))
		batch := chunks[start:end]
		vectors := make([][]float64, len(batch))
		for i, c := range batch {
			vec, err := emb.Embed(ctx, c.Text)
			if err != nil {
				return 0, fmt.Errorf("embed chunk %s: %w", c.ID, err)
			}
			vectors[i] = vec
		}
		if !initialized {
			if err := store.Init(ctx, len(vectors[0])); err != nil {
				return 0, fmt.Errorf("init index: %w", err)
			}
			initialized = true
		}
		if err := store.Upsert(ctx, batch, vectors); err != nil {
			return 0, fmt.Errorf("upsert batch: %w", err)
		}
		if progress != nil {
			progress(end, len(chunks))
		}
	}
	return len(chunks), nil
}

// SeedMemoryStore populates an in-process store from the corpus file when
// the memory backend is configured. Other backends are left alone: they
// persist across processes and are populated by the indexer. Returns the
// number of chunks indexed, 0 when no seeding was needed.
func SeedMemoryStore(ctx context.Context, cfg *config.AppConfig, emb domain.Embedder, store domain.VectorStore, dataPath string) (int, error) {
	if cfg.VectorStore.Type != "memory" && cfg.VectorStore.Type != "" {
		return 0, nil
	}
	documents, err := corpus.Load(dataPath)
	if err != nil {
		return 0, fmt.Errorf("load corpus: %w", err)
	}
	return IngestCorpus(ctx, emb, store, NewChunker(cfg), documents, nil)
}
