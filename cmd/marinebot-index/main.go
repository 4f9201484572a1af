package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"marinebot/internal/app"
	"marinebot/internal/config"
	"marinebot/internal/corpus"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "Path to config YAML")
	dataPath := flag.String("data", "data/merged_marine_info.json", "Path to the merged corpus JSON")
	recreate := flag.Bool("recreate", false, "Drop and rebuild the index")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.VectorStore.Type == "memory" || cfg.VectorStore.Type == "" {
		log.Fatal("the memory store lives inside the serving process and is seeded there at startup; " +
			"a separately built index would be discarded on exit. Configure vector_store.type: qdrant to index offline.")
	}

	emb, err := app.NewEmbedder(cfg)
	if err != nil {
		log.Fatalf("failed to init embedder: %v", err)
	}
	store, err := app.NewVectorStore(cfg)
	if err != nil {
		log.Fatalf("failed to init vector store: %v", err)
	}

	documents, err := corpus.Load(*dataPath)
	if err != nil {
		log.Fatalf("failed to load corpus: %v", err)
	}
	fmt.Printf("Loaded %d documents\n", len(documents))

	ctx := context.Background()
	if *recreate {
		if err := store.Clear(ctx); err != nil {
			log.Printf("warning: clearing index failed: %v", err)
		}
	}

	total, err := app.IngestCorpus(ctx, emb, store, app.NewChunker(cfg), documents, func(done, total int) {
		fmt.Printf("Indexed %d/%d chunks\n", done, total)
	})
	if err != nil {
		log.Fatalf("indexing failed: %v", err)
	}

	color.Green("Database created with %d chunks.", total)
}
