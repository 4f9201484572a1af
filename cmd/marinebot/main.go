package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"marinebot/internal/app"
	"marinebot/internal/config"
	"marinebot/internal/service"
	"marinebot/internal/tui"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "Path to config YAML")
	dataPath := flag.String("data", "data/merged_marine_info.json", "Path to the merged corpus JSON")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	emb, err := app.NewEmbedder(cfg)
	if err != nil {
		log.Fatalf("failed to init embedder: %v", err)
	}
	store, err := app.NewVectorStore(cfg)
	if err != nil {
		log.Fatalf("failed to init vector store: %v", err)
	}
	// The memory store holds its index in-process, so it must be filled
	// here; a qdrant store already carries the offline-built index.
	chunks, err := app.SeedMemoryStore(context.Background(), cfg, emb, store, *dataPath)
	if err != nil {
		log.Fatalf("failed to seed in-process index: %v", err)
	}
	if chunks > 0 {
		fmt.Printf("Corpus indexed in-process: %d chunks\n", chunks)
	}
	gen, err := app.NewGenerator(cfg)
	if err != nil {
		log.Fatalf("failed to init generator: %v", err)
	}

	pipeline := service.New(service.Options{
		Classifier: app.NewClassifier(cfg),
		Embedder:   emb,
		Store:      store,
		Generator:  gen,
		Quick:      app.NewQuickAnswers(cfg),
		TopK:       cfg.Retrieval.TopK,
		Threshold:  cfg.Retrieval.SimilarityThreshold,
		MaxWords:   cfg.PostProcess.MaxWords,
		Logger:     zap.NewNop(),
	})

	m := tui.New(pipeline)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
