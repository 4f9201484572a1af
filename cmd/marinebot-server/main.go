package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"marinebot/internal/app"
	"marinebot/internal/config"
	"marinebot/internal/server"
	"marinebot/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "Path to config YAML")
	dataPath := flag.String("data", "data/merged_marine_info.json", "Path to the merged corpus JSON")
	port := flag.Int("port", 8000, "Port to listen on")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	pipeline, err := buildPipeline(cfg, logger, *dataPath)
	if err != nil {
		log.Fatalf("failed to assemble pipeline: %v", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           server.New(pipeline, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.Int("port", *port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func buildPipeline(cfg *config.AppConfig, logger *zap.Logger, dataPath string) (*service.Pipeline, error) {
	emb, err := app.NewEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	store, err := app.NewVectorStore(cfg)
	if err != nil {
		return nil, err
	}
	// The memory store holds its index in-process, so it must be filled
	// here; a qdrant store already carries the offline-built index.
	chunks, err := app.SeedMemoryStore(context.Background(), cfg, emb, store, dataPath)
	if err != nil {
		return nil, fmt.Errorf("seed in-process index: %w", err)
	}
	if chunks > 0 {
		logger.Info("corpus indexed in-process", zap.Int("chunks", chunks))
	}
	gen, err := app.NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	return service.New(service.Options{
		Classifier: app.NewClassifier(cfg),
		Embedder:   emb,
		Store:      store,
		Generator:  gen,
		Quick:      app.NewQuickAnswers(cfg),
		TopK:       cfg.Retrieval.TopK,
		Threshold:  cfg.Retrieval.SimilarityThreshold,
		MaxWords:   cfg.PostProcess.MaxWords,
		Logger:     logger,
	}), nil
}
