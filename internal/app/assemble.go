// Package app assembles pipeline components from configuration. It keeps
// the entry points thin and is the single place where implementation
// types are chosen.
package app

import (
	"errors"
	"fmt"
	"time"

	"marinebot/internal/chunker"
	"marinebot/internal/classifier"
	"marinebot/internal/config"
	"marinebot/internal/domain"
	"marinebot/internal/embedding"
	"marinebot/internal/generator"
	"marinebot/internal/quickanswer"
	"marinebot/internal/vectorstore/memory"
	"marinebot/internal/vectorstore/qdrant"
)

func NewEmbedder(cfg *config.AppConfig) (domain.Embedder, error) {
	switch cfg.Embedder.Type {
	case "ollama", "":
		o := cfg.Embedder.Ollama
		if o == nil {
			o = &config.OllamaEmbedderConfig{}
		}
		return embedding.NewOllamaEmbedder(embedding.OllamaConfig{
			Host:    o.Host,
			Model:   o.Model,
			Timeout: time.Duration(o.TimeoutSecs) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}
}

func NewVectorStore(cfg *config.AppConfig) (domain.VectorStore, error) {
	switch cfg.VectorStore.Type {
	case "memory", "":
		return memory.NewStorage(), nil
	case "qdrant":
		qc := cfg.VectorStore.Qdrant
		if qc == nil {
			return nil, errors.New("qdrant config missing")
		}
		return qdrant.NewStorage(qdrant.Config{
			Host:       qc.Host,
			Port:       qc.Port,
			Collection: qc.Collection,
			Timeout:    time.Duration(qc.TimeoutSecs) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown vector store: %s", cfg.VectorStore.Type)
	}
}

func NewGenerator(cfg *config.AppConfig) (domain.Generator, error) {
	mode, err := generator.ParseMode(cfg.Generator.Answer)
	if err != nil {
		return nil, err
	}
	return generator.NewOllama(generator.Config{
		Host:    cfg.Generator.Host,
		Model:   cfg.Generator.Model,
		Mode:    mode,
		Timeout: time.Duration(cfg.Generator.TimeoutSecs) * time.Second,
	})
}

// NewClassifier builds the scope gate, using the built-in lexicon for any
// list the config leaves empty.
func NewClassifier(cfg *config.AppConfig) *classifier.Classifier {
	lex := classifier.DefaultLexicon()
	if len(cfg.Classifier.AllowTerms) > 0 {
		lex.Allow = cfg.Classifier.AllowTerms
	}
	if len(cfg.Classifier.DenyContext) > 0 {
		lex.DenyContext = cfg.Classifier.DenyContext
	}
	if len(cfg.Classifier.DenyTopics) > 0 {
		lex.DenyTopics = cfg.Classifier.DenyTopics
	}
	return classifier.New(lex)
}

func NewQuickAnswers(cfg *config.AppConfig) *quickanswer.Cache {
	if len(cfg.QuickAnswers) == 0 {
		return quickanswer.NewDefault()
	}
	return quickanswer.New(cfg.QuickAnswers)
}

func NewChunker(cfg *config.AppConfig) domain.Chunker {
	return chunker.NewCharacterChunker(cfg.Chunker.ChunkSize, cfg.Chunker.OverlapChars)
}
