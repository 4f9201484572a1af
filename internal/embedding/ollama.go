package embedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
)

// OllamaEmbedder produces embeddings through a local Ollama server.
// The same model must be used at index time and at query time; mixing
// embedding sources makes similarity scores meaningless.
type OllamaEmbedder struct {
	client  *api.Client
	model   string
	timeout time.Duration
}

type OllamaConfig struct {
	Host    string
	Model   string
	Timeout time.Duration
}

func NewOllamaEmbedder(cfg OllamaConfig) (*OllamaEmbedder, error) {
	if cfg.Host == "" {
		cfg.Host = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	base, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", cfg.Host, err)
	}
	return &OllamaEmbedder{
		client:  api.NewClient(base, &http.Client{Timeout: t}),
		model:   cfg.Model,
		timeout: t,
	}, nil
}

func (e *OllamaEmbedder) Name() string { return "ollama" }

// Embed returns the embedding vector for the given text.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	resp, err := e.client.Embeddings(ctx, &api.EmbeddingRequest{
		Model:  e.model,
		Prompt: text,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embeddings failed: %w", err)
	}
	if len(resp.Embedding) == 0 {
		return nil, errors.New("empty embedding returned")
	}
	return resp.Embedding, nil
}
