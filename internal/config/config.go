package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// OllamaEmbedderConfig holds connection details for the Ollama embeddings API.
type OllamaEmbedderConfig struct {
	Host        string `yaml:"host"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	Ollama *OllamaEmbedderConfig `yaml:"ollama,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type   string        `yaml:"type"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// GeneratorConfig configures the external generative model client.
// Answer selects how the final answer is taken from the model output:
// "full" keeps the accumulated stream, "lastline" keeps only the last
// non-empty line (the behavior of piping a prompt through a model CLI).
type GeneratorConfig struct {
	Host        string `yaml:"host"`
	Model       string `yaml:"model"`
	Answer      string `yaml:"answer"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// RetrievalConfig tunes the routing decision between grounded and fallback
// answers. SimilarityThreshold directly trades recall (answering more from
// the corpus) against precision (avoiding ungrounded claims), so it is a
// configuration surface rather than a constant. It is a pointer so an
// explicit 0 (ground on containment alone) is distinguishable from unset.
type RetrievalConfig struct {
	TopK                int      `yaml:"top_k"`
	SimilarityThreshold *float64 `yaml:"similarity_threshold"`
}

// ChunkerConfig configures how corpus documents are split at index time.
type ChunkerConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	OverlapChars int `yaml:"overlap_chars"`
}

// PostProcessConfig bounds the size of displayed or spoken answers.
type PostProcessConfig struct {
	MaxWords int `yaml:"max_words"`
}

// ClassifierConfig overrides the built-in scope lexicon. Empty lists fall
// back to the defaults.
type ClassifierConfig struct {
	AllowTerms  []string `yaml:"allow_terms"`
	DenyContext []string `yaml:"deny_context"`
	DenyTopics  []string `yaml:"deny_topics"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedder     EmbedderConfig    `yaml:"embedder"`
	VectorStore  VectorStoreConfig `yaml:"vector_store"`
	Generator    GeneratorConfig   `yaml:"generator"`
	Retrieval    RetrievalConfig   `yaml:"retrieval"`
	Chunker      ChunkerConfig     `yaml:"chunker"`
	PostProcess  PostProcessConfig `yaml:"post_process"`
	Classifier   ClassifierConfig  `yaml:"classifier"`
	QuickAnswers map[string]string `yaml:"quick_answers"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "ollama"
	}
	if cfg.Embedder.Type == "ollama" {
		if cfg.Embedder.Ollama == nil {
			cfg.Embedder.Ollama = &OllamaEmbedderConfig{}
		}
		if cfg.Embedder.Ollama.Host == "" {
			cfg.Embedder.Ollama.Host = "http://localhost:11434"
		}
		if cfg.Embedder.Ollama.Model == "" {
			cfg.Embedder.Ollama.Model = "llama3"
		}
		if cfg.Embedder.Ollama.TimeoutSecs == 0 {
			cfg.Embedder.Ollama.TimeoutSecs = 30
		}
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "memory"
	}
	if cfg.VectorStore.Type == "qdrant" {
		if cfg.VectorStore.Qdrant == nil {
			cfg.VectorStore.Qdrant = &QdrantConfig{}
		}
		if cfg.VectorStore.Qdrant.Host == "" {
			cfg.VectorStore.Qdrant.Host = "localhost"
		}
		if cfg.VectorStore.Qdrant.Port == 0 {
			cfg.VectorStore.Qdrant.Port = 6334
		}
		if cfg.VectorStore.Qdrant.Collection == "" {
			cfg.VectorStore.Qdrant.Collection = "marine_corpus"
		}
		if cfg.VectorStore.Qdrant.TimeoutSecs == 0 {
			cfg.VectorStore.Qdrant.TimeoutSecs = 15
		}
	}
	if cfg.Generator.Host == "" {
		cfg.Generator.Host = "http://localhost:11434"
	}
	if cfg.Generator.Model == "" {
		cfg.Generator.Model = "llama3"
	}
	if cfg.Generator.Answer == "" {
		cfg.Generator.Answer = "full"
	}
	if cfg.Generator.TimeoutSecs == 0 {
		cfg.Generator.TimeoutSecs = 120
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Retrieval.SimilarityThreshold == nil {
		threshold := 0.5
		cfg.Retrieval.SimilarityThreshold = &threshold
	}
	if cfg.Chunker.ChunkSize == 0 {
		cfg.Chunker.ChunkSize = 500
	}
	if cfg.Chunker.OverlapChars == 0 {
		cfg.Chunker.OverlapChars = 50
	}
	if cfg.PostProcess.MaxWords == 0 {
		cfg.PostProcess.MaxWords = 50
	}
}
