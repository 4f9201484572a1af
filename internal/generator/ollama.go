package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// ErrUnavailable marks a generation failure: the model server is
// unreachable, errored, or timed out. Callers degrade to a fixed answer
// instead of surfacing this to the user.
var ErrUnavailable = errors.New("generation unavailable")

// Mode selects how the final answer is taken from the raw model output.
type Mode string

const (
	// ModeFull keeps the whole accumulated stream.
	ModeFull Mode = "full"
	// ModeLastLine keeps only the last non-empty line, matching backends
	// that interleave log or progress lines with the answer.
	ModeLastLine Mode = "lastline"
)

// ParseMode validates a configured answer-selection mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFull, ModeLastLine:
		return Mode(s), nil
	case "":
		return ModeFull, nil
	}
	return "", fmt.Errorf("unknown answer mode %q", s)
}

// Ollama generates text through a local Ollama server. Each call is a
// stateless single shot: no conversational state persists between calls.
type Ollama struct {
	client  *api.Client
	model   string
	mode    Mode
	timeout time.Duration
}

type Config struct {
	Host    string
	Model   string
	Mode    Mode
	Timeout time.Duration
}

func NewOllama(cfg Config) (*Ollama, error) {
	if cfg.Host == "" {
		cfg.Host = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3"
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeFull
	}
	t := cfg.Timeout
	if t == 0 {
		t = 2 * time.Minute
	}
	base, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", cfg.Host, err)
	}
	return &Ollama{
		client:  api.NewClient(base, &http.Client{Timeout: t}),
		model:   cfg.Model,
		mode:    cfg.Mode,
		timeout: t,
	}, nil
}

// Generate sends the prompt and returns the selected answer text. The
// stream is always fully drained before returning, and the bounded
// timeout guarantees the call cannot outlive the request indefinitely.
func (g *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	stream := true
	var raw strings.Builder
	err := g.client.Generate(ctx, &api.GenerateRequest{
		Model:  g.model,
		Prompt: prompt,
		Stream: &stream,
	}, func(resp api.GenerateResponse) error {
		raw.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return selectAnswer(raw.String(), g.mode), nil
}

// selectAnswer applies the configured answer-selection mode to the raw
// model output.
func selectAnswer(raw string, mode Mode) string {
	if mode == ModeLastLine {
		lines := strings.Split(raw, "\n")
		for i := len(lines) - 1; i >= 0; i-- {
			if line := strings.TrimSpace(lines[i]); line != "" {
				return line
			}
		}
	}
	return strings.TrimSpace(raw)
}
