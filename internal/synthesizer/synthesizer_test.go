package synthesizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marinebot/internal/domain"
	"marinebot/internal/generator"
)

type fakeGenerator struct {
	lastPrompt string
	response   string
	err        error
	calls      int
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.response, f.err
}

func TestSynthesize(t *testing.T) {
	ctx := context.Background()

	t.Run("Out of scope returns refusal without invoking the model", func(t *testing.T) {
		gen := &fakeGenerator{}
		s := New(gen)
		answer, err := s.Synthesize(ctx, "Who won the election?", domain.OutOfScope, "")
		require.NoError(t, err)
		assert.Equal(t, Refusal, answer)
		assert.Zero(t, gen.calls)
	})

	t.Run("Grounded prompt carries context and question", func(t *testing.T) {
		gen := &fakeGenerator{response: "Corals are animals."}
		s := New(gen)
		answer, err := s.Synthesize(ctx, "What are corals?", domain.InScopeGrounded, "Corals build reefs.")
		require.NoError(t, err)
		assert.Equal(t, "Corals are animals.", answer)
		assert.Contains(t, gen.lastPrompt, "Corals build reefs.")
		assert.Contains(t, gen.lastPrompt, "What are corals?")
		assert.Contains(t, gen.lastPrompt, "marine context")
	})

	t.Run("Fallback prompt has persona and no context", func(t *testing.T) {
		gen := &fakeGenerator{response: "Blue whales are huge."}
		s := New(gen)
		_, err := s.Synthesize(ctx, "Tell me about blue whales", domain.InScopeFallback, "irrelevant corpus text")
		require.NoError(t, err)
		assert.Contains(t, gen.lastPrompt, "expert marine biologist")
		assert.Contains(t, gen.lastPrompt, "Tell me about blue whales")
		assert.NotContains(t, gen.lastPrompt, "irrelevant corpus text")
	})

	t.Run("Generator failure propagates", func(t *testing.T) {
		gen := &fakeGenerator{err: generator.ErrUnavailable}
		s := New(gen)
		_, err := s.Synthesize(ctx, "What is kelp?", domain.InScopeFallback, "")
		assert.ErrorIs(t, err, generator.ErrUnavailable)
	})
}
