package synthesizer

import (
	"context"
	"fmt"

	"marinebot/internal/domain"
)

// Refusal is the fixed answer for out-of-scope questions.
const Refusal = "I can only answer marine-related questions."

// Degraded is the user-visible answer when generation is unavailable.
const Degraded = "Sorry, I couldn't retrieve the answer."

// Synthesizer builds a strategy-specific prompt and invokes the external
// generative model.
type Synthesizer struct {
	generator domain.Generator
}

func New(generator domain.Generator) *Synthesizer {
	return &Synthesizer{generator: generator}
}

// Synthesize produces the answer text for the routed question. For
// OutOfScope the generator is never invoked and the fixed refusal is
// returned. Generation failures propagate as generator.ErrUnavailable
// for the caller to degrade.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, decision domain.Decision, contextText string) (string, error) {
	var prompt string
	switch decision {
	case domain.OutOfScope:
		return Refusal, nil
	case domain.InScopeGrounded:
		prompt = groundedPrompt(question, contextText)
	default:
		prompt = fallbackPrompt(question)
	}
	return s.generator.Generate(ctx, prompt)
}

// groundedPrompt constrains the model to the retrieved corpus context and
// bounds the response size to keep latency and speech output short.
func groundedPrompt(question, contextText string) string {
	return fmt.Sprintf(
		"You are a marine biology expert. Use the following marine context to answer:\n\n"+
			"%s\n\n"+
			"Question: %s\n"+
			"Answer in 1-2 short sentences, max 30 words. "+
			"Only marine facts, ignore movies, shows, sports, or companies.",
		contextText, question)
}

// fallbackPrompt asks for a general-knowledge answer with an expert
// persona and no corpus context.
func fallbackPrompt(question string) string {
	return fmt.Sprintf(
		"You are an expert marine biologist. Answer the following question in detail:\nQuestion: %s",
		question)
}
