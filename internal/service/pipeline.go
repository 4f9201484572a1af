package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"marinebot/internal/classifier"
	"marinebot/internal/domain"
	"marinebot/internal/generator"
	"marinebot/internal/postprocess"
	"marinebot/internal/quickanswer"
	"marinebot/internal/router"
	"marinebot/internal/similarity"
	"marinebot/internal/synthesizer"
)

// Reason codes attached to non-success answers.
const (
	ReasonOutOfScope            = "out_of_scope"
	ReasonGenerationUnavailable = "generation_unavailable"
	ReasonEmbeddingUnavailable  = "embedding_unavailable"
)

// Pipeline answers marine questions: quick-answer short-circuit, scope
// gate, retrieval, similarity assessment, routing, synthesis, and
// post-processing. Every query runs synchronously end to end; the only
// blocking external call is the generative model. The store and embedder
// are read-only and shared across in-flight queries.
type Pipeline struct {
	classifier *classifier.Classifier
	embedder   domain.Embedder
	store      domain.VectorStore
	scorer     *similarity.Scorer
	router     *router.Router
	synth      *synthesizer.Synthesizer
	post       *postprocess.Processor
	quick      *quickanswer.Cache
	topK       int
	log        *zap.Logger
}

// Options configures a Pipeline. Threshold is a pointer so that an
// explicit 0 (ground on containment alone) is distinguishable from unset.
type Options struct {
	Classifier *classifier.Classifier
	Embedder   domain.Embedder
	Store      domain.VectorStore
	Generator  domain.Generator
	Quick      *quickanswer.Cache
	TopK       int
	Threshold  *float64
	MaxWords   int
	Logger     *zap.Logger
}

func New(opts Options) *Pipeline {
	if opts.Classifier == nil {
		opts.Classifier = classifier.NewDefault()
	}
	if opts.Quick == nil {
		opts.Quick = quickanswer.NewDefault()
	}
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	threshold := 0.5
	if opts.Threshold != nil {
		threshold = *opts.Threshold
	}
	if opts.MaxWords == 0 {
		opts.MaxWords = 50
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Pipeline{
		classifier: opts.Classifier,
		embedder:   opts.Embedder,
		store:      opts.Store,
		scorer:     similarity.NewScorer(opts.Embedder),
		router:     router.New(threshold),
		synth:      synthesizer.New(opts.Generator),
		post:       postprocess.NewProcessor(opts.MaxWords),
		quick:      opts.Quick,
		topK:       opts.TopK,
		log:        opts.Logger,
	}
}

// Ask answers one question. Out-of-scope questions never reach retrieval
// or synthesis. Failures of the external model degrade to a fixed answer
// and never corrupt state shared with later requests.
func (p *Pipeline) Ask(ctx context.Context, question string) domain.Answer {
	q := strings.TrimSpace(question)

	if answer, ok := p.quick.Lookup(q); ok {
		p.log.Debug("quick answer hit", zap.String("entity", q))
		return domain.Answer{
			Status:        domain.StatusSuccess,
			Question:      q,
			Text:          answer,
			MarineRelated: true,
		}
	}

	if !p.classifier.Classify(q) {
		p.log.Info("question rejected by scope gate", zap.String("question", q))
		return domain.Answer{
			Status:        domain.StatusIgnored,
			Question:      q,
			Text:          synthesizer.Refusal,
			MarineRelated: false,
			Reason:        ReasonOutOfScope,
		}
	}

	questionVec, err := p.embedder.Embed(ctx, q)
	if err != nil {
		p.log.Warn("question embedding failed", zap.Error(err))
		return domain.Answer{
			Status:        domain.StatusSuccess,
			Question:      q,
			Text:          synthesizer.Degraded,
			MarineRelated: true,
			Reason:        ReasonEmbeddingUnavailable,
		}
	}

	contextText := p.retrieveContext(ctx, questionVec)
	assessment := p.assess(ctx, questionVec, q, contextText)
	decision := p.router.Route(true, assessment)
	p.log.Info("routed question",
		zap.String("decision", decision.String()),
		zap.Float64("score", assessment.Score),
		zap.Bool("containment", assessment.Containment))

	answer := domain.Answer{
		Status:        domain.StatusSuccess,
		Question:      q,
		MarineRelated: true,
	}
	text, err := p.synth.Synthesize(ctx, q, decision, contextText)
	if err != nil {
		if !errors.Is(err, generator.ErrUnavailable) {
			p.log.Error("synthesis failed", zap.Error(err))
		} else {
			p.log.Warn("generator unavailable", zap.Error(err))
		}
		answer.Text = synthesizer.Degraded
		answer.Reason = ReasonGenerationUnavailable
		return answer
	}
	answer.Text = p.post.Process(text)
	return answer
}

// retrieveContext joins the top-k retrieved chunks. Zero results or a
// store failure propagate as an empty context, which pushes routing
// toward the fallback strategy instead of failing the request.
func (p *Pipeline) retrieveContext(ctx context.Context, questionVec []float64) string {
	results, err := p.store.Search(ctx, questionVec, p.topK)
	if err != nil {
		p.log.Warn("retrieval failed, continuing with empty context", zap.Error(err))
		return ""
	}
	texts := make([]string, 0, len(results))
	for _, r := range results {
		texts = append(texts, r.Chunk.Text)
	}
	return strings.Join(texts, "\n\n")
}

func (p *Pipeline) assess(ctx context.Context, questionVec []float64, question, contextText string) domain.Assessment {
	assessment, err := p.scorer.Assess(ctx, questionVec, question, contextText)
	if err != nil {
		p.log.Warn("similarity assessment failed, treating corpus as irrelevant", zap.Error(err))
		return domain.Assessment{}
	}
	return assessment
}
