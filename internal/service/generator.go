package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/pageza/mealmind/backend/config"
	"github.com/pageza/mealmind/backend/internal/apperr"
	"github.com/pageza/mealmind/backend/internal/llm"
	"github.com/pageza/mealmind/backend/internal/metrics"
	"github.com/pageza/mealmind/backend/internal/prompt"
	"github.com/pageza/mealmind/backend/internal/telemetry"
)

// Generation kinds, used in error messages, logs and metric labels
const (
	KindRecommendations = "recommendations"
	KindWeeklyPlan      = "weekly plan"
	KindPlanDay         = "replacement day"
	KindShoppingList    = "shopping list"
	KindSummary         = "preference summary"
)

// Generator runs provider calls with a per-call deadline, tracing and metrics,
// and owns the single repair attempt for structured responses.
type Generator struct {
	llm         llm.Completer
	capable     string
	lightweight string
	timeout     time.Duration
	metrics     *metrics.Metrics
	logger      *zap.Logger
	tracer      trace.Tracer
}

// NewGenerator creates a generator for the configured models
func NewGenerator(completer llm.Completer, cfg config.LLMConfig, m *metrics.Metrics, logger *zap.Logger) *Generator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Generator{
		llm:         completer,
		capable:     cfg.CapableModel,
		lightweight: cfg.LightweightModel,
		timeout:     timeout,
		metrics:     m,
		logger:      logger,
		tracer:      telemetry.Tracer(),
	}
}

// CapableModel is the model used for primary generation
func (g *Generator) CapableModel() string { return g.capable }

// LightweightModel is the model used for repair, categorization and summaries
func (g *Generator) LightweightModel() string { return g.lightweight }

// task is one structured generation
type task[T any] struct {
	kind        string
	model       string
	temperature float64
	prompt      prompt.Prompt
	decode      func(raw string) (T, error)
	repair      prompt.RepairTarget
}

// outcome is a validated value and the exact text it was decoded from
type outcome[T any] struct {
	value    T
	raw      string
	repaired bool
}

// runTask generates, validates and, on a validation or parse failure only,
// repairs once with the lightweight model. Provider errors are never repaired.
func runTask[T any](ctx context.Context, g *Generator, t task[T]) (outcome[T], error) {
	var zero outcome[T]
	log := g.logger.With(zap.String("kind", t.kind), zap.String("model", t.model))

	raw, err := g.call(ctx, t.kind, metrics.StagePrimary, llm.CompletionRequest{
		Model: t.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: t.prompt.System},
			{Role: llm.RoleUser, Content: t.prompt.User},
		},
		JSONResponse: true,
		Temperature:  t.temperature,
	})
	if err != nil {
		g.metrics.RecordGeneration(t.kind, metrics.OutcomeProviderError)
		log.Error("provider call failed", zap.Error(err))
		return zero, providerError(err)
	}

	value, err := t.decode(raw)
	if err == nil {
		g.metrics.RecordGeneration(t.kind, metrics.OutcomeOK)
		return outcome[T]{value: value, raw: raw}, nil
	}
	log.Warn("response failed validation, attempting repair", zap.Int("bytes", len(raw)), zap.Error(err))

	fixed, err := g.call(ctx, t.kind, metrics.StageRepair, llm.CompletionRequest{
		Model:        g.lightweight,
		Messages:     []llm.Message{{Role: llm.RoleUser, Content: prompt.Repair(t.repair, raw)}},
		JSONResponse: true,
		Temperature:  0,
	})
	if err != nil {
		g.metrics.RecordGeneration(t.kind, metrics.OutcomeFailed)
		log.Error("repair call failed", zap.Error(err))
		return zero, apperr.GenerationFailed(t.kind, err)
	}

	value, err = t.decode(fixed)
	if err != nil {
		g.metrics.RecordGeneration(t.kind, metrics.OutcomeFailed)
		log.Error("repaired response failed validation", zap.Int("bytes", len(fixed)), zap.Error(err))
		return zero, apperr.GenerationFailed(t.kind, err)
	}

	g.metrics.RecordGeneration(t.kind, metrics.OutcomeRepaired)
	log.Info("response repaired")
	return outcome[T]{value: value, raw: fixed, repaired: true}, nil
}

// Text runs an unstructured completion. Provider errors are mapped like runTask's.
func (g *Generator) Text(ctx context.Context, kind string, req llm.CompletionRequest) (string, error) {
	text, err := g.call(ctx, kind, metrics.StagePrimary, req)
	if err != nil {
		return "", providerError(err)
	}
	return text, nil
}

// call is one provider round trip under its own deadline
func (g *Generator) call(ctx context.Context, kind, stage string, req llm.CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	ctx, span := g.tracer.Start(ctx, "llm.complete", trace.WithAttributes(
		attribute.String("llm.kind", kind),
		attribute.String("llm.stage", stage),
		attribute.String("llm.model", req.Model),
		attribute.Float64("llm.temperature", req.Temperature),
	))
	defer span.End()

	start := time.Now()
	text, err := g.llm.Complete(ctx, req)
	g.metrics.ObserveProviderCall(kind, stage, time.Since(start))

	if err != nil {
		if ctx.Err() != nil && !errors.Is(err, llm.ErrTimeout) && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = errors.Join(llm.ErrTimeout, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetAttributes(attribute.Int("llm.response_length", len(text)))
	return text, nil
}

func providerError(err error) error {
	if errors.Is(err, llm.ErrTimeout) {
		return apperr.ProviderTimeout(err)
	}
	return apperr.ProviderUnavailable(err)
}
