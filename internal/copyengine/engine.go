package copyengine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/outreach-copy-agent/internal/logger"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/models"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/profiler"
)

// TextGenerator is a remote text model: one prompt in, one reply out.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ContextSource turns a website URL into a short text block for the
// prompt. It must return "" rather than fail.
type ContextSource interface {
	Describe(ctx context.Context, url string) string
}

var ErrInvalidProfile = errors.New("invalid client profile")

// ValidationError lists the required fields that were missing, by their
// JSON names.
type ValidationError struct {
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "Missing required fields: " + strings.Join(e.Missing, ", ")
	}
	return e.Reason
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidProfile }

// Validate checks the profile before any generation work is done.
// Audience may be empty; count must not be negative.
func Validate(p models.ClientProfile, count int) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"clientName", p.ClientName},
		{"industry", p.Industry},
		{"website", p.Website},
		{"strategy", p.Strategy},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	if count < 0 {
		return &ValidationError{Reason: fmt.Sprintf("count must not be negative, got %d", count)}
	}
	return nil
}

type Engine struct {
	llm        TextGenerator
	site       ContextSource
	newRand    func() Rand
	llmTimeout time.Duration
	log        *logger.Logger
}

type Option func(*Engine)

// WithLLM enables the model path. A nil generator leaves it disabled.
func WithLLM(g TextGenerator) Option {
	return func(e *Engine) { e.llm = g }
}

func WithWebsite(src ContextSource) Option {
	return func(e *Engine) { e.site = src }
}

func WithRand(factory func() Rand) Option {
	return func(e *Engine) { e.newRand = factory }
}

func WithLLMTimeout(d time.Duration) Option {
	return func(e *Engine) { e.llmTimeout = d }
}

func NewEngine(log *logger.Logger, opts ...Option) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	e := &Engine{
		newRand:    NewRand,
		llmTimeout: 45 * time.Second,
		log:        log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate returns count variations for the profile. The model path is
// tried first when configured; any failure there falls back to the
// template engine within the same call, so the only errors returned are
// validation errors and template failures.
func (e *Engine) Generate(ctx context.Context, p models.ClientProfile, count int) (*models.GenerateResponse, error) {
	if err := Validate(p, count); err != nil {
		return nil, err
	}
	p = normalize(p)

	resp := &models.GenerateResponse{
		Variations: []models.Variation{},
		Requested:  count,
		Source:     models.SourceTemplate,
	}
	if count == 0 {
		return resp, nil
	}

	log := e.log.With("client", p.ClientName, "count", count)

	if e.llm != nil {
		variations, err := e.generateWithLLM(ctx, p, count)
		if err == nil {
			log.Info("generated variations with llm", "returned", len(variations))
			resp.Variations = variations
			resp.Source = models.SourceLLM
			return resp, nil
		}
		log.Warn("llm generation failed, falling back to templates", "error", err)
	}

	variations, err := GenerateTemplates(p, count, e.newRand())
	if err != nil {
		return nil, fmt.Errorf("template generation failed: %w", err)
	}
	if len(variations) < count {
		log.Warn("requested more variations than hooks available", "returned", len(variations))
	}
	log.Info("generated variations from templates", "returned", len(variations))
	resp.Variations = variations
	return resp, nil
}

func (e *Engine) generateWithLLM(ctx context.Context, p models.ClientProfile, count int) (variations []models.Variation, err error) {
	defer func() {
		if r := recover(); r != nil {
			variations, err = nil, fmt.Errorf("llm path panicked: %v", r)
		}
	}()

	var websiteContext string
	if e.site != nil {
		websiteContext = e.site.Describe(ctx, p.Website)
	}
	prompt := profiler.BuildPrompt(p, websiteContext, count)

	llmCtx, cancel := context.WithTimeout(ctx, e.llmTimeout)
	defer cancel()

	text, err := e.llm.GenerateText(llmCtx, prompt)
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}
	variations, err = profiler.ParseVariations(text)
	if err != nil {
		return nil, err
	}
	if len(variations) > count {
		variations = variations[:count]
	} else if len(variations) < count {
		e.log.Warn("llm returned fewer variations than requested", "requested", count, "returned", len(variations))
	}
	return variations, nil
}

func normalize(p models.ClientProfile) models.ClientProfile {
	return models.ClientProfile{
		ClientName: strings.TrimSpace(p.ClientName),
		Industry:   strings.TrimSpace(p.Industry),
		Audience:   strings.TrimSpace(p.Audience),
		Website:    strings.TrimSpace(p.Website),
		Strategy:   strings.TrimSpace(p.Strategy),
	}
}
