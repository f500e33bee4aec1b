package copyengine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/outreach-copy-agent/internal/hooks"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/logger"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/models"
)

type fakeLLM struct {
	reply   string
	err     error
	panics  bool
	calls   int
	prompts []string
}

func (f *fakeLLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.panics {
		panic("boom")
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type slowLLM struct{}

func (slowLLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type fakeSite struct {
	text string
	urls []string
}

func (f *fakeSite) Describe(ctx context.Context, url string) string {
	f.urls = append(f.urls, url)
	return f.text
}

func assertValidBatch(t *testing.T, vars []models.Variation, want int) {
	t.Helper()
	require.Len(t, vars, want)
	seen := map[string]bool{}
	for i, v := range vars {
		assert.Equal(t, i+1, v.ID)
		assert.False(t, seen[v.HookType], "duplicate hook %q", v.HookType)
		seen[v.HookType] = true
		assert.NotEmpty(t, v.Subject)
		assert.NotEmpty(t, v.Body)
		assert.NotEmpty(t, v.PS)
	}
}

func TestValidate(t *testing.T) {
	err := Validate(models.ClientProfile{Industry: "SaaS", Strategy: "  "}, 4)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidProfile))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"clientName", "website", "strategy"}, verr.Missing)
	assert.Equal(t, "Missing required fields: clientName, website, strategy", err.Error())

	p := acmeProfile()
	p.Audience = ""
	assert.NoError(t, Validate(p, 4))

	err = Validate(acmeProfile(), -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidProfile))
}

func TestGenerateTemplatePathAcme(t *testing.T) {
	e := NewEngine(logger.Nop())

	resp, err := e.Generate(context.Background(), acmeProfile(), 4)
	require.NoError(t, err)

	assert.Equal(t, models.SourceTemplate, resp.Source)
	assert.Equal(t, 4, resp.Requested)
	assertValidBatch(t, resp.Variations, 4)
}

func TestGenerateValidationStopsWork(t *testing.T) {
	llm := &fakeLLM{reply: `{"variations":[]}`}
	e := NewEngine(logger.Nop(), WithLLM(llm))

	resp, err := e.Generate(context.Background(), models.ClientProfile{ClientName: "Acme"}, 4)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Zero(t, llm.calls)
}

func TestGenerateZeroCount(t *testing.T) {
	llm := &fakeLLM{}
	e := NewEngine(logger.Nop(), WithLLM(llm))

	resp, err := e.Generate(context.Background(), acmeProfile(), 0)

	require.NoError(t, err)
	assert.NotNil(t, resp.Variations)
	assert.Empty(t, resp.Variations)
	assert.Zero(t, llm.calls)
}

func TestGenerateCountAboveCatalog(t *testing.T) {
	e := NewEngine(logger.Nop(), WithRand(Seeded(3)))

	resp, err := e.Generate(context.Background(), acmeProfile(), hooks.Size()+2)

	require.NoError(t, err)
	assert.Equal(t, hooks.Size()+2, resp.Requested)
	assertValidBatch(t, resp.Variations, hooks.Size())
}

func TestGenerateUsesLLMReply(t *testing.T) {
	llm := &fakeLLM{reply: "```json\n" + `{"variations":[
		{"id": 1, "hookType": "Unexpected Insight", "subject": "huh", "body": "a\\n\\nb\\n\\nWorth a look?", "ps": "P.S. hi"},
		{"id": 2, "hookType": "Specificity Play", "subject": "the 47 detail", "body": "x\n\ny\n\nCurious?", "ps": "P.S. no"},
		{"id": 3, "hookType": "Pattern Break", "subject": "weird", "body": "q\n\nr\n\nMind if I share?", "ps": "P.S. ok"}
	]}` + "\n```"}
	site := &fakeSite{text: "Headlines/Messaging: Ship faster"}
	e := NewEngine(logger.Nop(), WithLLM(llm), WithWebsite(site))

	resp, err := e.Generate(context.Background(), acmeProfile(), 2)
	require.NoError(t, err)

	assert.Equal(t, models.SourceLLM, resp.Source)
	require.Len(t, resp.Variations, 2)
	assert.Equal(t, "a\n\nb\n\nWorth a look?", resp.Variations[0].Body)
	assert.Equal(t, 2, resp.Variations[1].ID)

	assert.Equal(t, []string{"https://acme.com"}, site.urls)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Headlines/Messaging: Ship faster")
	assert.Contains(t, llm.prompts[0], "Create 2 distinct variations")
}

func TestGenerateFallsBackOnLLMFailure(t *testing.T) {
	cases := map[string]TextGenerator{
		"transport error": &fakeLLM{err: errors.New("connection refused")},
		"malformed reply": &fakeLLM{reply: "I'm sorry, I can't help with that."},
		"missing key":     &fakeLLM{reply: `{"emails": []}`},
		"empty list":      &fakeLLM{reply: `{"variations": []}`},
		"panic":           &fakeLLM{panics: true},
	}

	for name, llm := range cases {
		t.Run(name, func(t *testing.T) {
			e := NewEngine(logger.Nop(), WithLLM(llm))

			resp, err := e.Generate(context.Background(), acmeProfile(), 4)

			require.NoError(t, err)
			assert.Equal(t, models.SourceTemplate, resp.Source)
			assertValidBatch(t, resp.Variations, 4)
		})
	}
}

func TestGenerateFallsBackOnLLMTimeout(t *testing.T) {
	e := NewEngine(logger.Nop(), WithLLM(slowLLM{}), WithLLMTimeout(20*time.Millisecond))

	start := time.Now()
	resp, err := e.Generate(context.Background(), acmeProfile(), 3)

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, models.SourceTemplate, resp.Source)
	assertValidBatch(t, resp.Variations, 3)
}

func TestGenerateTrimsProfile(t *testing.T) {
	p := acmeProfile()
	p.ClientName = "  Acme  "
	e := NewEngine(logger.Nop(), WithRand(Seeded(11)))

	resp, err := e.Generate(context.Background(), p, hooks.Size())
	require.NoError(t, err)

	for _, v := range resp.Variations {
		assert.False(t, strings.Contains(v.Subject+v.Body+v.PS, "  Acme"), "untrimmed client name leaked")
	}
}
