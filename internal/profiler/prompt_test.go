package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BerylCAtieno/outreach-copy-agent/internal/models"
)

func TestBuildPrompt(t *testing.T) {
	p := models.ClientProfile{
		ClientName: "Acme",
		Industry:   "SaaS",
		Audience:   "ops leads",
		Website:    "https://acme.io",
		Strategy:   "Pricing is confusing",
	}

	prompt := BuildPrompt(p, "Headlines: Ship faster", 3)

	assert.Contains(t, prompt, "SENDER (we are writing FOR): Acme")
	assert.Contains(t, prompt, "RECIPIENTS (we are writing TO): ops leads")
	assert.Contains(t, prompt, "Industry: SaaS")
	assert.Contains(t, prompt, "Headlines: Ship faster")
	assert.Contains(t, prompt, "Pricing is confusing")
	assert.Contains(t, prompt, "Create 3 distinct variations.")
	assert.Contains(t, prompt, `{"variations": [`)
}

func TestBuildPromptDefaults(t *testing.T) {
	prompt := BuildPrompt(models.ClientProfile{ClientName: "Acme"}, "  ", 1)

	assert.Contains(t, prompt, "their ideal prospects")
	assert.Contains(t, prompt, "No website data scraped")
	assert.Contains(t, prompt, "Infer the offer from context.")
}
