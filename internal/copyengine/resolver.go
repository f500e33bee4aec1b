package copyengine

import (
	"fmt"
	"regexp"
	"strings"
)

// Context maps placeholder names to their values for one template fill.
type Context map[string]string

const (
	KeyClient         = "client"
	KeyIndustry       = "industry"
	KeyAudience       = "audience"
	KeyWebsite        = "website"
	KeyProblem        = "problem"
	KeyProcess        = "process"
	KeySpecificIssue  = "specific_issue"
	KeyObservation    = "observation"
	KeyBigCompany     = "big_company"
	KeyAnotherCompany = "another_company"

	// KeyAssumedIssue is only supplied as an override by the composer.
	KeyAssumedIssue = "assumed_issue"
)

const fallbackProblem = "growth bottlenecks"

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Fill replaces every {name} token whose name is in ctx. Tokens with no
// matching key stay in the output verbatim; the rest of the template is
// always preserved. Substituted values are not rescanned.
func Fill(template string, ctx Context) string {
	if !strings.Contains(template, "{") {
		return template
	}
	return placeholderRe.ReplaceAllStringFunc(template, func(token string) string {
		if v, ok := ctx[token[1:len(token)-1]]; ok {
			return v
		}
		return token
	})
}

// Placeholders lists the placeholder names in template, in order of
// appearance, with repeats.
func Placeholders(template string) []string {
	matches := placeholderRe.FindAllStringSubmatch(template, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// context builds a fresh fill context. Random fields are re-drawn on every
// call; overrides win over the base fields.
func (s *session) context(overrides Context) Context {
	p := s.profile
	strategy := strings.ToLower(p.Strategy)

	problem := fallbackProblem
	if len(s.painPoints) > 0 {
		problem = pick(s.rnd, s.painPoints)
	}
	process := "workflow"
	if strings.Contains(strategy, "outreach") {
		process = "outreach"
	}
	specificIssue := "conversion flow"
	if strings.Contains(strategy, "email") {
		specificIssue = "email timing"
	}
	audience := p.Audience
	if audience == "" {
		audience = defaultAudience
	}
	big, another := pickTwo(s.rnd, s.brands)

	ctx := Context{
		KeyClient:         p.ClientName,
		KeyIndustry:       p.Industry,
		KeyAudience:       audience,
		KeyWebsite:        p.Website,
		KeyProblem:        problem,
		KeyProcess:        process,
		KeySpecificIssue:  specificIssue,
		KeyObservation:    fmt.Sprintf("how %s is approaching %s", p.ClientName, p.Industry),
		KeyBigCompany:     big,
		KeyAnotherCompany: another,
	}
	for k, v := range overrides {
		ctx[k] = v
	}
	return ctx
}

func (s *session) fill(template string, overrides Context) string {
	return Fill(template, s.context(overrides))
}
