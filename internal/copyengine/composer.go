package copyengine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/outreach-copy-agent/internal/hooks"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/models"
)

// ErrUnknownHook means a key outside the static catalog reached the
// composer, which only happens through a programming error.
var ErrUnknownHook = errors.New("unknown hook")

const genericFrameFlip = "There's a simpler fix than what most people try first."

var assumedIssues = []string{"content", "targeting", "timing"}

// session holds the per-profile state of one generation call.
type session struct {
	profile     models.ClientProfile
	painPoints  []string
	rnd         Rand
	brands      []string
	ctas        []string
	postscripts []string
}

func newSession(p models.ClientProfile, rnd Rand) *session {
	return &session{
		profile:     p,
		painPoints:  ExtractPainPoints(p.Strategy, p.Industry, p.Audience),
		rnd:         rnd,
		brands:      hooks.Brands(),
		ctas:        hooks.CTAs(),
		postscripts: hooks.Postscripts(),
	}
}

func (s *session) compose(key string, id int) (models.Variation, error) {
	h, ok := hooks.Get(key)
	if !ok {
		return models.Variation{}, fmt.Errorf("%w: %q", ErrUnknownHook, key)
	}

	subject := s.fill(pick(s.rnd, h.Subjects), nil)
	opener := s.fill(pick(s.rnd, h.Openers), nil)
	body := s.body(h, opener)
	ps := s.fill(pick(s.rnd, s.postscripts), nil)

	return models.Variation{
		ID:       id,
		HookType: h.Name,
		Subject:  subject,
		Body:     body,
		PS:       ps,
	}, nil
}

// body lays out opener, frame flip and CTA separated by blank lines.
func (s *session) body(h hooks.Hook, opener string) string {
	flip := h.FrameFlip
	if flip == "" {
		flip = genericFrameFlip
	}
	var overrides Context
	if strings.Contains(flip, "{"+KeyAssumedIssue+"}") {
		overrides = Context{KeyAssumedIssue: pick(s.rnd, assumedIssues)}
	}
	flip = s.fill(flip, overrides)
	cta := s.fill(pick(s.rnd, s.ctas), nil)

	return strings.Join([]string{opener, flip, cta}, "\n\n")
}
