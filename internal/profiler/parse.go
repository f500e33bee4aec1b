package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/BerylCAtieno/outreach-copy-agent/internal/models"
)

// ErrNoVariations is returned when a reply parses but carries no usable
// variations list.
var ErrNoVariations = errors.New("reply has no variations")

var variationsObjectRe = regexp.MustCompile(`\{[\s\S]*"variations"[\s\S]*\}`)

type reply struct {
	Variations *[]replyVariation `json:"variations"`
}

// Ids from the model are ignored; variations are renumbered on the way out.
type replyVariation struct {
	HookType string `json:"hookType"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	PS       string `json:"ps"`
}

// ParseVariations decodes a model reply into variations. The reply may be
// wrapped in a markdown code fence; when direct decoding fails the first
// JSON-looking object mentioning "variations" is extracted and retried,
// then repaired as a last resort.
func ParseVariations(text string) ([]models.Variation, error) {
	cleaned := stripCodeFence(strings.TrimSpace(text))
	if cleaned == "" {
		return nil, ErrNoContent
	}

	r, err := decodeReply(cleaned)
	if err != nil {
		candidate := variationsObjectRe.FindString(cleaned)
		if candidate != "" {
			r, err = decodeReply(candidate)
		} else {
			candidate = cleaned
		}
		// Last resort: repair the payload and try once more.
		if err != nil {
			if r, err = decodeReply(repairJSON(candidate)); err != nil {
				return nil, fmt.Errorf("could not parse reply as JSON: %w", err)
			}
		}
	}

	if r.Variations == nil {
		return nil, fmt.Errorf("%w: missing variations key", ErrNoVariations)
	}

	out := make([]models.Variation, 0, len(*r.Variations))
	for _, v := range *r.Variations {
		body := strings.TrimSpace(strings.ReplaceAll(v.Body, `\n`, "\n"))
		if body == "" && strings.TrimSpace(v.Subject) == "" {
			continue
		}
		out = append(out, models.Variation{
			ID:       len(out) + 1,
			HookType: strings.TrimSpace(v.HookType),
			Subject:  strings.TrimSpace(v.Subject),
			Body:     body,
			PS:       strings.TrimSpace(v.PS),
		})
	}
	if len(out) == 0 {
		return nil, ErrNoVariations
	}
	return out, nil
}

func decodeReply(s string) (reply, error) {
	var r reply
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return reply{}, err
	}
	return r, nil
}

// repairJSON fixes the two mistakes models make most often: raw control
// characters inside string literals and single-quoted strings.
func repairJSON(s string) string {
	out := make([]byte, 0, len(s)+16)
	var quote byte
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote == 0 {
			switch c {
			case '"':
				quote = '"'
			case '\'':
				quote = '\''
				c = '"'
			}
			out = append(out, c)
			continue
		}
		switch {
		case escaped:
			escaped = false
			if quote == '\'' && c == '\'' {
				// \' is not a JSON escape; keep the bare quote.
				out = out[:len(out)-1]
			}
		case c == '\\':
			escaped = true
		case c == quote:
			quote = 0
			c = '"'
		case c == '"':
			out = append(out, '\\')
		case c == '\n':
			out = append(out, `\n`...)
			continue
		case c == '\r':
			out = append(out, `\r`...)
			continue
		case c == '\t':
			out = append(out, `\t`...)
			continue
		}
		out = append(out, c)
	}
	return string(out)
}

// stripCodeFence removes a surrounding ``` fence and a leading "json"
// language tag.
func stripCodeFence(text string) string {
	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		end := -1
		for i := len(lines) - 1; i > 0; i-- {
			if strings.TrimSpace(lines[i]) == "```" {
				end = i
				break
			}
		}
		if end > 0 {
			lines = lines[1:end]
		} else {
			lines = lines[1:]
		}
		text = strings.TrimSpace(strings.Join(lines, "\n"))
	}
	if len(text) >= 4 && strings.EqualFold(text[:4], "json") {
		text = strings.TrimSpace(text[4:])
	}
	return text
}
