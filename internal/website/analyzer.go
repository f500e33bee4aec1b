// Package website extracts a short marketing summary from a client's site
// for use in the model prompt.
package website

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/sync/singleflight"

	"github.com/BerylCAtieno/outreach-copy-agent/internal/logger"
)

const (
	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	maxBodyBytes   = 2 << 20
	maxRawText     = 2000
	maxHeadlines   = 5
	maxValueProps  = 5
	maxSocialProof = 3
	maxCTAs        = 3

	placeholderURL = "https://example.com"
)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	socialProofRe = regexp.MustCompile(`\d+\+?\s*(clients|customers|companies|businesses|years|deals|transactions)`)

	valuePropKeywords = []string{
		"we help", "we offer", "we provide", "our mission",
		"benefit", "advantage", "why choose", "what we do",
	}
	ctaKeywords = []string{
		"schedule", "book", "contact", "get started",
		"learn more", "talk to", "free consultation",
	}
)

// SiteContext is what the analyzer pulls out of one page.
type SiteContext struct {
	Headlines   []string
	ValueProps  []string
	SocialProof []string
	CTAs        []string
	RawText     string
}

func (c SiteContext) Empty() bool {
	return len(c.Headlines) == 0 && len(c.ValueProps) == 0 &&
		len(c.SocialProof) == 0 && len(c.CTAs) == 0 && c.RawText == ""
}

type Analyzer struct {
	client  *http.Client
	timeout time.Duration
	group   singleflight.Group
	log     *logger.Logger
}

func NewAnalyzer(timeout time.Duration, log *logger.Logger) *Analyzer {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Analyzer{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		log:     log,
	}
}

// Describe returns the formatted context for url, or "" when the site
// cannot be fetched or yields nothing. Failures are logged, never returned.
func (a *Analyzer) Describe(ctx context.Context, url string) string {
	sc, err := a.Analyze(ctx, url)
	if err != nil {
		a.log.Warn("could not analyze website", "url", url, "error", err)
		return ""
	}
	if sc.Empty() {
		return ""
	}
	text := sc.Format()
	a.log.Debug("analyzed website", "url", url,
		"headlines", len(sc.Headlines), "value_props", len(sc.ValueProps))
	return text
}

// Analyze fetches url and extracts its context. Concurrent calls for the
// same url share one fetch. An empty or placeholder url yields an empty
// context without touching the network.
func (a *Analyzer) Analyze(ctx context.Context, url string) (SiteContext, error) {
	url = strings.TrimSpace(url)
	if url == "" || url == placeholderURL {
		return SiteContext{}, nil
	}

	// The shared fetch outlives any single caller; a.timeout bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := a.group.DoChan(url, func() (interface{}, error) {
		body, err := a.fetch(fetchCtx, url)
		if err != nil {
			return SiteContext{}, err
		}
		return Extract(body)
	})

	select {
	case <-ctx.Done():
		return SiteContext{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return SiteContext{}, res.Err
		}
		return res.Val.(SiteContext), nil
	}
}

func (a *Analyzer) fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}

// Extract parses an HTML document and collects headlines, value
// propositions, social proof and CTA text.
func Extract(document string) (SiteContext, error) {
	doc, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return SiteContext{}, fmt.Errorf("failed to parse HTML: %w", err)
	}
	prune(doc)

	var (
		headlines = newCapped(maxHeadlines)
		props     = newCapped(maxValueProps)
		proof     = newCapped(maxSocialProof)
		ctas      = newCapped(maxCTAs)
	)

	walk(doc, func(n *html.Node) {
		text := nodeText(n)
		if text == "" {
			return
		}
		lower := strings.ToLower(text)
		switch n.Data {
		case "h1", "h2", "h3":
			if len(text) > 10 && len(text) < 200 {
				headlines.add(text)
			}
		case "p", "li", "span", "div":
			if containsAny(lower, valuePropKeywords) && len(text) > 20 && len(text) < 300 {
				props.add(text)
			}
			if socialProofRe.MatchString(lower) && len(text) < 200 {
				proof.add(text)
			}
		case "button", "a":
			if containsAny(lower, ctaKeywords) && len(text) > 3 && len(text) < 50 {
				ctas.add(text)
			}
		}
	})

	raw := truncate(nodeText(doc), maxRawText)

	return SiteContext{
		Headlines:   headlines.items,
		ValueProps:  props.items,
		SocialProof: proof.items,
		CTAs:        ctas.items,
		RawText:     raw,
	}, nil
}

// Format renders the context as the text block the prompt expects.
func (c SiteContext) Format() string {
	var parts []string
	if len(c.Headlines) > 0 {
		parts = append(parts, "Headlines/Messaging: "+strings.Join(c.Headlines, " | "))
	}
	if len(c.ValueProps) > 0 {
		props := c.ValueProps
		if len(props) > 3 {
			props = props[:3]
		}
		parts = append(parts, "Value Props: "+strings.Join(props, "; "))
	}
	if len(c.SocialProof) > 0 {
		parts = append(parts, "Social Proof: "+strings.Join(c.SocialProof, "; "))
	}
	if len(c.CTAs) > 0 {
		parts = append(parts, "CTAs used: "+strings.Join(c.CTAs, ", "))
	}
	if len(parts) == 0 && c.RawText != "" {
		parts = append(parts, "Website content summary: "+truncate(c.RawText, 500)+"...")
	}
	if len(parts) == 0 {
		return "No website content available"
	}
	return strings.Join(parts, "\n")
}

// prune detaches elements that never carry page copy.
func prune(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode {
			switch c.Data {
			case "script", "style", "noscript", "nav", "footer", "header", "svg", "iframe":
				n.RemoveChild(c)
				c = next
				continue
			}
		}
		prune(c)
		c = next
	}
}

func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// nodeText joins all descendant text with single spaces.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(sb.String(), " "))
}

// capped keeps the first max distinct values in insertion order.
type capped struct {
	max   int
	seen  map[string]bool
	items []string
}

func newCapped(max int) *capped {
	return &capped{max: max, seen: map[string]bool{}}
}

func (c *capped) add(s string) {
	if len(c.items) >= c.max || c.seen[s] {
		return
	}
	c.seen[s] = true
	c.items = append(c.items, s)
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
