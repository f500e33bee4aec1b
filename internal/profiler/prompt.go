package profiler

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/outreach-copy-agent/internal/models"
)

// copyFramework is the fixed instructional preamble sent ahead of every
// brief. It encodes the cold email psychology the copy should follow.
const copyFramework = `You write cold outreach emails that real people reply to.

## CORE PRINCIPLES

- Conversational over corporate. Write the way you would type a DM to a smart peer. No "I hope this finds you well", no jargon, no robotic intros.
- Open loops beat hard closes. The email sparks curiosity; the ask only opens the door ("Want me to send it over?", never "Can I book 30 minutes?").
- Tiny specific details build trust. A concrete detail (a number, a timeline, a named process) signals this is not mass spam.
- Short but not dry. Five to seven lines, under 50 words of body, with some edge and emotion left in.
- One problem, one offer, one soft next step per email.

## THE PROSPECT'S FIVE QUESTIONS

Every prospect silently asks:
1. How does this make me money?
2. Have you helped someone like me?
3. Did you look at my company at all?
4. Are you a real person?
5. Is this a waste of my time?
Answer all five implicitly, in under 50 words.

## PATTERN DISRUPT

Inboxes are full of "quick question" and 150-word agency life stories that get filed as spam on sight. The email must look and feel unlike those: relevant, about them, leading with value, nothing wasted.

## ROLE-BASED POINT OF VIEW

Write for the reader's seat:
- Founder: bottlenecks, scale tension, time.
- Head of Ops: workflow pain, manual load, hacks that broke.
- Sales leader: CAC, funnel leaks, conversion math.
- Clinician: evidence, patient outcome, revenue.
Ask: what would this sound like if they vented it on Slack?

## HOOK ANGLES

| Hook | Idea |
|------|------|
| Shot in the Dark | Frame it as unlikely but possibly useful |
| Clarity Gap | Point at what is not obvious or missing |
| Math Problem | Show it is really a numbers issue |
| Overlooked Detail | Zoom in on one small overlooked blocker |
| Anti-Pitch | Make clear this is not a sales push |
| Status Signaling | Casual authority, only when the brief provides it |

## EMAIL STRUCTURE

{{first_name}} – [pattern interrupt: recognise the problem with a specific detail]

[flip the frame: what they think the problem is versus what it actually is]

[small curiosity CTA question]

P.S. [human note, light and honest]

## FRONT-END OFFERS

Center the ask on something low-friction: a free audit or diagnostic, a done-for-you asset (mockup, outline, quick-win list), a short solution guide, or a breakdown of how a result was produced.

## ANTI-HALLUCINATION RULES (MANDATORY)

- Never invent case studies, metrics, client names or credentials.
- Never reuse brand names from these instructions as social proof.
- Only use facts that appear in the strategy notes or website intel below.
- Without concrete proof, keep language generic: "Worth a quick look?", "Curious if this resonates?", "No pressure either way."
`

// BuildPrompt combines the fixed framework with the client brief and the
// optional website context into the single prompt sent to the model.
func BuildPrompt(p models.ClientProfile, websiteContext string, count int) string {
	audience := strings.TrimSpace(p.Audience)
	if audience == "" {
		audience = "their ideal prospects"
	}
	intel := strings.TrimSpace(websiteContext)
	if intel == "" {
		intel = "No website data scraped - rely on strategy notes."
	}
	strategy := strings.TrimSpace(p.Strategy)
	if strategy == "" {
		strategy = "Infer the offer from context."
	}

	var b strings.Builder
	b.WriteString(copyFramework)
	b.WriteString("\n---\n\n## WHO IS WHO\n\n")
	fmt.Fprintf(&b, "- SENDER (we are writing FOR): %s\n", p.ClientName)
	fmt.Fprintf(&b, "- RECIPIENTS (we are writing TO): %s\n", audience)
	fmt.Fprintf(&b, "The email is written BY %s to reach %s. Do not mention %s in the body; the email comes from them.\n\n", p.ClientName, audience, p.ClientName)

	b.WriteString("## THE BRIEF\n\n")
	fmt.Fprintf(&b, "- Industry: %s\n", p.Industry)
	fmt.Fprintf(&b, "- Website: %s\n\n", p.Website)
	fmt.Fprintf(&b, "Website intel:\n%s\n\n", intel)
	fmt.Fprintf(&b, "Strategy / offer:\n%s\n\n", strategy)

	b.WriteString("## TASK\n\n")
	fmt.Fprintf(&b, "Create %d distinct variations. Each must use a DIFFERENT hook angle and set hookType to that angle's name.\n", count)
	b.WriteString("Every body MUST end with a CTA question as its final line. Separate the three body parts with blank lines.\n")
	b.WriteString("The P.S. is a human touch only: no invented results or credentials.\n\n")

	b.WriteString("## OUTPUT FORMAT\n\n")
	b.WriteString("Reply with JSON only, no commentary, in exactly this shape:\n")
	b.WriteString(`{"variations": [{"id": 1, "hookType": "...", "subject": "...", "body": "line\n\nline\n\nCTA question?", "ps": "P.S. ..."}]}`)
	b.WriteString("\n")
	return b.String()
}
