package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yarberjoseph/seo-analyst-agent/internal/model"
	"github.com/yarberjoseph/seo-analyst-agent/pkg/anthropic"
)

// strategistSystemPrompt establishes the assistant's role for every strategy
// call.
const strategistSystemPrompt = `You are an expert SEO competitive analyst specializing in ranking strategies.

Your role:
- Analyze SERP positioning data and competitive landscapes
- Identify specific ranking gaps and opportunities
- Evaluate competitor strengths across content, backlinks, and technical factors
- Develop prioritized, actionable game plans to overtake competitor rankings
- Recommend tactics with estimated impact and effort levels

Always provide:
- Data-driven insights with specific metrics
- Prioritized recommendations (High/Medium/Low impact)
- Specific action items (content improvements, link building targets, technical fixes)
- Success metrics and timelines
- Competitor weakness analysis

Format your strategic recommendations clearly with priority levels and expected outcomes.`

// notAvailable marks numerics the provider had no data for, so the model is
// not misled into assuming zero.
const notAvailable = "N/A"

// ModelCallError indicates the generative-model call itself failed; the
// landscape built before it must not be stored.
type ModelCallError struct {
	Err error
}

func (e *ModelCallError) Error() string {
	return "strategy: model call: " + e.Err.Error()
}

func (e *ModelCallError) Unwrap() error {
	return e.Err
}

// IsModelCallFailure reports whether err came from the strategy model call.
func IsModelCallFailure(err error) bool {
	var mce *ModelCallError
	return errors.As(err, &mce)
}

// BuildPrompt renders the landscape into the fixed-structure analysis brief.
func BuildPrompt(l *model.Landscape, timeline model.Timeline) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze this competitive landscape for the keyword: %q\n\n", l.Keyword)

	b.WriteString("KEYWORD METRICS:\n")
	fmt.Fprintf(&b, "- Search Volume: %s searches/month\n", formatInt64(l.Metrics.SearchVolume))
	fmt.Fprintf(&b, "- Keyword Difficulty: %s/100\n", formatInt(l.Metrics.Difficulty))
	fmt.Fprintf(&b, "- CPC: %s\n\n", formatUSD(l.Metrics.CPC))

	fmt.Fprintf(&b, "MY SITE (%s):\n", l.SelfDomain)
	fmt.Fprintf(&b, "- Current Position: %s\n", l.PositionLabel())
	fmt.Fprintf(&b, "- URL: %s\n", orNA(l.SelfURL))
	// Self backlinks render their stored values even after a failed fetch;
	// zeros here are the documented upstream ambiguity.
	fmt.Fprintf(&b, "- Total Backlinks: %d\n", l.SelfBacklinks.Backlinks)
	fmt.Fprintf(&b, "- Referring Domains: %d\n", l.SelfBacklinks.ReferringDomains)
	fmt.Fprintf(&b, "- Domain Rank: %d\n\n", l.SelfBacklinks.Rank)

	b.WriteString("TOP COMPETITORS:\n")
	for _, comp := range l.Competitors {
		fmt.Fprintf(&b, "\nPosition #%d - %s\n", comp.Position, comp.Domain)
		fmt.Fprintf(&b, "- URL: %s\n", orNA(comp.URL))
		fmt.Fprintf(&b, "- Title: %s\n", orNA(comp.Title))
		if comp.Backlinks != nil {
			fmt.Fprintf(&b, "- Total Backlinks: %d\n", comp.Backlinks.Backlinks)
			fmt.Fprintf(&b, "- Referring Domains: %d\n", comp.Backlinks.ReferringDomains)
			fmt.Fprintf(&b, "- Domain Rank: %d\n", comp.Backlinks.Rank)
		} else {
			fmt.Fprintf(&b, "- Total Backlinks: %s\n", notAvailable)
			fmt.Fprintf(&b, "- Referring Domains: %s\n", notAvailable)
			fmt.Fprintf(&b, "- Domain Rank: %s\n", notAvailable)
		}
	}

	fmt.Fprintf(&b, "\nTASK:\nProvide a comprehensive strategic plan to move from position %s to top 3 within %s.\n\n", l.PositionLabel(), timeline)
	b.WriteString(`Provide:
1. **SERP Analysis**: What patterns in top results? What intent?
2. **Backlink Gap**: How significant is the deficit?
3. **Prioritized Action Plan**: Specific tactics with effort/impact levels
4. **Success Metrics**: How to measure progress

Be specific and actionable.`)

	return b.String()
}

// BuildStrategy invokes one generative-model completion over the landscape
// brief. Failures surface verbatim wrapped as ModelCallError; no retries.
func (a *Analyzer) BuildStrategy(ctx context.Context, l *model.Landscape, timeline model.Timeline) (string, anthropic.TokenUsage, error) {
	resp, err := a.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.cfg.Anthropic.Model,
		MaxTokens: a.cfg.Anthropic.MaxTokens,
		System:    strategistSystemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: BuildPrompt(l, timeline)},
		},
	})
	if err != nil {
		return "", anthropic.TokenUsage{}, &ModelCallError{Err: err}
	}
	if resp.Text == "" {
		return "", resp.Usage, &ModelCallError{Err: errors.New("empty completion")}
	}
	return resp.Text, resp.Usage, nil
}

func formatInt(v *int) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%d", *v)
}

func formatInt64(v *int64) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%d", *v)
}

func formatUSD(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("$%.2f", *v)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
