package analyzer

import (
	"fmt"
	"strings"

	"github.com/yarberjoseph/seo-analyst-agent/internal/model"
)

const reportRule = "================================================================================"

// FormatReport renders a completed analysis as the downloadable plain-text
// report: header, current metrics, competitor table, strategy text.
func FormatReport(result model.AnalysisResult) string {
	var b strings.Builder
	l := result.Landscape

	b.WriteString("SEO COMPETITIVE ANALYSIS REPORT\n")
	b.WriteString(reportRule + "\n")
	fmt.Fprintf(&b, "Keyword: %s\n", result.Keyword)
	fmt.Fprintf(&b, "Domain: %s\n", result.Domain)
	fmt.Fprintf(&b, "Date: %s\n", result.CreatedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(reportRule + "\n\n")

	b.WriteString("CURRENT METRICS:\n")
	fmt.Fprintf(&b, "- Position: %s\n", l.PositionLabel())
	fmt.Fprintf(&b, "- Search Volume: %s\n", formatInt64(l.Metrics.SearchVolume))
	fmt.Fprintf(&b, "- Keyword Difficulty: %s\n", formatInt(l.Metrics.Difficulty))
	fmt.Fprintf(&b, "- Total Backlinks: %d\n", l.SelfBacklinks.Backlinks)
	b.WriteString("\n")

	if len(l.Competitors) > 0 {
		b.WriteString("TOP COMPETITORS:\n")
		for _, comp := range l.Competitors {
			fmt.Fprintf(&b, "#%d  %s", comp.Position, comp.Domain)
			if comp.Backlinks != nil {
				fmt.Fprintf(&b, "  (backlinks: %d, referring domains: %d, rank: %d)",
					comp.Backlinks.Backlinks, comp.Backlinks.ReferringDomains, comp.Backlinks.Rank)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(reportRule + "\n")
	b.WriteString("STRATEGIC ANALYSIS\n")
	b.WriteString(reportRule + "\n\n")
	b.WriteString(result.Strategy)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Estimated API cost: $%.4f\n", result.CostUSD)

	return b.String()
}

// ReportFilename builds the suggested download filename for a result.
func ReportFilename(result model.AnalysisResult) string {
	keyword := strings.ReplaceAll(result.Keyword, " ", "_")
	return fmt.Sprintf("seo_analysis_%s_%s.txt", keyword, result.CreatedAt.Format("20060102"))
}
