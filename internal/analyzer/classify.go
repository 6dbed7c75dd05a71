package analyzer

import (
	"sort"
	"strings"

	"github.com/yarberjoseph/seo-analyst-agent/internal/model"
	"github.com/yarberjoseph/seo-analyst-agent/pkg/dataforseo"
)

// classifySERP splits live SERP entries into the self position and the
// competitor list. Non-organic entries (ads, rich snippets) are discarded
// before comparison. Self matching is case-insensitive substring containment
// of selfDomain within the entry's domain. When the self domain is absent the
// position carries the NotRanked sentinel and the URL stays empty.
func classifySERP(items []dataforseo.SERPItem, selfDomain string) (int, string, []model.Competitor) {
	selfLower := strings.ToLower(selfDomain)

	position := model.NotRanked
	url := ""
	var competitors []model.Competitor

	for _, item := range items {
		if item.Type != "organic" {
			continue
		}

		if strings.Contains(strings.ToLower(item.Domain), selfLower) {
			position = item.RankAbsolute
			url = item.URL
			continue
		}

		competitors = append(competitors, model.Competitor{
			Position:    item.RankAbsolute,
			Domain:      item.Domain,
			URL:         item.URL,
			Title:       item.Title,
			Description: item.Description,
		})
	}

	sort.Slice(competitors, func(i, j int) bool {
		return competitors[i].Position < competitors[j].Position
	})

	return position, url, competitors
}
