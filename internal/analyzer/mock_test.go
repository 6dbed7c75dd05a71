package analyzer

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yarberjoseph/seo-analyst-agent/internal/config"
	"github.com/yarberjoseph/seo-analyst-agent/internal/cost"
	"github.com/yarberjoseph/seo-analyst-agent/pkg/anthropic"
	"github.com/yarberjoseph/seo-analyst-agent/pkg/dataforseo"
)

// --- DataForSEO mock ---

type mockDataClient struct {
	mock.Mock
}

func (m *mockDataClient) SERPLive(ctx context.Context, req dataforseo.SERPRequest) ([]dataforseo.SERPItem, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dataforseo.SERPItem), args.Error(1)
}

func (m *mockDataClient) BacklinksSummary(ctx context.Context, target string) (*dataforseo.BacklinksSummary, error) {
	args := m.Called(ctx, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dataforseo.BacklinksSummary), args.Error(1)
}

func (m *mockDataClient) BulkKeywordDifficulty(ctx context.Context, keywords []string, locationCode int, languageCode string) ([]dataforseo.KeywordDifficultyItem, error) {
	args := m.Called(ctx, keywords, locationCode, languageCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dataforseo.KeywordDifficultyItem), args.Error(1)
}

// --- Anthropic mock ---

type mockAIClient struct {
	mock.Mock
}

func (m *mockAIClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

// testConfig returns a config with credentials set and a short backlink
// spacing so tests stay fast.
func testConfig() *config.Config {
	return &config.Config{
		DataForSEO: config.DataForSEOConfig{Login: "login", Password: "secret"},
		Anthropic:  config.AnthropicConfig{Key: "key", Model: "claude-sonnet-4-5-20250929", MaxTokens: 4000},
		SERP:       config.SERPConfig{Depth: 10, Device: "desktop", Language: "English"},
		Labs:       config.LabsConfig{LocationCode: 2840, LanguageCode: "en"},
		Backlinks:  config.BacklinksConfig{MaxEnriched: 3, MinSpacingMSecs: 1},
		Pricing: cost.Rates{
			Anthropic: map[string]cost.ModelRate{
				"claude-sonnet-4-5-20250929": {Input: 3.00, Output: 15.00},
			},
			DataForSEO: cost.DataForSEORate{PerSERPCall: 0.002, PerBacklinksCall: 0.00003, PerKeywordCall: 0.0001},
		},
	}
}

// organicSERP builds a ten-entry organic SERP with selfDomain at rank 4 and a
// paid entry mixed in, mirroring a typical live response.
func organicSERP(selfDomain string) []dataforseo.SERPItem {
	items := []dataforseo.SERPItem{
		{Type: "paid", RankAbsolute: 0, Domain: "ads.example", URL: "https://ads.example/"},
	}
	domains := []string{
		"bigcrm.com", "crmreviews.io", "topsoftware.net", selfDomain, "salestools.org",
		"pipelinehq.com", "leadzilla.io", "crmcompare.com", "bizapps.co", "dealflow.dev",
	}
	for i, d := range domains {
		items = append(items, dataforseo.SERPItem{
			Type:         "organic",
			RankAbsolute: i + 1,
			Domain:       d,
			URL:          "https://" + d + "/page",
			Title:        d + " title",
			Description:  d + " description",
		})
	}
	return items
}
