package analyzer

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yarberjoseph/seo-analyst-agent/internal/model"
	"github.com/yarberjoseph/seo-analyst-agent/pkg/anthropic"
)

func validRequest() model.AnalysisRequest {
	return model.AnalysisRequest{
		Domain:  "mycrm.com",
		Keyword: "best crm software",
	}
}

func TestRun(t *testing.T) {
	data := &mockDataClient{}
	data.On("SERPLive", mock.Anything, mock.Anything).Return(organicSERP("mycrm.com"), nil)
	data.On("BulkKeywordDifficulty", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(kwItems(), nil)
	data.On("BacklinksSummary", mock.Anything, mock.Anything).Return(summaryFor("any"), nil)

	ai := &mockAIClient{}
	ai.On("CreateMessage", mock.Anything, mock.Anything).Return(&anthropic.MessageResponse{
		Text:  "strategy text",
		Usage: anthropic.TokenUsage{InputTokens: 1000, OutputTokens: 2000},
	}, nil)

	a := New(testConfig(), data, ai)
	result, err := a.Run(context.Background(), validRequest(), nil)
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "best crm software", result.Keyword)
	assert.Equal(t, "mycrm.com", result.Domain)
	assert.Equal(t, model.Timeline3Months, result.Timeline, "timeline defaults when omitted")
	assert.Equal(t, "strategy text", result.Strategy)
	assert.Equal(t, 4, result.Landscape.SelfPosition)
	assert.False(t, result.CreatedAt.IsZero())

	// 1000/1M * $3 + 2000/1M * $15 + 1 SERP + 4 backlinks + 1 keyword call.
	assert.InDelta(t, 0.003+0.03+0.002+4*0.00003+0.0001, result.CostUSD, 1e-9)
}

func TestRunInvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		req  model.AnalysisRequest
		want string
	}{
		{name: "missing_domain", req: model.AnalysisRequest{Keyword: "kw"}, want: "domain is required"},
		{name: "missing_keyword", req: model.AnalysisRequest{Domain: "d.com"}, want: "keyword is required"},
		{name: "bad_location", req: model.AnalysisRequest{Domain: "d.com", Keyword: "kw", Location: "Mars"}, want: "unsupported location"},
		{name: "bad_timeline", req: model.AnalysisRequest{Domain: "d.com", Keyword: "kw", Timeline: "2 weeks"}, want: "unsupported timeline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := &mockDataClient{}
			a := New(testConfig(), data, &mockAIClient{})
			_, err := a.Run(context.Background(), tt.req, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			data.AssertNotCalled(t, "SERPLive", mock.Anything, mock.Anything)
		})
	}
}

func TestRunMissingCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.Anthropic.Key = ""

	data := &mockDataClient{}
	a := New(cfg, data, &mockAIClient{})
	_, err := a.Run(context.Background(), validRequest(), nil)

	// The check happens before any network call.
	require.ErrorIs(t, err, model.ErrMissingCredentials)
	data.AssertNotCalled(t, "SERPLive", mock.Anything, mock.Anything)
}

func TestRunModelFailureDiscardsLandscape(t *testing.T) {
	data := &mockDataClient{}
	data.On("SERPLive", mock.Anything, mock.Anything).Return(organicSERP("mycrm.com"), nil)
	data.On("BulkKeywordDifficulty", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(kwItems(), nil)
	data.On("BacklinksSummary", mock.Anything, mock.Anything).Return(summaryFor("any"), nil)

	ai := &mockAIClient{}
	ai.On("CreateMessage", mock.Anything, mock.Anything).Return(nil, eris.New("model unavailable"))

	a := New(testConfig(), data, ai)
	result, err := a.Run(context.Background(), validRequest(), nil)

	require.Error(t, err)
	assert.True(t, IsModelCallFailure(err))
	assert.Nil(t, result)
}

func TestRunSERPFailure(t *testing.T) {
	data := &mockDataClient{}
	data.On("SERPLive", mock.Anything, mock.Anything).Return(nil, eris.New("provider down"))

	ai := &mockAIClient{}
	a := New(testConfig(), data, ai)
	result, err := a.Run(context.Background(), validRequest(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ranking data unavailable")
	assert.Nil(t, result)
	ai.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}
