// Package analyzer implements the competitive-analysis pipeline: it drives
// the ranking-data provider through the ordered lookups for one keyword,
// builds the unified landscape record, and asks the model for a strategy.
package analyzer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/yarberjoseph/seo-analyst-agent/internal/config"
	"github.com/yarberjoseph/seo-analyst-agent/internal/cost"
	"github.com/yarberjoseph/seo-analyst-agent/internal/model"
	"github.com/yarberjoseph/seo-analyst-agent/pkg/anthropic"
	"github.com/yarberjoseph/seo-analyst-agent/pkg/dataforseo"
)

// ProgressFunc receives incremental progress during a run: the stage label
// and a completion percentage. May be nil.
type ProgressFunc func(stage string, percent int)

// Analyzer orchestrates one analysis run end to end.
type Analyzer struct {
	cfg      *config.Config
	data     dataforseo.Client
	ai       anthropic.Client
	limiter  *rate.Limiter
	costCalc *cost.Calculator
}

// New creates an Analyzer with all dependencies. The shared limiter enforces
// the provider's minimum spacing between backlink calls.
func New(cfg *config.Config, data dataforseo.Client, ai anthropic.Client) *Analyzer {
	spacing := time.Duration(cfg.Backlinks.MinSpacingMSecs) * time.Millisecond
	if spacing <= 0 {
		spacing = 500 * time.Millisecond
	}
	return &Analyzer{
		cfg:      cfg,
		data:     data,
		ai:       ai,
		limiter:  rate.NewLimiter(rate.Every(spacing), 1),
		costCalc: cost.NewCalculator(cfg.Pricing),
	}
}

// Run executes a full analysis: credential check, landscape aggregation, then
// the strategy call. A strategy failure discards the landscape; an incomplete
// result is never returned.
func (a *Analyzer) Run(ctx context.Context, req model.AnalysisRequest, progress ProgressFunc) (*model.AnalysisResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := a.cfg.Credentials().Validate(); err != nil {
		return nil, err
	}

	location := req.Location
	if location == "" {
		location = model.LocationUnitedStates
	}
	timeline := req.Timeline
	if timeline == "" {
		timeline = model.Timeline3Months
	}

	log := zap.L().With(zap.String("keyword", req.Keyword), zap.String("domain", req.Domain))
	log.Info("analysis: starting run")
	start := time.Now()

	landscape, stats, err := a.Aggregate(ctx, req.Keyword, req.Domain, location, progress)
	if err != nil {
		return nil, err
	}

	strategy, usage, err := a.BuildStrategy(ctx, landscape, timeline)
	if err != nil {
		// The landscape is discarded: a result without strategy text is
		// incomplete and must not enter session history.
		return nil, err
	}
	usage.Log(a.cfg.Anthropic.Model, "strategy")

	runCost := a.costCalc.Claude(a.cfg.Anthropic.Model, usage.InputTokens, usage.OutputTokens) +
		a.costCalc.DataForSEO(stats.SERPCalls, stats.BacklinksCalls, stats.KeywordCalls)

	result := &model.AnalysisResult{
		ID:        uuid.New().String(),
		Keyword:   req.Keyword,
		Domain:    req.Domain,
		Timeline:  timeline,
		CreatedAt: time.Now().UTC(),
		Landscape: *landscape,
		Strategy:  strategy,
		CostUSD:   runCost,
	}

	log.Info("analysis: run complete",
		zap.String("run_id", result.ID),
		zap.String("position", landscape.PositionLabel()),
		zap.Int("competitors", len(landscape.Competitors)),
		zap.Duration("elapsed", time.Since(start)),
		zap.Float64("estimated_cost_usd", runCost),
	)

	return result, nil
}

// errRankingDataUnavailable wraps a mandatory SERP-stage failure with the
// user-facing abort reason.
func errRankingDataUnavailable(err error) error {
	return eris.Wrap(err, "analysis: ranking data unavailable")
}
