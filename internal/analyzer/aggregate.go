package analyzer

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yarberjoseph/seo-analyst-agent/internal/model"
	"github.com/yarberjoseph/seo-analyst-agent/pkg/dataforseo"
)

// stagePolicy decides what a stage failure does to the run.
type stagePolicy int

const (
	// policyAbort ends the run; nothing downstream can be computed.
	policyAbort stagePolicy = iota
	// policyDegrade swallows the failure into absent/empty data.
	policyDegrade
)

// stage is one step of the aggregation sequence.
type stage struct {
	name    string
	percent int
	policy  stagePolicy
	run     func(ctx context.Context) error
}

// RunStats counts provider calls made during aggregation, for cost
// attribution.
type RunStats struct {
	SERPCalls      int
	BacklinksCalls int
	KeywordCalls   int
}

// Aggregate performs the ordered provider lookups for one keyword and builds
// the unified landscape record. Only the SERP stage aborts on failure; every
// later stage degrades to absent or empty data.
func (a *Analyzer) Aggregate(ctx context.Context, keyword, selfDomain string, location model.Location, progress ProgressFunc) (*model.Landscape, *RunStats, error) {
	report := func(name string, pct int) {
		if progress != nil {
			progress(name, pct)
		}
	}

	landscape := &model.Landscape{
		Keyword:    keyword,
		SelfDomain: selfDomain,
		Depth:      a.cfg.SERP.Depth,
	}
	stats := &RunStats{}
	log := zap.L().With(zap.String("keyword", keyword), zap.String("domain", selfDomain))

	var items []dataforseo.SERPItem

	stages := []stage{
		{
			name:    "Fetching SERP rankings",
			percent: 20,
			policy:  policyAbort,
			run: func(ctx context.Context) error {
				stats.SERPCalls++
				fetched, err := a.data.SERPLive(ctx, dataforseo.SERPRequest{
					Keyword:      keyword,
					LocationName: string(location),
					LanguageName: a.cfg.SERP.Language,
					Device:       a.cfg.SERP.Device,
					Depth:        a.cfg.SERP.Depth,
				})
				if err != nil {
					return err
				}
				items = fetched
				return nil
			},
		},
		{
			name:    "Classifying results",
			percent: 40,
			policy:  policyAbort, // pure computation, cannot fail
			run: func(context.Context) error {
				position, url, competitors := classifySERP(items, selfDomain)
				landscape.SelfPosition = position
				landscape.SelfURL = url
				landscape.Competitors = competitors
				return nil
			},
		},
		{
			name:    "Analyzing keyword difficulty",
			percent: 60,
			policy:  policyDegrade,
			run: func(ctx context.Context) error {
				stats.KeywordCalls++
				metrics, err := a.fetchKeywordMetrics(ctx, keyword)
				if err != nil {
					return err
				}
				landscape.Metrics = metrics
				return nil
			},
		},
		{
			name:    fmt.Sprintf("Analyzing backlinks for %s", selfDomain),
			percent: 70,
			policy:  policyDegrade,
			run: func(ctx context.Context) error {
				stats.BacklinksCalls++
				profile, err := a.fetchBacklinks(ctx, selfDomain)
				if err != nil {
					// Zero values, Fetched=false: kept distinguishable from a
					// genuine zero-backlink domain only by the flag.
					return err
				}
				landscape.SelfBacklinks = profile
				return nil
			},
		},
		{
			name:    "Analyzing competitor backlinks",
			percent: 70,
			policy:  policyDegrade,
			run: func(ctx context.Context) error {
				a.enrichCompetitors(ctx, landscape.Competitors, stats, report)
				return nil
			},
		},
	}

	for _, s := range stages {
		report(s.name, s.percent)
		if err := s.run(ctx); err != nil {
			if s.policy == policyAbort {
				return nil, nil, errRankingDataUnavailable(err)
			}
			log.Warn("analysis: stage degraded",
				zap.String("stage", s.name),
				zap.Error(err),
			)
		}
	}

	// At most 5 competitors are retained for display regardless of how many
	// the SERP returned.
	if len(landscape.Competitors) > maxCompetitors {
		landscape.Competitors = landscape.Competitors[:maxCompetitors]
	}

	report("Data collection complete", 100)
	return landscape, stats, nil
}

const maxCompetitors = 5

func (a *Analyzer) fetchKeywordMetrics(ctx context.Context, keyword string) (model.KeywordMetrics, error) {
	items, err := a.data.BulkKeywordDifficulty(ctx, []string{keyword}, a.cfg.Labs.LocationCode, a.cfg.Labs.LanguageCode)
	if err != nil {
		return model.KeywordMetrics{}, err
	}
	if len(items) == 0 {
		// Empty result set: fields stay absent, never zero.
		return model.KeywordMetrics{}, nil
	}

	item := items[0]
	metrics := model.KeywordMetrics{Difficulty: item.Difficulty}
	if item.KeywordInfo != nil {
		metrics.SearchVolume = item.KeywordInfo.SearchVolume
		metrics.CPC = item.KeywordInfo.CPC
	}
	return metrics, nil
}

func (a *Analyzer) fetchBacklinks(ctx context.Context, target string) (model.BacklinkProfile, error) {
	summary, err := a.data.BacklinksSummary(ctx, target)
	if err != nil {
		return model.BacklinkProfile{}, err
	}
	if summary == nil {
		return model.BacklinkProfile{}, nil
	}
	return model.BacklinkProfile{
		Backlinks:        summary.Backlinks,
		ReferringDomains: summary.ReferringDomains,
		Rank:             summary.Rank,
		Fetched:          true,
	}, nil
}

// enrichCompetitors fetches backlink profiles for the first competitors by
// rank. Fetches run concurrently but the shared limiter preserves the
// provider's minimum request spacing, and each competitor's failure is
// isolated: it leaves that entry's profile empty without affecting the rest.
func (a *Analyzer) enrichCompetitors(ctx context.Context, competitors []model.Competitor, stats *RunStats, report ProgressFunc) {
	limit := a.cfg.Backlinks.MaxEnriched
	if limit > len(competitors) {
		limit = len(competitors)
	}
	if limit <= 0 {
		return
	}

	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	for i := range competitors[:limit] {
		g.Go(func() error {
			if err := a.limiter.Wait(gctx); err != nil {
				return nil
			}

			mu.Lock()
			stats.BacklinksCalls++
			mu.Unlock()

			profile, err := a.fetchBacklinks(gctx, competitors[i].Domain)
			if err != nil {
				zap.L().Warn("analysis: competitor backlink fetch failed",
					zap.String("competitor", competitors[i].Domain),
					zap.Error(err),
				)
			}

			// The bar advances per competitor attempted, success or not.
			mu.Lock()
			if err == nil {
				competitors[i].Backlinks = &profile
			}
			done++
			if report != nil {
				report("Analyzing competitor backlinks", 70+done*10)
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
}
