package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yarberjoseph/seo-analyst-agent/internal/analyzer"
	"github.com/yarberjoseph/seo-analyst-agent/internal/model"
	anthropicpkg "github.com/yarberjoseph/seo-analyst-agent/pkg/anthropic"
	"github.com/yarberjoseph/seo-analyst-agent/pkg/dataforseo"
)

var (
	analyzeDomain   string
	analyzeKeyword  string
	analyzeLocation string
	analyzeTimeline string
	analyzeOut      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a competitive analysis for one keyword",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a := initAnalyzer()

		req := model.AnalysisRequest{
			Domain:   analyzeDomain,
			Keyword:  analyzeKeyword,
			Location: model.Location(analyzeLocation),
			Timeline: model.Timeline(analyzeTimeline),
		}

		progress := func(stage string, percent int) {
			fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", percent, stage)
		}

		result, err := a.Run(ctx, req, progress)
		if err != nil {
			return eris.Wrap(err, "analyze")
		}

		report := analyzer.FormatReport(*result)
		if analyzeOut != "" {
			if err := os.WriteFile(analyzeOut, []byte(report), 0o644); err != nil {
				return eris.Wrap(err, "analyze: write report")
			}
			zap.L().Info("report written", zap.String("path", analyzeOut))
			return nil
		}

		fmt.Fprintln(os.Stdout, report)
		return nil
	},
}

// initAnalyzer builds the analyzer from the loaded configuration.
func initAnalyzer() *analyzer.Analyzer {
	dataClient := dataforseo.NewClient(
		cfg.DataForSEO.Login,
		cfg.DataForSEO.Password,
		dataforseo.WithBaseURL(cfg.DataForSEO.BaseURL),
	)
	aiClient := anthropicpkg.NewClient(cfg.Anthropic.Key)
	return analyzer.New(cfg, dataClient, aiClient)
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeDomain, "domain", "", "your domain (required)")
	analyzeCmd.Flags().StringVar(&analyzeKeyword, "keyword", "", "target keyword (required)")
	analyzeCmd.Flags().StringVar(&analyzeLocation, "location", string(model.LocationUnitedStates), "SERP region (United States, United Kingdom, Canada, Australia)")
	analyzeCmd.Flags().StringVar(&analyzeTimeline, "timeline", string(model.Timeline3Months), "strategy horizon (3 months, 6 months, 9 months, 12 months)")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "write the report to this file instead of stdout")
	_ = analyzeCmd.MarkFlagRequired("domain")
	_ = analyzeCmd.MarkFlagRequired("keyword")
	rootCmd.AddCommand(analyzeCmd)
}
