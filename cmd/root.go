package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yarberjoseph/seo-analyst-agent/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "seo-analyst",
	Short: "Competitive SEO ranking analysis",
	Long:  "Fetches SERP, keyword, and backlink data for a keyword, compares your domain against the top competitors, and produces an AI-generated ranking strategy.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
