package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/LJTian/TrendScout/internal/collector"
	"github.com/LJTian/TrendScout/internal/config"
	"github.com/LJTian/TrendScout/internal/notes"
	"github.com/LJTian/TrendScout/internal/processor"
	"github.com/LJTian/TrendScout/internal/scout"
)

// version is set at build time via ldflags.
var version = "dev"

// 仅执行一轮扫描的命令行入口：周期执行交给外部的 cron / systemd timer
var rootCmd = &cobra.Command{
	Use:   "trend-scout",
	Short: "Turn trending Hacker News stories into idea notes",
	Long: `trend-scout reads the Hacker News top stories, keeps the ones whose title
mentions a configured keyword and writes one markdown note per story
(Idea-<id>.md) into the ideas folder. Existing notes are overwritten.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		fetcher := collector.NewHackerNewsFetcher(processor.NewKeywordFilter(cfg.Keywords))
		fetcher.BaseURL = cfg.HNBaseURL
		fetcher.Client = &http.Client{Timeout: cfg.RequestTimeout}
		fetcher.Concurrency = cfg.Concurrency

		r := scout.New(fetcher, notes.NewWriter(cfg.OutputDir), cfg.Limit)
		r.SetOutput(cmd.OutOrStdout())

		_, err = r.RunOnce(cmd.Context())
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of trend-scout",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "trend-scout %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./trend-scout.yaml if present)")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Printf("trend-scout failed: %v", err)
		stop()
		os.Exit(1)
	}
}
