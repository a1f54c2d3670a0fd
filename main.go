package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ninja0404/pump-signal/internal/app"
	"github.com/ninja0404/pump-signal/internal/report"
	"github.com/ninja0404/pump-signal/pkg/utils"
)

const defaultConfigPath = "./config/config.yaml"

// Command line flags
var (
	configPath string
	envPrefix  string
	tokenLimit int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "pump-signal",
		Short:         "DEX new pair watcher with pump/rug alerts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			utils.SetEnvPrefix(envPrefix)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Config file path (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&envPrefix, "env-prefix", "", "Prefix for CONFIG_TYPE/CONFIG_FILE_PATH environment variables")

	rootCmd.AddCommand(buildRunCmd(), buildStatsCmd(), buildTokensCmd(), buildConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "应用启动失败: %v\n", err)
		os.Exit(1)
	}
}

func buildRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start polling until SIGINT/SIGTERM",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.New().Start(cmd.Context(), configPath)
		},
	}
}

func buildStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show tracked token and event counts",
		RunE: withReports(func(ctx context.Context, cmd *cobra.Command, svc *report.Service) error {
			stats, err := svc.Stats(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.FormatStats(stats))
			return nil
		}),
	}
}

func buildTokensCmd() *cobra.Command {
	tokensCmd := &cobra.Command{
		Use:   "tokens",
		Short: "List the most recently tracked pairs",
		RunE: withReports(func(ctx context.Context, cmd *cobra.Command, svc *report.Service) error {
			tokens, err := svc.RecentTokens(ctx, tokenLimit)
			if err != nil {
				return err
			}
			report.WriteTokensTable(cmd.OutOrStdout(), tokens)
			return nil
		}),
	}
	tokensCmd.Flags().IntVarP(&tokenLimit, "limit", "n", report.ChatTokenLimit, "Number of pairs to show")
	return tokensCmd
}

func buildConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective filter configuration",
		RunE: withReports(func(_ context.Context, cmd *cobra.Command, svc *report.Service) error {
			report.WriteConfigTable(cmd.OutOrStdout(), svc.ConfigSummary())
			return nil
		}),
	}
}

// withReports 只读初始化，命令结束后释放连接
func withReports(fn func(ctx context.Context, cmd *cobra.Command, svc *report.Service) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		application := app.New()
		if err := application.InitializeReadOnly(configPath); err != nil {
			application.Close()
			return err
		}
		defer application.Close()
		return fn(cmd.Context(), cmd, application.Reports())
	}
}
