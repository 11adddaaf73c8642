// Package cmd - influroi CLI commands
package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/wonny/influroi/internal/app"
	"github.com/wonny/influroi/internal/pkg/config"
	"github.com/wonny/influroi/internal/pkg/logger"
)

const version = "1.0.0"

var (
	envFile  string
	verbose  bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "influroi",
	Short: "InfluROI - influencer ROI scoring backend",
	Long: `InfluROI - influencer ROI scoring backend

Commands:
    serve                 - HTTP API 서버 (PORT, 기본 8000)
    score <project-id>    - 프로젝트 배치 채점 (동기 실행)
    rank  <project-id>    - 코호트 순위 출력 (--policy curve|percentile|absolute)
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute 루트 커맨드 실행
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", ".env file (default ./.env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(rankCmd)
}

// initConfig --env 로 지정한 파일을 먼저 로드 (config.Load 는 ./.env 를 추가로 읽는다)
func initConfig() error {
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("load env file %s: %w", envFile, err)
	}
	if verbose {
		fmt.Println("Loaded", envFile)
	}
	return nil
}

// bootstrap 설정 → 로거 → App
func bootstrap(ctx context.Context, service string) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if err := logger.Init(logger.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		FileEnabled:    cfg.Logging.FileEnabled,
		FilePath:       cfg.Logging.FilePath,
		RotationSize:   cfg.Logging.RotationSize,
		RetentionDays:  cfg.Logging.RetentionDays,
		ServiceName:    service,
		ServiceVersion: version,
	}); err != nil {
		return nil, err
	}

	return app.New(ctx, cfg)
}
