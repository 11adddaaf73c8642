package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score <project-id>",
	Short: "프로젝트 배치 채점 (동기)",
	Long: `전체 채널 풀을 채점해 결과를 교체 저장합니다.
API 의 백그라운드 실행과 같은 오케스트레이터를 사용하며, 끝나면 랭킹 캐시를 무효화합니다.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := bootstrap(ctx, "influroi-cli")
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.Service.Orchestrator().RunProjectScoring(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("✅ project %s: %d candidates (%d scored, %d fallback) in %s\n",
			report.ProjectID, report.Total, report.Scored, report.Fallbacks, report.Duration)
		return nil
	},
}
