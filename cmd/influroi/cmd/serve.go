package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "HTTP API 서버 실행",
	Long:  `API 서버를 실행합니다. Ctrl+C 로 종료하면 진행 중인 배치 채점이 끝날 때까지 기다립니다.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := bootstrap(ctx, "influroi-api")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Serve(ctx, version)
	},
}
