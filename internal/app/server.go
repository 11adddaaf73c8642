package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wonny/influroi/internal/api"
)

// Serve HTTP 서버를 띄우고 ctx 가 끝나면 정리한다.
// 종료 순서: 서버 Shutdown → 배치 채점 대기 (ShutdownTimeout 한도)
func (a *App) Serve(ctx context.Context, version string) error {
	cfg := a.Config
	router := api.NewRouter(cfg, a.Handlers(version))

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", server.Addr).Msg("🎯 API Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("🛑 Shutdown signal received, stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	// 진행 중인 배치 채점은 취소 경로가 없으므로 끝날 때까지 기다린다
	if err := a.Service.Runner().Wait(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Background scoring still running at shutdown")
	}

	return nil
}
