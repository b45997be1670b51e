// @title         contactguard API
// @version       0.1.0
// @description   Contact form intake with deterministic abuse classification

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"contactguard/internal/core/version"
	"contactguard/internal/platform/config"
	"contactguard/internal/platform/logger"
	phttp "contactguard/internal/platform/net/http"

	"contactguard/internal/services/api"
)

const serviceName = "contactguard-api"

func main() {
	// service-scoped config for HTTP etc (CORE_API_*), modules read their own prefixes from root
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	l := logger.Named("main")
	l.Info().Str("build", version.Info(serviceName).String()).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// http server (reads CORE_API_ADDR and timeouts)
	srv := phttp.NewServer(apiCfg)

	err := api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Root:           root,
			Logger:         logger.Get(),
			ServiceName:    serviceName,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)
	if err != nil {
		l.Fatal().Err(err).Msg("api mount failed")
	}

	if err := srv.Run(ctx); err != nil {
		l.Fatal().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("shutdown complete")
}
