// Command server runs the restaurant ordering API.
//
//	@title						Restaurant Ordering API
//	@version					1.0
//	@description				Menu, cart, order workflow and dashboards for a single restaurant.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token from POST /v1/sessions, sent as "Bearer <token>".
package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/dinedesk/restaurant-system/docs"
	"github.com/dinedesk/restaurant-system/internal/app"
	"github.com/dinedesk/restaurant-system/internal/infrastructure/http"
	"github.com/dinedesk/restaurant-system/internal/pkg/config"
	"github.com/dinedesk/restaurant-system/pkg/logger"
)

func main() {
	// A .env file is optional; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "restaurant-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.StoreBackend).Msg("startup failed")
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()
	a.Start(ctx)

	srv := http.NewServer(a.Router(prometheus.DefaultRegisterer), cfg.Port, logger.Component("http"))
	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("http server stopped")
	}
}
