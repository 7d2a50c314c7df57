// @title                       Marketplace API
// @version                     1.0
// @description                 Accounts, token authentication and seller product listings.
// @BasePath                    /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        Authorization
// @description                 Use "Token <key>".
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/99minutos/marketplace-system/internal/api"
	"github.com/99minutos/marketplace-system/internal/core/service"
	"github.com/99minutos/marketplace-system/internal/core/validation"
	"github.com/99minutos/marketplace-system/internal/infrastructure/config"
	"github.com/99minutos/marketplace-system/internal/infrastructure/crypto"
	"github.com/99minutos/marketplace-system/internal/infrastructure/store"
	"github.com/99minutos/marketplace-system/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "marketplace",
	})

	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("open store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("close store")
		}
	}()

	hasher := crypto.NewBcryptHasher(cfg.BcryptCost)
	v := validation.New()

	tokens := service.NewTokenService(st.Tokens, st.Accounts, log)
	e := api.NewRouter(api.Deps{
		Logger:   log,
		Resolver: tokens,
		Auth:     service.NewAuthService(st.Accounts, hasher, tokens, v, log),
		Accounts: service.NewAccountService(st.Accounts, hasher, v, log),
		Products: service.NewProductService(st.Products, st.Accounts, v, log),
		Probes:   st.Probes,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Str("tokens", cfg.TokenBackend).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
}
