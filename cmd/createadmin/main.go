// Command createadmin creates a staff superuser in the configured store.
// Administrators cannot be registered over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/99minutos/marketplace-system/internal/core/ports"
	"github.com/99minutos/marketplace-system/internal/core/service"
	"github.com/99minutos/marketplace-system/internal/core/validation"
	"github.com/99minutos/marketplace-system/internal/infrastructure/config"
	"github.com/99minutos/marketplace-system/internal/infrastructure/crypto"
	"github.com/99minutos/marketplace-system/internal/infrastructure/store"
	"github.com/99minutos/marketplace-system/pkg/logger"
)

func main() {
	var email, password, firstName, lastName string
	flag.StringVar(&email, "email", "", "admin email (required)")
	flag.StringVar(&password, "password", "", "admin password (required)")
	flag.StringVar(&firstName, "first-name", "Admin", "first name")
	flag.StringVar(&lastName, "last-name", "User", "last name")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "createadmin"})

	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer func() { _ = st.Close(context.Background()) }()

	accounts := service.NewAccountService(st.Accounts, crypto.NewBcryptHasher(cfg.BcryptCost), validation.New(), log)
	admin, err := accounts.CreateAdmin(ctx, ports.RegisterAccountInput{
		Email:     &email,
		Password:  &password,
		FirstName: &firstName,
		LastName:  &lastName,
	})
	if err != nil {
		log.Error().Err(err).Msg("create admin")
		_ = st.Close(context.Background())
		os.Exit(1)
	}

	log.Info().Str("account_id", admin.ID).Str("email", admin.Email).Msg("admin created")
}
