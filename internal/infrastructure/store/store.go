// Package store opens the configured persistence backends and exposes them
// behind the repository ports.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/marketplace-system/internal/core/ports"
	"github.com/99minutos/marketplace-system/internal/infrastructure/config"
	"github.com/99minutos/marketplace-system/internal/infrastructure/db/mongo"
	"github.com/99minutos/marketplace-system/internal/infrastructure/db/postgres"
	"github.com/99minutos/marketplace-system/internal/infrastructure/db/redis"
	"github.com/99minutos/marketplace-system/internal/infrastructure/http/handlers"
)

// Store bundles the repositories selected by configuration.
type Store struct {
	Accounts ports.AccountRepository
	Products ports.ProductRepository
	Tokens   ports.TokenRepository

	// Probes are keyed by dependency name for the readiness endpoint.
	Probes map[string]handlers.Probe

	closers []func(context.Context) error
}

// Open connects to the configured store and token backend.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Store, error) {
	s := &Store{Probes: map[string]handlers.Probe{}}

	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  cfg.StoreTimeout,
		})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client.Disconnect)
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		s.Accounts = mongo.NewAccountRepository(db)
		s.Products = mongo.NewProductRepository(db)
		s.Tokens = mongo.NewTokenRepository(db)
		s.Probes["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	case config.StorePostgres:
		db, err := postgres.Open(ctx, postgres.Config{DSN: cfg.Postgres.DSN, Timeout: cfg.StoreTimeout})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error { return db.Close() })
		s.Accounts = postgres.NewAccountRepository(db)
		s.Products = postgres.NewProductRepository(db)
		s.Tokens = postgres.NewTokenRepository(db)
		s.Probes["postgres"] = db.PingContext
		log.Info().Msg("connected to postgres")

	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.StoreDriver)
	}

	if cfg.TokenBackend == config.TokensInRedis {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error { return client.Close() })
		s.Tokens = redis.NewTokenRepository(client)
		s.Probes["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("auth tokens stored in redis")
	}

	return s, nil
}

// Close releases every backend in reverse order of opening.
func (s *Store) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
