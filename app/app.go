// Package app wires the whole client core into one explicit context
// object. The rendering surface receives a single *App at startup and
// drives everything through it; its lifetime is the process lifetime.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"fanpass/api"
	"fanpass/checkout"
	"fanpass/config"
	"fanpass/gateway"
	"fanpass/persistence"
	"fanpass/store"
)

type App struct {
	Config   config.Config
	Session  *store.SessionStore
	Catalog  *store.CatalogStore
	Checkout *checkout.Coordinator

	log *slog.Logger
}

func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	gw, err := gateway.New(cfg.BaseURL, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway: %w", err)
	}

	receipts, err := buildReceipts(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	session := store.NewSessionStore(api.NewAuthClient(gw), log)
	catalog := store.NewCatalogStore(api.NewEventsClient(gw), log)
	coordinator := checkout.New(api.NewBookingsClient(gw), session, receipts, cfg.Currency, log)

	return &App{
		Config:   cfg,
		Session:  session,
		Catalog:  catalog,
		Checkout: coordinator,
		log:      log,
	}, nil
}

// Start runs the one startup probe that decides authenticated vs anonymous.
func (a *App) Start(ctx context.Context) {
	a.Session.Init(ctx)
}

// buildReceipts prefers Postgres when DATABASE_URL is set and falls back
// to the local receipts file otherwise.
func buildReceipts(ctx context.Context, cfg config.Config, log *slog.Logger) (persistence.Persistence, error) {
	if cfg.DatabaseURL == "" {
		return persistence.NewFilePersistence(cfg.ReceiptsFile), nil
	}
	pool, err := persistence.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect receipts database: %w", err)
	}
	if err := persistence.InitPostgresSchema(ctx, pool); err != nil {
		return nil, err
	}
	log.Info("receipts stored in postgres")
	return persistence.NewPostgresPersistence(pool), nil
}
