package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	ledger "caixa/contexts/finance-core/ledger-service"
	ledgerpostgres "caixa/contexts/finance-core/ledger-service/adapters/postgres"
	access "caixa/contexts/identity-access/access-service"
	accesspostgres "caixa/contexts/identity-access/access-service/adapters/postgres"
	accessapp "caixa/contexts/identity-access/access-service/application"
	accessentities "caixa/contexts/identity-access/access-service/domain/entities"
	"caixa/internal/platform/config"
	"caixa/internal/platform/db"
	"caixa/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.TokenSigningSecret) == "" {
		return nil, errors.New("TOKEN_SIGNING_SECRET is required")
	}

	registry, err := accessapp.NewAccessRegistry(accessDescriptors(cfg))
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		// In-memory wiring keeps the binary runnable without infrastructure;
		// identities and transactions vanish on restart.
		logger.Warn("POSTGRES_DSN unset, using in-memory stores",
			"event", "bootstrap_memory_fallback",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		accessModule := access.NewInMemoryModule(registry, cfg.TokenSigningSecret, logger)
		ledgerModule := ledger.NewInMemoryModule(accessModule.Store, logger)
		server := httpserver.New(accessModule, ledgerModule, logger, normalizeAddr(cfg.HTTPPort))
		return &APIApp{
			server: server,
			logger: logger,
		}, nil
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	accessRepo := accesspostgres.NewRepository(pg.DB, logger)
	accessModule := access.NewModule(access.Dependencies{
		Registry:      registry,
		Identities:    accessRepo,
		Clock:         accesspostgres.SystemClock{},
		IDGenerator:   accesspostgres.UUIDGenerator{},
		SigningSecret: cfg.TokenSigningSecret,
		Logger:        logger,
	})

	ledgerRepo := ledgerpostgres.NewRepository(pg.DB, logger)
	ledgerModule := ledger.NewModule(ledger.Dependencies{
		Transactions: ledgerRepo,
		Owners:       accessRepo,
		Clock:        ledgerpostgres.SystemClock{},
		IDGenerator:  ledgerpostgres.UUIDGenerator{},
		Logger:       logger,
	})

	server := httpserver.New(accessModule, ledgerModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func accessDescriptors(cfg config.Config) []accessapp.AccessDescriptor {
	descriptors := make([]accessapp.AccessDescriptor, 0, len(cfg.Units)+1)
	if cfg.MasterAccessCode != "" {
		descriptors = append(descriptors, accessapp.AccessDescriptor{
			Code:        cfg.MasterAccessCode,
			DisplayName: cfg.MasterDisplayName,
			Role:        accessentities.RoleMaster,
		})
	}
	for _, unit := range cfg.Units {
		descriptors = append(descriptors, accessapp.AccessDescriptor{
			Code:        unit.Code,
			DisplayName: unit.DisplayName,
			Role:        accessentities.RoleUnit,
		})
	}
	return descriptors
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
