package access

import (
	"log/slog"

	httpadapter "caixa/contexts/identity-access/access-service/adapters/http"
	"caixa/contexts/identity-access/access-service/adapters/memory"
	"caixa/contexts/identity-access/access-service/application"
	"caixa/contexts/identity-access/access-service/ports"
)

// Module is the access-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Guard   application.AuthGuard
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Registry      application.AccessRegistry
	Identities    ports.IdentityStore
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	SigningSecret string
	Logger        *slog.Logger
}

// NewModule wires the login/provisioning use-cases and transport handler
// using explicit ports.
func NewModule(deps Dependencies) Module {
	secret := []byte(deps.SigningSecret)
	service := application.Service{
		Registry:    deps.Registry,
		Identities:  deps.Identities,
		Issuer:      application.TokenIssuer{SigningSecret: secret},
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Guard: application.AuthGuard{SigningSecret: secret},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters.
func NewInMemoryModule(registry application.AccessRegistry, signingSecret string, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Registry:      registry,
		Identities:    store,
		Clock:         store,
		IDGenerator:   store,
		SigningSecret: signingSecret,
		Logger:        logger,
	})
	module.Store = store
	return module
}
