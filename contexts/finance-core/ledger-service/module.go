package ledger

import (
	"log/slog"

	httpadapter "caixa/contexts/finance-core/ledger-service/adapters/http"
	"caixa/contexts/finance-core/ledger-service/adapters/memory"
	"caixa/contexts/finance-core/ledger-service/application"
	"caixa/contexts/finance-core/ledger-service/ports"
)

// Module is the ledger-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Transactions ports.TransactionStore
	Owners       ports.OwnerDirectory
	Clock        ports.Clock
	IDGenerator  ports.IDGenerator
	Logger       *slog.Logger
}

// NewModule wires the ledger use-cases and transport handler using explicit
// ports.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Transactions: deps.Transactions,
		Owners:       deps.Owners,
		Clock:        deps.Clock,
		IDGenerator:  deps.IDGenerator,
		Logger:       deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with an in-memory
// transaction store. Owner-name resolution still comes from the caller so
// the master view joins against the same identity records as login.
func NewInMemoryModule(owners ports.OwnerDirectory, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Transactions: store,
		Owners:       owners,
		Clock:        store,
		IDGenerator:  store,
		Logger:       logger,
	})
	module.Store = store
	return module
}
