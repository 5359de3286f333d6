package ports

import (
	"context"
	"time"

	"caixa/contexts/finance-core/ledger-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Caller is the verified caller context handed in by the transport layer.
type Caller struct {
	IdentityID string
	Role       entities.Role
}

// NewTransaction carries caller-supplied fields for a ledger entry. A zero
// Date defaults to the current time.
type NewTransaction struct {
	Description string
	Amount      float64
	Kind        entities.Kind
	Category    string
	Date        time.Time
}

// OwnedTransaction annotates a ledger entry with its owner's display name
// for the master consolidated view. OwnerDisplayName is empty on unit-scoped
// listings.
type OwnedTransaction struct {
	entities.Transaction
	OwnerDisplayName string
}

// TransactionStore persists ledger entries. Listings are ordered by date
// descending, insertion sequence descending as the deterministic tie-break.
type TransactionStore interface {
	Insert(ctx context.Context, transaction entities.Transaction) error
	ListAll(ctx context.Context) ([]entities.Transaction, error)
	ListByOwner(ctx context.Context, ownerIdentityID string) ([]entities.Transaction, error)
	// Delete removes the entry matching transactionID, additionally
	// constrained to ownerIdentityID when it is non-empty. Returns the
	// number of rows removed so callers can collapse "absent" and "not
	// owned" into one outcome.
	Delete(ctx context.Context, transactionID string, ownerIdentityID string) (int64, error)
}

// OwnerDirectory resolves identity ids to display names. Implemented by the
// identity-access store and wired in at bootstrap.
type OwnerDirectory interface {
	DisplayNames(ctx context.Context, identityIDs []string) (map[string]string, error)
}
