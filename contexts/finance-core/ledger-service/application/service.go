package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"caixa/contexts/finance-core/ledger-service/domain/entities"
	domainerrors "caixa/contexts/finance-core/ledger-service/domain/errors"
	"caixa/contexts/finance-core/ledger-service/ports"
)

type Service struct {
	Transactions ports.TransactionStore
	Owners       ports.OwnerDirectory
	Clock        ports.Clock
	IDGenerator  ports.IDGenerator
	Logger       *slog.Logger
}

// List returns the ledger visible to the caller: everything, annotated with
// owner display names, for master; own entries only for unit.
func (s Service) List(ctx context.Context, caller ports.Caller) ([]ports.OwnedTransaction, error) {
	switch caller.Role {
	case entities.RoleMaster:
		items, err := s.Transactions.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return s.annotateOwners(ctx, items)
	case entities.RoleUnit:
		items, err := s.Transactions.ListByOwner(ctx, caller.IdentityID)
		if err != nil {
			return nil, err
		}
		owned := make([]ports.OwnedTransaction, 0, len(items))
		for _, item := range items {
			owned = append(owned, ports.OwnedTransaction{Transaction: item})
		}
		return owned, nil
	default:
		return nil, domainerrors.ErrUnknownRole
	}
}

// Create persists a new entry owned by the caller. Master is read-only by
// design: it must never own a transaction.
func (s Service) Create(ctx context.Context, caller ports.Caller, input ports.NewTransaction) (entities.Transaction, error) {
	switch caller.Role {
	case entities.RoleMaster:
		return entities.Transaction{}, domainerrors.ErrMasterReadOnly
	case entities.RoleUnit:
	default:
		return entities.Transaction{}, domainerrors.ErrUnknownRole
	}

	description := strings.TrimSpace(input.Description)
	if description == "" || !input.Kind.IsValid() {
		return entities.Transaction{}, domainerrors.ErrInvalidTransactionInput
	}
	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	id, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Transaction{}, err
	}
	transaction := entities.Transaction{
		TransactionID:   id,
		OwnerIdentityID: caller.IdentityID,
		Description:     description,
		Amount:          input.Amount,
		Kind:            input.Kind,
		Category:        strings.TrimSpace(input.Category),
		Date:            date.UTC(),
		CreatedAt:       s.now(),
	}
	if err := s.Transactions.Insert(ctx, transaction); err != nil {
		return entities.Transaction{}, err
	}

	resolveLogger(s.Logger).Debug("transaction created",
		"event", "transaction_created",
		"module", "finance-core/ledger-service",
		"layer", "application",
		"transaction_id", transaction.TransactionID,
		"kind", string(transaction.Kind),
	)
	return transaction, nil
}

// Delete removes one entry through a predicate constrained to the caller's
// ownership unless the caller is master. A zero-row predicate collapses
// "does not exist" and "exists but not yours" into ErrNotFoundOrForbidden,
// so unauthorized callers cannot probe for existence.
func (s Service) Delete(ctx context.Context, caller ports.Caller, transactionID string) error {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return domainerrors.ErrNotFoundOrForbidden
	}

	owner := ""
	switch caller.Role {
	case entities.RoleMaster:
		// Unconstrained predicate: master may delete any entry.
	case entities.RoleUnit:
		owner = caller.IdentityID
	default:
		return domainerrors.ErrUnknownRole
	}

	removed, err := s.Transactions.Delete(ctx, transactionID, owner)
	if err != nil {
		return err
	}
	if removed == 0 {
		return domainerrors.ErrNotFoundOrForbidden
	}
	return nil
}

func (s Service) annotateOwners(ctx context.Context, items []entities.Transaction) ([]ports.OwnedTransaction, error) {
	ownerIDs := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.OwnerIdentityID]; ok {
			continue
		}
		seen[item.OwnerIdentityID] = struct{}{}
		ownerIDs = append(ownerIDs, item.OwnerIdentityID)
	}

	names, err := s.Owners.DisplayNames(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	owned := make([]ports.OwnedTransaction, 0, len(items))
	for _, item := range items {
		owned = append(owned, ports.OwnedTransaction{
			Transaction:      item,
			OwnerDisplayName: names[item.OwnerIdentityID],
		})
	}
	return owned, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
