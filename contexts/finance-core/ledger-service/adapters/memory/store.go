package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"caixa/contexts/finance-core/ledger-service/domain/entities"
	"caixa/contexts/finance-core/ledger-service/ports"
)

type transactionRecord struct {
	entities.Transaction
	seq uint64
}

// Store is an in-memory transaction store for development and tests.
type Store struct {
	mu sync.RWMutex

	transactions []transactionRecord
	sequence     uint64
	idSequence   uint64
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Insert(ctx context.Context, transaction entities.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequence++
	s.transactions = append(s.transactions, transactionRecord{
		Transaction: transaction,
		seq:         s.sequence,
	})
	return nil
}

func (s *Store) ListAll(ctx context.Context) ([]entities.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedCopy(s.transactions, func(transactionRecord) bool { return true }), nil
}

func (s *Store) ListByOwner(ctx context.Context, ownerIdentityID string) ([]entities.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedCopy(s.transactions, func(record transactionRecord) bool {
		return record.OwnerIdentityID == ownerIdentityID
	}), nil
}

func (s *Store) Delete(ctx context.Context, transactionID string, ownerIdentityID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactionID = strings.TrimSpace(transactionID)
	for i, record := range s.transactions {
		if record.TransactionID != transactionID {
			continue
		}
		if ownerIdentityID != "" && record.OwnerIdentityID != ownerIdentityID {
			continue
		}
		s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
		return 1, nil
	}
	return 0, nil
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	n := atomic.AddUint64(&s.idSequence, 1)
	return fmt.Sprintf("txn_%d", n), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// sortedCopy orders by date descending, insertion sequence descending as the
// tie-break, matching the postgres adapter.
func sortedCopy(records []transactionRecord, keep func(transactionRecord) bool) []entities.Transaction {
	kept := make([]transactionRecord, 0, len(records))
	for _, record := range records {
		if keep(record) {
			kept = append(kept, record)
		}
	}
	sort.Slice(kept, func(i int, j int) bool {
		if !kept[i].Date.Equal(kept[j].Date) {
			return kept[i].Date.After(kept[j].Date)
		}
		return kept[i].seq > kept[j].seq
	})

	items := make([]entities.Transaction, 0, len(kept))
	for _, record := range kept {
		items = append(items, record.Transaction)
	}
	return items
}

var _ ports.TransactionStore = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
