package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"caixa/contexts/identity-access/access-service/domain/entities"
	domainerrors "caixa/contexts/identity-access/access-service/domain/errors"
	"caixa/contexts/identity-access/access-service/ports"
)

// Store is an in-memory identity store for development and tests.
type Store struct {
	mu sync.RWMutex

	identitiesByName map[string]entities.Identity
	sequence         uint64
}

func NewStore() *Store {
	return &Store{
		identitiesByName: make(map[string]entities.Identity),
	}
}

func (s *Store) FindByDisplayName(ctx context.Context, displayName string) (entities.Identity, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.identitiesByName[strings.TrimSpace(displayName)]
	return identity, ok, nil
}

func (s *Store) Create(ctx context.Context, identity entities.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(identity.DisplayName)
	if _, exists := s.identitiesByName[name]; exists {
		return domainerrors.ErrDisplayNameConflict
	}
	identity.DisplayName = name
	s.identitiesByName[name] = identity
	return nil
}

// DisplayNames resolves identity ids to display names. It backs the ledger
// module's owner directory port when running on in-memory adapters.
func (s *Store) DisplayNames(ctx context.Context, identityIDs []string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(identityIDs))
	for _, id := range identityIDs {
		wanted[id] = struct{}{}
	}
	names := make(map[string]string, len(wanted))
	for _, identity := range s.identitiesByName {
		if _, ok := wanted[identity.IdentityID]; ok {
			names[identity.IdentityID] = identity.DisplayName
		}
	}
	return names, nil
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	n := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("idn_%d", n), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.IdentityStore = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
