package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"caixa/contexts/identity-access/access-service/adapters/memory"
	"caixa/contexts/identity-access/access-service/domain/entities"
	domainerrors "caixa/contexts/identity-access/access-service/domain/errors"
)

func newTestService(t *testing.T, descriptors []AccessDescriptor) (Service, *memory.Store) {
	t.Helper()
	registry, err := NewAccessRegistry(descriptors)
	if err != nil {
		t.Fatalf("build registry failed: %v", err)
	}
	store := memory.NewStore()
	service := Service{
		Registry:    registry,
		Identities:  store,
		Issuer:      TokenIssuer{SigningSecret: []byte("test-secret")},
		Clock:       store,
		IDGenerator: store,
	}
	return service, store
}

func defaultDescriptors() []AccessDescriptor {
	return []AccessDescriptor{
		{Code: "M1", DisplayName: "Master Overview", Role: entities.RoleMaster},
		{Code: "U1", DisplayName: "Unit A", Role: entities.RoleUnit},
	}
}

func TestLoginProvisionsIdentityOnFirstUse(t *testing.T) {
	service, store := newTestService(t, defaultDescriptors())

	result, err := service.Login(context.Background(), "U1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.DisplayName != "Unit A" || result.Role != entities.RoleUnit {
		t.Fatalf("unexpected login result %+v", result)
	}
	if result.Token == "" {
		t.Fatal("expected a minted token")
	}

	identity, found, err := store.FindByDisplayName(context.Background(), "Unit A")
	if err != nil || !found {
		t.Fatalf("expected provisioned identity, found=%v err=%v", found, err)
	}
	if identity.CredentialFingerprint == "" || identity.CredentialFingerprint == "U1" {
		t.Fatalf("fingerprint must be a one-way derivation, got %q", identity.CredentialFingerprint)
	}
}

func TestLoginIsIdempotentPerCode(t *testing.T) {
	service, _ := newTestService(t, defaultDescriptors())

	guard := AuthGuard{SigningSecret: []byte("test-secret")}
	first, err := service.Login(context.Background(), "U1")
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	second, err := service.Login(context.Background(), "U1")
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	firstCaller, err := guard.Verify(first.Token)
	if err != nil {
		t.Fatalf("verify first token failed: %v", err)
	}
	secondCaller, err := guard.Verify(second.Token)
	if err != nil {
		t.Fatalf("verify second token failed: %v", err)
	}
	if firstCaller.IdentityID != secondCaller.IdentityID {
		t.Fatalf("expected same identity, got %q vs %q", firstCaller.IdentityID, secondCaller.IdentityID)
	}
}

func TestLoginRejectsUnknownCode(t *testing.T) {
	service, _ := newTestService(t, defaultDescriptors())

	_, err := service.Login(context.Background(), "nope")
	if !errors.Is(err, domainerrors.ErrInvalidAccessCode) {
		t.Fatalf("expected invalid access code, got %v", err)
	}
}

func TestConcurrentFirstLoginsProvisionOnce(t *testing.T) {
	service, store := newTestService(t, defaultDescriptors())

	const logins = 8
	var wg sync.WaitGroup
	ids := make([]string, logins)
	errs := make([]error, logins)
	guard := AuthGuard{SigningSecret: []byte("test-secret")}

	for i := 0; i < logins; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			result, err := service.Login(context.Background(), "U1")
			if err != nil {
				errs[slot] = err
				return
			}
			caller, err := guard.Verify(result.Token)
			if err != nil {
				errs[slot] = err
				return
			}
			ids[slot] = caller.IdentityID
		}(i)
	}
	wg.Wait()

	for slot, err := range errs {
		if err != nil {
			t.Fatalf("login %d failed: %v", slot, err)
		}
	}
	for slot := 1; slot < logins; slot++ {
		if ids[slot] != ids[0] {
			t.Fatalf("login %d got identity %q, want %q", slot, ids[slot], ids[0])
		}
	}

	identity, found, err := store.FindByDisplayName(context.Background(), "Unit A")
	if err != nil || !found {
		t.Fatalf("expected single provisioned identity, found=%v err=%v", found, err)
	}
	if identity.IdentityID != ids[0] {
		t.Fatalf("store holds %q, logins returned %q", identity.IdentityID, ids[0])
	}
}

func TestChangedCodeReattachesToExistingIdentity(t *testing.T) {
	service, store := newTestService(t, defaultDescriptors())
	if _, err := service.Login(context.Background(), "U1"); err != nil {
		t.Fatalf("initial login failed: %v", err)
	}
	original, _, err := store.FindByDisplayName(context.Background(), "Unit A")
	if err != nil {
		t.Fatalf("read identity failed: %v", err)
	}

	// The registry, not the stored fingerprint, decides access: rotating
	// the configured code keeps pointing at the same identity.
	rotated, err := NewAccessRegistry([]AccessDescriptor{
		{Code: "U9", DisplayName: "Unit A", Role: entities.RoleUnit},
	})
	if err != nil {
		t.Fatalf("build rotated registry failed: %v", err)
	}
	service.Registry = rotated

	result, err := service.Login(context.Background(), "U9")
	if err != nil {
		t.Fatalf("login with rotated code failed: %v", err)
	}
	caller, err := AuthGuard{SigningSecret: []byte("test-secret")}.Verify(result.Token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if caller.IdentityID != original.IdentityID {
		t.Fatalf("expected identity %q, got %q", original.IdentityID, caller.IdentityID)
	}

	refreshed, _, err := store.FindByDisplayName(context.Background(), "Unit A")
	if err != nil {
		t.Fatalf("re-read identity failed: %v", err)
	}
	if refreshed.CredentialFingerprint != original.CredentialFingerprint {
		t.Fatal("fingerprint must stay untouched on later logins")
	}
}

func TestRegisterCreatesAndConflicts(t *testing.T) {
	service, _ := newTestService(t, defaultDescriptors())

	identity, err := service.Register(context.Background(), "Backoffice", "B1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if identity.IdentityID == "" {
		t.Fatal("expected identity id")
	}

	_, err = service.Register(context.Background(), "Backoffice", "B2")
	if !errors.Is(err, domainerrors.ErrDisplayNameConflict) {
		t.Fatalf("expected display name conflict, got %v", err)
	}

	_, err = service.Register(context.Background(), "  ", "B3")
	if !errors.Is(err, domainerrors.ErrInvalidRegistration) {
		t.Fatalf("expected invalid registration, got %v", err)
	}
}
