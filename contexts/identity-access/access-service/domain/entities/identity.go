package entities

import "time"

const (
	RoleMaster Role = "master"
	RoleUnit   Role = "unit"
)

// Role is the closed set of access roles. Master reads the consolidated
// ledger and writes nothing; unit reads and mutates only its own records.
type Role string

func (r Role) IsValid() bool {
	switch r {
	case RoleMaster, RoleUnit:
		return true
	default:
		return false
	}
}

// Identity is the persisted account provisioned on first use of an access
// code. CredentialFingerprint records the code observed at creation time for
// provenance only; later logins trust the live registry, not this value.
type Identity struct {
	IdentityID            string
	DisplayName           string
	CredentialFingerprint string
	CreatedAt             time.Time
}
