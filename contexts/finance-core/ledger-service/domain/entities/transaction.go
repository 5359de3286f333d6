package entities

import "time"

const (
	RoleMaster Role = "master"
	RoleUnit   Role = "unit"
)

// Role mirrors the verified role claim resolved by the identity-access
// context. Every ledger operation branches on it exhaustively.
type Role string

func (r Role) IsValid() bool {
	switch r {
	case RoleMaster, RoleUnit:
		return true
	default:
		return false
	}
}

const (
	KindInflow  Kind = "inflow"
	KindOutflow Kind = "outflow"
)

// Kind is the closed inflow/outflow set.
type Kind string

func (k Kind) IsValid() bool {
	switch k {
	case KindInflow, KindOutflow:
		return true
	default:
		return false
	}
}

// Transaction is a single ledger entry owned by exactly one unit identity.
// A master identity never owns one. Entries are immutable after creation;
// there is no update path.
type Transaction struct {
	TransactionID   string
	OwnerIdentityID string
	Description     string
	Amount          float64
	Kind            Kind
	Category        string
	Date            time.Time
	CreatedAt       time.Time
}
