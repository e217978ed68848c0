package entry

import (
	"fmt"
)

// Type represents a ledger entry type
type Type uint16

// All known ledger entry types
const (
	TypeAccount        Type = 0x0061 // Accounts, including hollow accounts
	TypeAlias          Type = 0x0041 // Alias index (key alias or EVM address -> account)
	TypeEntityCounters Type = 0x0065 // Entity number allocation (singleton)
	TypeNft            Type = 0x004e // Unique tokens
	TypeToken          Type = 0x0074 // Token definitions
	TypeTokenRelation  Type = 0x0072 // (account, token) associations
)

// String returns the string representation of the Type
func (t Type) String() string {
	switch t {
	case TypeAccount:
		return "Account"
	case TypeAlias:
		return "Alias"
	case TypeEntityCounters:
		return "EntityCounters"
	case TypeNft:
		return "Nft"
	case TypeToken:
		return "Token"
	case TypeTokenRelation:
		return "TokenRelation"
	default:
		return fmt.Sprintf("Unknown(%#x)", uint16(t))
	}
}

// Entry defines the interface for all ledger entries
type Entry interface {
	Type() Type
	Validate() error
}
