package entry

import (
	"errors"
)

// AliasMapping is an alias index entry.
type AliasMapping struct {
	Alias     []byte    `codec:"alias"`
	AccountID AccountID `codec:"acct"`
}

func (m *AliasMapping) Type() Type {
	return TypeAlias
}

func (m *AliasMapping) Validate() error {
	if len(m.Alias) == 0 {
		return errors.New("alias cannot be empty")
	}
	if m.AccountID.IsZero() || m.AccountID.HasAlias() {
		return errors.New("alias must map to a canonical account id")
	}
	return nil
}

// EntityCounters tracks entity number allocation.
type EntityCounters struct {
	LastEntityNum int64 `codec:"last"`
	NumAccounts   int64 `codec:"accounts"`
}

func (c *EntityCounters) Type() Type {
	return TypeEntityCounters
}

func (c *EntityCounters) Validate() error {
	if c.LastEntityNum < 0 || c.NumAccounts < 0 {
		return errors.New("entity counters cannot be negative")
	}
	return nil
}
