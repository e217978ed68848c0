package tx

import (
	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/crypto/alias"
)

// CreateAccountOp is the child operation synthesized for an unresolved alias.
type CreateAccountOp struct {
	// Key is the serialized key of an auto-created account; nil for a
	// hollow account
	Key []byte
	// Alias is the alias the account is registered under
	Alias []byte
	// EvmAddress is indexed alongside Alias when both are known
	EvmAddress          []byte
	InitialBalance      int64
	MaxAutoAssociations int32
	Memo                string
}

// IsHollow reports whether the op creates a keyless account.
func (op *CreateAccountOp) IsHollow() bool {
	return len(op.Key) == 0
}

// Dispatcher runs nested operations on behalf of a transaction. A failed
// dispatch leaves no trace in the parent's state.
type Dispatcher interface {
	DispatchCreateAccount(ctx *ApplyContext, payer entry.AccountID, op CreateAccountOp) (entry.AccountID, error)
}

// CreateAccount allocates an entity number for a new account, writes it and
// indexes its aliases.
func CreateAccount(stores *Stores, cfg EngineConfig, op CreateAccountOp) (entry.AccountID, error) {
	if len(op.Alias) == 0 {
		return entry.AccountID{}, StatusINVALID_ALIAS_KEY
	}
	if op.IsHollow() && !alias.IsEvmAddress(op.Alias) {
		return entry.AccountID{}, StatusINVALID_ALIAS_KEY
	}
	if op.InitialBalance < 0 {
		return entry.AccountID{}, StatusINVALID_ACCOUNT_AMOUNTS
	}
	for _, a := range [][]byte{op.Alias, op.EvmAddress} {
		if len(a) == 0 {
			continue
		}
		_, taken, err := stores.AccountIDByAlias(a)
		if err != nil {
			return entry.AccountID{}, err
		}
		if taken {
			return entry.AccountID{}, Failf(StatusINVALID_ALIAS_KEY, "alias %x already in use", a)
		}
	}

	counters, err := stores.EntityCounters()
	if err != nil {
		return entry.AccountID{}, err
	}
	counters.LastEntityNum++
	counters.NumAccounts++
	if err := stores.PutEntityCounters(counters); err != nil {
		return entry.AccountID{}, err
	}

	id := entry.NewAccountID(cfg.Shard, cfg.Realm, counters.LastEntityNum)
	account := &entry.Account{
		ID:                  id,
		Key:                 op.Key,
		Alias:               op.Alias,
		EvmAddress:          op.EvmAddress,
		Memo:                op.Memo,
		TinybarBalance:      op.InitialBalance,
		MaxAutoAssociations: op.MaxAutoAssociations,
	}
	if err := stores.PutAccount(account); err != nil {
		return entry.AccountID{}, err
	}
	if err := stores.PutAlias(op.Alias, id); err != nil {
		return entry.AccountID{}, err
	}
	if len(op.EvmAddress) > 0 && string(op.EvmAddress) != string(op.Alias) {
		if err := stores.PutAlias(op.EvmAddress, id); err != nil {
			return entry.AccountID{}, err
		}
	}
	return id, nil
}
