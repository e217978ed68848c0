package transfer

import (
	"github.com/sirupsen/logrus"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
	"github.com/LeJamon/goHederad/internal/crypto/alias"
)

const (
	autoCreatedMemo = "auto-created account"
	lazyCreatedMemo = "lazy-created account"
)

// autoCreate dispatches the creation of an account for an unknown alias. A
// key alias yields a full account, a bare EVM address a hollow one. The
// account starts empty; the transfer itself credits requested.
func (c *Context) autoCreate(raw []byte, requested int64, tokenLists int) (entry.AccountID, error) {
	counters, err := c.Stores().EntityCounters()
	if err != nil {
		return entry.AccountID{}, err
	}
	if counters.NumAccounts+1 > c.Config.MaxNumberOfAccounts {
		return entry.AccountID{}, tx.Failf(tx.StatusMAX_ENTITIES_IN_PRICE_REGIME_HAVE_BEEN_CREATED,
			"account limit %d reached", c.Config.MaxNumberOfAccounts)
	}

	op := tx.CreateAccountOp{
		Alias:               raw,
		MaxAutoAssociations: int32(tokenLists),
	}
	if c.Config.UnlimitedAutoAssociationsEnabled {
		op.MaxAutoAssociations = entry.UnlimitedAutoAssociations
	}

	hollow := alias.IsEvmAddress(raw)
	if hollow {
		op.EvmAddress = raw
		op.Memo = lazyCreatedMemo
	} else {
		keyType, _, err := alias.ParseKey(raw)
		if err != nil {
			return entry.AccountID{}, &tx.ResultError{Result: tx.StatusINVALID_ALIAS_KEY, Err: err}
		}
		op.Key = raw
		op.Memo = autoCreatedMemo
		if keyType == alias.KeyTypeECDSASecp256k1 {
			evm, err := alias.EvmAddressFromKeyAlias(raw)
			if err != nil {
				return entry.AccountID{}, &tx.ResultError{Result: tx.StatusINVALID_ALIAS_KEY, Err: err}
			}
			op.EvmAddress = evm
		}
	}

	id, err := c.Dispatcher.DispatchCreateAccount(c.ApplyContext, c.Payer, op)
	if err != nil {
		return entry.AccountID{}, err
	}
	if hollow {
		c.numLazyCreations++
	} else {
		c.numAutoCreations++
	}
	c.Log.WithFields(logrus.Fields{
		"account":   id.String(),
		"hollow":    hollow,
		"requested": requested,
	}).Debug("dispatched account creation")
	return id, nil
}
