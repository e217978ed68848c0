package transfer

import (
	"github.com/sirupsen/logrus"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
	"github.com/LeJamon/goHederad/internal/crypto/alias"
)

// referenceKind says how an account reference takes part in a transfer.
type referenceKind int

const (
	hbarReference referenceKind = iota
	tokenReference
	nftSenderReference
	nftReceiverReference
)

// EnsureAliases resolves every alias referenced by op to a canonical account,
// creating accounts for unknown aliases that receive value. Resolutions are
// recorded in c for ReplaceAliasesWithIds.
func EnsureAliases(c *Context, op *tx.TransferOperation) error {
	receivingLists := tokenListsReceivedBy(op)

	seen := make(map[entry.AccountID]bool, len(op.HbarTransfers))
	for _, aa := range op.HbarTransfers {
		id, err := c.resolve(aa.AccountID, aa.Amount, hbarReference, receivingLists)
		if err != nil {
			return err
		}
		if seen[id] {
			return tx.Failf(tx.StatusACCOUNT_REPEATED_IN_ACCOUNT_AMOUNTS, "account %s", id)
		}
		seen[id] = true
	}

	for i := range op.TokenTransfers {
		list := &op.TokenTransfers[i]
		refs := make(map[entry.AccountID]entry.AccountID, len(list.Transfers))
		for _, aa := range list.Transfers {
			id, err := c.resolve(aa.AccountID, aa.Amount, tokenReference, receivingLists)
			if err != nil {
				return err
			}
			if prior, ok := refs[id]; ok {
				if prior != aa.AccountID {
					return tx.Failf(tx.StatusINVALID_ALIAS_KEY, "account %s referenced through two encodings", id)
				}
				return tx.Failf(tx.StatusACCOUNT_REPEATED_IN_ACCOUNT_AMOUNTS, "account %s", id)
			}
			refs[id] = aa.AccountID
		}
		for _, nft := range list.NftTransfers {
			sender, err := c.resolve(nft.SenderID, 0, nftSenderReference, receivingLists)
			if err != nil {
				return err
			}
			receiver, err := c.resolve(nft.ReceiverID, 0, nftReceiverReference, receivingLists)
			if err != nil {
				return err
			}
			if sender == receiver {
				return tx.Failf(tx.StatusACCOUNT_REPEATED_IN_ACCOUNT_AMOUNTS, "nft %d sent to its owner %s", nft.Serial, sender)
			}
		}
	}
	return nil
}

// resolve maps one reference to a canonical id.
func (c *Context) resolve(ref entry.AccountID, amount int64, kind referenceKind, receivingLists map[string]int) (entry.AccountID, error) {
	if !ref.HasAlias() {
		return ref, nil
	}
	raw := ref.AliasBytes()
	if id, ok := c.ResolvedID(raw); ok {
		return id, nil
	}

	if alias.IsEvmAddress(raw) {
		if num, ok := alias.MirrorNum(raw, c.Config.Shard, c.Config.Realm); ok {
			id := entry.NewAccountID(c.Config.Shard, c.Config.Realm, num)
			c.addResolution(raw, id)
			return id, nil
		}
	}

	id, found, err := c.lookupAlias(raw)
	if err != nil {
		return entry.AccountID{}, err
	}
	if found {
		c.addResolution(raw, id)
		return id, nil
	}

	switch kind {
	case nftSenderReference:
		return entry.AccountID{}, tx.Failf(tx.StatusINVALID_ACCOUNT_ID, "unknown NFT sender alias %x", raw)
	case hbarReference, tokenReference:
		if amount <= 0 {
			return entry.AccountID{}, tx.Failf(tx.StatusINVALID_ACCOUNT_ID, "unknown alias %x cannot be debited", raw)
		}
	}

	if err := c.checkCreationAllowed(raw, kind); err != nil {
		return entry.AccountID{}, err
	}

	requested := int64(0)
	if kind == hbarReference {
		requested = amount
	}
	id, err = c.autoCreate(raw, requested, receivingLists[string(raw)])
	if err != nil {
		return entry.AccountID{}, err
	}
	c.addResolution(raw, id)
	c.Log.WithFields(logrus.Fields{
		"alias":   ref.String(),
		"account": id.String(),
	}).Debug("alias resolved to new account")
	return id, nil
}

// lookupAlias consults the alias index. An ECDSA key alias also matches the
// account registered under its EVM address.
func (c *Context) lookupAlias(raw []byte) (entry.AccountID, bool, error) {
	stores := c.Stores()
	id, found, err := stores.AccountIDByAlias(raw)
	if err != nil || found {
		return id, found, err
	}
	if alias.IsEvmAddress(raw) {
		return entry.AccountID{}, false, nil
	}
	evm, err := alias.EvmAddressFromKeyAlias(raw)
	if err != nil {
		return entry.AccountID{}, false, nil
	}
	return stores.AccountIDByAlias(evm)
}

func (c *Context) checkCreationAllowed(raw []byte, kind referenceKind) error {
	if !c.Config.AutoCreationEnabled {
		return tx.Failf(tx.StatusNOT_SUPPORTED, "automatic account creation is disabled")
	}
	if alias.IsEvmAddress(raw) && !c.Config.LazyCreationEnabled {
		return tx.Failf(tx.StatusNOT_SUPPORTED, "lazy account creation is disabled")
	}
	if kind != hbarReference && !c.Config.TokenAutoCreationsEnabled {
		return tx.Failf(tx.StatusNOT_SUPPORTED, "account creation from token transfers is disabled")
	}
	if !alias.IsEvmAddress(raw) && !alias.IsKeyAlias(raw) {
		return tx.Failf(tx.StatusINVALID_ALIAS_KEY, "alias %x is neither a key nor an EVM address", raw)
	}
	return nil
}

// tokenListsReceivedBy counts, per alias, the token lists in which it is
// credited or receives an NFT.
func tokenListsReceivedBy(op *tx.TransferOperation) map[string]int {
	counts := make(map[string]int)
	for i := range op.TokenTransfers {
		list := &op.TokenTransfers[i]
		receivers := make(map[string]bool)
		for _, aa := range list.Transfers {
			if aa.AccountID.HasAlias() && aa.Amount > 0 {
				receivers[aa.AccountID.Alias] = true
			}
		}
		for _, nft := range list.NftTransfers {
			if nft.ReceiverID.HasAlias() {
				receivers[nft.ReceiverID.Alias] = true
			}
		}
		for key := range receivers {
			counts[key]++
		}
	}
	return counts
}
