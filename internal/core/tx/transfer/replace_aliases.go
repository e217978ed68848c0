package transfer

import (
	"fmt"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
)

// ReplaceAliasesWithIds returns a copy of op in which every alias reference
// is replaced by the account it resolved to. op is not modified.
func ReplaceAliasesWithIds(op *tx.TransferOperation, c *Context) (*tx.TransferOperation, error) {
	out := op.Copy()
	for i := range out.HbarTransfers {
		id, err := c.canonical(out.HbarTransfers[i].AccountID)
		if err != nil {
			return nil, err
		}
		out.HbarTransfers[i].AccountID = id
	}
	for i := range out.TokenTransfers {
		list := &out.TokenTransfers[i]
		for j := range list.Transfers {
			id, err := c.canonical(list.Transfers[j].AccountID)
			if err != nil {
				return nil, err
			}
			list.Transfers[j].AccountID = id
		}
		for j := range list.NftTransfers {
			sender, err := c.canonical(list.NftTransfers[j].SenderID)
			if err != nil {
				return nil, err
			}
			receiver, err := c.canonical(list.NftTransfers[j].ReceiverID)
			if err != nil {
				return nil, err
			}
			list.NftTransfers[j].SenderID = sender
			list.NftTransfers[j].ReceiverID = receiver
		}
	}
	return out, nil
}

func (c *Context) canonical(ref entry.AccountID) (entry.AccountID, error) {
	if !ref.HasAlias() {
		return ref, nil
	}
	id, ok := c.ResolvedID(ref.AliasBytes())
	if !ok {
		return entry.AccountID{}, fmt.Errorf("alias %s was never resolved", ref)
	}
	return id, nil
}
