package customfee

import (
	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
)

// exchangeValue is an amount the NFT receiver paid the sender in one
// denomination; a nil token means hbar.
type exchangeValue struct {
	token  *entry.TokenID
	amount int64
}

// exchangeValues finds what receiver paid sender in the original transfer:
// the sender's credits in every denomination the receiver was debited in.
func (a *Assessor) exchangeValues(sender, receiver entry.AccountID, nftToken entry.TokenID) []exchangeValue {
	var values []exchangeValue
	op := a.original
	if amountOf(op.HbarTransfers, receiver) < 0 {
		if credit := amountOf(op.HbarTransfers, sender); credit > 0 {
			values = append(values, exchangeValue{amount: credit})
		}
	}
	for i := range op.TokenTransfers {
		list := &op.TokenTransfers[i]
		if list.Token == nftToken || len(list.Transfers) == 0 {
			continue
		}
		if amountOf(list.Transfers, receiver) >= 0 {
			continue
		}
		if credit := amountOf(list.Transfers, sender); credit > 0 {
			token := list.Token
			values = append(values, exchangeValue{token: &token, amount: credit})
		}
	}
	return values
}

// chargeRoyalty charges a royalty fee on one NFT transfer. The sender owes a
// fraction of every exchange value, once per token; with nothing exchanged
// the receiver owes the fallback fee instead.
func (a *Assessor) chargeRoyalty(token *entry.Token, fee *entry.CustomFee, nft tx.NftTransfer, next *level) error {
	sender, receiver := nft.SenderID, nft.ReceiverID
	if isExempt(token, fee, sender) {
		return nil
	}
	collector := fee.FeeCollectorID

	values := a.exchangeValues(sender, receiver, token.ID)
	if len(values) == 0 {
		fallback := fee.Royalty.FallbackFee
		if fallback == nil || isExempt(token, fee, receiver) {
			return nil
		}
		return a.chargeFixedFrom(token, collector, fallback, receiver, next, next)
	}

	key := royaltyKey{sender: sender, token: token.ID}
	if a.royaltiesPaid[key] {
		return nil
	}
	a.royaltiesPaid[key] = true

	for _, value := range values {
		royalty, err := mulDiv(value.amount, fee.Royalty.Numerator, fee.Royalty.Denominator)
		if err != nil {
			return err
		}
		if royalty == 0 {
			continue
		}
		if value.token == nil {
			if err := next.adjustHbar(sender, -royalty); err != nil {
				return err
			}
			if err := next.adjustHbar(collector, royalty); err != nil {
				return err
			}
			a.record(collector, royalty, nil, sender)
			continue
		}
		denom := *value.token
		if err := a.requireCollectorAssociated(collector, denom); err != nil {
			return err
		}
		if err := next.adjustToken(denom, sender, -royalty, true); err != nil {
			return err
		}
		if err := next.adjustToken(denom, collector, royalty, false); err != nil {
			return err
		}
		a.record(collector, royalty, &denom, sender)
	}
	return nil
}
