package customfee

import (
	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
)

// creditPool tracks how much of each original credit in a token list is
// still available to pay fractional fees.
type creditPool struct {
	order     []entry.AccountID
	available map[entry.AccountID]int64
}

func newCreditPool(tl *tokenLevel) *creditPool {
	p := &creditPool{available: make(map[entry.AccountID]int64)}
	for _, aa := range tl.transfers {
		if aa.Amount > 0 {
			p.order = append(p.order, aa.AccountID)
			p.available[aa.AccountID] = aa.Amount
		}
	}
	return p
}

// fractionalAmount computes a fractional fee on amount, clamped to the fee's
// bounds. A zero maximum means no ceiling.
func fractionalAmount(f *entry.FractionalFee, amount int64) (int64, error) {
	fee, err := mulDiv(amount, f.Numerator, f.Denominator)
	if err != nil {
		return 0, err
	}
	if fee < f.MinimumAmount {
		fee = f.MinimumAmount
	}
	if f.MaximumAmount > 0 && fee > f.MaximumAmount {
		fee = f.MaximumAmount
	}
	return fee, nil
}

// chargeFractional charges a fractional fee on one debit. Unless the fee is
// net of transfers it is withheld from the receivers' credits in proportion
// to their size; otherwise the sender pays it on top, in next.
func (a *Assessor) chargeFractional(token *entry.Token, fee *entry.CustomFee, debit tx.AccountAmount, credits *creditPool, tl *tokenLevel, next *level) error {
	payer := debit.AccountID
	if isExempt(token, fee, payer) {
		return nil
	}
	units, err := abs(debit.Amount)
	if err != nil {
		return err
	}
	amount, err := fractionalAmount(fee.Fractional, units)
	if err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}
	collector := fee.FeeCollectorID
	if err := a.requireCollectorAssociated(collector, token.ID); err != nil {
		return err
	}

	if fee.Fractional.NetOfTransfers {
		if err := next.adjustToken(token.ID, payer, -amount, false); err != nil {
			return err
		}
		if err := next.adjustToken(token.ID, collector, amount, false); err != nil {
			return err
		}
		a.record(collector, amount, &token.ID, payer)
		return nil
	}

	var eligible []entry.AccountID
	var total int64
	for _, id := range credits.order {
		if isExempt(token, fee, id) || credits.available[id] == 0 {
			continue
		}
		eligible = append(eligible, id)
		if total, err = addExact(total, credits.available[id]); err != nil {
			return err
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	if amount > total {
		return tx.Failf(tx.StatusINSUFFICIENT_SENDER_ACCOUNT_BALANCE_FOR_CUSTOM_FEE,
			"fractional fee %d exceeds credits %d", amount, total)
	}

	shares := make(map[entry.AccountID]int64, len(eligible))
	var allotted int64
	for _, id := range eligible {
		share, err := mulDiv(amount, credits.available[id], total)
		if err != nil {
			return err
		}
		shares[id] = share
		allotted += share
	}
	for remainder := amount - allotted; remainder > 0; {
		for _, id := range eligible {
			if remainder == 0 {
				break
			}
			if shares[id] < credits.available[id] {
				shares[id]++
				remainder--
			}
		}
	}

	var payers []entry.AccountID
	for _, id := range eligible {
		share := shares[id]
		if share == 0 {
			continue
		}
		merged, err := mergeAmount(tl.transfers, id, -share)
		if err != nil {
			return err
		}
		tl.transfers = merged
		credits.available[id] -= share
		payers = append(payers, id)
	}
	merged, err := mergeAmount(tl.transfers, collector, amount)
	if err != nil {
		return err
	}
	tl.transfers = merged
	a.record(collector, amount, &token.ID, payers...)
	return nil
}
