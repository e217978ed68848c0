package customfee

import (
	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
)

// chargeFixed charges a fixed fee from payer to the fee's collector. A fee
// denominated in the token it is attached to is folded into current; hbar and
// other tokens are charged in next.
func (a *Assessor) chargeFixed(token *entry.Token, fee *entry.CustomFee, payer entry.AccountID, current, next *level) error {
	if isExempt(token, fee, payer) {
		return nil
	}
	return a.chargeFixedFrom(token, fee.FeeCollectorID, fee.Fixed, payer, current, next)
}

func (a *Assessor) chargeFixedFrom(token *entry.Token, collector entry.AccountID, fixed *entry.FixedFee, payer entry.AccountID, current, next *level) error {
	amount := fixed.Amount
	if fixed.IsHbar() {
		if err := next.adjustHbar(payer, -amount); err != nil {
			return err
		}
		if err := next.adjustHbar(collector, amount); err != nil {
			return err
		}
		a.record(collector, amount, nil, payer)
		return nil
	}

	denom := *fixed.DenominatingTokenID
	if err := a.requireCollectorAssociated(collector, denom); err != nil {
		return err
	}
	target, reassess := next, true
	if denom == token.ID {
		target, reassess = current, false
	}
	if err := target.adjustToken(denom, payer, -amount, reassess); err != nil {
		return err
	}
	if err := target.adjustToken(denom, collector, amount, false); err != nil {
		return err
	}
	a.record(collector, amount, &denom, payer)
	return nil
}
