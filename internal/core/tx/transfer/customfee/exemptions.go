package customfee

import "github.com/LeJamon/goHederad/internal/core/ledger/entry"

// isExempt reports whether payer is exempt from fee on token. The treasury
// never pays its own token's fees, a collector never pays the fee it
// collects, and a fee marked all-collectors-exempt spares every collector of
// the token.
func isExempt(token *entry.Token, fee *entry.CustomFee, payer entry.AccountID) bool {
	if payer == token.TreasuryID || payer == fee.FeeCollectorID {
		return true
	}
	return fee.AllCollectorsAreExempt && token.IsFeeCollector(payer)
}
