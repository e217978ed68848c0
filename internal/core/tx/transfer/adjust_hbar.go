package transfer

import (
	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
)

// AdjustHbarChanges applies the hbar adjustments of one level. Every debit is
// validated before anything is written; debits marked as approvals draw on
// the allowance the account granted the payer.
func AdjustHbarChanges(c *Context, level *tx.TransferOperation) error {
	if len(level.HbarTransfers) == 0 {
		return nil
	}
	accounts := make([]*entry.Account, len(level.HbarTransfers))
	for i, aa := range level.HbarTransfers {
		account, err := c.liveAccount(aa.AccountID)
		if err != nil {
			return err
		}
		accounts[i] = account
	}

	for i, aa := range level.HbarTransfers {
		if !aa.IsDebit() {
			continue
		}
		account := accounts[i]
		if aa.IsApproval {
			allowance, found := account.CryptoAllowance(c.Payer)
			if !found {
				return tx.Failf(tx.StatusSPENDER_DOES_NOT_HAVE_ALLOWANCE, "account %s, spender %s", account.ID, c.Payer)
			}
			if allowance < -aa.Amount {
				return tx.Failf(tx.StatusAMOUNT_EXCEEDS_ALLOWANCE, "account %s, spender %s", account.ID, c.Payer)
			}
		}
		if account.TinybarBalance+aa.Amount < 0 {
			return tx.Failf(tx.StatusINSUFFICIENT_ACCOUNT_BALANCE, "account %s", account.ID)
		}
	}

	stores := c.Stores()
	for i, aa := range level.HbarTransfers {
		account := accounts[i]
		if aa.IsDebit() && aa.IsApproval {
			allowance, _ := account.CryptoAllowance(c.Payer)
			account.SetCryptoAllowance(c.Payer, allowance+aa.Amount)
		}
		balance, err := addBalance(account.TinybarBalance, aa.Amount)
		if err != nil {
			return err
		}
		account.TinybarBalance = balance
		if err := stores.PutAccount(account); err != nil {
			return err
		}
	}
	return nil
}

// addBalance credits or debits a balance that must stay within int64.
func addBalance(balance, amount int64) (int64, error) {
	sum := balance + amount
	if amount > 0 && sum < balance {
		return 0, tx.Failf(tx.StatusINVALID_ACCOUNT_AMOUNTS, "balance overflow")
	}
	return sum, nil
}
