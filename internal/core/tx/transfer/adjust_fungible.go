package transfer

import (
	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
)

// AdjustFungibleTokenChanges applies the fungible adjustments of one level,
// token list by token list. A relationship whose balance crosses zero moves
// its account's positive-balance count.
func AdjustFungibleTokenChanges(c *Context, level *tx.TransferOperation) error {
	for i := range level.TokenTransfers {
		list := &level.TokenTransfers[i]
		if len(list.Transfers) == 0 {
			continue
		}
		if err := adjustTokenList(c, list); err != nil {
			return err
		}
	}
	return nil
}

func adjustTokenList(c *Context, list *tx.TokenTransferList) error {
	token, err := c.usableToken(list.Token)
	if err != nil {
		return err
	}
	if !token.IsFungible() {
		return tx.Failf(tx.StatusACCOUNT_AMOUNT_TRANSFERS_ONLY_ALLOWED_FOR_FUNGIBLE_COMMON, "token %s", token.ID)
	}
	if list.ExpectedDecimals != nil && *list.ExpectedDecimals != token.Decimals {
		return tx.Failf(tx.StatusUNEXPECTED_TOKEN_DECIMALS, "token %s has %d decimals", token.ID, token.Decimals)
	}

	rels := make([]*entry.TokenRelation, len(list.Transfers))
	for i, aa := range list.Transfers {
		account, err := c.liveAccount(aa.AccountID)
		if err != nil {
			return err
		}
		rel, err := usableRelation(c, aa.AccountID, token.ID)
		if err != nil {
			return err
		}
		rels[i] = rel
		if !aa.IsDebit() {
			continue
		}
		if aa.IsApproval {
			allowance, found := account.TokenAllowance(c.Payer, token.ID)
			if !found {
				return tx.Failf(tx.StatusSPENDER_DOES_NOT_HAVE_ALLOWANCE, "account %s, spender %s, token %s", account.ID, c.Payer, token.ID)
			}
			if allowance < -aa.Amount {
				return tx.Failf(tx.StatusAMOUNT_EXCEEDS_ALLOWANCE, "account %s, spender %s, token %s", account.ID, c.Payer, token.ID)
			}
		}
		if rel.Balance+aa.Amount < 0 {
			return tx.Failf(tx.StatusINSUFFICIENT_TOKEN_BALANCE, "account %s, token %s", account.ID, token.ID)
		}
	}

	stores := c.Stores()
	for i, aa := range list.Transfers {
		rel := rels[i]
		before := rel.Balance
		after, err := addBalance(before, aa.Amount)
		if err != nil {
			return err
		}
		rel.Balance = after
		if err := stores.PutTokenRelation(rel); err != nil {
			return err
		}

		approval := aa.IsDebit() && aa.IsApproval
		crossed := (before == 0) != (after == 0)
		if !approval && !crossed {
			continue
		}
		account, err := stores.Account(aa.AccountID)
		if err != nil {
			return err
		}
		if approval {
			allowance, _ := account.TokenAllowance(c.Payer, token.ID)
			account.SetTokenAllowance(c.Payer, token.ID, allowance+aa.Amount)
		}
		if crossed {
			adjustPositiveBalances(account, before, after)
		}
		if err := stores.PutAccount(account); err != nil {
			return err
		}
	}
	return nil
}

// usableRelation loads a relationship that may take part in a transfer.
func usableRelation(c *Context, account entry.AccountID, token entry.TokenID) (*entry.TokenRelation, error) {
	rel, err := c.TokenRelation(account, token)
	if err != nil {
		return nil, err
	}
	switch {
	case rel == nil:
		return nil, tx.Failf(tx.StatusTOKEN_NOT_ASSOCIATED_TO_ACCOUNT, "account %s, token %s", account, token)
	case rel.Frozen:
		return nil, tx.Failf(tx.StatusACCOUNT_FROZEN_FOR_TOKEN, "account %s, token %s", account, token)
	case !rel.KycGranted:
		return nil, tx.Failf(tx.StatusACCOUNT_KYC_NOT_GRANTED_FOR_TOKEN, "account %s, token %s", account, token)
	}
	return rel, nil
}

func adjustPositiveBalances(account *entry.Account, before, after int64) {
	switch {
	case before == 0 && after > 0:
		account.NumberPositiveBalances++
	case before > 0 && after == 0 && account.NumberPositiveBalances > 0:
		account.NumberPositiveBalances--
	}
}
