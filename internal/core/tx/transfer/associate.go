package transfer

import (
	"github.com/sirupsen/logrus"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
)

// AssociateTokenRecipients makes sure every party to a token transfer in op
// has a relationship with the token. Receivers without one are associated
// automatically within their auto-association budget; senders must already be
// associated. The associations run in their own savepoint.
func AssociateTokenRecipients(c *Context, op *tx.TransferOperation) error {
	c.Savepoints.Begin()
	if err := associateAll(c, op); err != nil {
		if rbErr := c.Savepoints.Rollback(); rbErr != nil {
			return rbErr
		}
		return err
	}
	return c.Savepoints.Commit()
}

func associateAll(c *Context, op *tx.TransferOperation) error {
	for i := range op.TokenTransfers {
		list := &op.TokenTransfers[i]
		token, err := c.usableToken(list.Token)
		if err != nil {
			return err
		}
		for _, aa := range list.Transfers {
			if err := ensureRelation(c, token, aa.AccountID, aa.Amount > 0); err != nil {
				return err
			}
		}
		for _, nft := range list.NftTransfers {
			if err := ensureRelation(c, token, nft.SenderID, false); err != nil {
				return err
			}
			if err := ensureRelation(c, token, nft.ReceiverID, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func ensureRelation(c *Context, token *entry.Token, id entry.AccountID, canAutoAssociate bool) error {
	stores := c.Stores()
	rel, err := stores.TokenRelation(id, token.ID)
	if err != nil {
		return err
	}
	if rel != nil {
		return nil
	}
	if !canAutoAssociate {
		return tx.Failf(tx.StatusTOKEN_NOT_ASSOCIATED_TO_ACCOUNT, "account %s, token %s", id, token.ID)
	}
	account, err := c.liveAccount(id)
	if err != nil {
		return err
	}
	_, err = AutoAssociate(c, account, token)
	return err
}

// AutoAssociate creates the relationship between account and token using
// one of the account's automatic association slots. It returns the new
// relationship and persists both it and the updated account.
func AutoAssociate(c *Context, account *entry.Account, token *entry.Token) (*entry.TokenRelation, error) {
	cfg := c.Config
	if cfg.LimitTokenAssociations && account.NumberAssociations+1 > cfg.MaxTokensPerAccount {
		return nil, tx.Failf(tx.StatusTOKENS_PER_ACCOUNT_LIMIT_EXCEEDED, "account %s", account.ID)
	}

	unlimited := account.HasUnlimitedAutoAssociations() && cfg.UnlimitedAutoAssociationsEnabled
	if !unlimited {
		if account.MaxAutoAssociations <= 0 {
			return nil, tx.Failf(tx.StatusTOKEN_NOT_ASSOCIATED_TO_ACCOUNT, "account %s, token %s", account.ID, token.ID)
		}
		if account.UsedAutoAssociations >= account.MaxAutoAssociations {
			return nil, tx.Failf(tx.StatusNO_REMAINING_AUTOMATIC_ASSOCIATIONS, "account %s", account.ID)
		}
	}

	rel := &entry.TokenRelation{
		AccountID:            account.ID,
		TokenID:              token.ID,
		KycGranted:           !token.HasKycKey(),
		Frozen:               token.HasFreezeKey() && token.AccountsFrozenByDefault,
		AutomaticAssociation: true,
	}
	account.NumberAssociations++
	account.UsedAutoAssociations++

	stores := c.Stores()
	if err := stores.PutTokenRelation(rel); err != nil {
		return nil, err
	}
	if err := stores.PutAccount(account); err != nil {
		return nil, err
	}
	c.Log.WithFields(logrus.Fields{
		"account": account.ID.String(),
		"token":   token.ID.String(),
	}).Debug("auto-associated token")
	return rel, nil
}
