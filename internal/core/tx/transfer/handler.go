package transfer

import (
	"github.com/sirupsen/logrus"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
	"github.com/LeJamon/goHederad/internal/core/tx/transfer/customfee"
)

// Handler runs crypto transfers. It is stateless and safe to share.
type Handler struct{}

// NewHandler returns the crypto transfer handler.
func NewHandler() *Handler {
	return &Handler{}
}

var _ tx.TransferHandler = (*Handler)(nil)

// Handle runs the transfer pipeline: resolve aliases, rewrite the operation,
// associate recipients, assess custom fees and apply every level in order.
func (h *Handler) Handle(ctx *tx.ApplyContext, op *tx.TransferOperation) error {
	c := NewContext(ctx)

	if err := EnsureAliases(c, op); err != nil {
		return err
	}
	replaced, err := ReplaceAliasesWithIds(op, c)
	if err != nil {
		return err
	}
	if err := AssociateTokenRecipients(c, replaced); err != nil {
		return err
	}

	assessment, err := customfee.NewAssessor(c, customfee.LimitsFrom(c.Config)).Assess(replaced)
	if err != nil {
		return err
	}
	ctx.Record.Levels = assessment.Levels
	c.Log.WithFields(logrus.Fields{
		"levels":        len(assessment.Levels),
		"assessed_fees": len(assessment.AssessedCustomFees),
	}).Debug("custom fees assessed")

	for _, level := range assessment.Levels {
		if err := AdjustHbarChanges(c, level); err != nil {
			return err
		}
		if err := AdjustFungibleTokenChanges(c, level); err != nil {
			return err
		}
		if err := ChangeNftOwners(c, level); err != nil {
			return err
		}
	}

	ctx.Record.AutoCreations = c.NumAutoCreations()
	ctx.Record.LazyCreations = c.NumLazyCreations()
	ctx.Record.Resolutions = c.Resolutions()
	ctx.Record.AssessedCustomFees = assessment.AssessedCustomFees
	return nil
}

// PureChecks validates the shape of op without reading state.
func (h *Handler) PureChecks(op *tx.TransferOperation, cfg tx.EngineConfig) error {
	if op == nil || (len(op.HbarTransfers) == 0 && len(op.TokenTransfers) == 0) {
		return tx.Failf(tx.StatusINVALID_TRANSACTION_BODY, "transfer moves nothing")
	}
	if err := checkHbarTransfers(op.HbarTransfers, cfg); err != nil {
		return err
	}
	return checkTokenTransfers(op.TokenTransfers, cfg)
}

func checkHbarTransfers(transfers []tx.AccountAmount, cfg tx.EngineConfig) error {
	if cfg.MaxHbarTransfers > 0 && len(transfers) > cfg.MaxHbarTransfers {
		return tx.Failf(tx.StatusTRANSFER_LIST_SIZE_LIMIT_EXCEEDED, "%d hbar transfers", len(transfers))
	}
	return checkAccountAmounts(transfers, true, tx.StatusINVALID_ACCOUNT_AMOUNTS)
}

func checkTokenTransfers(lists []tx.TokenTransferList, cfg tx.EngineConfig) error {
	seen := make(map[entry.TokenID]bool, len(lists))
	fungible, nfts := 0, 0
	for i := range lists {
		list := &lists[i]
		if seen[list.Token] {
			return tx.Failf(tx.StatusTOKEN_ID_REPEATED_IN_TOKEN_LIST, "token %s", list.Token)
		}
		seen[list.Token] = true
		if list.Token == (entry.TokenID{}) {
			return tx.Failf(tx.StatusINVALID_TOKEN_ID, "missing token id")
		}

		switch {
		case list.IsEmpty():
			return tx.Failf(tx.StatusEMPTY_TOKEN_TRANSFER_ACCOUNT_AMOUNTS, "token %s", list.Token)
		case len(list.Transfers) > 0 && len(list.NftTransfers) > 0:
			return tx.Failf(tx.StatusINVALID_ACCOUNT_AMOUNTS, "token %s mixes fungible and NFT transfers", list.Token)
		}

		if err := checkAccountAmounts(list.Transfers, false, tx.StatusTRANSFERS_NOT_ZERO_SUM_FOR_TOKEN); err != nil {
			return err
		}
		for _, nft := range list.NftTransfers {
			if nft.Serial <= 0 {
				return tx.Failf(tx.StatusINVALID_NFT_ID, "serial %d", nft.Serial)
			}
			if !validReference(nft.SenderID) || !validReference(nft.ReceiverID) {
				return tx.Failf(tx.StatusINVALID_ACCOUNT_ID, "nft %d", nft.Serial)
			}
			if nft.SenderID == nft.ReceiverID {
				return tx.Failf(tx.StatusACCOUNT_REPEATED_IN_ACCOUNT_AMOUNTS, "nft %d sent to its owner", nft.Serial)
			}
		}
		fungible += len(list.Transfers)
		nfts += len(list.NftTransfers)
	}
	if cfg.MaxTokenTransfers > 0 && fungible > cfg.MaxTokenTransfers {
		return tx.Failf(tx.StatusTOKEN_TRANSFER_LIST_SIZE_LIMIT_EXCEEDED, "%d token transfers", fungible)
	}
	if cfg.MaxNftTransfers > 0 && nfts > cfg.MaxNftTransfers {
		return tx.Failf(tx.StatusBATCH_SIZE_LIMIT_EXCEEDED, "%d nft transfers", nfts)
	}
	return nil
}

// checkAccountAmounts rejects repeated accounts and lists that do not net to
// zero. Zero amounts are only allowed in hbar lists.
func checkAccountAmounts(transfers []tx.AccountAmount, allowZero bool, notZeroSum tx.Result) error {
	seen := make(map[entry.AccountID]bool, len(transfers))
	var sum int64
	for _, aa := range transfers {
		if !validReference(aa.AccountID) {
			return tx.Failf(tx.StatusINVALID_ACCOUNT_ID, "missing account id")
		}
		if aa.Amount == 0 && !allowZero {
			return tx.Failf(tx.StatusINVALID_ACCOUNT_AMOUNTS, "zero amount for %s", aa.AccountID)
		}
		if seen[aa.AccountID] {
			return tx.Failf(tx.StatusACCOUNT_REPEATED_IN_ACCOUNT_AMOUNTS, "account %s", aa.AccountID)
		}
		seen[aa.AccountID] = true
		next := sum + aa.Amount
		if (aa.Amount > 0 && next < sum) || (aa.Amount < 0 && next > sum) {
			return tx.Failf(tx.StatusINVALID_ACCOUNT_AMOUNTS, "amounts overflow")
		}
		sum = next
	}
	if sum != 0 {
		return tx.Failf(notZeroSum, "amounts net to %d", sum)
	}
	return nil
}

func validReference(id entry.AccountID) bool {
	return id.HasAlias() || id.Num > 0
}
