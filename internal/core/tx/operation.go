package tx

import (
	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
)

// AccountAmount is a signed tinybar or token-unit delta for one account.
type AccountAmount struct {
	AccountID entry.AccountID
	Amount    int64
	// IsApproval marks a debit authorized by an allowance granted to the payer
	IsApproval bool
}

// IsDebit reports whether the amount leaves the account.
func (aa AccountAmount) IsDebit() bool {
	return aa.Amount < 0
}

// NftTransfer moves one serial of a unique token.
type NftTransfer struct {
	SenderID   entry.AccountID
	ReceiverID entry.AccountID
	Serial     int64
	IsApproval bool
}

// TokenTransferList holds either fungible transfers or NFT transfers for a
// single token.
type TokenTransferList struct {
	Token            entry.TokenID
	Transfers        []AccountAmount
	NftTransfers     []NftTransfer
	ExpectedDecimals *uint32
}

// IsEmpty reports whether the list moves nothing.
func (l *TokenTransferList) IsEmpty() bool {
	return len(l.Transfers) == 0 && len(l.NftTransfers) == 0
}

// TransferOperation is one level of a crypto transfer: the user's operation
// at level 0, custom fee charges above it.
type TransferOperation struct {
	HbarTransfers  []AccountAmount
	TokenTransfers []TokenTransferList
}

// IsEmpty reports whether the operation moves nothing.
func (op *TransferOperation) IsEmpty() bool {
	if len(op.HbarTransfers) > 0 {
		return false
	}
	for i := range op.TokenTransfers {
		if !op.TokenTransfers[i].IsEmpty() {
			return false
		}
	}
	return true
}

// TokenList returns the transfer list for token, or nil.
func (op *TransferOperation) TokenList(token entry.TokenID) *TokenTransferList {
	for i := range op.TokenTransfers {
		if op.TokenTransfers[i].Token == token {
			return &op.TokenTransfers[i]
		}
	}
	return nil
}

// BalanceChanges counts the hbar and fungible adjustments. NFT moves are
// bounded separately.
func (op *TransferOperation) BalanceChanges() int {
	n := len(op.HbarTransfers)
	for i := range op.TokenTransfers {
		n += len(op.TokenTransfers[i].Transfers)
	}
	return n
}

// Copy returns a deep copy of the operation.
func (op *TransferOperation) Copy() *TransferOperation {
	c := &TransferOperation{
		HbarTransfers: append([]AccountAmount(nil), op.HbarTransfers...),
	}
	if op.TokenTransfers != nil {
		c.TokenTransfers = make([]TokenTransferList, len(op.TokenTransfers))
	}
	for i, list := range op.TokenTransfers {
		c.TokenTransfers[i] = TokenTransferList{
			Token:        list.Token,
			Transfers:    append([]AccountAmount(nil), list.Transfers...),
			NftTransfers: append([]NftTransfer(nil), list.NftTransfers...),
		}
		if list.ExpectedDecimals != nil {
			decimals := *list.ExpectedDecimals
			c.TokenTransfers[i].ExpectedDecimals = &decimals
		}
	}
	return c
}
