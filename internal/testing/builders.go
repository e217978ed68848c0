package testing

import (
	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
)

// TransferBuilder provides a fluent interface for building transfers.
type TransferBuilder struct {
	op tx.TransferOperation
}

// NewTransfer starts an empty transfer.
func NewTransfer() *TransferBuilder {
	return &TransferBuilder{}
}

// Hbar adds an hbar adjustment.
func (b *TransferBuilder) Hbar(id entry.AccountID, amount int64) *TransferBuilder {
	b.op.HbarTransfers = append(b.op.HbarTransfers, tx.AccountAmount{AccountID: id, Amount: amount})
	return b
}

// ApprovedHbar adds an hbar debit authorized by an allowance.
func (b *TransferBuilder) ApprovedHbar(id entry.AccountID, amount int64) *TransferBuilder {
	b.op.HbarTransfers = append(b.op.HbarTransfers, tx.AccountAmount{AccountID: id, Amount: amount, IsApproval: true})
	return b
}

func (b *TransferBuilder) list(token entry.TokenID) *tx.TokenTransferList {
	if list := b.op.TokenList(token); list != nil {
		return list
	}
	b.op.TokenTransfers = append(b.op.TokenTransfers, tx.TokenTransferList{Token: token})
	return &b.op.TokenTransfers[len(b.op.TokenTransfers)-1]
}

// Token adds a fungible adjustment.
func (b *TransferBuilder) Token(token entry.TokenID, id entry.AccountID, amount int64) *TransferBuilder {
	list := b.list(token)
	list.Transfers = append(list.Transfers, tx.AccountAmount{AccountID: id, Amount: amount})
	return b
}

// ApprovedToken adds a fungible debit authorized by an allowance.
func (b *TransferBuilder) ApprovedToken(token entry.TokenID, id entry.AccountID, amount int64) *TransferBuilder {
	list := b.list(token)
	list.Transfers = append(list.Transfers, tx.AccountAmount{AccountID: id, Amount: amount, IsApproval: true})
	return b
}

// ExpectDecimals declares the decimals token is expected to have.
func (b *TransferBuilder) ExpectDecimals(token entry.TokenID, decimals uint32) *TransferBuilder {
	b.list(token).ExpectedDecimals = &decimals
	return b
}

// Nft adds an NFT move.
func (b *TransferBuilder) Nft(token entry.TokenID, sender, receiver entry.AccountID, serial int64) *TransferBuilder {
	list := b.list(token)
	list.NftTransfers = append(list.NftTransfers, tx.NftTransfer{SenderID: sender, ReceiverID: receiver, Serial: serial})
	return b
}

// ApprovedNft adds an NFT move authorized by an allowance.
func (b *TransferBuilder) ApprovedNft(token entry.TokenID, sender, receiver entry.AccountID, serial int64) *TransferBuilder {
	list := b.list(token)
	list.NftTransfers = append(list.NftTransfers, tx.NftTransfer{SenderID: sender, ReceiverID: receiver, Serial: serial, IsApproval: true})
	return b
}

// Build returns the transfer operation.
func (b *TransferBuilder) Build() *tx.TransferOperation {
	return b.op.Copy()
}

// FixedHbarFee builds a fixed fee of amount tinybars.
func FixedHbarFee(amount int64, collector *Account) entry.CustomFee {
	return entry.CustomFee{
		FeeCollectorID: collector.ID,
		Fixed:          &entry.FixedFee{Amount: amount},
	}
}

// FixedTokenFee builds a fixed fee of amount units of denom.
func FixedTokenFee(amount int64, denom entry.TokenID, collector *Account) entry.CustomFee {
	return entry.CustomFee{
		FeeCollectorID: collector.ID,
		Fixed:          &entry.FixedFee{Amount: amount, DenominatingTokenID: &denom},
	}
}

// FractionalFee builds a fractional fee of numerator/denominator bounded by
// min and max.
func FractionalFee(numerator, denominator, min, max int64, netOfTransfers bool, collector *Account) entry.CustomFee {
	return entry.CustomFee{
		FeeCollectorID: collector.ID,
		Fractional: &entry.FractionalFee{
			Numerator:      numerator,
			Denominator:    denominator,
			MinimumAmount:  min,
			MaximumAmount:  max,
			NetOfTransfers: netOfTransfers,
		},
	}
}

// RoyaltyFee builds a royalty fee with an optional fallback.
func RoyaltyFee(numerator, denominator int64, fallback *entry.FixedFee, collector *Account) entry.CustomFee {
	return entry.CustomFee{
		FeeCollectorID: collector.ID,
		Royalty: &entry.RoyaltyFee{
			Numerator:   numerator,
			Denominator: denominator,
			FallbackFee: fallback,
		},
	}
}
