package customfee

import (
	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
)

// level accumulates the transfers of one fee level. Adjustments to an
// account already present are merged into its entry and keep its approval
// flag; new entries are plain debits or credits.
type level struct {
	hbar   []tx.AccountAmount
	tokens []*tokenLevel
}

type tokenLevel struct {
	token            entry.TokenID
	transfers        []tx.AccountAmount
	nfts             []tx.NftTransfer
	expectedDecimals *uint32
	// reassess marks debits that are charges of another token's fee and
	// must have this token's own fees assessed on them
	reassess map[entry.AccountID]bool
}

func newLevel() *level {
	return &level{}
}

func levelFrom(op *tx.TransferOperation) *level {
	c := op.Copy()
	l := &level{hbar: c.HbarTransfers}
	for i := range c.TokenTransfers {
		list := c.TokenTransfers[i]
		l.tokens = append(l.tokens, &tokenLevel{
			token:            list.Token,
			transfers:        list.Transfers,
			nfts:             list.NftTransfers,
			expectedDecimals: list.ExpectedDecimals,
			reassess:         make(map[entry.AccountID]bool),
		})
	}
	return l
}

func (l *level) tokenLevel(token entry.TokenID) *tokenLevel {
	for _, tl := range l.tokens {
		if tl.token == token {
			return tl
		}
	}
	tl := &tokenLevel{token: token, reassess: make(map[entry.AccountID]bool)}
	l.tokens = append(l.tokens, tl)
	return tl
}

func (l *level) adjustHbar(id entry.AccountID, amount int64) error {
	merged, err := mergeAmount(l.hbar, id, amount)
	if err != nil {
		return err
	}
	l.hbar = merged
	return nil
}

func (l *level) adjustToken(token entry.TokenID, id entry.AccountID, amount int64, reassess bool) error {
	tl := l.tokenLevel(token)
	merged, err := mergeAmount(tl.transfers, id, amount)
	if err != nil {
		return err
	}
	tl.transfers = merged
	if reassess {
		tl.reassess[id] = true
	}
	return nil
}

// amountOf returns the net adjustment of id in list.
func amountOf(list []tx.AccountAmount, id entry.AccountID) int64 {
	for _, aa := range list {
		if aa.AccountID == id {
			return aa.Amount
		}
	}
	return 0
}

func mergeAmount(list []tx.AccountAmount, id entry.AccountID, amount int64) ([]tx.AccountAmount, error) {
	for i := range list {
		if list[i].AccountID != id {
			continue
		}
		sum, err := addExact(list[i].Amount, amount)
		if err != nil {
			return nil, err
		}
		list[i].Amount = sum
		return list, nil
	}
	return append(list, tx.AccountAmount{AccountID: id, Amount: amount}), nil
}

func (l *level) isEmpty() bool {
	for _, aa := range l.hbar {
		if aa.Amount != 0 {
			return false
		}
	}
	for _, tl := range l.tokens {
		if len(tl.nfts) > 0 {
			return false
		}
		for _, aa := range tl.transfers {
			if aa.Amount != 0 {
				return false
			}
		}
	}
	return true
}

// build freezes the level, dropping entries that netted to zero.
func (l *level) build() *tx.TransferOperation {
	op := &tx.TransferOperation{HbarTransfers: nonZero(l.hbar)}
	for _, tl := range l.tokens {
		list := tx.TokenTransferList{
			Token:            tl.token,
			Transfers:        nonZero(tl.transfers),
			NftTransfers:     append([]tx.NftTransfer(nil), tl.nfts...),
			ExpectedDecimals: tl.expectedDecimals,
		}
		if list.IsEmpty() {
			continue
		}
		op.TokenTransfers = append(op.TokenTransfers, list)
	}
	return op
}

func nonZero(list []tx.AccountAmount) []tx.AccountAmount {
	var out []tx.AccountAmount
	for _, aa := range list {
		if aa.Amount != 0 {
			out = append(out, aa)
		}
	}
	return out
}
