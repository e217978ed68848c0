package tx

import (
	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
)

// AliasResolution records the account an alias stood for.
type AliasResolution struct {
	Alias     []byte
	AccountID entry.AccountID
}

// AssessedCustomFee itemizes one custom fee charged by a transfer.
type AssessedCustomFee struct {
	CollectorID entry.AccountID
	Amount      int64
	// TokenID is nil for fees paid in hbar
	TokenID         *entry.TokenID
	EffectivePayers []entry.AccountID
}

// Record is the externally visible result of a transfer.
type Record struct {
	Status             Result
	AutoCreations      int
	LazyCreations      int
	Resolutions        []AliasResolution
	AssessedCustomFees []AssessedCustomFee
	// Levels are the operations applied, level 0 first
	Levels []*TransferOperation
}

// ResolvedAlias returns the account recorded for alias.
func (r *Record) ResolvedAlias(alias []byte) (entry.AccountID, bool) {
	for _, res := range r.Resolutions {
		if string(res.Alias) == string(alias) {
			return res.AccountID, true
		}
	}
	return entry.AccountID{}, false
}
