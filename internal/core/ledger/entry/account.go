package entry

import (
	"errors"
)

// UnlimitedAutoAssociations is the MaxAutoAssociations value that removes the
// auto-association ceiling.
const UnlimitedAutoAssociations int32 = -1

// Account represents an account in the ledger
type Account struct {
	ID AccountID `codec:"id"`

	// Key is nil for hollow (lazily created) accounts
	Key        []byte `codec:"key,omitempty"`
	Alias      []byte `codec:"alias,omitempty"`
	EvmAddress []byte `codec:"evm,omitempty"`
	Memo       string `codec:"memo,omitempty"`
	Deleted    bool   `codec:"del,omitempty"`

	TinybarBalance int64 `codec:"bal"`

	// NumberPositiveBalances counts associated fungible relations with balance > 0
	NumberPositiveBalances uint32 `codec:"npb"`
	NumberOwnedNfts        uint32 `codec:"nnft"`
	NumberAssociations     uint32 `codec:"nassoc"`

	MaxAutoAssociations  int32 `codec:"maxauto"`
	UsedAutoAssociations int32 `codec:"usedauto"`

	// HeadNftID is the head of the owner-scoped NFT list
	HeadNftID *NftID `codec:"head,omitempty"`

	CryptoAllowances           []CryptoAllowance `codec:"ca,omitempty"`
	TokenAllowances            []TokenAllowance  `codec:"ta,omitempty"`
	ApproveForAllNftAllowances []NftAllowance    `codec:"na,omitempty"`
}

// CryptoAllowance lets Spender debit hbar from the owning account.
type CryptoAllowance struct {
	SpenderID AccountID `codec:"sp"`
	Amount    int64     `codec:"amt"`
}

// TokenAllowance lets Spender debit units of a fungible token.
type TokenAllowance struct {
	SpenderID AccountID `codec:"sp"`
	TokenID   TokenID   `codec:"tok"`
	Amount    int64     `codec:"amt"`
}

// NftAllowance lets Spender move every serial of a token owned by the account.
type NftAllowance struct {
	SpenderID AccountID `codec:"sp"`
	TokenID   TokenID   `codec:"tok"`
}

func (a *Account) Type() Type {
	return TypeAccount
}

func (a *Account) Validate() error {
	if a.ID.IsZero() || a.ID.HasAlias() {
		return errors.New("account must have a canonical id")
	}
	if a.TinybarBalance < 0 {
		return errors.New("balance cannot be negative")
	}
	if a.MaxAutoAssociations < UnlimitedAutoAssociations {
		return errors.New("max auto associations must be -1 or greater")
	}
	return nil
}

// IsHollow reports whether the account was lazily created without a key.
func (a *Account) IsHollow() bool {
	return len(a.Key) == 0
}

// Copy returns a deep copy so that stores never hand out shared slices.
func (a *Account) Copy() *Account {
	c := *a
	c.Key = cloneBytes(a.Key)
	c.Alias = cloneBytes(a.Alias)
	c.EvmAddress = cloneBytes(a.EvmAddress)
	if a.HeadNftID != nil {
		head := *a.HeadNftID
		c.HeadNftID = &head
	}
	c.CryptoAllowances = append([]CryptoAllowance(nil), a.CryptoAllowances...)
	c.TokenAllowances = append([]TokenAllowance(nil), a.TokenAllowances...)
	c.ApproveForAllNftAllowances = append([]NftAllowance(nil), a.ApproveForAllNftAllowances...)
	return &c
}

// CryptoAllowance returns the hbar allowance granted to spender.
func (a *Account) CryptoAllowance(spender AccountID) (int64, bool) {
	for _, allowance := range a.CryptoAllowances {
		if allowance.SpenderID == spender {
			return allowance.Amount, true
		}
	}
	return 0, false
}

// SetCryptoAllowance replaces the hbar allowance for spender; an amount of
// zero removes the entry.
func (a *Account) SetCryptoAllowance(spender AccountID, amount int64) {
	for i, allowance := range a.CryptoAllowances {
		if allowance.SpenderID != spender {
			continue
		}
		if amount == 0 {
			a.CryptoAllowances = append(a.CryptoAllowances[:i], a.CryptoAllowances[i+1:]...)
		} else {
			a.CryptoAllowances[i].Amount = amount
		}
		return
	}
	if amount != 0 {
		a.CryptoAllowances = append(a.CryptoAllowances, CryptoAllowance{SpenderID: spender, Amount: amount})
	}
}

// TokenAllowance returns the fungible allowance granted to spender for token.
func (a *Account) TokenAllowance(spender AccountID, token TokenID) (int64, bool) {
	for _, allowance := range a.TokenAllowances {
		if allowance.SpenderID == spender && allowance.TokenID == token {
			return allowance.Amount, true
		}
	}
	return 0, false
}

// SetTokenAllowance replaces the fungible allowance for (spender, token); an
// amount of zero removes the entry.
func (a *Account) SetTokenAllowance(spender AccountID, token TokenID, amount int64) {
	for i, allowance := range a.TokenAllowances {
		if allowance.SpenderID != spender || allowance.TokenID != token {
			continue
		}
		if amount == 0 {
			a.TokenAllowances = append(a.TokenAllowances[:i], a.TokenAllowances[i+1:]...)
		} else {
			a.TokenAllowances[i].Amount = amount
		}
		return
	}
	if amount != 0 {
		a.TokenAllowances = append(a.TokenAllowances, TokenAllowance{SpenderID: spender, TokenID: token, Amount: amount})
	}
}

// HasApproveForAll reports whether spender may move any serial of token.
func (a *Account) HasApproveForAll(spender AccountID, token TokenID) bool {
	for _, allowance := range a.ApproveForAllNftAllowances {
		if allowance.SpenderID == spender && allowance.TokenID == token {
			return true
		}
	}
	return false
}

// HasUnlimitedAutoAssociations reports whether the account accepts any number
// of automatic associations.
func (a *Account) HasUnlimitedAutoAssociations() bool {
	return a.MaxAutoAssociations == UnlimitedAutoAssociations
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
