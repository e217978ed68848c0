package entry

import (
	"errors"
	"fmt"
)

// TokenType distinguishes fungible tokens from unique (NFT) tokens.
type TokenType uint8

const (
	FungibleCommon TokenType = iota
	NonFungibleUnique
)

func (t TokenType) String() string {
	switch t {
	case FungibleCommon:
		return "FUNGIBLE_COMMON"
	case NonFungibleUnique:
		return "NON_FUNGIBLE_UNIQUE"
	default:
		return fmt.Sprintf("TokenType(%d)", uint8(t))
	}
}

// Token represents a token definition
type Token struct {
	ID         TokenID   `codec:"id"`
	TokenType  TokenType `codec:"type"`
	Symbol     string    `codec:"sym,omitempty"`
	Decimals   uint32    `codec:"dec"`
	TreasuryID AccountID `codec:"treasury"`

	KycKey                  []byte `codec:"kyc,omitempty"`
	FreezeKey               []byte `codec:"frz,omitempty"`
	AccountsFrozenByDefault bool   `codec:"frzdef,omitempty"`
	Paused                  bool   `codec:"paused,omitempty"`
	Deleted                 bool   `codec:"del,omitempty"`

	TotalSupply int64       `codec:"supply"`
	CustomFees  []CustomFee `codec:"fees,omitempty"`
}

func (t *Token) Type() Type {
	return TypeToken
}

func (t *Token) Validate() error {
	if t.ID == (TokenID{}) {
		return errors.New("token ID is required")
	}
	if t.TreasuryID.IsZero() || t.TreasuryID.HasAlias() {
		return errors.New("token treasury must be a canonical account id")
	}
	if t.TokenType == NonFungibleUnique && t.Decimals != 0 {
		return errors.New("unique tokens cannot have decimals")
	}
	for i := range t.CustomFees {
		if err := t.CustomFees[i].Validate(t.TokenType); err != nil {
			return fmt.Errorf("custom fee %d: %w", i, err)
		}
	}
	return nil
}

// HasKycKey reports whether relations must be granted KYC explicitly.
func (t *Token) HasKycKey() bool {
	return len(t.KycKey) > 0
}

// HasFreezeKey reports whether relations can be frozen.
func (t *Token) HasFreezeKey() bool {
	return len(t.FreezeKey) > 0
}

// IsFungible reports whether the token is fungible.
func (t *Token) IsFungible() bool {
	return t.TokenType == FungibleCommon
}

// Copy returns a deep copy.
func (t *Token) Copy() *Token {
	c := *t
	c.KycKey = cloneBytes(t.KycKey)
	c.FreezeKey = cloneBytes(t.FreezeKey)
	c.CustomFees = make([]CustomFee, len(t.CustomFees))
	for i := range t.CustomFees {
		c.CustomFees[i] = t.CustomFees[i].Copy()
	}
	return &c
}

// IsFeeCollector reports whether account collects any of this token's fees.
func (t *Token) IsFeeCollector(account AccountID) bool {
	for i := range t.CustomFees {
		if t.CustomFees[i].FeeCollectorID == account {
			return true
		}
	}
	return false
}
