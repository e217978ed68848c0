package entry

import (
	"errors"
)

// CustomFee is a fee charged on top of a token transfer. Exactly one of
// Fixed, Fractional and Royalty is set.
type CustomFee struct {
	FeeCollectorID         AccountID `codec:"collector"`
	AllCollectorsAreExempt bool      `codec:"exempt,omitempty"`

	Fixed      *FixedFee      `codec:"fixed,omitempty"`
	Fractional *FractionalFee `codec:"fractional,omitempty"`
	Royalty    *RoyaltyFee    `codec:"royalty,omitempty"`
}

// FixedFee charges a flat amount in hbar (DenominatingTokenID == nil) or in a
// fungible token.
type FixedFee struct {
	Amount              int64    `codec:"amt"`
	DenominatingTokenID *TokenID `codec:"denom,omitempty"`
}

// FractionalFee charges a fraction of the units transferred, clamped to
// [MinimumAmount, MaximumAmount]. A zero MaximumAmount means no ceiling.
type FractionalFee struct {
	Numerator      int64 `codec:"num"`
	Denominator    int64 `codec:"den"`
	MinimumAmount  int64 `codec:"min,omitempty"`
	MaximumAmount  int64 `codec:"max,omitempty"`
	NetOfTransfers bool  `codec:"net,omitempty"`
}

// RoyaltyFee charges a fraction of the value exchanged for an NFT, or the
// fallback fee when nothing was exchanged.
type RoyaltyFee struct {
	Numerator   int64     `codec:"num"`
	Denominator int64     `codec:"den"`
	FallbackFee *FixedFee `codec:"fallback,omitempty"`
}

// IsHbar reports whether the fee is denominated in hbar.
func (f *FixedFee) IsHbar() bool {
	return f.DenominatingTokenID == nil
}

// Validate checks the fee against the type of the token it is attached to.
func (f *CustomFee) Validate(tokenType TokenType) error {
	set := 0
	if f.Fixed != nil {
		set++
	}
	if f.Fractional != nil {
		set++
	}
	if f.Royalty != nil {
		set++
	}
	if set != 1 {
		return errors.New("exactly one fee kind must be set")
	}
	if f.FeeCollectorID.IsZero() || f.FeeCollectorID.HasAlias() {
		return errors.New("fee collector must be a canonical account id")
	}
	switch {
	case f.Fixed != nil:
		if f.Fixed.Amount <= 0 {
			return errors.New("fixed fee amount must be positive")
		}
	case f.Fractional != nil:
		if tokenType != FungibleCommon {
			return errors.New("fractional fees are only allowed on fungible tokens")
		}
		if err := validateFraction(f.Fractional.Numerator, f.Fractional.Denominator); err != nil {
			return err
		}
		if f.Fractional.MinimumAmount < 0 || f.Fractional.MaximumAmount < 0 {
			return errors.New("fractional fee bounds must be non-negative")
		}
		if f.Fractional.MaximumAmount > 0 && f.Fractional.MinimumAmount > f.Fractional.MaximumAmount {
			return errors.New("fractional fee minimum exceeds maximum")
		}
	case f.Royalty != nil:
		if tokenType != NonFungibleUnique {
			return errors.New("royalty fees are only allowed on unique tokens")
		}
		if err := validateFraction(f.Royalty.Numerator, f.Royalty.Denominator); err != nil {
			return err
		}
		if f.Royalty.FallbackFee != nil && f.Royalty.FallbackFee.Amount <= 0 {
			return errors.New("fallback fee amount must be positive")
		}
	}
	return nil
}

func validateFraction(num, den int64) error {
	if den == 0 {
		return errors.New("fraction denominator cannot be zero")
	}
	if num <= 0 || den < 0 || num > den {
		return errors.New("fraction must be in (0, 1]")
	}
	return nil
}

// Copy returns a deep copy.
func (f CustomFee) Copy() CustomFee {
	c := f
	if f.Fixed != nil {
		fixed := f.Fixed.copy()
		c.Fixed = &fixed
	}
	if f.Fractional != nil {
		fractional := *f.Fractional
		c.Fractional = &fractional
	}
	if f.Royalty != nil {
		royalty := *f.Royalty
		if f.Royalty.FallbackFee != nil {
			fallback := f.Royalty.FallbackFee.copy()
			royalty.FallbackFee = &fallback
		}
		c.Royalty = &royalty
	}
	return c
}

func (f FixedFee) copy() FixedFee {
	if f.DenominatingTokenID != nil {
		denom := *f.DenominatingTokenID
		f.DenominatingTokenID = &denom
	}
	return f
}
