package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccountID(t *testing.T) {
	id, err := ParseAccountID("0.0.1001")
	require.NoError(t, err)
	assert.Equal(t, NewAccountID(0, 0, 1001), id)
	assert.False(t, id.HasAlias())

	aliased, err := ParseAccountID("0.0.0x00000000000000000000000000000000000003e9")
	require.NoError(t, err)
	assert.True(t, aliased.HasAlias())
	assert.Len(t, aliased.AliasBytes(), EvmAddressSize)

	_, err = ParseAccountID("0.1001")
	require.Error(t, err)
}

func TestAccountCodecKeepsOptionalFields(t *testing.T) {
	head := NftID{TokenID: NewTokenID(0, 0, 7), Serial: 3}
	acct := &Account{
		ID:                     NewAccountID(0, 0, 1001),
		Key:                    []byte{0x01, 0x02},
		TinybarBalance:         5_000,
		NumberPositiveBalances: 2,
		NumberOwnedNfts:        1,
		MaxAutoAssociations:    UnlimitedAutoAssociations,
		HeadNftID:              &head,
		CryptoAllowances:       []CryptoAllowance{{SpenderID: NewAccountID(0, 0, 1002), Amount: 10}},
	}

	data, err := Marshal(acct)
	require.NoError(t, err)

	var decoded Account
	require.NoError(t, Unmarshal(data, &decoded))
	assert.Equal(t, acct.ID, decoded.ID)
	assert.Equal(t, acct.TinybarBalance, decoded.TinybarBalance)
	require.NotNil(t, decoded.HeadNftID)
	assert.Equal(t, head, *decoded.HeadNftID)
	assert.Equal(t, acct.CryptoAllowances, decoded.CryptoAllowances)
	assert.True(t, decoded.HasUnlimitedAutoAssociations())

	hollow := &Account{ID: NewAccountID(0, 0, 1003)}
	data, err = Marshal(hollow)
	require.NoError(t, err)
	var decodedHollow Account
	require.NoError(t, Unmarshal(data, &decodedHollow))
	assert.True(t, decodedHollow.IsHollow())
	assert.Nil(t, decodedHollow.HeadNftID)
}

func TestMarshalRejectsInvalidEntry(t *testing.T) {
	_, err := Marshal(&Account{ID: NewAliasAccountID(0, 0, []byte{1})})
	require.Error(t, err)
}

func TestCryptoAllowanceRemovedAtZero(t *testing.T) {
	spender := NewAccountID(0, 0, 2)
	acct := &Account{ID: NewAccountID(0, 0, 1)}

	acct.SetCryptoAllowance(spender, 100)
	amount, ok := acct.CryptoAllowance(spender)
	require.True(t, ok)
	assert.Equal(t, int64(100), amount)

	acct.SetCryptoAllowance(spender, 0)
	_, ok = acct.CryptoAllowance(spender)
	assert.False(t, ok)
	assert.Empty(t, acct.CryptoAllowances)
}

func TestTokenAllowanceScopedByToken(t *testing.T) {
	spender := NewAccountID(0, 0, 2)
	tokenA := NewTokenID(0, 0, 10)
	tokenB := NewTokenID(0, 0, 11)
	acct := &Account{ID: NewAccountID(0, 0, 1)}

	acct.SetTokenAllowance(spender, tokenA, 50)
	_, ok := acct.TokenAllowance(spender, tokenB)
	assert.False(t, ok)

	acct.SetTokenAllowance(spender, tokenA, 0)
	assert.Empty(t, acct.TokenAllowances)
}

func TestCustomFeeValidation(t *testing.T) {
	collector := NewAccountID(0, 0, 98)
	tests := []struct {
		name      string
		fee       CustomFee
		tokenType TokenType
		expectErr bool
	}{
		{
			name:      "fixed hbar fee",
			fee:       CustomFee{FeeCollectorID: collector, Fixed: &FixedFee{Amount: 1}},
			tokenType: FungibleCommon,
		},
		{
			name:      "fractional on unique token",
			fee:       CustomFee{FeeCollectorID: collector, Fractional: &FractionalFee{Numerator: 1, Denominator: 10}},
			tokenType: NonFungibleUnique,
			expectErr: true,
		},
		{
			name:      "royalty on unique token",
			fee:       CustomFee{FeeCollectorID: collector, Royalty: &RoyaltyFee{Numerator: 1, Denominator: 2}},
			tokenType: NonFungibleUnique,
		},
		{
			name:      "zero denominator",
			fee:       CustomFee{FeeCollectorID: collector, Fractional: &FractionalFee{Numerator: 1}},
			tokenType: FungibleCommon,
			expectErr: true,
		},
		{
			name:      "min above max",
			fee:       CustomFee{FeeCollectorID: collector, Fractional: &FractionalFee{Numerator: 1, Denominator: 10, MinimumAmount: 5, MaximumAmount: 2}},
			tokenType: FungibleCommon,
			expectErr: true,
		},
		{
			name:      "two kinds set",
			fee:       CustomFee{FeeCollectorID: collector, Fixed: &FixedFee{Amount: 1}, Royalty: &RoyaltyFee{Numerator: 1, Denominator: 2}},
			tokenType: NonFungibleUnique,
			expectErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.fee.Validate(tc.tokenType)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTokenCopyIsDeep(t *testing.T) {
	denom := NewTokenID(0, 0, 5)
	tok := &Token{
		ID:         NewTokenID(0, 0, 4),
		TreasuryID: NewAccountID(0, 0, 2),
		CustomFees: []CustomFee{{FeeCollectorID: NewAccountID(0, 0, 3), Fixed: &FixedFee{Amount: 1, DenominatingTokenID: &denom}}},
	}
	c := tok.Copy()
	c.CustomFees[0].Fixed.DenominatingTokenID.Num = 99
	assert.Equal(t, int64(5), tok.CustomFees[0].Fixed.DenominatingTokenID.Num)
}
