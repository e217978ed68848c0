package transfer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
	hederaTesting "github.com/LeJamon/goHederad/internal/testing"
)

func sendTokens(env *hederaTesting.TestEnv, token entry.TokenID, from, to *hederaTesting.Account, amount int64) tx.ApplyResult {
	return env.Transfer(from, hederaTesting.NewTransfer().
		Token(token, from.ID, -amount).
		Token(token, to.ID, amount).
		Build())
}

// TestAutoAssociationBudget uses up a receiver's automatic association
// slots.
func TestAutoAssociationBudget(t *testing.T) {
	env := hederaTesting.NewTestEnv(t)
	treasury := env.CreateAccount("treasury", 0)
	first := env.CreateFungibleToken("ONE", treasury, 1_000)
	second := env.CreateFungibleToken("TWO", treasury, 1_000)
	receiver := env.CreateAccount("receiver", 0)

	hederaTesting.RequireStatus(t, sendTokens(env, first, treasury, receiver, 10), tx.StatusTOKEN_NOT_ASSOCIATED_TO_ACCOUNT)

	env.SetMaxAutoAssociations(receiver, 1)
	hederaTesting.RequireSuccess(t, sendTokens(env, first, treasury, receiver, 10))
	account := env.Account(receiver)
	require.Equal(t, int32(1), account.UsedAutoAssociations)
	require.Equal(t, uint32(1), account.NumberAssociations)
	require.True(t, env.Relation(receiver, first).AutomaticAssociation)

	require.Equal(t, uint32(1), account.NumberPositiveBalances)

	// A second transfer of the same token does not use another slot.
	hederaTesting.RequireSuccess(t, sendTokens(env, first, treasury, receiver, 10))
	account = env.Account(receiver)
	require.Equal(t, int32(1), account.UsedAutoAssociations)
	require.Equal(t, uint32(1), account.NumberAssociations)
	require.Equal(t, uint32(1), account.NumberPositiveBalances)
	require.Equal(t, int64(20), env.TokenBalance(receiver, first))
	hederaTesting.RequireCountersConsistent(t, env, receiver, first, second)

	hederaTesting.RequireStatus(t, sendTokens(env, second, treasury, receiver, 10), tx.StatusNO_REMAINING_AUTOMATIC_ASSOCIATIONS)
	require.Nil(t, env.Relation(receiver, second))
}

// TestUnlimitedAutoAssociations honours -1 only while the feature is on.
func TestUnlimitedAutoAssociations(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		env := hederaTesting.NewTestEnv(t, hederaTesting.WithConfig(func(cfg *tx.EngineConfig) {
			cfg.UnlimitedAutoAssociationsEnabled = enabled
		}))
		treasury := env.CreateAccount("treasury", 0)
		token := env.CreateFungibleToken("TOK", treasury, 1_000)
		receiver := env.CreateAccount("receiver", 0)
		env.SetMaxAutoAssociations(receiver, entry.UnlimitedAutoAssociations)

		result := sendTokens(env, token, treasury, receiver, 10)
		if enabled {
			hederaTesting.RequireSuccess(t, result)
		} else {
			hederaTesting.RequireStatus(t, result, tx.StatusTOKEN_NOT_ASSOCIATED_TO_ACCOUNT)
		}
	}
}

// TestTokensPerAccountLimit caps the associations of a single account.
func TestTokensPerAccountLimit(t *testing.T) {
	env := hederaTesting.NewTestEnv(t, hederaTesting.WithConfig(func(cfg *tx.EngineConfig) {
		cfg.LimitTokenAssociations = true
		cfg.MaxTokensPerAccount = 1
	}))
	treasury := env.CreateAccount("treasury", 0)
	first := env.CreateFungibleToken("ONE", treasury, 1_000)
	second := env.CreateFungibleToken("TWO", treasury, 1_000)
	receiver := env.CreateAccount("receiver", 0)
	env.SetMaxAutoAssociations(receiver, entry.UnlimitedAutoAssociations)
	env.Associate(receiver, first)

	hederaTesting.RequireStatus(t, sendTokens(env, second, treasury, receiver, 10), tx.StatusTOKENS_PER_ACCOUNT_LIMIT_EXCEEDED)
}

// TestSenderMustBeAssociated never associates the debited side.
func TestSenderMustBeAssociated(t *testing.T) {
	env := hederaTesting.NewTestEnv(t)
	treasury := env.CreateAccount("treasury", 0)
	token := env.CreateFungibleToken("TOK", treasury, 1_000)
	stranger := env.CreateAccount("stranger", 0)
	env.SetMaxAutoAssociations(stranger, entry.UnlimitedAutoAssociations)

	result := env.Transfer(stranger, hederaTesting.NewTransfer().
		Token(token, stranger.ID, -1).
		Token(token, treasury.ID, 1).
		Build())
	hederaTesting.RequireStatus(t, result, tx.StatusTOKEN_NOT_ASSOCIATED_TO_ACCOUNT)
	require.Nil(t, env.Relation(stranger, token))
}

// TestAutoAssociationInheritsTokenDefaults creates relationships with the
// token's KYC and freeze defaults, which then block the credit.
func TestAutoAssociationInheritsTokenDefaults(t *testing.T) {
	tests := []struct {
		name     string
		opt      hederaTesting.TokenOption
		expected tx.Result
	}{
		{name: "kyc key", opt: hederaTesting.WithKycKey(), expected: tx.StatusACCOUNT_KYC_NOT_GRANTED_FOR_TOKEN},
		{name: "frozen by default", opt: hederaTesting.WithFrozenByDefault(), expected: tx.StatusACCOUNT_FROZEN_FOR_TOKEN},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := hederaTesting.NewTestEnv(t)
			treasury := env.CreateAccount("treasury", 0)
			token := env.CreateFungibleToken("TOK", treasury, 1_000, tc.opt)
			receiver := env.CreateAccount("receiver", 0)
			env.SetMaxAutoAssociations(receiver, 1)

			hederaTesting.RequireStatus(t, sendTokens(env, token, treasury, receiver, 10), tc.expected)
			require.Nil(t, env.Relation(receiver, token))
		})
	}
}

// TestTransferLogsRejection records rejected transfers at debug level.
func TestTransferLogsRejection(t *testing.T) {
	env := hederaTesting.NewTestEnv(t)
	treasury := env.CreateAccount("treasury", 0)
	token := env.CreateFungibleToken("TOK", treasury, 1_000)
	receiver := env.CreateAccount("receiver", 0)

	hederaTesting.RequireStatus(t, sendTokens(env, token, treasury, receiver, 10), tx.StatusTOKEN_NOT_ASSOCIATED_TO_ACCOUNT)
	last := env.LogHook.LastEntry()
	require.NotNil(t, last)
	require.Equal(t, "transfer rejected", last.Message)
	require.Equal(t, tx.StatusTOKEN_NOT_ASSOCIATED_TO_ACCOUNT.String(), last.Data["status"])
}
