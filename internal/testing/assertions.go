package testing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
)

// RequireSuccess asserts that a transfer was applied.
func RequireSuccess(t *testing.T, result tx.ApplyResult) {
	t.Helper()
	require.True(t, result.Applied,
		"Expected transfer success, got %s: %s", result.Result, result.Message)
	require.Equal(t, tx.StatusSUCCESS, result.Result)
	require.NotNil(t, result.Record)
}

// RequireStatus asserts that a transfer failed with the expected status.
func RequireStatus(t *testing.T, result tx.ApplyResult, expected tx.Result) {
	t.Helper()
	require.False(t, result.Applied,
		"Expected transfer failure with %s, but transfer succeeded", expected)
	require.Equal(t, expected, result.Result,
		"Expected status %s, got %s: %s", expected, result.Result, result.Message)
	require.Nil(t, result.Record)
}

// RequireUnchanged asserts that state equals a snapshot taken earlier.
func RequireUnchanged(t *testing.T, env *TestEnv, before map[[32]byte][]byte) {
	t.Helper()
	require.Equal(t, before, env.Snapshot(), "state changed")
}

// RequireZeroSum asserts that every level nets to zero in hbar and in every
// fungible token.
func RequireZeroSum(t *testing.T, levels []*tx.TransferOperation) {
	t.Helper()
	for i, level := range levels {
		var hbar int64
		for _, aa := range level.HbarTransfers {
			hbar += aa.Amount
		}
		require.Zero(t, hbar, "level %d hbar does not net to zero", i)
		for _, list := range level.TokenTransfers {
			var units int64
			for _, aa := range list.Transfers {
				units += aa.Amount
			}
			require.Zero(t, units, "level %d token %s does not net to zero", i, list.Token)
		}
	}
}

// RequireCountersConsistent asserts that acc's positive-balance count matches
// its relationships in tokens and that its owned-NFT count matches the
// length of its owned list.
func RequireCountersConsistent(t *testing.T, env *TestEnv, acc *Account, tokens ...entry.TokenID) {
	t.Helper()
	account := env.Account(acc)

	positive := uint32(0)
	for _, token := range tokens {
		if rel := env.Relation(acc, token); rel != nil && rel.Balance > 0 {
			positive++
		}
	}
	require.Equal(t, positive, account.NumberPositiveBalances,
		"Account %s positive balance count mismatch", acc.Name)

	owned := OwnedNfts(t, env, acc)
	require.Equal(t, int(account.NumberOwnedNfts), len(owned),
		"Account %s owned NFT count mismatch", acc.Name)
}

// OwnedNfts walks acc's owned list from its head, asserting that every link
// is symmetric and every serial is owned by acc.
func OwnedNfts(t *testing.T, env *TestEnv, acc *Account) []entry.NftID {
	t.Helper()
	var out []entry.NftID
	var prev *entry.NftID
	for cur := env.Account(acc).HeadNftID; cur != nil; {
		nft := env.Nft(*cur)
		require.Equal(t, acc.ID, nft.OwnerID, "nft %s in %s's list has another owner", nft.ID, acc.Name)
		require.Equal(t, prev, nft.OwnerPreviousNftID, "nft %s has a broken back link", nft.ID)
		out = append(out, nft.ID)
		require.LessOrEqual(t, len(out), 1<<16, "owned list of %s does not terminate", acc.Name)
		id := nft.ID
		prev = &id
		cur = nft.OwnerNextNftID
	}
	return out
}
