package transfer

import (
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
	transferSteps "github.com/LeJamon/goHederad/internal/core/tx/transfer"
	hederaTesting "github.com/LeJamon/goHederad/internal/testing"
)

func serials(ids []entry.NftID) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = id.Serial
	}
	return out
}

// nftSetup mints serials 1, 2 and 3 to owner and serial 4 to receiver.
func nftSetup(t *testing.T, opts ...hederaTesting.TokenOption) (*hederaTesting.TestEnv, entry.TokenID, *hederaTesting.Account, *hederaTesting.Account) {
	t.Helper()
	env := hederaTesting.NewTestEnv(t)
	treasury := env.CreateAccount("treasury", 0)
	token := env.CreateNftToken("NFT", treasury, opts...)
	owner := env.CreateAccount("owner", 1_000)
	receiver := env.CreateAccount("receiver", 1_000)
	for serial := int64(1); serial <= 3; serial++ {
		env.MintNft(token, owner, serial)
	}
	env.MintNft(token, receiver, 4)
	return env, token, owner, receiver
}

// TestNftMoveRelinksOwnerLists moves a serial from the middle of one owner
// list to the head of another.
func TestNftMoveRelinksOwnerLists(t *testing.T) {
	env, token, owner, receiver := nftSetup(t)
	require.Equal(t, []int64{3, 2, 1}, serials(hederaTesting.OwnedNfts(t, env, owner)))

	result := env.Transfer(owner, hederaTesting.NewTransfer().
		Nft(token, owner.ID, receiver.ID, 2).
		Build())
	hederaTesting.RequireSuccess(t, result)

	require.Equal(t, []int64{3, 1}, serials(hederaTesting.OwnedNfts(t, env, owner)))
	require.Equal(t, []int64{2, 4}, serials(hederaTesting.OwnedNfts(t, env, receiver)))
	require.Equal(t, receiver.ID, env.Nft(entry.NftID{TokenID: token, Serial: 2}).OwnerID)
	require.Equal(t, int64(2), env.TokenBalance(owner, token))
	require.Equal(t, int64(2), env.TokenBalance(receiver, token))
	hederaTesting.RequireCountersConsistent(t, env, owner, token)
	hederaTesting.RequireCountersConsistent(t, env, receiver, token)
}

// TestNftMoveHeadAndTail moves both ends of a list in one transfer.
func TestNftMoveHeadAndTail(t *testing.T) {
	env, token, owner, receiver := nftSetup(t)

	hederaTesting.RequireSuccess(t, env.Transfer(owner, hederaTesting.NewTransfer().
		Nft(token, owner.ID, receiver.ID, 3).
		Nft(token, owner.ID, receiver.ID, 1).
		Build()))

	require.Equal(t, []int64{2}, serials(hederaTesting.OwnedNfts(t, env, owner)))
	require.Equal(t, []int64{1, 3, 4}, serials(hederaTesting.OwnedNfts(t, env, receiver)))
	hederaTesting.RequireCountersConsistent(t, env, owner, token)
	hederaTesting.RequireCountersConsistent(t, env, receiver, token)
}

// TestNftMoveEverything empties the sender's list and positive balance.
func TestNftMoveEverything(t *testing.T) {
	env, token, owner, receiver := nftSetup(t)

	hederaTesting.RequireSuccess(t, env.Transfer(owner, hederaTesting.NewTransfer().
		Nft(token, owner.ID, receiver.ID, 1).
		Nft(token, owner.ID, receiver.ID, 2).
		Nft(token, owner.ID, receiver.ID, 3).
		Build()))

	account := env.Account(owner)
	require.Nil(t, account.HeadNftID)
	require.Zero(t, account.NumberOwnedNfts)
	require.Zero(t, account.NumberPositiveBalances)
	require.Len(t, hederaTesting.OwnedNfts(t, env, receiver), 4)
	hederaTesting.RequireCountersConsistent(t, env, receiver, token)
}

// TestNftOwnershipErrors covers serials the sender cannot move.
func TestNftOwnershipErrors(t *testing.T) {
	tests := []struct {
		name     string
		serial   int64
		expected tx.Result
	}{
		{name: "serial owned by receiver", serial: 4, expected: tx.StatusSENDER_DOES_NOT_OWN_NFT_SERIAL_NO},
		{name: "serial never minted", serial: 99, expected: tx.StatusINVALID_NFT_ID},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env, token, owner, _ := nftSetup(t)
			other := env.CreateAccount("other", 0)
			env.Associate(other, token)
			before := env.Snapshot()

			result := env.Transfer(owner, hederaTesting.NewTransfer().
				Nft(token, owner.ID, other.ID, tc.serial).
				Build())
			hederaTesting.RequireStatus(t, result, tc.expected)
			hederaTesting.RequireUnchanged(t, env, before)
		})
	}
}

// TestNftApprovals moves serials on the owner's behalf.
func TestNftApprovals(t *testing.T) {
	t.Run("approved spender", func(t *testing.T) {
		env, token, owner, receiver := nftSetup(t)
		spender := env.CreateAccount("spender", 0)
		id := entry.NftID{TokenID: token, Serial: 1}
		env.ApproveNft(id, spender)

		hederaTesting.RequireSuccess(t, env.Transfer(spender, hederaTesting.NewTransfer().
			ApprovedNft(token, owner.ID, receiver.ID, 1).
			Build()))
		nft := env.Nft(id)
		require.Equal(t, receiver.ID, nft.OwnerID)
		require.Nil(t, nft.SpenderID, "the approval must not survive the move")
	})

	t.Run("payer is not the spender", func(t *testing.T) {
		env, token, owner, receiver := nftSetup(t)
		spender := env.CreateAccount("spender", 0)
		stranger := env.CreateAccount("stranger", 0)
		env.ApproveNft(entry.NftID{TokenID: token, Serial: 1}, spender)

		result := env.Transfer(stranger, hederaTesting.NewTransfer().
			ApprovedNft(token, owner.ID, receiver.ID, 1).
			Build())
		hederaTesting.RequireStatus(t, result, tx.StatusSPENDER_DOES_NOT_HAVE_ALLOWANCE)
	})

	t.Run("approve for all", func(t *testing.T) {
		env, token, owner, receiver := nftSetup(t)
		operator := env.CreateAccount("operator", 0)
		env.GrantApproveForAll(owner, operator, token)

		hederaTesting.RequireSuccess(t, env.Transfer(operator, hederaTesting.NewTransfer().
			ApprovedNft(token, owner.ID, receiver.ID, 2).
			ApprovedNft(token, owner.ID, receiver.ID, 3).
			Build()))
		require.Equal(t, []int64{1}, serials(hederaTesting.OwnedNfts(t, env, owner)))
		require.True(t, env.Account(owner).HasApproveForAll(operator.ID, token))
	})
}

// TestNftReceiverAutoAssociation associates a receiver with free slots.
func TestNftReceiverAutoAssociation(t *testing.T) {
	env, token, owner, _ := nftSetup(t)
	newcomer := env.CreateAccount("newcomer", 0)
	env.SetMaxAutoAssociations(newcomer, 1)

	hederaTesting.RequireSuccess(t, env.Transfer(owner, hederaTesting.NewTransfer().
		Nft(token, owner.ID, newcomer.ID, 1).
		Build()))

	rel := env.Relation(newcomer, token)
	require.NotNil(t, rel)
	require.True(t, rel.AutomaticAssociation)
	require.Equal(t, int64(1), rel.Balance)
	account := env.Account(newcomer)
	require.Equal(t, int32(1), account.UsedAutoAssociations)
	require.Equal(t, uint32(1), account.NumberAssociations)
	hederaTesting.RequireCountersConsistent(t, env, newcomer, token)
}

// TestNftTransfersOfFungibleToken rejects serial moves of a fungible token.
func TestNftTransfersOfFungibleToken(t *testing.T) {
	env := hederaTesting.NewTestEnv(t)
	treasury := env.CreateAccount("treasury", 0)
	token := env.CreateFungibleToken("TOK", treasury, 100)
	bob := env.CreateAccount("bob", 0)
	env.Associate(bob, token)

	result := env.Transfer(treasury, hederaTesting.NewTransfer().
		Nft(token, treasury.ID, bob.ID, 1).
		Build())
	hederaTesting.RequireStatus(t, result, tx.StatusNFT_TRANSFERS_ONLY_ALLOWED_FOR_NON_FUNGIBLE_UNIQUE)
}

// TestRoyaltyFallbackWithoutExchange charges the receiver the fallback fee
// when nothing is paid for the serial.
func TestRoyaltyFallbackWithoutExchange(t *testing.T) {
	env := hederaTesting.NewTestEnv(t)
	treasury := env.CreateAccount("treasury", 0)
	collector := env.CreateAccount("collector", 0)
	token := env.CreateNftToken("ART", treasury, hederaTesting.WithCustomFees(
		hederaTesting.RoyaltyFee(1, 2, &entry.FixedFee{Amount: 100}, collector),
	))
	seller := env.CreateAccount("seller", 0)
	env.MintNft(token, seller, 1)
	buyer := env.CreateAccount("buyer", 1_000)
	env.Associate(buyer, token)

	result := env.Transfer(seller, hederaTesting.NewTransfer().
		Nft(token, seller.ID, buyer.ID, 1).
		Build())
	hederaTesting.RequireSuccess(t, result)

	require.Len(t, result.Record.Levels, 2)
	require.Equal(t, int64(900), env.Balance(buyer))
	require.Equal(t, int64(100), env.Balance(collector))
	require.Len(t, result.Record.AssessedCustomFees, 1)
	require.Equal(t, []entry.AccountID{buyer.ID}, result.Record.AssessedCustomFees[0].EffectivePayers)
	require.Equal(t, buyer.ID, env.Nft(entry.NftID{TokenID: token, Serial: 1}).OwnerID)
}

// TestRoyaltyOnHbarExchange takes the royalty out of what the buyer paid.
func TestRoyaltyOnHbarExchange(t *testing.T) {
	env := hederaTesting.NewTestEnv(t)
	treasury := env.CreateAccount("treasury", 0)
	collector := env.CreateAccount("collector", 0)
	token := env.CreateNftToken("ART", treasury, hederaTesting.WithCustomFees(
		hederaTesting.RoyaltyFee(1, 2, &entry.FixedFee{Amount: 100}, collector),
	))
	seller := env.CreateAccount("seller", 0)
	env.MintNft(token, seller, 1)
	buyer := env.CreateAccount("buyer", 1_000)
	env.Associate(buyer, token)

	result := env.Transfer(buyer, hederaTesting.NewTransfer().
		Hbar(buyer.ID, -1_000).
		Hbar(seller.ID, 1_000).
		Nft(token, seller.ID, buyer.ID, 1).
		Build())
	hederaTesting.RequireSuccess(t, result)

	require.Equal(t, int64(0), env.Balance(buyer))
	require.Equal(t, int64(500), env.Balance(seller))
	require.Equal(t, int64(500), env.Balance(collector))
	require.Equal(t, []entry.AccountID{seller.ID}, result.Record.AssessedCustomFees[0].EffectivePayers)
	hederaTesting.RequireZeroSum(t, result.Record.Levels)
}

// TestFixedFeeOnNftSender charges a unique token's fixed fee to the sender.
func TestFixedFeeOnNftSender(t *testing.T) {
	env := hederaTesting.NewTestEnv(t)
	treasury := env.CreateAccount("treasury", 0)
	collector := env.CreateAccount("collector", 0)
	token := env.CreateNftToken("ART", treasury, hederaTesting.WithCustomFees(
		hederaTesting.FixedHbarFee(50, collector),
	))
	seller := env.CreateAccount("seller", 100)
	env.MintNft(token, seller, 1)
	env.MintNft(token, seller, 2)
	buyer := env.CreateAccount("buyer", 0)
	env.Associate(buyer, token)

	hederaTesting.RequireSuccess(t, env.Transfer(seller, hederaTesting.NewTransfer().
		Nft(token, seller.ID, buyer.ID, 1).
		Nft(token, seller.ID, buyer.ID, 2).
		Build()))
	require.Equal(t, int64(50), env.Balance(seller), "the fee is charged once per sender")
	require.Equal(t, int64(50), env.Balance(collector))
}

// TestNftToOwnAliasRejected sends a serial to its owner through each alias
// form of the owner's account.
func TestNftToOwnAliasRejected(t *testing.T) {
	cases := []struct {
		name     string
		receiver func(*hederaTesting.Account) entry.AccountID
	}{
		{"mirror address", (*hederaTesting.Account).MirrorRef},
		{"key alias", (*hederaTesting.Account).AliasRef},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env, token, owner, _ := nftSetup(t)
			before := env.Snapshot()

			result := env.Transfer(owner, hederaTesting.NewTransfer().
				Nft(token, owner.ID, tc.receiver(owner), 3).
				Build())

			hederaTesting.RequireStatus(t, result, tx.StatusACCOUNT_REPEATED_IN_ACCOUNT_AMOUNTS)
			hederaTesting.RequireUnchanged(t, env, before)
			require.Equal(t, []int64{3, 2, 1}, serials(hederaTesting.OwnedNfts(t, env, owner)))
			require.Equal(t, int64(3), env.TokenBalance(owner, token))
			hederaTesting.RequireCountersConsistent(t, env, owner, token)
		})
	}
}

// TestChangeNftOwnersRejectsSelfMove calls the ownership step directly with
// an already resolved level.
func TestChangeNftOwnersRejectsSelfMove(t *testing.T) {
	env, token, owner, _ := nftSetup(t)
	log, _ := logtest.NewNullLogger()
	ctx := transferSteps.NewContext(&tx.ApplyContext{
		Savepoints: tx.NewSavepointStack(env.View()),
		Payer:      owner.ID,
		Config:     env.Config(),
		Record:     &tx.Record{},
		Log:        log,
	})

	level := hederaTesting.NewTransfer().Nft(token, owner.ID, owner.ID, 3).Build()
	err := transferSteps.ChangeNftOwners(ctx, level)
	require.Equal(t, tx.StatusACCOUNT_REPEATED_IN_ACCOUNT_AMOUNTS, tx.ResultOf(err))
	require.Zero(t, ctx.Savepoints.Current().Changes())
}
