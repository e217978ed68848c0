// Package testing provides test infrastructure for crypto transfer testing.
//
// # Overview
//
// The testing package provides:
//   - TestEnv: an in-memory ledger with a transfer engine over it
//   - Account: deterministic test accounts with key and EVM aliases
//   - TransferBuilder: a fluent builder for transfer operations
//   - Assertions: result, counter and owned-list checks
//
// # Basic Usage
//
//	func TestHbarTransfer(t *testing.T) {
//	    env := testing.NewTestEnv(t)
//
//	    alice := env.CreateAccount("alice", 10_000)
//	    bob := env.CreateAccount("bob", 0)
//
//	    result := env.Transfer(alice, testing.NewTransfer().
//	        Hbar(alice.ID, -100).
//	        Hbar(bob.ID, 100).
//	        Build())
//	    testing.RequireSuccess(t, result)
//	    require.Equal(t, int64(100), env.Balance(bob))
//	}
//
// # Tokens and NFTs
//
//	token := env.CreateFungibleToken("FT", treasury, 1_000_000)
//	env.Associate(alice, token)
//	env.FundToken(alice, token, 500)
//
//	nft := env.CreateNftToken("NFT", treasury)
//	env.MintNft(nft, alice, 1)
//
// # Aliases
//
// Every Account carries a key alias, and ECDSA accounts an EVM address.
// Referencing them through AliasRef or EvmRef before the account exists
// exercises automatic and lazy account creation.
package testing
