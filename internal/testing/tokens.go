package testing

import (
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
)

// TokenOption customizes a token before it is written.
type TokenOption func(*entry.Token)

// WithDecimals sets the token's decimals.
func WithDecimals(decimals uint32) TokenOption {
	return func(t *entry.Token) { t.Decimals = decimals }
}

// WithCustomFees attaches custom fees to the token.
func WithCustomFees(fees ...entry.CustomFee) TokenOption {
	return func(t *entry.Token) { t.CustomFees = append(t.CustomFees, fees...) }
}

// WithKycKey requires KYC to be granted on new relationships.
func WithKycKey() TokenOption {
	return func(t *entry.Token) { t.KycKey = []byte("kyc") }
}

// WithFrozenByDefault freezes new relationships.
func WithFrozenByDefault() TokenOption {
	return func(t *entry.Token) {
		t.FreezeKey = []byte("freeze")
		t.AccountsFrozenByDefault = true
	}
}

// Paused pauses the token.
func Paused() TokenOption {
	return func(t *entry.Token) { t.Paused = true }
}

// CreateFungibleToken creates a fungible token whose treasury holds supply.
func (e *TestEnv) CreateFungibleToken(symbol string, treasury *Account, supply int64, opts ...TokenOption) entry.TokenID {
	e.t.Helper()
	token := &entry.Token{
		TokenType:   entry.FungibleCommon,
		Symbol:      symbol,
		TreasuryID:  treasury.ID,
		TotalSupply: supply,
	}
	id := e.createToken(token, opts)
	e.Associate(treasury, id)
	e.setTokenBalance(treasury, id, supply)
	return id
}

// CreateNftToken creates a unique token with no serials minted.
func (e *TestEnv) CreateNftToken(symbol string, treasury *Account, opts ...TokenOption) entry.TokenID {
	e.t.Helper()
	token := &entry.Token{
		TokenType:  entry.NonFungibleUnique,
		Symbol:     symbol,
		TreasuryID: treasury.ID,
	}
	id := e.createToken(token, opts)
	e.Associate(treasury, id)
	return id
}

func (e *TestEnv) createToken(token *entry.Token, opts []TokenOption) entry.TokenID {
	token.ID = entry.NewTokenID(e.config.Shard, e.config.Realm, e.nextNum(false))
	for _, opt := range opts {
		opt(token)
	}
	require.NoError(e.t, e.stores.PutToken(token))
	return token.ID
}

// Token loads a token definition.
func (e *TestEnv) Token(id entry.TokenID) *entry.Token {
	e.t.Helper()
	token, err := e.stores.Token(id)
	require.NoError(e.t, err)
	require.NotNil(e.t, token)
	return token
}

// Associate creates a KYC-granted, unfrozen relationship between acc and
// token.
func (e *TestEnv) Associate(acc *Account, token entry.TokenID) {
	e.t.Helper()
	rel, err := e.stores.TokenRelation(acc.ID, token)
	require.NoError(e.t, err)
	if rel != nil {
		return
	}
	require.NoError(e.t, e.stores.PutTokenRelation(&entry.TokenRelation{
		AccountID:  acc.ID,
		TokenID:    token,
		KycGranted: true,
	}))
	e.UpdateAccount(acc, func(a *entry.Account) { a.NumberAssociations++ })
}

// UpdateRelation loads acc's relationship with token, applies edit and writes
// it back.
func (e *TestEnv) UpdateRelation(acc *Account, token entry.TokenID, edit func(*entry.TokenRelation)) {
	e.t.Helper()
	rel := e.Relation(acc, token)
	require.NotNil(e.t, rel)
	edit(rel)
	require.NoError(e.t, e.stores.PutTokenRelation(rel))
}

// Relation loads acc's relationship with token, nil when there is none.
func (e *TestEnv) Relation(acc *Account, token entry.TokenID) *entry.TokenRelation {
	e.t.Helper()
	rel, err := e.stores.TokenRelation(acc.ID, token)
	require.NoError(e.t, err)
	return rel
}

// TokenBalance returns acc's balance of token, zero when not associated.
func (e *TestEnv) TokenBalance(acc *Account, token entry.TokenID) int64 {
	e.t.Helper()
	rel := e.Relation(acc, token)
	if rel == nil {
		return 0
	}
	return rel.Balance
}

// FundToken moves amount of token from its treasury to acc outside of any
// transfer.
func (e *TestEnv) FundToken(acc *Account, token entry.TokenID, amount int64) {
	e.t.Helper()
	treasuryID := e.Token(token).TreasuryID
	treasury := e.accountByID(treasuryID)
	e.Associate(acc, token)
	e.setTokenBalance(treasury, token, e.TokenBalance(treasury, token)-amount)
	e.setTokenBalance(acc, token, e.TokenBalance(acc, token)+amount)
}

func (e *TestEnv) accountByID(id entry.AccountID) *Account {
	for _, acc := range e.accounts {
		if acc.ID == id {
			return acc
		}
	}
	e.t.Fatalf("no test account with id %s", id)
	return nil
}

func (e *TestEnv) setTokenBalance(acc *Account, token entry.TokenID, balance int64) {
	before := e.TokenBalance(acc, token)
	e.UpdateRelation(acc, token, func(r *entry.TokenRelation) { r.Balance = balance })
	e.UpdateAccount(acc, func(a *entry.Account) {
		switch {
		case before == 0 && balance > 0:
			a.NumberPositiveBalances++
		case before > 0 && balance == 0:
			a.NumberPositiveBalances--
		}
	})
}

// MintNft creates serial of token owned by owner, linked at the head of the
// owner's list.
func (e *TestEnv) MintNft(token entry.TokenID, owner *Account, serial int64) entry.NftID {
	e.t.Helper()
	e.Associate(owner, token)
	id := entry.NftID{TokenID: token, Serial: serial}
	account := e.Account(owner)
	nft := &entry.Nft{ID: id, OwnerID: owner.ID, OwnerNextNftID: entry.CopyNftIDPtr(account.HeadNftID)}
	if account.HeadNftID != nil {
		head := e.Nft(*account.HeadNftID)
		head.OwnerPreviousNftID = &id
		require.NoError(e.t, e.stores.PutNft(head))
	}
	require.NoError(e.t, e.stores.PutNft(nft))

	account.HeadNftID = &id
	account.NumberOwnedNfts++
	require.NoError(e.t, e.stores.PutAccount(account))
	e.setTokenBalance(owner, token, e.TokenBalance(owner, token)+1)
	e.UpdateToken(token, func(t *entry.Token) { t.TotalSupply++ })
	return id
}

// UpdateToken loads token, applies edit and writes it back.
func (e *TestEnv) UpdateToken(id entry.TokenID, edit func(*entry.Token)) {
	e.t.Helper()
	token := e.Token(id)
	edit(token)
	require.NoError(e.t, e.stores.PutToken(token))
}

// ApproveNft sets spender as the approved spender of nft.
func (e *TestEnv) ApproveNft(id entry.NftID, spender *Account) {
	e.t.Helper()
	nft := e.Nft(id)
	spenderID := spender.ID
	nft.SpenderID = &spenderID
	require.NoError(e.t, e.stores.PutNft(nft))
}

// Nft loads a serial, failing the test when it is missing.
func (e *TestEnv) Nft(id entry.NftID) *entry.Nft {
	e.t.Helper()
	nft, err := e.stores.Nft(id)
	require.NoError(e.t, err)
	require.NotNil(e.t, nft, "nft %s does not exist", id)
	return nft
}
