package keylet

import (
	"testing"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/stretchr/testify/assert"
)

func TestKeyletsAreDistinctPerSpace(t *testing.T) {
	account := entry.NewAccountID(0, 0, 7)
	token := entry.NewTokenID(0, 0, 7)

	keys := map[[32]byte]string{}
	for name, k := range map[string]Keylet{
		"account":  Account(account),
		"token":    Token(token),
		"relation": TokenRelation(account, token),
		"nft":      Nft(entry.NftID{TokenID: token, Serial: 7}),
		"counters": EntityCounters(),
	} {
		prev, dup := keys[k.Key]
		assert.False(t, dup, "%s collides with %s", name, prev)
		keys[k.Key] = name
	}
}

func TestTokenRelationDependsOnBothSides(t *testing.T) {
	a := entry.NewAccountID(0, 0, 1)
	b := entry.NewAccountID(0, 0, 2)
	tok := entry.NewTokenID(0, 0, 3)

	assert.NotEqual(t, TokenRelation(a, tok).Key, TokenRelation(b, tok).Key)
	assert.Equal(t, TokenRelation(a, tok), TokenRelation(a, tok))
	assert.Equal(t, entry.TypeTokenRelation, TokenRelation(a, tok).Type)
}

func TestNftKeyletIncludesSerial(t *testing.T) {
	tok := entry.NewTokenID(0, 0, 3)
	assert.NotEqual(t,
		Nft(entry.NftID{TokenID: tok, Serial: 1}).Key,
		Nft(entry.NftID{TokenID: tok, Serial: 2}).Key)
}
