package keylet

import (
	"encoding/binary"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	crypto "github.com/LeJamon/goHederad/internal/crypto/common"
)

// Space identifiers for keylet generation
const (
	spaceAccount        uint16 = 'a' // Account
	spaceAlias          uint16 = 'A' // Alias index
	spaceEntityCounters uint16 = 'e' // Entity counters (singleton)
	spaceNft            uint16 = 'n' // Unique token serial
	spaceToken          uint16 = 't' // Token definition
	spaceTokenRelation  uint16 = 'r' // (account, token) relation
)

// Keylet represents an addressable location in the ledger state.
// It combines a type identifier with a 256-bit key.
type Keylet struct {
	Type entry.Type
	Key  [32]byte
}

// indexHash computes a keylet key by hashing the space and provided data.
func indexHash(space uint16, data ...[]byte) [32]byte {
	spaceBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(spaceBytes, space)

	inputs := make([][]byte, 0, len(data)+1)
	inputs = append(inputs, spaceBytes)
	inputs = append(inputs, data...)

	return crypto.Sha512Half(inputs...)
}

func entityBytes(shard, realm, num int64) []byte {
	b := make([]byte, 24)
	binary.BigEndian.PutUint64(b[0:8], uint64(shard))
	binary.BigEndian.PutUint64(b[8:16], uint64(realm))
	binary.BigEndian.PutUint64(b[16:24], uint64(num))
	return b
}

// Account returns the keylet for an account entry. Alias references have no
// account keylet of their own; resolve them through Alias first.
func Account(id entry.AccountID) Keylet {
	return Keylet{
		Type: entry.TypeAccount,
		Key:  indexHash(spaceAccount, entityBytes(id.Shard, id.Realm, id.Num)),
	}
}

// Alias returns the keylet for an alias index entry.
func Alias(alias []byte) Keylet {
	return Keylet{
		Type: entry.TypeAlias,
		Key:  indexHash(spaceAlias, alias),
	}
}

// EntityCounters returns the keylet for the singleton entity counters entry.
func EntityCounters() Keylet {
	return Keylet{
		Type: entry.TypeEntityCounters,
		Key:  indexHash(spaceEntityCounters),
	}
}

// Token returns the keylet for a token definition.
func Token(id entry.TokenID) Keylet {
	return Keylet{
		Type: entry.TypeToken,
		Key:  indexHash(spaceToken, entityBytes(id.Shard, id.Realm, id.Num)),
	}
}

// TokenRelation returns the keylet for the relation between an account and a token.
func TokenRelation(account entry.AccountID, token entry.TokenID) Keylet {
	return Keylet{
		Type: entry.TypeTokenRelation,
		Key: indexHash(spaceTokenRelation,
			entityBytes(account.Shard, account.Realm, account.Num),
			entityBytes(token.Shard, token.Realm, token.Num)),
	}
}

// Nft returns the keylet for a unique token serial.
func Nft(id entry.NftID) Keylet {
	serial := make([]byte, 8)
	binary.BigEndian.PutUint64(serial, uint64(id.Serial))
	return Keylet{
		Type: entry.TypeNft,
		Key:  indexHash(spaceNft, entityBytes(id.TokenID.Shard, id.TokenID.Realm, id.TokenID.Num), serial),
	}
}
