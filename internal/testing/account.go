package testing

import (
	"crypto/ed25519"
	"crypto/sha512"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/crypto/alias"
)

// Account represents a test account with a deterministic key.
type Account struct {
	// Name is a human-readable identifier for the account (used for debugging).
	Name string

	// KeyType is the key algorithm of the account.
	KeyType alias.KeyType

	// PublicKey is the raw public key (32 bytes ed25519, 33 bytes compressed secp256k1).
	PublicKey []byte

	// KeyAlias is the serialized key the account can be referenced by.
	KeyAlias []byte

	// EvmAddress is set for ECDSA accounts.
	EvmAddress []byte

	// ID is the canonical id, zero until the account exists in a TestEnv.
	ID entry.AccountID
}

// NewAccount creates a test account with an ed25519 key derived from name.
// Using the same name will always produce the same key.
func NewAccount(name string) *Account {
	seed := sha512.Sum512([]byte(name))
	priv := ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize])
	pub := priv.Public().(ed25519.PublicKey)
	keyAlias, err := alias.KeyAlias(alias.KeyTypeEd25519, pub)
	if err != nil {
		panic(err)
	}
	return &Account{
		Name:      name,
		KeyType:   alias.KeyTypeEd25519,
		PublicKey: pub,
		KeyAlias:  keyAlias,
	}
}

// NewECDSAAccount creates a test account with a secp256k1 key derived from
// name.
func NewECDSAAccount(name string) *Account {
	seed := sha512.Sum512([]byte(name))
	priv, _ := btcec.PrivKeyFromBytes(seed[:32])
	pub := priv.PubKey().SerializeCompressed()
	keyAlias, err := alias.KeyAlias(alias.KeyTypeECDSASecp256k1, pub)
	if err != nil {
		panic(err)
	}
	evm, err := alias.EvmAddressFromKeyAlias(keyAlias)
	if err != nil {
		panic(err)
	}
	return &Account{
		Name:       name,
		KeyType:    alias.KeyTypeECDSASecp256k1,
		PublicKey:  pub,
		KeyAlias:   keyAlias,
		EvmAddress: evm,
	}
}

// AliasRef references the account by its key alias.
func (a *Account) AliasRef() entry.AccountID {
	return entry.NewAliasAccountID(a.ID.Shard, a.ID.Realm, a.KeyAlias)
}

// EvmRef references the account by its EVM address.
func (a *Account) EvmRef() entry.AccountID {
	return entry.NewAliasAccountID(a.ID.Shard, a.ID.Realm, a.EvmAddress)
}

// MirrorRef references the account by the mirror address of its number.
func (a *Account) MirrorRef() entry.AccountID {
	return entry.NewAliasAccountID(a.ID.Shard, a.ID.Realm, alias.MirrorAddress(a.ID.Shard, a.ID.Realm, a.ID.Num))
}

// EvmAddressRef references a bare EVM address in the default shard and realm.
func EvmAddressRef(address []byte) entry.AccountID {
	return entry.NewAliasAccountID(0, 0, address)
}
