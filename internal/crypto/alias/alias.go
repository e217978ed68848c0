// Package alias classifies account aliases and derives the addresses an
// alias may also be known by.
//
// A key alias is a serialized Key message holding either an Ed25519 public
// key (field 2) or a compressed secp256k1 public key (field 7). An EVM address
// alias is 20 raw bytes; when its first 12 bytes encode the local shard and
// realm it is a mirror ("long-zero") address of an existing account number.
package alias

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/sha3"
	"google.golang.org/protobuf/encoding/protowire"
)

// KeyType is the kind of public key held by a key alias.
type KeyType int

const (
	KeyTypeUnknown KeyType = iota
	KeyTypeEd25519
	KeyTypeECDSASecp256k1
)

func (k KeyType) String() string {
	switch k {
	case KeyTypeEd25519:
		return "ED25519"
	case KeyTypeECDSASecp256k1:
		return "ECDSA_SECP256K1"
	default:
		return "UNKNOWN"
	}
}

const (
	// EvmAddressSize is the size of an EVM address alias.
	EvmAddressSize = 20

	ed25519KeySize      = 32
	secp256k1KeySize    = 33
	fieldEd25519        = protowire.Number(2)
	fieldECDSASecp256k1 = protowire.Number(7)
)

var (
	ErrInvalidKeyAlias = errors.New("alias is not a valid serialized key")
	ErrNotECDSAKey     = errors.New("key alias is not an ECDSA secp256k1 key")
)

// IsEvmAddress reports whether alias has the shape of an EVM address.
func IsEvmAddress(alias []byte) bool {
	return len(alias) == EvmAddressSize
}

// MirrorNum returns the account number encoded by a mirror address in the
// given shard and realm.
func MirrorNum(alias []byte, shard, realm int64) (int64, bool) {
	if !IsEvmAddress(alias) {
		return 0, false
	}
	if binary.BigEndian.Uint32(alias[0:4]) != uint32(shard) || binary.BigEndian.Uint64(alias[4:12]) != uint64(realm) {
		return 0, false
	}
	return int64(binary.BigEndian.Uint64(alias[12:20])), true
}

// MirrorAddress returns the mirror address of an account number.
func MirrorAddress(shard, realm, num int64) []byte {
	out := make([]byte, EvmAddressSize)
	binary.BigEndian.PutUint32(out[0:4], uint32(shard))
	binary.BigEndian.PutUint64(out[4:12], uint64(realm))
	binary.BigEndian.PutUint64(out[12:20], uint64(num))
	return out
}

// ParseKey decodes a key alias into its key type and raw key bytes.
func ParseKey(alias []byte) (KeyType, []byte, error) {
	num, typ, n := protowire.ConsumeTag(alias)
	if n < 0 {
		return KeyTypeUnknown, nil, fmt.Errorf("%w: %v", ErrInvalidKeyAlias, protowire.ParseError(n))
	}
	if typ != protowire.BytesType {
		return KeyTypeUnknown, nil, ErrInvalidKeyAlias
	}
	raw, m := protowire.ConsumeBytes(alias[n:])
	if m < 0 {
		return KeyTypeUnknown, nil, fmt.Errorf("%w: %v", ErrInvalidKeyAlias, protowire.ParseError(m))
	}
	if n+m != len(alias) {
		return KeyTypeUnknown, nil, fmt.Errorf("%w: trailing bytes", ErrInvalidKeyAlias)
	}

	switch num {
	case fieldEd25519:
		if len(raw) != ed25519KeySize {
			return KeyTypeUnknown, nil, fmt.Errorf("%w: ed25519 key must be %d bytes", ErrInvalidKeyAlias, ed25519KeySize)
		}
		return KeyTypeEd25519, raw, nil
	case fieldECDSASecp256k1:
		if len(raw) != secp256k1KeySize {
			return KeyTypeUnknown, nil, fmt.Errorf("%w: secp256k1 key must be %d bytes", ErrInvalidKeyAlias, secp256k1KeySize)
		}
		if _, err := btcec.ParsePubKey(raw); err != nil {
			return KeyTypeUnknown, nil, fmt.Errorf("%w: %v", ErrInvalidKeyAlias, err)
		}
		return KeyTypeECDSASecp256k1, raw, nil
	default:
		return KeyTypeUnknown, nil, ErrInvalidKeyAlias
	}
}

// IsKeyAlias reports whether alias is a well-formed key alias.
func IsKeyAlias(alias []byte) bool {
	_, _, err := ParseKey(alias)
	return err == nil
}

// KeyAlias serializes a raw public key as a key alias.
func KeyAlias(keyType KeyType, raw []byte) ([]byte, error) {
	var field protowire.Number
	switch keyType {
	case KeyTypeEd25519:
		field = fieldEd25519
	case KeyTypeECDSASecp256k1:
		field = fieldECDSASecp256k1
	default:
		return nil, fmt.Errorf("unsupported key type %s", keyType)
	}
	out := protowire.AppendTag(nil, field, protowire.BytesType)
	return protowire.AppendBytes(out, raw), nil
}

// EvmAddressFromKeyAlias derives the EVM address of an ECDSA key alias:
// the last 20 bytes of keccak256 over the uncompressed public key.
func EvmAddressFromKeyAlias(alias []byte) ([]byte, error) {
	keyType, raw, err := ParseKey(alias)
	if err != nil {
		return nil, err
	}
	if keyType != KeyTypeECDSASecp256k1 {
		return nil, ErrNotECDSAKey
	}
	pub, err := btcec.ParsePubKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyAlias, err)
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(pub.SerializeUncompressed()[1:])
	sum := h.Sum(nil)
	return sum[len(sum)-EvmAddressSize:], nil
}
