package entry

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// EvmAddressSize is the length of an EVM address alias.
const EvmAddressSize = 20

// AccountID identifies an account. When Alias is non-empty the id is an alias
// reference (serialized public key or 20-byte EVM address) that has not been
// resolved to a number yet; canonical ids always have an empty Alias.
type AccountID struct {
	Shard int64  `codec:"s"`
	Realm int64  `codec:"r"`
	Num   int64  `codec:"n"`
	Alias string `codec:"a,omitempty"`
}

// NewAccountID returns a canonical account id.
func NewAccountID(shard, realm, num int64) AccountID {
	return AccountID{Shard: shard, Realm: realm, Num: num}
}

// NewAliasAccountID returns an alias reference in the given shard and realm.
func NewAliasAccountID(shard, realm int64, alias []byte) AccountID {
	return AccountID{Shard: shard, Realm: realm, Alias: string(alias)}
}

// HasAlias reports whether the id is an alias reference.
func (id AccountID) HasAlias() bool {
	return id.Alias != ""
}

// AliasBytes returns the raw alias.
func (id AccountID) AliasBytes() []byte {
	return []byte(id.Alias)
}

// IsZero reports whether the id is unset.
func (id AccountID) IsZero() bool {
	return id == AccountID{}
}

func (id AccountID) String() string {
	if id.HasAlias() {
		return fmt.Sprintf("%d.%d.%s", id.Shard, id.Realm, hex.EncodeToString(id.AliasBytes()))
	}
	return fmt.Sprintf("%d.%d.%d", id.Shard, id.Realm, id.Num)
}

// ParseAccountID parses "shard.realm.num" or "shard.realm.<hex alias>".
func ParseAccountID(s string) (AccountID, error) {
	shard, realm, last, err := splitEntityID(s)
	if err != nil {
		return AccountID{}, err
	}
	if num, err := strconv.ParseInt(last, 10, 64); err == nil {
		return NewAccountID(shard, realm, num), nil
	}
	alias, err := hex.DecodeString(strings.TrimPrefix(last, "0x"))
	if err != nil || len(alias) == 0 {
		return AccountID{}, fmt.Errorf("invalid account number or alias %q", last)
	}
	return NewAliasAccountID(shard, realm, alias), nil
}

// TokenID identifies a token.
type TokenID struct {
	Shard int64 `codec:"s"`
	Realm int64 `codec:"r"`
	Num   int64 `codec:"n"`
}

// NewTokenID returns a token id.
func NewTokenID(shard, realm, num int64) TokenID {
	return TokenID{Shard: shard, Realm: realm, Num: num}
}

func (id TokenID) String() string {
	return fmt.Sprintf("%d.%d.%d", id.Shard, id.Realm, id.Num)
}

// ParseTokenID parses "shard.realm.num".
func ParseTokenID(s string) (TokenID, error) {
	shard, realm, last, err := splitEntityID(s)
	if err != nil {
		return TokenID{}, err
	}
	num, err := strconv.ParseInt(last, 10, 64)
	if err != nil {
		return TokenID{}, fmt.Errorf("invalid token number %q: %w", last, err)
	}
	return NewTokenID(shard, realm, num), nil
}

// NftID identifies a single serial of a non-fungible token.
type NftID struct {
	TokenID TokenID `codec:"t"`
	Serial  int64   `codec:"sn"`
}

func (id NftID) String() string {
	return fmt.Sprintf("%s/%d", id.TokenID, id.Serial)
}

func splitEntityID(s string) (int64, int64, string, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return 0, 0, "", errors.New("entity id must have the form shard.realm.num")
	}
	shard, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, "", fmt.Errorf("invalid shard %q: %w", parts[0], err)
	}
	realm, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, "", fmt.Errorf("invalid realm %q: %w", parts[1], err)
	}
	return shard, realm, parts[2], nil
}
