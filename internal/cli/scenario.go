package cli

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
)

// Scenario is a genesis state plus the transfers to apply on top of it.
type Scenario struct {
	Accounts  []AccountFixture  `yaml:"accounts"`
	Tokens    []TokenFixture    `yaml:"tokens"`
	Relations []RelationFixture `yaml:"relations"`
	Nfts      []NftFixture      `yaml:"nfts"`
	Transfers []TransferFixture `yaml:"transfers"`
}

// AccountFixture seeds one account. Key and Alias are hex.
type AccountFixture struct {
	ID                  string `yaml:"id"`
	Balance             int64  `yaml:"balance"`
	Key                 string `yaml:"key"`
	Alias               string `yaml:"alias"`
	EvmAddress          string `yaml:"evm_address"`
	MaxAutoAssociations int32  `yaml:"max_auto_associations"`
	Deleted             bool   `yaml:"deleted"`
}

// TokenFixture seeds one token.
type TokenFixture struct {
	ID       string       `yaml:"id"`
	Symbol   string       `yaml:"symbol"`
	Type     string       `yaml:"type"` // "fungible" (default) or "nft"
	Treasury string       `yaml:"treasury"`
	Decimals uint32       `yaml:"decimals"`
	Supply   int64        `yaml:"supply"`
	KycKey   bool         `yaml:"kyc_key"`
	Paused   bool         `yaml:"paused"`
	Fees     []FeeFixture `yaml:"fees"`
}

// FeeFixture is a custom fee; exactly one of Fixed, Fractional and Royalty
// is set.
type FeeFixture struct {
	Collector  string           `yaml:"collector"`
	AllExempt  bool             `yaml:"all_collectors_exempt"`
	Fixed      *FixedFeeFixture `yaml:"fixed"`
	Fractional *FractionFixture `yaml:"fractional"`
	Royalty    *RoyaltyFixture  `yaml:"royalty"`
}

type FixedFeeFixture struct {
	Amount int64  `yaml:"amount"`
	Token  string `yaml:"token"` // empty for hbar fees
}

type FractionFixture struct {
	Numerator      int64 `yaml:"numerator"`
	Denominator    int64 `yaml:"denominator"`
	Minimum        int64 `yaml:"minimum"`
	Maximum        int64 `yaml:"maximum"`
	NetOfTransfers bool  `yaml:"net_of_transfers"`
}

type RoyaltyFixture struct {
	Numerator   int64            `yaml:"numerator"`
	Denominator int64            `yaml:"denominator"`
	Fallback    *FixedFeeFixture `yaml:"fallback"`
}

// RelationFixture associates an account with a token.
type RelationFixture struct {
	Account string `yaml:"account"`
	Token   string `yaml:"token"`
	Balance int64  `yaml:"balance"`
	Kyc     bool   `yaml:"kyc"`
	Frozen  bool   `yaml:"frozen"`
}

// NftFixture mints one serial to its owner, who must be associated.
type NftFixture struct {
	Token  string `yaml:"token"`
	Serial int64  `yaml:"serial"`
	Owner  string `yaml:"owner"`
}

// TransferFixture is one crypto transfer. Account fields accept
// "shard.realm.num" or "shard.realm.<hex alias>".
type TransferFixture struct {
	Name   string             `yaml:"name"`
	Payer  string             `yaml:"payer"`
	Hbar   []AmountFixture    `yaml:"hbar"`
	Tokens []TokenListFixture `yaml:"tokens"`
}

type AmountFixture struct {
	Account  string `yaml:"account"`
	Amount   int64  `yaml:"amount"`
	Approval bool   `yaml:"approval"`
}

type TokenListFixture struct {
	Token            string               `yaml:"token"`
	ExpectedDecimals *uint32              `yaml:"expected_decimals"`
	Transfers        []AmountFixture      `yaml:"transfers"`
	Nfts             []NftTransferFixture `yaml:"nfts"`
}

type NftTransferFixture struct {
	Sender   string `yaml:"sender"`
	Receiver string `yaml:"receiver"`
	Serial   int64  `yaml:"serial"`
	Approval bool   `yaml:"approval"`
}

// LoadScenario reads and decodes a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a scenario, rejecting unknown fields.
func ParseScenario(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	return &s, nil
}

// Seed writes the genesis entities into stores.
func (s *Scenario) Seed(stores *tx.Stores) error {
	counters, err := stores.EntityCounters()
	if err != nil {
		return err
	}
	bump := func(num int64) {
		if num > counters.LastEntityNum {
			counters.LastEntityNum = num
		}
	}

	for _, f := range s.Accounts {
		account, err := f.account()
		if err != nil {
			return fmt.Errorf("account %s: %w", f.ID, err)
		}
		if err := stores.PutAccount(account); err != nil {
			return fmt.Errorf("account %s: %w", f.ID, err)
		}
		for _, alias := range [][]byte{account.Alias, account.EvmAddress} {
			if len(alias) == 0 {
				continue
			}
			if err := stores.PutAlias(alias, account.ID); err != nil {
				return err
			}
		}
		counters.NumAccounts++
		bump(account.ID.Num)
	}

	for _, f := range s.Tokens {
		token, err := f.token()
		if err != nil {
			return fmt.Errorf("token %s: %w", f.ID, err)
		}
		if err := stores.PutToken(token); err != nil {
			return fmt.Errorf("token %s: %w", f.ID, err)
		}
		bump(token.ID.Num)
	}

	for _, f := range s.Relations {
		if err := f.seed(stores); err != nil {
			return fmt.Errorf("relation %s/%s: %w", f.Account, f.Token, err)
		}
	}

	for _, f := range s.Nfts {
		if err := f.seed(stores); err != nil {
			return fmt.Errorf("nft %s/%d: %w", f.Token, f.Serial, err)
		}
	}
	return stores.PutEntityCounters(counters)
}

func (f AccountFixture) account() (*entry.Account, error) {
	id, err := entry.ParseAccountID(f.ID)
	if err != nil {
		return nil, err
	}
	account := &entry.Account{
		ID:                  id,
		TinybarBalance:      f.Balance,
		MaxAutoAssociations: f.MaxAutoAssociations,
		Deleted:             f.Deleted,
	}
	if account.Key, err = decodeHex(f.Key); err != nil {
		return nil, fmt.Errorf("key: %w", err)
	}
	if account.Alias, err = decodeHex(f.Alias); err != nil {
		return nil, fmt.Errorf("alias: %w", err)
	}
	if account.EvmAddress, err = decodeHex(f.EvmAddress); err != nil {
		return nil, fmt.Errorf("evm_address: %w", err)
	}
	return account, nil
}

func (f TokenFixture) token() (*entry.Token, error) {
	id, err := entry.ParseTokenID(f.ID)
	if err != nil {
		return nil, err
	}
	treasury, err := entry.ParseAccountID(f.Treasury)
	if err != nil {
		return nil, fmt.Errorf("treasury: %w", err)
	}
	token := &entry.Token{
		ID:          id,
		Symbol:      f.Symbol,
		Decimals:    f.Decimals,
		TreasuryID:  treasury,
		TotalSupply: f.Supply,
		Paused:      f.Paused,
	}
	switch f.Type {
	case "", "fungible":
		token.TokenType = entry.FungibleCommon
	case "nft":
		token.TokenType = entry.NonFungibleUnique
	default:
		return nil, fmt.Errorf("unknown token type %q", f.Type)
	}
	if f.KycKey {
		token.KycKey = []byte(f.ID)
	}
	for i, fee := range f.Fees {
		custom, err := fee.customFee()
		if err != nil {
			return nil, fmt.Errorf("fee %d: %w", i, err)
		}
		token.CustomFees = append(token.CustomFees, custom)
	}
	return token, nil
}

func (f FeeFixture) customFee() (entry.CustomFee, error) {
	collector, err := entry.ParseAccountID(f.Collector)
	if err != nil {
		return entry.CustomFee{}, fmt.Errorf("collector: %w", err)
	}
	fee := entry.CustomFee{FeeCollectorID: collector, AllCollectorsAreExempt: f.AllExempt}
	switch {
	case f.Fixed != nil:
		fee.Fixed, err = f.Fixed.fixedFee()
	case f.Fractional != nil:
		fee.Fractional = &entry.FractionalFee{
			Numerator:      f.Fractional.Numerator,
			Denominator:    f.Fractional.Denominator,
			MinimumAmount:  f.Fractional.Minimum,
			MaximumAmount:  f.Fractional.Maximum,
			NetOfTransfers: f.Fractional.NetOfTransfers,
		}
	case f.Royalty != nil:
		fee.Royalty = &entry.RoyaltyFee{
			Numerator:   f.Royalty.Numerator,
			Denominator: f.Royalty.Denominator,
		}
		if f.Royalty.Fallback != nil {
			fee.Royalty.FallbackFee, err = f.Royalty.Fallback.fixedFee()
		}
	}
	return fee, err
}

func (f *FixedFeeFixture) fixedFee() (*entry.FixedFee, error) {
	fee := &entry.FixedFee{Amount: f.Amount}
	if f.Token != "" {
		denom, err := entry.ParseTokenID(f.Token)
		if err != nil {
			return nil, fmt.Errorf("denominating token: %w", err)
		}
		fee.DenominatingTokenID = &denom
	}
	return fee, nil
}

func (f RelationFixture) seed(stores *tx.Stores) error {
	accountID, tokenID, err := parsePair(f.Account, f.Token)
	if err != nil {
		return err
	}
	account, err := stores.Account(accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return tx.StatusINVALID_ACCOUNT_ID
	}
	rel := &entry.TokenRelation{
		AccountID:  accountID,
		TokenID:    tokenID,
		Balance:    f.Balance,
		KycGranted: f.Kyc,
		Frozen:     f.Frozen,
	}
	if err := stores.PutTokenRelation(rel); err != nil {
		return err
	}
	account.NumberAssociations++
	if rel.Balance > 0 {
		account.NumberPositiveBalances++
	}
	return stores.PutAccount(account)
}

// seed links the serial at the head of its owner's list and counts it in
// the owner's relation balance.
func (f NftFixture) seed(stores *tx.Stores) error {
	ownerID, tokenID, err := parsePair(f.Owner, f.Token)
	if err != nil {
		return err
	}
	owner, err := stores.Account(ownerID)
	if err != nil {
		return err
	}
	rel, err := stores.TokenRelation(ownerID, tokenID)
	if err != nil {
		return err
	}
	if owner == nil || rel == nil {
		return tx.StatusTOKEN_NOT_ASSOCIATED_TO_ACCOUNT
	}

	id := entry.NftID{TokenID: tokenID, Serial: f.Serial}
	nft := &entry.Nft{ID: id, OwnerID: ownerID, OwnerNextNftID: entry.CopyNftIDPtr(owner.HeadNftID)}
	if owner.HeadNftID != nil {
		head, err := stores.Nft(*owner.HeadNftID)
		if err != nil {
			return err
		}
		head.OwnerPreviousNftID = &id
		if err := stores.PutNft(head); err != nil {
			return err
		}
	}
	if err := stores.PutNft(nft); err != nil {
		return err
	}

	owner.HeadNftID = &id
	owner.NumberOwnedNfts++
	rel.Balance++
	if err := stores.PutTokenRelation(rel); err != nil {
		return err
	}
	return stores.PutAccount(owner)
}

// Operation converts the fixture into a transfer operation and its payer.
func (f TransferFixture) Operation() (*tx.TransferOperation, entry.AccountID, error) {
	payer, err := entry.ParseAccountID(f.Payer)
	if err != nil {
		return nil, entry.AccountID{}, fmt.Errorf("payer: %w", err)
	}
	op := &tx.TransferOperation{}
	if op.HbarTransfers, err = amounts(f.Hbar); err != nil {
		return nil, entry.AccountID{}, err
	}
	for _, l := range f.Tokens {
		token, err := entry.ParseTokenID(l.Token)
		if err != nil {
			return nil, entry.AccountID{}, err
		}
		list := tx.TokenTransferList{Token: token, ExpectedDecimals: l.ExpectedDecimals}
		if list.Transfers, err = amounts(l.Transfers); err != nil {
			return nil, entry.AccountID{}, err
		}
		for _, n := range l.Nfts {
			sender, err := entry.ParseAccountID(n.Sender)
			if err != nil {
				return nil, entry.AccountID{}, fmt.Errorf("nft sender: %w", err)
			}
			receiver, err := entry.ParseAccountID(n.Receiver)
			if err != nil {
				return nil, entry.AccountID{}, fmt.Errorf("nft receiver: %w", err)
			}
			list.NftTransfers = append(list.NftTransfers, tx.NftTransfer{
				SenderID:   sender,
				ReceiverID: receiver,
				Serial:     n.Serial,
				IsApproval: n.Approval,
			})
		}
		op.TokenTransfers = append(op.TokenTransfers, list)
	}
	return op, payer, nil
}

func amounts(fixtures []AmountFixture) ([]tx.AccountAmount, error) {
	var out []tx.AccountAmount
	for _, a := range fixtures {
		id, err := entry.ParseAccountID(a.Account)
		if err != nil {
			return nil, err
		}
		out = append(out, tx.AccountAmount{AccountID: id, Amount: a.Amount, IsApproval: a.Approval})
	}
	return out, nil
}

func parsePair(account, token string) (entry.AccountID, entry.TokenID, error) {
	accountID, err := entry.ParseAccountID(account)
	if err != nil {
		return entry.AccountID{}, entry.TokenID{}, err
	}
	tokenID, err := entry.ParseTokenID(token)
	if err != nil {
		return entry.AccountID{}, entry.TokenID{}, err
	}
	return accountID, tokenID, nil
}

func decodeHex(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}
