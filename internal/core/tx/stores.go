package tx

import (
	"fmt"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/ledger/keylet"
)

// Stores gives typed access to the entries held in a LedgerView. Getters
// return (nil, nil) for missing entries, following the view convention.
type Stores struct {
	view LedgerView
}

// NewStores wraps view.
func NewStores(view LedgerView) *Stores {
	return &Stores{view: view}
}

// View returns the wrapped view.
func (s *Stores) View() LedgerView {
	return s.view
}

func (s *Stores) read(k keylet.Keylet, e entry.Entry) (bool, error) {
	data, err := s.view.Read(k)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", k.Type, err)
	}
	if data == nil {
		return false, nil
	}
	if err := entry.Unmarshal(data, e); err != nil {
		return false, fmt.Errorf("decode %s: %w", k.Type, err)
	}
	return true, nil
}

func (s *Stores) write(k keylet.Keylet, e entry.Entry) error {
	data, err := entry.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode %s: %w", k.Type, err)
	}
	exists, err := s.view.Exists(k)
	if err != nil {
		return fmt.Errorf("check %s: %w", k.Type, err)
	}
	if exists {
		return s.view.Update(k, data)
	}
	return s.view.Insert(k, data)
}

// Account loads an account by canonical id.
func (s *Stores) Account(id entry.AccountID) (*entry.Account, error) {
	account := &entry.Account{}
	found, err := s.read(keylet.Account(id), account)
	if err != nil || !found {
		return nil, err
	}
	return account, nil
}

// PutAccount writes account.
func (s *Stores) PutAccount(account *entry.Account) error {
	return s.write(keylet.Account(account.ID), account)
}

// Token loads a token definition.
func (s *Stores) Token(id entry.TokenID) (*entry.Token, error) {
	token := &entry.Token{}
	found, err := s.read(keylet.Token(id), token)
	if err != nil || !found {
		return nil, err
	}
	return token, nil
}

// PutToken writes token.
func (s *Stores) PutToken(token *entry.Token) error {
	return s.write(keylet.Token(token.ID), token)
}

// TokenRelation loads the (account, token) relationship.
func (s *Stores) TokenRelation(account entry.AccountID, token entry.TokenID) (*entry.TokenRelation, error) {
	rel := &entry.TokenRelation{}
	found, err := s.read(keylet.TokenRelation(account, token), rel)
	if err != nil || !found {
		return nil, err
	}
	return rel, nil
}

// PutTokenRelation writes rel.
func (s *Stores) PutTokenRelation(rel *entry.TokenRelation) error {
	return s.write(keylet.TokenRelation(rel.AccountID, rel.TokenID), rel)
}

// Nft loads a unique token serial.
func (s *Stores) Nft(id entry.NftID) (*entry.Nft, error) {
	nft := &entry.Nft{}
	found, err := s.read(keylet.Nft(id), nft)
	if err != nil || !found {
		return nil, err
	}
	return nft, nil
}

// PutNft writes nft.
func (s *Stores) PutNft(nft *entry.Nft) error {
	return s.write(keylet.Nft(nft.ID), nft)
}

// AccountIDByAlias looks alias up in the alias index.
func (s *Stores) AccountIDByAlias(alias []byte) (entry.AccountID, bool, error) {
	mapping := &entry.AliasMapping{}
	found, err := s.read(keylet.Alias(alias), mapping)
	if err != nil || !found {
		return entry.AccountID{}, false, err
	}
	return mapping.AccountID, true, nil
}

// PutAlias maps alias to id in the alias index.
func (s *Stores) PutAlias(alias []byte, id entry.AccountID) error {
	return s.write(keylet.Alias(alias), &entry.AliasMapping{Alias: alias, AccountID: id})
}

// EntityCounters loads the entity counters, which start at zero.
func (s *Stores) EntityCounters() (*entry.EntityCounters, error) {
	counters := &entry.EntityCounters{}
	if _, err := s.read(keylet.EntityCounters(), counters); err != nil {
		return nil, err
	}
	return counters, nil
}

// PutEntityCounters writes counters.
func (s *Stores) PutEntityCounters(counters *entry.EntityCounters) error {
	return s.write(keylet.EntityCounters(), counters)
}

// NextEntityNum allocates the next entity number and persists the counter.
func (s *Stores) NextEntityNum() (int64, error) {
	counters, err := s.EntityCounters()
	if err != nil {
		return 0, err
	}
	counters.LastEntityNum++
	if err := s.PutEntityCounters(counters); err != nil {
		return 0, err
	}
	return counters.LastEntityNum, nil
}
