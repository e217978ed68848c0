// Package transfer implements the crypto transfer pipeline: alias
// resolution, token association, custom fee assessment and the balance and
// ownership adjustments applied for every fee level.
package transfer

import (
	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
)

// Context is the per-transfer scratchpad shared by every step.
type Context struct {
	*tx.ApplyContext

	resolutions     map[string]entry.AccountID
	resolutionOrder []string

	numAutoCreations int
	numLazyCreations int

	tokens map[entry.TokenID]*entry.Token
}

// NewContext wraps ctx for one transfer.
func NewContext(ctx *tx.ApplyContext) *Context {
	return &Context{
		ApplyContext: ctx,
		resolutions:  make(map[string]entry.AccountID),
		tokens:       make(map[entry.TokenID]*entry.Token),
	}
}

// ResolvedID returns the account alias was resolved to.
func (c *Context) ResolvedID(alias []byte) (entry.AccountID, bool) {
	id, ok := c.resolutions[string(alias)]
	return id, ok
}

func (c *Context) addResolution(alias []byte, id entry.AccountID) {
	key := string(alias)
	if _, ok := c.resolutions[key]; !ok {
		c.resolutionOrder = append(c.resolutionOrder, key)
	}
	c.resolutions[key] = id
}

// Resolutions lists every alias resolution in the order it was made.
func (c *Context) Resolutions() []tx.AliasResolution {
	out := make([]tx.AliasResolution, 0, len(c.resolutionOrder))
	for _, key := range c.resolutionOrder {
		out = append(out, tx.AliasResolution{Alias: []byte(key), AccountID: c.resolutions[key]})
	}
	return out
}

// NumAutoCreations is the number of accounts created from key aliases.
func (c *Context) NumAutoCreations() int {
	return c.numAutoCreations
}

// NumLazyCreations is the number of hollow accounts created from EVM
// addresses.
func (c *Context) NumLazyCreations() int {
	return c.numLazyCreations
}

// Token loads a token definition, caching it for the rest of the transfer.
// Token definitions are never written by the pipeline.
func (c *Context) Token(id entry.TokenID) (*entry.Token, error) {
	if token, ok := c.tokens[id]; ok {
		return token, nil
	}
	token, err := c.Stores().Token(id)
	if err != nil {
		return nil, err
	}
	if token != nil {
		c.tokens[id] = token
	}
	return token, nil
}

// usableToken loads a token that transfers may move.
func (c *Context) usableToken(id entry.TokenID) (*entry.Token, error) {
	token, err := c.Token(id)
	if err != nil {
		return nil, err
	}
	switch {
	case token == nil:
		return nil, tx.Failf(tx.StatusINVALID_TOKEN_ID, "token %s", id)
	case token.Deleted:
		return nil, tx.Failf(tx.StatusTOKEN_WAS_DELETED, "token %s", id)
	case token.Paused:
		return nil, tx.Failf(tx.StatusTOKEN_IS_PAUSED, "token %s", id)
	}
	return token, nil
}

// liveAccount loads an account that must exist and not be deleted.
func (c *Context) liveAccount(id entry.AccountID) (*entry.Account, error) {
	account, err := c.Stores().Account(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, tx.Failf(tx.StatusINVALID_ACCOUNT_ID, "account %s", id)
	}
	if account.Deleted {
		return nil, tx.Failf(tx.StatusACCOUNT_DELETED, "account %s", id)
	}
	return account, nil
}

// TokenRelation loads the (account, token) relationship.
func (c *Context) TokenRelation(account entry.AccountID, token entry.TokenID) (*entry.TokenRelation, error) {
	return c.Stores().TokenRelation(account, token)
}
