package entry

import (
	"errors"
)

// TokenRelation associates an account with a token. For unique tokens the
// balance is the number of serials owned.
type TokenRelation struct {
	AccountID            AccountID `codec:"acct"`
	TokenID              TokenID   `codec:"tok"`
	Balance              int64     `codec:"bal"`
	KycGranted           bool      `codec:"kyc,omitempty"`
	Frozen               bool      `codec:"frz,omitempty"`
	AutomaticAssociation bool      `codec:"auto,omitempty"`
}

func (r *TokenRelation) Type() Type {
	return TypeTokenRelation
}

func (r *TokenRelation) Validate() error {
	if r.AccountID.IsZero() || r.AccountID.HasAlias() {
		return errors.New("relation account must be a canonical id")
	}
	if r.Balance < 0 {
		return errors.New("relation balance cannot be negative")
	}
	return nil
}

// Copy returns a copy.
func (r *TokenRelation) Copy() *TokenRelation {
	c := *r
	return &c
}
