package entry

import (
	"errors"
)

// Nft is a single serial of a unique token. OwnerPreviousNftID and
// OwnerNextNftID link the serial into its owner's list, whose head is
// Account.HeadNftID.
type Nft struct {
	ID        NftID      `codec:"id"`
	OwnerID   AccountID  `codec:"owner"`
	SpenderID *AccountID `codec:"spender,omitempty"`
	Metadata  []byte     `codec:"meta,omitempty"`

	OwnerPreviousNftID *NftID `codec:"prev,omitempty"`
	OwnerNextNftID     *NftID `codec:"next,omitempty"`
}

func (n *Nft) Type() Type {
	return TypeNft
}

func (n *Nft) Validate() error {
	if n.ID.Serial <= 0 {
		return errors.New("serial number must be positive")
	}
	if n.OwnerID.IsZero() || n.OwnerID.HasAlias() {
		return errors.New("nft owner must be a canonical account id")
	}
	return nil
}

// Copy returns a deep copy.
func (n *Nft) Copy() *Nft {
	c := *n
	c.Metadata = cloneBytes(n.Metadata)
	c.SpenderID = copyAccountIDPtr(n.SpenderID)
	c.OwnerPreviousNftID = CopyNftIDPtr(n.OwnerPreviousNftID)
	c.OwnerNextNftID = CopyNftIDPtr(n.OwnerNextNftID)
	return &c
}

// CopyNftIDPtr copies an optional NFT id.
func CopyNftIDPtr(id *NftID) *NftID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func copyAccountIDPtr(id *AccountID) *AccountID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
