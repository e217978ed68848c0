package transfer

import (
	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
)

// ChangeNftOwners moves every NFT transferred in one level. Each serial is
// unlinked from its sender's owned list and pushed onto the head of the
// receiver's list; counters and relationship balances follow.
func ChangeNftOwners(c *Context, level *tx.TransferOperation) error {
	for i := range level.TokenTransfers {
		list := &level.TokenTransfers[i]
		if len(list.NftTransfers) == 0 {
			continue
		}
		token, err := c.usableToken(list.Token)
		if err != nil {
			return err
		}
		if token.IsFungible() {
			return tx.Failf(tx.StatusNFT_TRANSFERS_ONLY_ALLOWED_FOR_NON_FUNGIBLE_UNIQUE, "token %s", token.ID)
		}
		for _, transfer := range list.NftTransfers {
			if err := changeOwner(c, token, transfer); err != nil {
				return err
			}
		}
	}
	return nil
}

func changeOwner(c *Context, token *entry.Token, transfer tx.NftTransfer) error {
	stores := c.Stores()
	nftID := entry.NftID{TokenID: token.ID, Serial: transfer.Serial}
	nft, err := stores.Nft(nftID)
	if err != nil {
		return err
	}
	if nft == nil {
		return tx.Failf(tx.StatusINVALID_NFT_ID, "nft %s", nftID)
	}
	if transfer.SenderID == transfer.ReceiverID {
		return tx.Failf(tx.StatusACCOUNT_REPEATED_IN_ACCOUNT_AMOUNTS, "nft %s sent to its owner", nftID)
	}
	if nft.OwnerID != transfer.SenderID {
		return tx.Failf(tx.StatusSENDER_DOES_NOT_OWN_NFT_SERIAL_NO, "nft %s owned by %s", nftID, nft.OwnerID)
	}

	sender, err := c.liveAccount(transfer.SenderID)
	if err != nil {
		return err
	}
	receiver, err := c.liveAccount(transfer.ReceiverID)
	if err != nil {
		return err
	}
	if transfer.IsApproval && !approvedSpender(nft, sender, c.Payer) {
		return tx.Failf(tx.StatusSPENDER_DOES_NOT_HAVE_ALLOWANCE, "nft %s, spender %s", nftID, c.Payer)
	}
	senderRel, err := usableRelation(c, sender.ID, token.ID)
	if err != nil {
		return err
	}
	receiverRel, err := usableRelation(c, receiver.ID, token.ID)
	if err != nil {
		return err
	}
	if senderRel.Balance < 1 {
		return tx.Failf(tx.StatusINSUFFICIENT_TOKEN_BALANCE, "account %s, token %s", sender.ID, token.ID)
	}

	if err := unlinkOwned(stores, sender, nft); err != nil {
		return err
	}
	if err := linkOwned(stores, receiver, nft); err != nil {
		return err
	}
	nft.OwnerID = receiver.ID
	nft.SpenderID = nil
	if err := stores.PutNft(nft); err != nil {
		return err
	}

	if sender.NumberOwnedNfts > 0 {
		sender.NumberOwnedNfts--
	}
	receiver.NumberOwnedNfts++

	senderRel.Balance--
	adjustPositiveBalances(sender, senderRel.Balance+1, senderRel.Balance)
	receiverRel.Balance++
	adjustPositiveBalances(receiver, receiverRel.Balance-1, receiverRel.Balance)

	for _, rel := range []*entry.TokenRelation{senderRel, receiverRel} {
		if err := stores.PutTokenRelation(rel); err != nil {
			return err
		}
	}
	for _, account := range []*entry.Account{sender, receiver} {
		if err := stores.PutAccount(account); err != nil {
			return err
		}
	}
	return nil
}

// approvedSpender reports whether spender may move nft on owner's behalf,
// either as its approved spender or through an approve-for-all allowance.
func approvedSpender(nft *entry.Nft, owner *entry.Account, spender entry.AccountID) bool {
	if nft.SpenderID != nil && *nft.SpenderID == spender {
		return true
	}
	return owner.HasApproveForAll(spender, nft.ID.TokenID)
}

// unlinkOwned removes nft from owner's list, patching its neighbours and the
// owner's head.
func unlinkOwned(stores *tx.Stores, owner *entry.Account, nft *entry.Nft) error {
	prevID, nextID := nft.OwnerPreviousNftID, nft.OwnerNextNftID
	if prevID != nil {
		prev, err := stores.Nft(*prevID)
		if err != nil {
			return err
		}
		if prev == nil {
			return tx.Failf(tx.StatusFAIL_INVALID, "broken owner list at %s", *prevID)
		}
		prev.OwnerNextNftID = entry.CopyNftIDPtr(nextID)
		if err := stores.PutNft(prev); err != nil {
			return err
		}
	} else {
		owner.HeadNftID = entry.CopyNftIDPtr(nextID)
	}
	if nextID != nil {
		next, err := stores.Nft(*nextID)
		if err != nil {
			return err
		}
		if next == nil {
			return tx.Failf(tx.StatusFAIL_INVALID, "broken owner list at %s", *nextID)
		}
		next.OwnerPreviousNftID = entry.CopyNftIDPtr(prevID)
		if err := stores.PutNft(next); err != nil {
			return err
		}
	}
	nft.OwnerPreviousNftID = nil
	nft.OwnerNextNftID = nil
	return nil
}

// linkOwned pushes nft onto the head of owner's list.
func linkOwned(stores *tx.Stores, owner *entry.Account, nft *entry.Nft) error {
	if oldHeadID := owner.HeadNftID; oldHeadID != nil {
		oldHead, err := stores.Nft(*oldHeadID)
		if err != nil {
			return err
		}
		if oldHead == nil {
			return tx.Failf(tx.StatusFAIL_INVALID, "broken owner list at %s", *oldHeadID)
		}
		id := nft.ID
		oldHead.OwnerPreviousNftID = &id
		if err := stores.PutNft(oldHead); err != nil {
			return err
		}
		nft.OwnerNextNftID = entry.CopyNftIDPtr(oldHeadID)
	}
	nft.OwnerPreviousNftID = nil
	id := nft.ID
	owner.HeadNftID = &id
	return nil
}
