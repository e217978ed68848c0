package transfer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
)

func acct(num int64) entry.AccountID { return entry.NewAccountID(0, 0, num) }
func tok(num int64) entry.TokenID    { return entry.NewTokenID(0, 0, num) }

func hbar(pairs ...int64) []tx.AccountAmount {
	var out []tx.AccountAmount
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, tx.AccountAmount{AccountID: acct(pairs[i]), Amount: pairs[i+1]})
	}
	return out
}

func TestPureChecks(t *testing.T) {
	cfg := tx.DefaultEngineConfig()
	cfg.MaxHbarTransfers = 4
	cfg.MaxTokenTransfers = 4
	cfg.MaxNftTransfers = 2

	nft := func(from, to, serial int64) tx.NftTransfer {
		return tx.NftTransfer{SenderID: acct(from), ReceiverID: acct(to), Serial: serial}
	}

	tests := []struct {
		name     string
		op       *tx.TransferOperation
		expected tx.Result
	}{
		{
			name:     "nil operation",
			op:       nil,
			expected: tx.StatusINVALID_TRANSACTION_BODY,
		},
		{
			name:     "empty operation",
			op:       &tx.TransferOperation{},
			expected: tx.StatusINVALID_TRANSACTION_BODY,
		},
		{
			name:     "balanced hbar",
			op:       &tx.TransferOperation{HbarTransfers: hbar(2, -10, 3, 10)},
			expected: tx.StatusSUCCESS,
		},
		{
			name:     "zero hbar amount allowed",
			op:       &tx.TransferOperation{HbarTransfers: hbar(2, -10, 3, 10, 4, 0)},
			expected: tx.StatusSUCCESS,
		},
		{
			name:     "hbar not zero sum",
			op:       &tx.TransferOperation{HbarTransfers: hbar(2, -10, 3, 9)},
			expected: tx.StatusINVALID_ACCOUNT_AMOUNTS,
		},
		{
			name:     "hbar account repeated",
			op:       &tx.TransferOperation{HbarTransfers: hbar(2, -10, 2, 10)},
			expected: tx.StatusACCOUNT_REPEATED_IN_ACCOUNT_AMOUNTS,
		},
		{
			name:     "hbar missing account",
			op:       &tx.TransferOperation{HbarTransfers: hbar(0, -10, 3, 10)},
			expected: tx.StatusINVALID_ACCOUNT_ID,
		},
		{
			name:     "too many hbar transfers",
			op:       &tx.TransferOperation{HbarTransfers: hbar(2, -4, 3, 1, 4, 1, 5, 1, 6, 1)},
			expected: tx.StatusTRANSFER_LIST_SIZE_LIMIT_EXCEEDED,
		},
		{
			name: "balanced token list",
			op: &tx.TransferOperation{TokenTransfers: []tx.TokenTransferList{
				{Token: tok(100), Transfers: hbar(2, -5, 3, 5)},
			}},
			expected: tx.StatusSUCCESS,
		},
		{
			name: "token repeated",
			op: &tx.TransferOperation{TokenTransfers: []tx.TokenTransferList{
				{Token: tok(100), Transfers: hbar(2, -5, 3, 5)},
				{Token: tok(100), Transfers: hbar(2, -5, 3, 5)},
			}},
			expected: tx.StatusTOKEN_ID_REPEATED_IN_TOKEN_LIST,
		},
		{
			name: "missing token id",
			op: &tx.TransferOperation{TokenTransfers: []tx.TokenTransferList{
				{Transfers: hbar(2, -5, 3, 5)},
			}},
			expected: tx.StatusINVALID_TOKEN_ID,
		},
		{
			name: "empty token list",
			op: &tx.TransferOperation{TokenTransfers: []tx.TokenTransferList{
				{Token: tok(100)},
			}},
			expected: tx.StatusEMPTY_TOKEN_TRANSFER_ACCOUNT_AMOUNTS,
		},
		{
			name: "fungible and nft mixed",
			op: &tx.TransferOperation{TokenTransfers: []tx.TokenTransferList{
				{Token: tok(100), Transfers: hbar(2, -5, 3, 5), NftTransfers: []tx.NftTransfer{nft(2, 3, 1)}},
			}},
			expected: tx.StatusINVALID_ACCOUNT_AMOUNTS,
		},
		{
			name: "zero token amount",
			op: &tx.TransferOperation{TokenTransfers: []tx.TokenTransferList{
				{Token: tok(100), Transfers: hbar(2, -5, 3, 5, 4, 0)},
			}},
			expected: tx.StatusINVALID_ACCOUNT_AMOUNTS,
		},
		{
			name: "token not zero sum",
			op: &tx.TransferOperation{TokenTransfers: []tx.TokenTransferList{
				{Token: tok(100), Transfers: hbar(2, -5, 3, 4)},
			}},
			expected: tx.StatusTRANSFERS_NOT_ZERO_SUM_FOR_TOKEN,
		},
		{
			name: "too many token transfers",
			op: &tx.TransferOperation{TokenTransfers: []tx.TokenTransferList{
				{Token: tok(100), Transfers: hbar(2, -5, 3, 5)},
				{Token: tok(200), Transfers: hbar(2, -2, 3, 1, 4, 1)},
			}},
			expected: tx.StatusTOKEN_TRANSFER_LIST_SIZE_LIMIT_EXCEEDED,
		},
		{
			name: "nft transfer",
			op: &tx.TransferOperation{TokenTransfers: []tx.TokenTransferList{
				{Token: tok(100), NftTransfers: []tx.NftTransfer{nft(2, 3, 1)}},
			}},
			expected: tx.StatusSUCCESS,
		},
		{
			name: "invalid serial",
			op: &tx.TransferOperation{TokenTransfers: []tx.TokenTransferList{
				{Token: tok(100), NftTransfers: []tx.NftTransfer{nft(2, 3, 0)}},
			}},
			expected: tx.StatusINVALID_NFT_ID,
		},
		{
			name: "nft sent to its owner",
			op: &tx.TransferOperation{TokenTransfers: []tx.TokenTransferList{
				{Token: tok(100), NftTransfers: []tx.NftTransfer{nft(2, 2, 1)}},
			}},
			expected: tx.StatusACCOUNT_REPEATED_IN_ACCOUNT_AMOUNTS,
		},
		{
			name: "nft missing receiver",
			op: &tx.TransferOperation{TokenTransfers: []tx.TokenTransferList{
				{Token: tok(100), NftTransfers: []tx.NftTransfer{nft(2, 0, 1)}},
			}},
			expected: tx.StatusINVALID_ACCOUNT_ID,
		},
		{
			name: "too many nft transfers",
			op: &tx.TransferOperation{TokenTransfers: []tx.TokenTransferList{
				{Token: tok(100), NftTransfers: []tx.NftTransfer{nft(2, 3, 1), nft(2, 3, 2)}},
				{Token: tok(200), NftTransfers: []tx.NftTransfer{nft(2, 3, 1)}},
			}},
			expected: tx.StatusBATCH_SIZE_LIMIT_EXCEEDED,
		},
		{
			name: "alias reference accepted",
			op: &tx.TransferOperation{HbarTransfers: []tx.AccountAmount{
				{AccountID: acct(2), Amount: -10},
				{AccountID: entry.NewAliasAccountID(0, 0, []byte{0xaa, 0xbb}), Amount: 10},
			}},
			expected: tx.StatusSUCCESS,
		},
	}

	h := NewHandler()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := h.PureChecks(tc.op, cfg)
			require.Equal(t, tc.expected, tx.ResultOf(err), "error: %v", err)
		})
	}
}

func TestAddBalance(t *testing.T) {
	v, err := addBalance(10, -4)
	require.NoError(t, err)
	require.Equal(t, int64(6), v)

	_, err = addBalance(1<<62, 1<<62)
	require.Error(t, err)
}
