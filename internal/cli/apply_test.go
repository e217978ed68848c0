package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
	"github.com/LeJamon/goHederad/internal/storage/statedb"
)

const feeScenario = `
accounts:
  - id: 0.0.2
    balance: 1000
    key: "1220aa"
  - id: 0.0.3
    balance: 50
    key: "1220bb"
  - id: 0.0.9
    key: "1220cc"
tokens:
  - id: 0.0.100
    symbol: GOLD
    treasury: 0.0.2
    supply: 1000
    fees:
      - collector: 0.0.9
        fixed:
          amount: 5
relations:
  - {account: 0.0.2, token: 0.0.100, balance: 500, kyc: true}
  - {account: 0.0.3, token: 0.0.100, balance: 500, kyc: true}
transfers:
  - name: hbar
    payer: 0.0.2
    hbar:
      - {account: 0.0.2, amount: -10}
      - {account: 0.0.3, amount: 10}
  - name: token with fee
    payer: 0.0.3
    tokens:
      - token: 0.0.100
        transfers:
          - {account: 0.0.3, amount: -100}
          - {account: 0.0.2, amount: 100}
  - name: lazy create
    payer: 0.0.2
    hbar:
      - {account: 0.0.2, amount: -1}
      - {account: 0.0.abababababababababababababababababababab, amount: 1}
  - name: overdraft
    payer: 0.0.3
    hbar:
      - {account: 0.0.3, amount: -100000}
      - {account: 0.0.2, amount: 100000}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runRoot(t *testing.T, args ...string) string {
	t.Helper()
	configFile, debug = "", false
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestApplyScenario(t *testing.T) {
	scenario := writeFile(t, t.TempDir(), "fees.yaml", feeScenario)

	out := runRoot(t, "apply", scenario)
	require.Contains(t, out, "hbar: SUCCESS\n")
	require.Contains(t, out, "token with fee: SUCCESS\n  fee 5 hbar -> 0.0.9 (payers 0.0.3)\n")
	require.Contains(t, out, "lazy create: SUCCESS\n  alias abababababababababababababababababababab -> 0.0.101\n")
	require.Contains(t, out, "created 1 account(s), 1 hollow")
	require.Contains(t, out, "overdraft: INSUFFICIENT_ACCOUNT_BALANCE\n  reason:")
}

func TestApplyOnPebbleWithMetrics(t *testing.T) {
	dir := t.TempDir()
	scenario := writeFile(t, dir, "fees.yaml", feeScenario)
	conf := writeFile(t, dir, "hederad.toml", `
[state]
backend = "pebble"
path = "`+filepath.Join(dir, "state")+`"

[metrics]
enabled = true
`)

	out := runRoot(t, "apply", scenario, "--conf", conf)
	require.Contains(t, out, "token with fee: SUCCESS")
	require.Contains(t, out, "hederad_transfer_results_total status=SUCCESS 3")
	require.Contains(t, out, "hederad_transfer_results_total status=INSUFFICIENT_ACCOUNT_BALANCE 1")
	require.Contains(t, out, "hederad_accounts_created_total kind=lazy 1")
}

func TestVersionCommand(t *testing.T) {
	out := runRoot(t, "version")
	require.Contains(t, out, "goHederad version 0.1.0-dev")
}

func TestParseScenarioRejectsUnknownFields(t *testing.T) {
	_, err := ParseScenario([]byte("accounts:\n  - id: 0.0.2\n    balanse: 5\n"))
	require.Error(t, err)
}

func TestSeedLinksNfts(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
accounts:
  - {id: 0.0.2, key: "01"}
tokens:
  - {id: 0.0.200, type: nft, treasury: 0.0.2, supply: 2}
relations:
  - {account: 0.0.2, token: 0.0.200, kyc: true}
nfts:
  - {token: 0.0.200, serial: 1, owner: 0.0.2}
  - {token: 0.0.200, serial: 2, owner: 0.0.2}
`))
	require.NoError(t, err)

	stores := tx.NewStores(statedb.NewMemoryView())
	require.NoError(t, scenario.Seed(stores))

	owner, err := stores.Account(entry.NewAccountID(0, 0, 2))
	require.NoError(t, err)
	require.Equal(t, uint32(2), owner.NumberOwnedNfts)
	require.Equal(t, uint32(1), owner.NumberAssociations)

	token := entry.NewTokenID(0, 0, 200)
	require.Equal(t, entry.NftID{TokenID: token, Serial: 2}, *owner.HeadNftID)
	head, err := stores.Nft(*owner.HeadNftID)
	require.NoError(t, err)
	require.Equal(t, entry.NftID{TokenID: token, Serial: 1}, *head.OwnerNextNftID)

	rel, err := stores.TokenRelation(owner.ID, token)
	require.NoError(t, err)
	require.Equal(t, int64(2), rel.Balance)

	counters, err := stores.EntityCounters()
	require.NoError(t, err)
	require.Equal(t, int64(200), counters.LastEntityNum)
	require.Equal(t, int64(1), counters.NumAccounts)
}

func TestSeedRejectsNftWithoutRelation(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
accounts:
  - {id: 0.0.2}
tokens:
  - {id: 0.0.200, type: nft, treasury: 0.0.2}
nfts:
  - {token: 0.0.200, serial: 1, owner: 0.0.2}
`))
	require.NoError(t, err)
	err = scenario.Seed(tx.NewStores(statedb.NewMemoryView()))
	require.ErrorIs(t, err, tx.StatusTOKEN_NOT_ASSOCIATED_TO_ACCOUNT)
}
