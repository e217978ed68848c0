package testing

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
	"github.com/LeJamon/goHederad/internal/core/tx/transfer"
	"github.com/LeJamon/goHederad/internal/storage/statedb"
)

// TestEnv manages a test ledger for transfer testing. State lives in an
// in-memory view; every Transfer goes through a real engine.
type TestEnv struct {
	t        *testing.T
	view     *statedb.MemoryView
	stores   *tx.Stores
	engine   *tx.Engine
	config   tx.EngineConfig
	accounts map[string]*Account

	// LogHook captures the engine's log entries.
	LogHook *logtest.Hook
}

// EnvOption customizes a TestEnv before its engine is built.
type EnvOption func(*envOptions)

type envOptions struct {
	config     tx.EngineConfig
	engineOpts []tx.EngineOption
}

// WithConfig edits the engine configuration.
func WithConfig(edit func(*tx.EngineConfig)) EnvOption {
	return func(o *envOptions) { edit(&o.config) }
}

// WithEngineOptions passes extra options to the engine.
func WithEngineOptions(opts ...tx.EngineOption) EnvOption {
	return func(o *envOptions) { o.engineOpts = append(o.engineOpts, opts...) }
}

// NewTestEnv creates a new test environment with the default configuration.
func NewTestEnv(t *testing.T, opts ...EnvOption) *TestEnv {
	t.Helper()

	o := &envOptions{config: tx.DefaultEngineConfig()}
	for _, opt := range opts {
		opt(o)
	}

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	view := statedb.NewMemoryView()
	engineOpts := append([]tx.EngineOption{tx.WithLogger(logger)}, o.engineOpts...)
	return &TestEnv{
		t:        t,
		view:     view,
		stores:   tx.NewStores(view),
		engine:   tx.NewEngine(view, o.config, transfer.NewHandler(), engineOpts...),
		config:   o.config,
		accounts: make(map[string]*Account),
		LogHook:  hook,
	}
}

// Config returns the engine configuration in force.
func (e *TestEnv) Config() tx.EngineConfig {
	return e.config
}

// View returns the durable view the engine commits to.
func (e *TestEnv) View() *statedb.MemoryView {
	return e.view
}

// Stores returns typed stores over the durable view.
func (e *TestEnv) Stores() *tx.Stores {
	return e.stores
}

func (e *TestEnv) nextNum(isAccount bool) int64 {
	counters, err := e.stores.EntityCounters()
	require.NoError(e.t, err)
	counters.LastEntityNum++
	if isAccount {
		counters.NumAccounts++
	}
	require.NoError(e.t, e.stores.PutEntityCounters(counters))
	return counters.LastEntityNum
}

// CreateAccount creates a new ed25519 account named name holding balance
// tinybars.
func (e *TestEnv) CreateAccount(name string, balance int64) *Account {
	return e.Fund(NewAccount(name), balance)
}

// CreateECDSAAccount creates a new secp256k1 account whose EVM address is
// indexed.
func (e *TestEnv) CreateECDSAAccount(name string, balance int64) *Account {
	return e.Fund(NewECDSAAccount(name), balance)
}

// Fund writes acc into state with balance tinybars.
func (e *TestEnv) Fund(acc *Account, balance int64) *Account {
	e.t.Helper()
	acc.ID = entry.NewAccountID(e.config.Shard, e.config.Realm, e.nextNum(true))
	account := &entry.Account{
		ID:             acc.ID,
		Key:            acc.KeyAlias,
		Alias:          acc.KeyAlias,
		EvmAddress:     acc.EvmAddress,
		TinybarBalance: balance,
	}
	require.NoError(e.t, e.stores.PutAccount(account))
	require.NoError(e.t, e.stores.PutAlias(acc.KeyAlias, acc.ID))
	if len(acc.EvmAddress) > 0 {
		require.NoError(e.t, e.stores.PutAlias(acc.EvmAddress, acc.ID))
	}
	e.accounts[acc.Name] = acc
	return acc
}

// Account loads acc's ledger entry.
func (e *TestEnv) Account(acc *Account) *entry.Account {
	e.t.Helper()
	return e.AccountByID(acc.ID)
}

// AccountByID loads an account entry, failing the test when it is missing.
func (e *TestEnv) AccountByID(id entry.AccountID) *entry.Account {
	e.t.Helper()
	account, err := e.stores.Account(id)
	require.NoError(e.t, err)
	require.NotNil(e.t, account, "account %s does not exist", id)
	return account
}

// UpdateAccount loads acc, applies edit and writes it back.
func (e *TestEnv) UpdateAccount(acc *Account, edit func(*entry.Account)) {
	e.t.Helper()
	account := e.Account(acc)
	edit(account)
	require.NoError(e.t, e.stores.PutAccount(account))
}

// Balance returns acc's tinybar balance.
func (e *TestEnv) Balance(acc *Account) int64 {
	e.t.Helper()
	return e.Account(acc).TinybarBalance
}

// SetMaxAutoAssociations sets acc's automatic association budget.
func (e *TestEnv) SetMaxAutoAssociations(acc *Account, max int32) {
	e.UpdateAccount(acc, func(a *entry.Account) { a.MaxAutoAssociations = max })
}

// GrantCryptoAllowance lets spender debit up to amount tinybars from owner.
func (e *TestEnv) GrantCryptoAllowance(owner, spender *Account, amount int64) {
	e.UpdateAccount(owner, func(a *entry.Account) { a.SetCryptoAllowance(spender.ID, amount) })
}

// GrantTokenAllowance lets spender debit up to amount units of token from
// owner.
func (e *TestEnv) GrantTokenAllowance(owner, spender *Account, token entry.TokenID, amount int64) {
	e.UpdateAccount(owner, func(a *entry.Account) { a.SetTokenAllowance(spender.ID, token, amount) })
}

// GrantApproveForAll lets spender move every serial of token owner holds.
func (e *TestEnv) GrantApproveForAll(owner, spender *Account, token entry.TokenID) {
	e.UpdateAccount(owner, func(a *entry.Account) {
		a.ApproveForAllNftAllowances = append(a.ApproveForAllNftAllowances,
			entry.NftAllowance{SpenderID: spender.ID, TokenID: token})
	})
}

// Transfer applies op with payer as the effective payer.
func (e *TestEnv) Transfer(payer *Account, op *tx.TransferOperation) tx.ApplyResult {
	e.t.Helper()
	return e.engine.ApplyTransfer(op, payer.ID)
}

// Snapshot copies the whole durable state.
func (e *TestEnv) Snapshot() map[[32]byte][]byte {
	e.t.Helper()
	out := make(map[[32]byte][]byte)
	require.NoError(e.t, e.view.ForEach(func(key [32]byte, data []byte) bool {
		out[key] = append([]byte(nil), data...)
		return true
	}))
	return out
}
