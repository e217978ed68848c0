package tx

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/ledger/keylet"
)

// LedgerView provides read/write access to ledger state
type LedgerView interface {
	// Read reads a ledger entry; a missing entry reads as nil
	Read(k keylet.Keylet) ([]byte, error)

	// Exists checks if an entry exists
	Exists(k keylet.Keylet) (bool, error)

	// Insert adds a new entry
	Insert(k keylet.Keylet, data []byte) error

	// Update modifies an existing entry
	Update(k keylet.Keylet, data []byte) error

	// Erase removes an entry
	Erase(k keylet.Keylet) error

	// ForEach iterates over all state entries
	// If fn returns false, iteration stops early
	ForEach(fn func(key [32]byte, data []byte) bool) error
}

// EngineConfig holds configuration for the transfer engine
type EngineConfig struct {
	// Shard and Realm of the entities created by this node
	Shard int64
	Realm int64

	// AutoCreationEnabled allows transfers to create accounts from aliases
	AutoCreationEnabled bool

	// LazyCreationEnabled additionally allows hollow accounts from bare EVM
	// addresses
	LazyCreationEnabled bool

	// TokenAutoCreationsEnabled allows token transfers to create accounts
	TokenAutoCreationsEnabled bool

	// MaxNumberOfAccounts caps the number of accounts in state
	MaxNumberOfAccounts int64

	// UnlimitedAutoAssociationsEnabled makes -1 mean unlimited automatic
	// associations and gives auto-created accounts that value
	UnlimitedAutoAssociationsEnabled bool

	// LimitTokenAssociations turns on the MaxTokensPerAccount ceiling
	LimitTokenAssociations bool
	MaxTokensPerAccount    uint32

	// MaxCustomFeeDepth bounds the number of fee levels above level 0
	MaxCustomFeeDepth int

	// Size ceilings for a single transfer
	MaxHbarTransfers      int
	MaxTokenTransfers     int
	MaxNftTransfers       int
	MaxXferBalanceChanges int
}

// DefaultEngineConfig returns the configuration used when nothing is set.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		AutoCreationEnabled:              true,
		LazyCreationEnabled:              true,
		TokenAutoCreationsEnabled:        true,
		MaxNumberOfAccounts:              20_000_000,
		UnlimitedAutoAssociationsEnabled: true,
		MaxTokensPerAccount:              1000,
		MaxCustomFeeDepth:                2,
		MaxHbarTransfers:                 10,
		MaxTokenTransfers:                10,
		MaxNftTransfers:                  10,
		MaxXferBalanceChanges:            20,
	}
}

// TransferHandler implements the crypto transfer itself. PureChecks must not
// touch state; Handle runs the pipeline inside ctx's savepoints.
type TransferHandler interface {
	PureChecks(op *TransferOperation, cfg EngineConfig) error
	Handle(ctx *ApplyContext, op *TransferOperation) error
}

// MetricsRecorder observes applied transfers.
type MetricsRecorder interface {
	TransferApplied(result Result, levels int, elapsed time.Duration)
	AccountsCreated(auto, lazy int)
}

// ApplyResult contains the result of applying a transfer
type ApplyResult struct {
	// Result is the transaction result code
	Result Result

	// Applied indicates if the transfer was committed to the ledger
	Applied bool

	// Record is set only when the transfer was applied
	Record *Record

	// Message is a human-readable result message
	Message string
}

// Engine applies transfers against a ledger view
type Engine struct {
	view       LedgerView
	config     EngineConfig
	handler    TransferHandler
	dispatcher Dispatcher
	metrics    MetricsRecorder
	log        logrus.FieldLogger
}

// EngineOption customizes an Engine
type EngineOption func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(log logrus.FieldLogger) EngineOption {
	return func(e *Engine) { e.log = log }
}

// WithMetrics sets the recorder notified after every transfer.
func WithMetrics(m MetricsRecorder) EngineOption {
	return func(e *Engine) { e.metrics = m }
}

// WithDispatcher replaces the engine's own child dispatch.
func WithDispatcher(d Dispatcher) EngineOption {
	return func(e *Engine) { e.dispatcher = d }
}

// NewEngine creates a new transfer engine
func NewEngine(view LedgerView, config EngineConfig, handler TransferHandler, opts ...EngineOption) *Engine {
	e := &Engine{
		view:    view,
		config:  config,
		handler: handler,
	}
	e.dispatcher = e
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		discard := logrus.New()
		discard.SetLevel(logrus.PanicLevel)
		e.log = discard
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() EngineConfig {
	return e.config
}

// ApplyTransfer validates op, runs it inside a fresh savepoint and commits the
// result into the engine's view. Any failure leaves the view untouched.
func (e *Engine) ApplyTransfer(op *TransferOperation, payer entry.AccountID) ApplyResult {
	start := time.Now()
	log := e.log.WithField("payer", payer.String())

	if err := e.handler.PureChecks(op, e.config); err != nil {
		return e.reject(log, err, 0, start)
	}

	savepoints := NewSavepointStack(e.view)
	ctx := &ApplyContext{
		Savepoints: savepoints,
		Payer:      payer,
		Config:     e.config,
		Dispatcher: e.dispatcher,
		Record:     &Record{},
		Log:        log,
	}

	payerAccount, err := ctx.Stores().Account(payer)
	if err != nil {
		return e.reject(log, err, 0, start)
	}
	if payerAccount == nil || payerAccount.Deleted {
		return e.reject(log, StatusINVALID_PAYER_ACCOUNT_ID, 0, start)
	}

	if err := e.handler.Handle(ctx, op); err != nil {
		savepoints.RollbackAll()
		return e.reject(log, err, len(ctx.Record.Levels), start)
	}
	if err := savepoints.CommitAll(); err != nil {
		savepoints.RollbackAll()
		return e.reject(log, err, len(ctx.Record.Levels), start)
	}

	ctx.Record.Status = StatusSUCCESS
	log.WithFields(logrus.Fields{
		"status":         StatusSUCCESS.String(),
		"levels":         len(ctx.Record.Levels),
		"auto_creations": ctx.Record.AutoCreations,
		"lazy_creations": ctx.Record.LazyCreations,
	}).Debug("transfer applied")
	if e.metrics != nil {
		e.metrics.TransferApplied(StatusSUCCESS, len(ctx.Record.Levels), time.Since(start))
		e.metrics.AccountsCreated(ctx.Record.AutoCreations, ctx.Record.LazyCreations)
	}
	return ApplyResult{
		Result:  StatusSUCCESS,
		Applied: true,
		Record:  ctx.Record,
		Message: StatusSUCCESS.String(),
	}
}

func (e *Engine) reject(log logrus.FieldLogger, err error, levels int, start time.Time) ApplyResult {
	result := ResultOf(err)
	if result == StatusFAIL_INVALID {
		log.WithError(err).Error("transfer failed with an internal fault")
	} else {
		log.WithError(err).WithField("status", result.String()).Debug("transfer rejected")
	}
	if e.metrics != nil {
		e.metrics.TransferApplied(result, levels, time.Since(start))
	}
	return ApplyResult{
		Result:  result,
		Message: err.Error(),
	}
}

// DispatchCreateAccount runs the account creation in a nested savepoint that
// is merged on success and discarded on failure.
func (e *Engine) DispatchCreateAccount(ctx *ApplyContext, payer entry.AccountID, op CreateAccountOp) (entry.AccountID, error) {
	child := ctx.Savepoints.Begin()
	id, err := CreateAccount(NewStores(child), ctx.Config, op)
	if err != nil {
		if rbErr := ctx.Savepoints.Rollback(); rbErr != nil {
			return entry.AccountID{}, rbErr
		}
		return entry.AccountID{}, err
	}
	if err := ctx.Savepoints.Commit(); err != nil {
		return entry.AccountID{}, err
	}
	ctx.Log.WithFields(logrus.Fields{
		"account": id.String(),
		"hollow":  op.IsHollow(),
		"creator": payer.String(),
	}).Debug("account created from alias")
	return id, nil
}
