package tx

import (
	"github.com/sirupsen/logrus"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
)

// ApplyContext provides all the state and helpers needed to apply a transfer.
// It is created fresh for every top-level transaction.
type ApplyContext struct {
	// Savepoints is the revertible transaction scope; every read and write
	// goes through its innermost savepoint
	Savepoints *SavepointStack

	// Payer is the effective payer of the transaction
	Payer entry.AccountID

	// Config holds the feature flags and limits in force
	Config EngineConfig

	// Dispatcher runs child operations such as account creation
	Dispatcher Dispatcher

	// Record collects the externally visible outcome
	Record *Record

	Log logrus.FieldLogger
}

// View returns the innermost savepoint.
func (ctx *ApplyContext) View() LedgerView {
	return ctx.Savepoints.Current()
}

// Stores returns typed stores over the innermost savepoint.
func (ctx *ApplyContext) Stores() *Stores {
	return NewStores(ctx.Savepoints.Current())
}
