// Package customfee computes the custom fees owed by a transfer. Fees are
// laid out as levels: level 0 is the transfer itself, adjusted for fees
// charged in the token being moved, and every further level carries the fees
// charged on the level below it.
package customfee

import (
	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/tx"
)

// State is the read access the assessor needs.
type State interface {
	Token(id entry.TokenID) (*entry.Token, error)
	TokenRelation(account entry.AccountID, token entry.TokenID) (*entry.TokenRelation, error)
}

// Limits bound the work a single transfer can cause.
type Limits struct {
	// MaxDepth is the number of levels allowed above level 0
	MaxDepth int
	// MaxBalanceChanges bounds hbar and fungible adjustments over all levels
	MaxBalanceChanges int
}

// LimitsFrom reads the limits from the engine configuration.
func LimitsFrom(cfg tx.EngineConfig) Limits {
	return Limits{
		MaxDepth:          cfg.MaxCustomFeeDepth,
		MaxBalanceChanges: cfg.MaxXferBalanceChanges,
	}
}

// Assessment is the result of assessing a transfer.
type Assessment struct {
	Levels             []*tx.TransferOperation
	AssessedCustomFees []tx.AssessedCustomFee
}

type royaltyKey struct {
	sender entry.AccountID
	token  entry.TokenID
}

// Assessor assesses the custom fees of one transfer. It is not reusable.
type Assessor struct {
	state  State
	limits Limits

	original      *tx.TransferOperation
	royaltiesPaid map[royaltyKey]bool
	assessed      []tx.AssessedCustomFee
}

// NewAssessor returns an assessor reading tokens and relations from state.
func NewAssessor(state State, limits Limits) *Assessor {
	return &Assessor{
		state:         state,
		limits:        limits,
		royaltiesPaid: make(map[royaltyKey]bool),
	}
}

// Assess expands op into its fee levels.
func (a *Assessor) Assess(op *tx.TransferOperation) (*Assessment, error) {
	a.original = op.Copy()

	current := levelFrom(op)
	levels := []*level{current}
	for depth := 0; ; depth++ {
		next := newLevel()
		if err := a.assessLevel(current, next, depth); err != nil {
			return nil, err
		}
		if next.isEmpty() {
			break
		}
		if depth+1 > a.limits.MaxDepth {
			return nil, tx.Failf(tx.StatusCUSTOM_FEE_CHARGING_EXCEEDED_MAX_RECURSION_DEPTH,
				"fees nest deeper than %d levels", a.limits.MaxDepth)
		}
		levels = append(levels, next)
		current = next
	}

	out := &Assessment{AssessedCustomFees: a.assessed}
	changes := 0
	for _, l := range levels {
		built := l.build()
		changes += built.BalanceChanges()
		out.Levels = append(out.Levels, built)
	}
	if len(a.assessed) > 0 && changes > a.limits.MaxBalanceChanges {
		return nil, tx.Failf(tx.StatusCUSTOM_FEE_CHARGING_EXCEEDED_MAX_ACCOUNT_AMOUNTS,
			"%d balance changes exceed %d", changes, a.limits.MaxBalanceChanges)
	}
	return out, nil
}

// assessLevel charges the fees due on current. Fees in the token being
// charged are folded into current, everything else goes to next. Above
// level 0 only fungible fee charges are reassessed.
func (a *Assessor) assessLevel(current, next *level, depth int) error {
	lists := append([]*tokenLevel(nil), current.tokens...)
	for _, tl := range lists {
		token, err := a.state.Token(tl.token)
		if err != nil {
			return err
		}
		if token == nil {
			return tx.Failf(tx.StatusINVALID_TOKEN_ID, "token %s", tl.token)
		}
		if len(token.CustomFees) == 0 {
			continue
		}

		payers := debitors(tl, depth)
		credits := newCreditPool(tl)

		for i := range token.CustomFees {
			fee := &token.CustomFees[i]
			if fee.Fixed == nil {
				continue
			}
			for _, payer := range payers {
				if err := a.chargeFixed(token, fee, payer.AccountID, current, next); err != nil {
					return err
				}
			}
			if depth == 0 {
				for _, sender := range nftSenders(tl) {
					if err := a.chargeFixed(token, fee, sender, current, next); err != nil {
						return err
					}
				}
			}
		}

		for i := range token.CustomFees {
			fee := &token.CustomFees[i]
			if fee.Fractional == nil || !token.IsFungible() {
				continue
			}
			for _, payer := range payers {
				if err := a.chargeFractional(token, fee, payer, credits, tl, next); err != nil {
					return err
				}
			}
		}

		if depth > 0 {
			continue
		}
		for i := range token.CustomFees {
			fee := &token.CustomFees[i]
			if fee.Royalty == nil {
				continue
			}
			for _, nft := range tl.nfts {
				if err := a.chargeRoyalty(token, fee, nft, next); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// debitors snapshots the debits in tl that owe fees at depth.
func debitors(tl *tokenLevel, depth int) []tx.AccountAmount {
	var out []tx.AccountAmount
	for _, aa := range tl.transfers {
		if aa.Amount >= 0 {
			continue
		}
		if depth > 0 && !tl.reassess[aa.AccountID] {
			continue
		}
		out = append(out, aa)
	}
	return out
}

func nftSenders(tl *tokenLevel) []entry.AccountID {
	var out []entry.AccountID
	seen := make(map[entry.AccountID]bool)
	for _, nft := range tl.nfts {
		if !seen[nft.SenderID] {
			seen[nft.SenderID] = true
			out = append(out, nft.SenderID)
		}
	}
	return out
}

// requireCollectorAssociated checks that a fee collector can receive a
// token-denominated fee.
func (a *Assessor) requireCollectorAssociated(collector entry.AccountID, token entry.TokenID) error {
	rel, err := a.state.TokenRelation(collector, token)
	if err != nil {
		return err
	}
	if rel == nil {
		return tx.Failf(tx.StatusTOKEN_NOT_ASSOCIATED_TO_FEE_COLLECTOR, "collector %s, token %s", collector, token)
	}
	return nil
}

func (a *Assessor) record(collector entry.AccountID, amount int64, denom *entry.TokenID, payers ...entry.AccountID) {
	fee := tx.AssessedCustomFee{
		CollectorID:     collector,
		Amount:          amount,
		EffectivePayers: append([]entry.AccountID(nil), payers...),
	}
	if denom != nil {
		d := *denom
		fee.TokenID = &d
	}
	a.assessed = append(a.assessed, fee)
}
