// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package rebalance implements the permissionless leverage rebalancing
// protocol on top of the vault accounting core. Both operations follow the
// same shape: predict the amounts with the calculator, execute them through
// the verified market wrappers, then re-read the actual post-execution
// state and enforce the leverage window on what the market really did, not
// on the prediction. Any check failing reverts the whole operation.
package rebalance

import (
	"context"
	"errors"
	"sync"

	"code.vegaprotocol.io/loopvault/core/events"
	"code.vegaprotocol.io/loopvault/core/leverage"
	"code.vegaprotocol.io/loopvault/core/metrics"
	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/libs/num"
	"code.vegaprotocol.io/loopvault/logging"
)

var (
	ErrEmptyParty             = errors.New("party cannot be empty")
	ErrAlreadyAtOrAboveTarget = errors.New("vault leverage is already at or above target")
	ErrAlreadyAtOrBelowTarget = errors.New("vault leverage is already at or below target")
)

// Accounting is the surface of the vault engine the rebalancer drives. The
// verified calls move the position through balance delta checks, the state
// snapshot calls make the two-step operations atomic.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/accounting_mock.go -package mocks code.vegaprotocol.io/loopvault/core/rebalance Accounting
type Accounting interface {
	Vault() *types.Vault
	Valuations(ctx context.Context) (*num.Uint, *num.Uint, error)
	AssetPrices(ctx context.Context) (*num.Uint, *num.Uint, error)
	CurrentLeverageBps(ctx context.Context) (uint64, error)
	ShareSupply() *num.Uint
	SupplyVerified(ctx context.Context, amount *num.Uint) error
	WithdrawVerified(ctx context.Context, amount *num.Uint) error
	BorrowVerified(ctx context.Context, amount *num.Uint) error
	RepayVerified(ctx context.Context, amount *num.Uint) error
	SnapshotState() uint64
	RevertState(id uint64)
	DiscardSnapshot(id uint64)
}

// Broker - the event bus broker, send events here.
type Broker interface {
	Send(event events.Event)
	SendBatch(events []events.Event)
}

// Engine runs the increase/decrease leverage operations. It holds no
// position state of its own, everything it needs is read from the
// accounting core at the time of the call.
type Engine struct {
	Config
	log *logging.Logger

	accounting Accounting
	broker     Broker

	mu sync.Mutex
}

// New instantiates a new instance of the rebalancing engine.
func New(log *logging.Logger, conf Config, accounting Accounting, broker Broker) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(conf.Level.Get())

	return &Engine{
		Config:     conf,
		log:        log,
		accounting: accounting,
		broker:     broker,
	}
}

// ReloadConf update the internal configuration of the rebalancing engine.
func (e *Engine) ReloadConf(cfg Config) {
	e.log.Info("reloading configuration")
	if e.log.GetLevel() != cfg.Level.Get() {
		e.log.Info("updating log level",
			logging.String("old", e.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		e.log.SetLevel(cfg.Level.Get())
	}

	e.mu.Lock()
	e.Config = cfg
	e.mu.Unlock()
}

// IncreaseLeverage supplies the caller's extra collateral to the position
// and borrows debt handed back to the caller, worth the collateral they
// brought plus the subsidy, capped so the position never overshoots the
// target. The actual post-execution leverage has to land strictly above
// where it started and at or below target, and move by at least
// minLeverageGainBps, otherwise everything reverts.
//
// Returns the debt borrowed to the caller (native units) and the subsidy
// value paid.
func (e *Engine) IncreaseLeverage(ctx context.Context, party string, extraCollateral *num.Uint, minLeverageGainBps uint64) (debtOut, subsidyPaid *num.Uint, rerr error) {
	timer := metrics.NewTimeCounter(e.accounting.Vault().ID, "rebalance", "IncreaseLeverage")
	defer timer.EngineTimeCounterAdd()

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(party) == 0 {
		return nil, nil, ErrEmptyParty
	}
	if extraCollateral == nil || extraCollateral.IsZero() {
		return nil, nil, types.ErrZeroAmount
	}

	vlt := e.accounting.Vault()
	params := vlt.Parameters
	supplyBefore := e.accounting.ShareSupply()

	snap := e.accounting.SnapshotState()
	defer func() {
		if rerr != nil {
			e.accounting.RevertState(snap)
			metrics.VaultOperationCounterInc("increase-leverage", "error")
			return
		}
		e.accounting.DiscardSnapshot(snap)
		metrics.VaultOperationCounterInc("increase-leverage", "ok")
	}()

	cv, dv, err := e.accounting.Valuations(ctx)
	if err != nil {
		return nil, nil, err
	}
	curBps, err := leverage.LeverageBps(cv, dv)
	if err != nil {
		return nil, nil, err
	}
	if curBps >= params.TargetLeverageBps {
		return nil, nil, ErrAlreadyAtOrAboveTarget
	}

	cp, dp, err := e.accounting.AssetPrices(ctx)
	if err != nil {
		return nil, nil, err
	}
	extraValue, err := leverage.ValueOfUnits(extraCollateral, cp)
	if err != nil {
		return nil, nil, err
	}
	if extraValue.IsZero() {
		return nil, nil, types.ErrZeroAmount
	}

	// the subsidy is sized on the value the caller moves in, never on the
	// vault size, so inflating the vault first buys nothing
	subsidyBps := leverage.SubsidyBps(curBps, params.TargetLeverageBps, params.MaxSubsidyBps)
	subsidyPaid = leverage.SubsidyValue(extraValue, subsidyBps, params.MaxSubsidyValue)

	if err := e.accounting.SupplyVerified(ctx, extraCollateral); err != nil {
		return nil, nil, err
	}

	// borrow value handed to the caller: what they supplied plus subsidy,
	// capped by what the position can take on without overshooting target
	borrowValue := num.UintZero().Add(extraValue, subsidyPaid)
	maxBorrow, err := leverage.BorrowValueForTarget(
		num.UintZero().Add(cv, extraValue), dv, params.TargetLeverageBps)
	if err != nil {
		return nil, nil, err
	}
	if borrowValue.GT(maxBorrow) {
		borrowValue = maxBorrow
		// the cap ate into the subsidy, the caller still chose to call
		if borrowValue.GT(extraValue) {
			subsidyPaid = num.UintZero().Sub(borrowValue, extraValue)
		} else {
			subsidyPaid = num.UintZero()
		}
	}
	if borrowValue.IsZero() {
		return nil, nil, &types.BoundsError{
			Kind:       types.BoundsKindIncreaseWindow,
			CurrentBps: curBps,
			NewBps:     curBps,
			TargetBps:  params.TargetLeverageBps,
		}
	}

	// granted amount, rounded down
	debtOut, err = leverage.UnitsForValueFloor(borrowValue, dp)
	if err != nil {
		return nil, nil, err
	}
	if debtOut.IsZero() {
		return nil, nil, types.ErrZeroAmount
	}
	if err := e.accounting.BorrowVerified(ctx, debtOut); err != nil {
		return nil, nil, err
	}

	// trust nothing computed above: re-read the actual leverage the market
	// sees now, interest may have accrued under our feet
	newBps, err := e.accounting.CurrentLeverageBps(ctx)
	if err != nil {
		return nil, nil, err
	}
	if newBps <= curBps || newBps > params.TargetLeverageBps {
		return nil, nil, &types.BoundsError{
			Kind:       types.BoundsKindIncreaseWindow,
			CurrentBps: curBps,
			NewBps:     newBps,
			TargetBps:  params.TargetLeverageBps,
		}
	}
	if minLeverageGainBps > 0 && newBps-curBps < minLeverageGainBps {
		return nil, nil, &types.BoundsError{
			Kind:       types.BoundsKindMinMove,
			CurrentBps: curBps,
			NewBps:     newBps,
			TargetBps:  params.TargetLeverageBps,
		}
	}
	if err := e.verifySubsidyAndSupply(extraValue, subsidyPaid, params, supplyBefore); err != nil {
		return nil, nil, err
	}

	if e.log.IsDebug() {
		e.log.Debug("leverage increased",
			logging.VaultID(vlt.ID),
			logging.PartyID(party),
			logging.BigUint("collateral-added", extraCollateral),
			logging.BigUint("debt-out", debtOut),
			logging.BigUint("subsidy", subsidyPaid),
			logging.Uint64("from-bps", curBps),
			logging.Uint64("to-bps", newBps),
		)
	}

	e.broker.Send(events.NewLeverageIncreasedEvent(ctx, party, extraCollateral, debtOut, subsidyPaid, curBps, newBps))
	metrics.LeverageGaugeSet(vlt.ID, newBps)
	metrics.SubsidyCounterAdd(vlt.ID, "increase", subsidyPaid.Float64())

	return debtOut, subsidyPaid, nil
}

// DecreaseLeverage repays debt on the position with funds the caller
// brings and releases collateral back to them, worth the debt they cleared
// plus the subsidy. The repay requirement comes from the calculator, a
// caller offering more repays more, but debt tokens donated to the vault
// never inflate it. The actual post-execution leverage has to land
// strictly below where it started and at or above target, and move by at
// least minLeverageLossBps, otherwise everything reverts.
//
// Returns the collateral released to the caller (native units) and the
// subsidy value paid.
func (e *Engine) DecreaseLeverage(ctx context.Context, party string, extraDebtRepay *num.Uint, minLeverageLossBps uint64) (collateralOut, subsidyPaid *num.Uint, rerr error) {
	timer := metrics.NewTimeCounter(e.accounting.Vault().ID, "rebalance", "DecreaseLeverage")
	defer timer.EngineTimeCounterAdd()

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(party) == 0 {
		return nil, nil, ErrEmptyParty
	}

	vlt := e.accounting.Vault()
	params := vlt.Parameters
	supplyBefore := e.accounting.ShareSupply()

	snap := e.accounting.SnapshotState()
	defer func() {
		if rerr != nil {
			e.accounting.RevertState(snap)
			metrics.VaultOperationCounterInc("decrease-leverage", "error")
			return
		}
		e.accounting.DiscardSnapshot(snap)
		metrics.VaultOperationCounterInc("decrease-leverage", "ok")
	}()

	cv, dv, err := e.accounting.Valuations(ctx)
	if err != nil {
		return nil, nil, err
	}
	curBps, err := leverage.LeverageBps(cv, dv)
	if err != nil {
		return nil, nil, err
	}
	if curBps <= params.TargetLeverageBps {
		return nil, nil, ErrAlreadyAtOrBelowTarget
	}

	cp, dp, err := e.accounting.AssetPrices(ctx)
	if err != nil {
		return nil, nil, err
	}

	subsidyBps := leverage.SubsidyBps(curBps, params.TargetLeverageBps, params.MaxSubsidyBps)
	repayValue, err := leverage.RepayValueForTarget(cv, dv, params.TargetLeverageBps, subsidyBps)
	if err != nil {
		return nil, nil, err
	}

	// must-reach amount, rounded up
	repayUnits, err := leverage.UnitsForValueCeil(repayValue, dp)
	if err != nil {
		return nil, nil, err
	}
	// a caller offering more than required repays more, max() keeps a
	// donated balance from ever growing the requirement
	if extraDebtRepay != nil && extraDebtRepay.GT(repayUnits) {
		repayUnits = extraDebtRepay.Clone()
	}
	if repayUnits.IsZero() {
		return nil, nil, types.ErrZeroAmount
	}
	if err := e.accounting.RepayVerified(ctx, repayUnits); err != nil {
		return nil, nil, err
	}

	repaidValue, err := leverage.ValueOfUnits(repayUnits, dp)
	if err != nil {
		return nil, nil, err
	}
	subsidyPaid = leverage.SubsidyValue(repaidValue, subsidyBps, params.MaxSubsidyValue)

	// collateral released to the caller, rounded down
	releaseValue := num.UintZero().Add(repaidValue, subsidyPaid)
	collateralOut, err = leverage.UnitsForValueFloor(releaseValue, cp)
	if err != nil {
		return nil, nil, err
	}
	if collateralOut.IsZero() {
		return nil, nil, types.ErrZeroAmount
	}
	if err := e.accounting.WithdrawVerified(ctx, collateralOut); err != nil {
		return nil, nil, err
	}

	newBps, err := e.accounting.CurrentLeverageBps(ctx)
	if err != nil {
		return nil, nil, err
	}
	if newBps >= curBps || newBps < params.TargetLeverageBps {
		return nil, nil, &types.BoundsError{
			Kind:       types.BoundsKindDecreaseWindow,
			CurrentBps: curBps,
			NewBps:     newBps,
			TargetBps:  params.TargetLeverageBps,
		}
	}
	if minLeverageLossBps > 0 && curBps-newBps < minLeverageLossBps {
		return nil, nil, &types.BoundsError{
			Kind:       types.BoundsKindMinMove,
			CurrentBps: curBps,
			NewBps:     newBps,
			TargetBps:  params.TargetLeverageBps,
		}
	}
	if err := e.verifySubsidyAndSupply(repaidValue, subsidyPaid, params, supplyBefore); err != nil {
		return nil, nil, err
	}

	if e.log.IsDebug() {
		e.log.Debug("leverage decreased",
			logging.VaultID(vlt.ID),
			logging.PartyID(party),
			logging.BigUint("debt-repaid", repayUnits),
			logging.BigUint("collateral-out", collateralOut),
			logging.BigUint("subsidy", subsidyPaid),
			logging.Uint64("from-bps", curBps),
			logging.Uint64("to-bps", newBps),
		)
	}

	e.broker.Send(events.NewLeverageDecreasedEvent(ctx, party, repayUnits, collateralOut, subsidyPaid, curBps, newBps))
	metrics.LeverageGaugeSet(vlt.ID, newBps)
	metrics.SubsidyCounterAdd(vlt.ID, "decrease", subsidyPaid.Float64())

	return collateralOut, subsidyPaid, nil
}

// verifySubsidyAndSupply enforces the two obligations a rebalance may never
// break whatever happened at the market: the subsidy paid stays within both
// caps for the value moved, and no shares were minted or burned.
func (e *Engine) verifySubsidyAndSupply(movedValue, paid *num.Uint, params types.LeverageParameters, supplyBefore *num.Uint) error {
	allowance := leverage.SubsidyValue(movedValue, params.MaxSubsidyBps, params.MaxSubsidyValue)
	if paid.GT(allowance) {
		return &types.SubsidyError{
			MovedValue: movedValue.Clone(),
			Paid:       paid.Clone(),
			Allowance:  allowance,
		}
	}
	if !e.accounting.ShareSupply().EQ(supplyBefore) {
		return types.ErrShareSupplyChanged
	}
	return nil
}
