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

package vault

import (
	"context"
	"errors"
	"sync"
	"time"

	"code.vegaprotocol.io/loopvault/core/events"
	"code.vegaprotocol.io/loopvault/core/leverage"
	"code.vegaprotocol.io/loopvault/core/metrics"
	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/libs/num"
	"code.vegaprotocol.io/loopvault/logging"
)

var (
	ErrEmptyParty     = errors.New("party cannot be empty")
	ErrNoSharesMinted = errors.New("deposit did not add any net value to mint shares against")
)

// LendingMarket is the external market the vault keeps its position on.
// Amounts are native token units. The returned actual amounts are nominal,
// every caller re-reads balances instead of trusting them. Snapshots stack,
// reverting to an outer snapshot discards inner ones.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/lending_market_mock.go -package mocks code.vegaprotocol.io/loopvault/core/vault LendingMarket
type LendingMarket interface {
	Supply(ctx context.Context, asset string, amount *num.Uint) (*num.Uint, error)
	WithdrawCollateral(ctx context.Context, asset string, amount *num.Uint) (*num.Uint, error)
	Borrow(ctx context.Context, asset string, amount *num.Uint) (*num.Uint, error)
	Repay(ctx context.Context, asset string, amount *num.Uint) (*num.Uint, error)
	CollateralBalance(ctx context.Context, asset string) (*num.Uint, error)
	DebtBalance(ctx context.Context, asset string) (*num.Uint, error)
	Snapshot() uint64
	RevertToSnapshot(id uint64)
}

// PriceOracle quotes the base unit value of one native token unit, scaled
// by types.PriceScale, along with the time the quote was last updated.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/price_oracle_mock.go -package mocks code.vegaprotocol.io/loopvault/core/vault PriceOracle
type PriceOracle interface {
	Price(ctx context.Context, asset string) (*num.Uint, time.Time, error)
}

// TimeService.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/time_service_mock.go -package mocks code.vegaprotocol.io/loopvault/core/vault TimeService
type TimeService interface {
	GetTimeNow() time.Time
}

// Broker - the event bus broker, send events here.
type Broker interface {
	Send(event events.Event)
	SendBatch(events []events.Event)
}

type stateSnapshot struct {
	market uint64
	ledger *shareLedger
	liquid *holdings
	params types.LeverageParameters
}

// Engine is the vault accounting core: it owns the share ledger, values the
// position held on the lending market, and guards every market interaction
// with a balance delta check. All public operations are transactional, an
// error reverts the market and the internal state to where the operation
// started.
type Engine struct {
	Config
	log *logging.Logger

	vault       *types.Vault
	market      LendingMarket
	oracle      PriceOracle
	timeService TimeService
	broker      Broker

	ledger *shareLedger
	liquid *holdings

	mu           sync.Mutex
	snapshots    map[uint64]stateSnapshot
	nextSnapshot uint64
}

// New instantiates a new instance of the vault engine.
func New(log *logging.Logger, conf Config, vault *types.Vault, market LendingMarket, oracle PriceOracle, timeService TimeService, broker Broker) (*Engine, error) {
	if err := vault.Validate(); err != nil {
		return nil, err
	}

	// setup logger
	log = log.Named(namedLogger)
	log.SetLevel(conf.Level.Get())

	return &Engine{
		Config:       conf,
		log:          log,
		vault:        vault.DeepClone(),
		market:       market,
		oracle:       oracle,
		timeService:  timeService,
		broker:       broker,
		ledger:       newShareLedger(),
		liquid:       newHoldings(),
		snapshots:    map[uint64]stateSnapshot{},
		nextSnapshot: 1,
	}, nil
}

// ReloadConf update the internal configuration of the vault engine.
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

// Vault returns a copy of the vault definition with its current parameters.
func (e *Engine) Vault() *types.Vault {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vault.DeepClone()
}

// UpdateParameters replaces the leverage window, the parameters are fully
// validated first. Governance decides when to call this, the engine only
// cares that the result is coherent.
func (e *Engine) UpdateParameters(ctx context.Context, params types.LeverageParameters) error {
	if err := params.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	e.vault.Parameters = params.DeepClone()
	e.mu.Unlock()

	e.log.Info("leverage parameters updated",
		logging.VaultID(e.vault.ID),
		logging.Uint64("target-bps", params.TargetLeverageBps),
		logging.Uint64("lower-bps", params.LowerBoundBps),
		logging.Uint64("upper-bps", params.UpperBoundBps),
	)
	e.broker.Send(events.NewParametersUpdatedEvent(ctx, params))
	return nil
}

// SnapshotState captures the engine state and the market state so a
// composite operation spanning several engine calls can be rolled back as
// one. The returned handle is valid for a single Revert or Discard.
func (e *Engine) SnapshotState() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// RevertState rolls the engine and the market back to the given snapshot.
func (e *Engine) RevertState(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.revertLocked(id)
}

// DiscardSnapshot drops a snapshot, keeping all changes made since.
func (e *Engine) DiscardSnapshot(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.snapshots, id)
}

func (e *Engine) snapshotLocked() uint64 {
	id := e.nextSnapshot
	e.nextSnapshot++
	e.snapshots[id] = stateSnapshot{
		market: e.market.Snapshot(),
		ledger: e.ledger.clone(),
		liquid: e.liquid.clone(),
		params: e.vault.Parameters.DeepClone(),
	}
	return id
}

func (e *Engine) revertLocked(id uint64) {
	snap, ok := e.snapshots[id]
	if !ok {
		e.log.Error("unknown state snapshot", logging.Uint64("snapshot", id))
		return
	}
	e.market.RevertToSnapshot(snap.market)
	e.ledger = snap.ledger
	e.liquid = snap.liquid
	e.vault.Parameters = snap.params
	delete(e.snapshots, id)
}

// TotalAssets returns the vault net asset value: the value of the
// collateral held on the market minus the value of the debt owed to it.
// Liquid holdings sitting with the vault are deliberately not counted.
func (e *Engine) TotalAssets(ctx context.Context) (*num.Uint, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalAssetsLocked(ctx)
}

func (e *Engine) totalAssetsLocked(ctx context.Context) (*num.Uint, error) {
	cv, dv, err := e.valuationsLocked(ctx)
	if err != nil {
		return nil, err
	}
	if dv.GT(cv) {
		return nil, types.ErrNegativeNetAssetValue
	}
	return num.UintZero().Sub(cv, dv), nil
}

// Valuations returns the current collateral and debt values in base units.
func (e *Engine) Valuations(ctx context.Context) (*num.Uint, *num.Uint, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.valuationsLocked(ctx)
}

func (e *Engine) valuationsLocked(ctx context.Context) (*num.Uint, *num.Uint, error) {
	cp, dp, err := e.assetPricesLocked(ctx)
	if err != nil {
		return nil, nil, err
	}
	cb, err := e.market.CollateralBalance(ctx, e.vault.CollateralAsset)
	if err != nil {
		return nil, nil, err
	}
	db, err := e.market.DebtBalance(ctx, e.vault.DebtAsset)
	if err != nil {
		return nil, nil, err
	}
	cv, err := leverage.ValueOfUnits(cb, cp)
	if err != nil {
		return nil, nil, err
	}
	dv, err := leverage.ValueOfUnits(db, dp)
	if err != nil {
		return nil, nil, err
	}
	return cv, dv, nil
}

// AssetPrices returns the oracle prices for the collateral and debt asset,
// both checked against the staleness policy when one is configured.
func (e *Engine) AssetPrices(ctx context.Context) (*num.Uint, *num.Uint, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.assetPricesLocked(ctx)
}

func (e *Engine) assetPricesLocked(ctx context.Context) (*num.Uint, *num.Uint, error) {
	cp, err := e.priceLocked(ctx, e.vault.CollateralAsset)
	if err != nil {
		return nil, nil, err
	}
	dp, err := e.priceLocked(ctx, e.vault.DebtAsset)
	if err != nil {
		return nil, nil, err
	}
	return cp, dp, nil
}

func (e *Engine) priceLocked(ctx context.Context, asset string) (*num.Uint, error) {
	price, updatedAt, err := e.oracle.Price(ctx, asset)
	if err != nil {
		return nil, err
	}
	if maxAge := e.MaxPriceAge.Get(); maxAge > 0 {
		if e.timeService.GetTimeNow().Sub(updatedAt) > maxAge {
			e.log.Warn("rejecting stale oracle price",
				logging.AssetID(asset),
				logging.Time("updated-at", updatedAt),
			)
			return nil, types.ErrStalePrice
		}
	}
	if price.IsZero() {
		return nil, leverage.ErrZeroPrice
	}
	return price, nil
}

// CurrentLeverageBps returns the vault leverage as seen by the market
// right now.
func (e *Engine) CurrentLeverageBps(ctx context.Context) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentLeverageLocked(ctx)
}

func (e *Engine) currentLeverageLocked(ctx context.Context) (uint64, error) {
	cv, dv, err := e.valuationsLocked(ctx)
	if err != nil {
		return 0, err
	}
	return leverage.LeverageBps(cv, dv)
}

// ConvertToShares returns the shares a net value contribution is worth at
// the current share price, rounded down. The first depositor gets shares
// one to one.
func (e *Engine) ConvertToShares(ctx context.Context, value *num.Uint) (*num.Uint, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	supply := e.ledger.totalSupply()
	if supply.IsZero() {
		return value.Clone(), nil
	}
	nav, err := e.totalAssetsLocked(ctx)
	if err != nil {
		return nil, err
	}
	if nav.IsZero() {
		return nil, types.ErrNonPositiveEquity
	}
	shares := num.UintZero().Mul(value, supply)
	return shares.Div(shares, nav), nil
}

// ConvertToAssets returns the net value the given shares can claim at the
// current share price, rounded down.
func (e *Engine) ConvertToAssets(ctx context.Context, shares *num.Uint) (*num.Uint, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	supply := e.ledger.totalSupply()
	if supply.IsZero() {
		return nil, types.ErrNoSharesOutstanding
	}
	nav, err := e.totalAssetsLocked(ctx)
	if err != nil {
		return nil, err
	}
	value := num.UintZero().Mul(shares, nav)
	return value.Div(value, supply), nil
}

// Deposit supplies the party's collateral to the market, borrows the
// requested debt on the vault position (the borrowed tokens go back to the
// party), and mints shares against the measured net value increase. The
// post-deposit leverage has to land inside the vault window.
func (e *Engine) Deposit(ctx context.Context, party string, collateralIn, debtToBorrow *num.Uint) (*num.Uint, error) {
	return e.deposit(ctx, party, collateralIn, debtToBorrow, num.UintZero())
}

// DepositWithRemainder is Deposit for orchestrated flows that end up with
// leftover debt tokens after the flash loan is repaid: the remainder is
// repaid into the vault position before shares are computed, so its value
// lands in the depositor's shares rather than diluting into the vault.
func (e *Engine) DepositWithRemainder(ctx context.Context, party string, collateralIn, debtToBorrow, remainder *num.Uint) (*num.Uint, error) {
	return e.deposit(ctx, party, collateralIn, debtToBorrow, remainder)
}

func (e *Engine) deposit(ctx context.Context, party string, collateralIn, debtToBorrow, remainder *num.Uint) (shares *num.Uint, rerr error) {
	timer := metrics.NewTimeCounter(e.vault.ID, "vault", "Deposit")
	defer timer.EngineTimeCounterAdd()

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(party) == 0 {
		return nil, ErrEmptyParty
	}
	if collateralIn == nil || collateralIn.IsZero() {
		return nil, types.ErrZeroAmount
	}

	snap := e.snapshotLocked()
	defer func() {
		if rerr != nil {
			e.revertLocked(snap)
			metrics.VaultOperationCounterInc("deposit", "error")
			return
		}
		delete(e.snapshots, snap)
		metrics.VaultOperationCounterInc("deposit", "ok")
	}()

	navBefore, err := e.totalAssetsLocked(ctx)
	if err != nil {
		return nil, err
	}
	supplyBefore := e.ledger.totalSupply()

	if err := e.supplyVerifiedLocked(ctx, collateralIn); err != nil {
		return nil, err
	}
	if debtToBorrow != nil && !debtToBorrow.IsZero() {
		if err := e.borrowVerifiedLocked(ctx, debtToBorrow); err != nil {
			return nil, err
		}
	}
	if remainder != nil && !remainder.IsZero() {
		if err := e.repayVerifiedLocked(ctx, remainder); err != nil {
			return nil, err
		}
	}

	cv, dv, err := e.valuationsLocked(ctx)
	if err != nil {
		return nil, err
	}
	if dv.GT(cv) {
		return nil, types.ErrNegativeNetAssetValue
	}
	navAfter := num.UintZero().Sub(cv, dv)
	if navAfter.LTE(navBefore) {
		return nil, ErrNoSharesMinted
	}
	navDelta := num.UintZero().Sub(navAfter, navBefore)

	if supplyBefore.IsZero() {
		shares = navDelta.Clone()
	} else {
		if navBefore.IsZero() {
			return nil, types.ErrNonPositiveEquity
		}
		shares = num.UintZero().Mul(navDelta, supplyBefore)
		shares.Div(shares, navBefore)
	}
	if shares.IsZero() {
		return nil, ErrNoSharesMinted
	}

	lev, err := leverage.LeverageBps(cv, dv)
	if err != nil {
		return nil, err
	}
	params := e.vault.Parameters
	if lev < params.LowerBoundBps || lev > params.UpperBoundBps {
		return nil, &types.BoundsError{
			Kind:     types.BoundsKindDepositWindow,
			NewBps:   lev,
			LowerBps: params.LowerBoundBps,
			UpperBps: params.UpperBoundBps,
		}
	}
	if cap := e.vault.MaxTotalValue; cap != nil && !cap.IsZero() && navAfter.GT(cap) {
		return nil, types.ErrVaultCapExceeded
	}

	if err := e.ledger.mint(party, shares); err != nil {
		return nil, err
	}

	if e.log.IsDebug() {
		e.log.Debug("deposit completed",
			logging.VaultID(e.vault.ID),
			logging.PartyID(party),
			logging.BigUint("collateral-in", collateralIn),
			logging.BigUint("shares", shares),
			logging.Uint64("leverage-bps", lev),
		)
	}

	borrowed := num.UintZero()
	if debtToBorrow != nil {
		borrowed = debtToBorrow.Clone()
	}
	e.broker.Send(events.NewVaultDepositEvent(ctx, party, collateralIn, borrowed, shares, lev))
	metrics.LeverageGaugeSet(e.vault.ID, lev)
	metrics.NAVGaugeSet(e.vault.ID, navAfter.Float64())
	metrics.ShareSupplyGaugeSet(e.vault.ID, e.ledger.totalSupply().Float64())

	return shares, nil
}

// Redeem burns the party's shares and unwinds their proportional slice of
// the position: the debt share is repaid (rounded against the redeemer),
// the collateral share is withdrawn (rounded against the redeemer too) and
// handed over. Returns the collateral withdrawn and the debt repaid, both
// in native units.
func (e *Engine) Redeem(ctx context.Context, party string, shares *num.Uint) (collateralOut, debtRepaid *num.Uint, rerr error) {
	timer := metrics.NewTimeCounter(e.vault.ID, "vault", "Redeem")
	defer timer.EngineTimeCounterAdd()

	e.mu.Lock()
	defer e.mu.Unlock()

	if shares == nil || shares.IsZero() {
		return nil, nil, types.ErrZeroAmount
	}

	snap := e.snapshotLocked()
	defer func() {
		if rerr != nil {
			e.revertLocked(snap)
			metrics.VaultOperationCounterInc("redeem", "error")
			return
		}
		delete(e.snapshots, snap)
		metrics.VaultOperationCounterInc("redeem", "ok")
	}()

	supply := e.ledger.totalSupply()
	if supply.IsZero() {
		return nil, nil, types.ErrNoSharesOutstanding
	}

	// burn first, it checks the party's balance and fixes the share price
	// before the market is touched
	if err := e.ledger.burn(party, shares); err != nil {
		return nil, nil, err
	}

	cb, err := e.market.CollateralBalance(ctx, e.vault.CollateralAsset)
	if err != nil {
		return nil, nil, err
	}
	db, err := e.market.DebtBalance(ctx, e.vault.DebtAsset)
	if err != nil {
		return nil, nil, err
	}

	// debt share rounds up so a redeemer can never leave behind debt that
	// the next full redemption cannot clear, collateral share rounds down
	debtRepaid = num.UintZero().Mul(db, shares)
	debtRepaid.DivCeil(debtRepaid, supply)
	collateralOut = num.UintZero().Mul(cb, shares)
	collateralOut.Div(collateralOut, supply)

	if !debtRepaid.IsZero() {
		if err := e.repayVerifiedLocked(ctx, debtRepaid); err != nil {
			return nil, nil, err
		}
	}
	if !collateralOut.IsZero() {
		if err := e.withdrawVerifiedLocked(ctx, collateralOut); err != nil {
			return nil, nil, err
		}
	}

	cv, dv, err := e.valuationsLocked(ctx)
	if err != nil {
		return nil, nil, err
	}
	if dv.GT(cv) {
		return nil, nil, types.ErrNegativeNetAssetValue
	}

	if e.log.IsDebug() {
		e.log.Debug("redeem completed",
			logging.VaultID(e.vault.ID),
			logging.PartyID(party),
			logging.BigUint("shares", shares),
			logging.BigUint("collateral-out", collateralOut),
			logging.BigUint("debt-repaid", debtRepaid),
		)
	}

	e.broker.Send(events.NewVaultRedeemEvent(ctx, party, shares, collateralOut, debtRepaid))
	metrics.NAVGaugeSet(e.vault.ID, num.UintZero().Sub(cv, dv).Float64())
	metrics.ShareSupplyGaugeSet(e.vault.ID, e.ledger.totalSupply().Float64())

	return collateralOut, debtRepaid, nil
}

// ShareSupply returns the outstanding share supply.
func (e *Engine) ShareSupply() *num.Uint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.totalSupply()
}

// ShareBalance returns the given party's share balance.
func (e *Engine) ShareBalance(party string) *num.Uint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.balanceOf(party)
}

// TransferShares moves shares between parties without touching the
// position.
func (e *Engine) TransferShares(ctx context.Context, from, to string, amount *num.Uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.transfer(from, to, amount)
}

// CreditHoldings records tokens handed to the vault outside of any
// operation, unsolicited donations included. They sit idle: holdings are
// not part of the net asset value and no calculation is allowed to use
// them as cover for an amount it has to move.
func (e *Engine) CreditHoldings(asset string, amount *num.Uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if asset != e.vault.CollateralAsset && asset != e.vault.DebtAsset {
		return types.ErrUnknownAsset
	}
	return e.liquid.credit(asset, amount)
}

// Holdings returns the vault's liquid balance of the given asset.
func (e *Engine) Holdings(asset string) *num.Uint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.liquid.balanceOf(asset)
}
