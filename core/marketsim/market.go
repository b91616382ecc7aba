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

// Package marketsim provides deterministic in-process stand-ins for the
// venues the vault engines integrate with: a lending market with per
// second interest accrual, a settable price oracle, a flash lender and a
// constant product swap venue. They drive the simulation command and the
// engine tests.
package marketsim

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/libs/num"
	"code.vegaprotocol.io/loopvault/logging"
)

var (
	ErrInsufficientCollateral = errors.New("insufficient collateral in position")
	ErrPositionUnhealthy      = errors.New("operation would leave the position above the market loan to value limit")

	// interest indices use ray precision, the convention of the money
	// markets this simulates
	ray            = num.MustUintFromString("1000000000000000000000000000")
	secondsPerYear = num.NewUint(31536000)
	bpsUnit        = num.NewUint(types.LeverageOneBps)
)

type assetBook struct {
	supplied       *num.Uint
	borrowedScaled *num.Uint
	index          *num.Uint
}

func newAssetBook() *assetBook {
	return &assetBook{
		supplied:       num.UintZero(),
		borrowedScaled: num.UintZero(),
		index:          ray.Clone(),
	}
}

func (b *assetBook) clone() *assetBook {
	return &assetBook{
		supplied:       b.supplied.Clone(),
		borrowedScaled: b.borrowedScaled.Clone(),
		index:          b.index.Clone(),
	}
}

type simState struct {
	books     map[string]*assetBook
	accruedAt time.Time
}

func (s *simState) clone() *simState {
	books := make(map[string]*assetBook, len(s.books))
	for asset, book := range s.books {
		books[asset] = book.clone()
	}
	return &simState{
		books:     books,
		accruedAt: s.accruedAt,
	}
}

// Market is a deterministic lending market. Debt accrues linear per second
// interest through a ray scaled borrow index, borrow and withdraw enforce
// the configured loan to value limit against the oracle, and every balance
// movement can be shaved by a bounded pseudo random amount to exercise the
// delta tolerance of the callers.
type Market struct {
	log    *logging.Logger
	conf   Config
	clock  *Clock
	oracle *Oracle

	mu        sync.Mutex
	state     *simState
	snapshots map[uint64]*simState
	nextSnap  uint64

	ratePerSecond *num.Uint
	jitter        *rand.Rand
}

// NewMarket returns a market accruing from the clock's current time.
func NewMarket(log *logging.Logger, conf Config, clock *Clock, oracle *Oracle) *Market {
	log = log.Named(namedLogger)
	log.SetLevel(conf.Level.Get())

	rps := num.NewUint(conf.BorrowRateBps)
	rps.Mul(rps, ray)
	rps.Div(rps, num.UintZero().Mul(bpsUnit, secondsPerYear))

	return &Market{
		log:    log,
		conf:   conf,
		clock:  clock,
		oracle: oracle,
		state: &simState{
			books:     map[string]*assetBook{},
			accruedAt: clock.GetTimeNow(),
		},
		snapshots:     map[uint64]*simState{},
		nextSnap:      1,
		ratePerSecond: rps,
		jitter:        rand.New(rand.NewSource(conf.JitterSeed)),
	}
}

// Supply credits collateral to the position.
func (m *Market) Supply(_ context.Context, asset string, amount *num.Uint) (*num.Uint, error) {
	if amount == nil || amount.IsZero() {
		return nil, types.ErrZeroAmount
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accrueLocked()

	credited := m.shaved(amount)
	book := m.bookLocked(asset)
	book.supplied.AddSum(credited)
	return credited.Clone(), nil
}

// WithdrawCollateral releases collateral from the position, the remaining
// position has to stay within the loan to value limit.
func (m *Market) WithdrawCollateral(ctx context.Context, asset string, amount *num.Uint) (*num.Uint, error) {
	if amount == nil || amount.IsZero() {
		return nil, types.ErrZeroAmount
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accrueLocked()

	book := m.bookLocked(asset)
	if book.supplied.LT(amount) {
		return nil, ErrInsufficientCollateral
	}
	delivered := m.shaved(amount)
	book.supplied.Sub(book.supplied, delivered)

	if err := m.healthyLocked(ctx); err != nil {
		book.supplied.AddSum(delivered)
		return nil, err
	}
	return delivered.Clone(), nil
}

// Borrow draws debt against the position.
func (m *Market) Borrow(ctx context.Context, asset string, amount *num.Uint) (*num.Uint, error) {
	if amount == nil || amount.IsZero() {
		return nil, types.ErrZeroAmount
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accrueLocked()

	delivered := m.shaved(amount)
	book := m.bookLocked(asset)
	// scale up rounding against the borrower so the position owes at
	// least what was handed out
	scaled := num.UintZero().Mul(delivered, ray)
	scaled.DivCeil(scaled, book.index)
	book.borrowedScaled.AddSum(scaled)

	if err := m.healthyLocked(ctx); err != nil {
		book.borrowedScaled.Sub(book.borrowedScaled, scaled)
		return nil, err
	}

	if m.log.IsDebug() {
		m.log.Debug("debt drawn",
			logging.AssetID(asset),
			logging.BigUint("amount", delivered),
		)
	}
	return delivered.Clone(), nil
}

// Repay pays debt down, never taking the position below zero.
func (m *Market) Repay(_ context.Context, asset string, amount *num.Uint) (*num.Uint, error) {
	if amount == nil || amount.IsZero() {
		return nil, types.ErrZeroAmount
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accrueLocked()

	reduced := m.shaved(amount)
	book := m.bookLocked(asset)
	scaled := num.UintZero().Mul(reduced, ray)
	scaled.Div(scaled, book.index)
	if scaled.GT(book.borrowedScaled) {
		scaled = book.borrowedScaled.Clone()
	}
	book.borrowedScaled.Sub(book.borrowedScaled, scaled)
	return reduced.Clone(), nil
}

// CollateralBalance returns the collateral held for the asset.
func (m *Market) CollateralBalance(_ context.Context, asset string) (*num.Uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accrueLocked()
	return m.bookLocked(asset).supplied.Clone(), nil
}

// DebtBalance returns the debt owed on the asset, interest included.
func (m *Market) DebtBalance(_ context.Context, asset string) (*num.Uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accrueLocked()
	return m.debtBalanceLocked(asset), nil
}

// Snapshot captures the market state, returning a handle for
// RevertToSnapshot. Snapshots stack.
func (m *Market) Snapshot() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSnap
	m.nextSnap++
	m.snapshots[id] = m.state.clone()
	return id
}

// RevertToSnapshot rolls the market back, discarding the given snapshot
// and any taken after it. Unknown handles are ignored.
func (m *Market) RevertToSnapshot(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snapshots[id]
	if !ok {
		return
	}
	m.state = snap
	for k := range m.snapshots {
		if k >= id {
			delete(m.snapshots, k)
		}
	}
}

func (m *Market) bookLocked(asset string) *assetBook {
	book, ok := m.state.books[asset]
	if !ok {
		book = newAssetBook()
		m.state.books[asset] = book
	}
	return book
}

func (m *Market) debtBalanceLocked(asset string) *num.Uint {
	book := m.bookLocked(asset)
	debt := num.UintZero().Mul(book.borrowedScaled, book.index)
	return debt.DivCeil(debt, ray)
}

func (m *Market) accrueLocked() {
	now := m.clock.GetTimeNow()
	elapsed := now.Unix() - m.state.accruedAt.Unix()
	if elapsed <= 0 {
		return
	}
	m.state.accruedAt = now
	if m.ratePerSecond.IsZero() {
		return
	}
	growth := num.UintZero().Mul(m.ratePerSecond, num.NewUint(uint64(elapsed)))
	growth.AddSum(ray)
	for _, book := range m.state.books {
		book.index.Mul(book.index, growth)
		book.index.Div(book.index, ray)
	}
}

// healthyLocked checks total debt value against total collateral value,
// both priced by the oracle, against the loan to value limit.
func (m *Market) healthyLocked(ctx context.Context) error {
	cv := num.UintZero()
	dv := num.UintZero()
	scale := types.PriceScale()
	for asset, book := range m.state.books {
		if book.supplied.IsZero() && book.borrowedScaled.IsZero() {
			continue
		}
		price, _, err := m.oracle.Price(ctx, asset)
		if err != nil {
			return err
		}
		v := num.UintZero().Mul(book.supplied, price)
		cv.AddSum(v.Div(v, scale))
		debt := num.UintZero().Mul(book.borrowedScaled, book.index)
		debt.DivCeil(debt, ray)
		v = num.UintZero().Mul(debt, price)
		dv.AddSum(v.Div(v, scale))
	}
	if dv.IsZero() {
		return nil
	}
	maxDebt := num.UintZero().Mul(cv, num.NewUint(m.conf.MaxLtvBps))
	maxDebt.Div(maxDebt, bpsUnit)
	if dv.GT(maxDebt) {
		return ErrPositionUnhealthy
	}
	return nil
}

func (m *Market) shaved(amount *num.Uint) *num.Uint {
	if m.conf.DeltaJitter == 0 {
		return amount.Clone()
	}
	shave := num.NewUint(uint64(m.jitter.Int63n(int64(m.conf.DeltaJitter) + 1)))
	if shave.GTE(amount) {
		return num.UintZero()
	}
	return num.UintZero().Sub(amount, shave)
}
