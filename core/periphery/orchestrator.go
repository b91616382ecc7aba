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

// Package periphery orchestrates the flash loan funded entry and exit
// flows: borrow the debt asset, swap it through a venue, run the vault
// deposit or redemption, repay the loan and pay out whatever is left. One
// operation is one atomic sequence, the vault and the token ledger are
// snapshotted up front and any failure along the way reverts both.
//
// The orchestrator never trusts amounts returned by a venue: it holds its
// own ledger account and re-reads its balances around every external call,
// checking they moved in the right direction by at least what was asked.
package periphery

import (
	"context"
	"errors"
	"sync"

	"code.vegaprotocol.io/loopvault/core/events"
	"code.vegaprotocol.io/loopvault/core/metrics"
	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/libs/num"
	"code.vegaprotocol.io/loopvault/logging"

	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrEmptyParty      = errors.New("party cannot be empty")
	ErrFlashFeeTooHigh = errors.New("flash loan fee above the configured maximum")
	ErrUnexpectedAsset = errors.New("flash loan callback invoked with an unexpected asset")
)

// CallbackToken is the confirmation a flash borrower returns from its
// callback, the ERC-3156 convention.
func CallbackToken() []byte {
	return crypto.Keccak256([]byte("loopvault.FlashBorrower.onFlashLoan"))
}

// Accounting is the vault engine surface the orchestrator terminates on.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/accounting_mock.go -package mocks code.vegaprotocol.io/loopvault/core/periphery Accounting
type Accounting interface {
	Vault() *types.Vault
	DepositWithRemainder(ctx context.Context, party string, collateralIn, debtToBorrow, remainder *num.Uint) (*num.Uint, error)
	Redeem(ctx context.Context, party string, shares *num.Uint) (*num.Uint, *num.Uint, error)
	SnapshotState() uint64
	RevertState(id uint64)
	DiscardSnapshot(id uint64)
}

// FlashLoanProvider lends within a single call: it credits the amount to
// the account, invokes the callback with the actual fee, and pulls amount
// plus fee off the account when the callback confirms.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/flash_loan_provider_mock.go -package mocks code.vegaprotocol.io/loopvault/core/periphery FlashLoanProvider
type FlashLoanProvider interface {
	FlashLoan(ctx context.Context, account, asset string, amount *num.Uint, data []byte,
		callback func(ctx context.Context, initiator, asset string, amount, fee *num.Uint, data []byte) ([]byte, error)) error
}

// SwapExecutor is one swap venue: it delivers exactly desiredOut of
// tokenOut to the account for at most maxIn of tokenIn, settling both legs
// on the token ledger. Venue adapters live under periphery/venues.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/swap_executor_mock.go -package mocks code.vegaprotocol.io/loopvault/core/periphery SwapExecutor
type SwapExecutor interface {
	SwapExactOutput(ctx context.Context, account, tokenIn, tokenOut string, desiredOut, maxIn *num.Uint, routing []byte) (*num.Uint, error)
}

// TokenLedger is where free token balances live, the stand-in for the
// token contracts.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/token_ledger_mock.go -package mocks code.vegaprotocol.io/loopvault/core/periphery TokenLedger
type TokenLedger interface {
	BalanceOf(account, asset string) *num.Uint
	Transfer(ctx context.Context, from, to, asset string, amount *num.Uint) error
	Credit(account, asset string, amount *num.Uint)
	Debit(account, asset string, amount *num.Uint) error
	Snapshot() uint64
	RevertToSnapshot(id uint64)
	DiscardSnapshot(id uint64)
}

// Broker - the event bus broker, send events here.
type Broker interface {
	Send(event events.Event)
	SendBatch(events []events.Event)
}

// DepositOrder describes one leveraged entry: the collateral the party
// brings themselves, the debt to flash borrow and swap into more
// collateral, and the debt the vault takes on to cover the loan. Every
// amount is explicit, the orchestrator never sizes anything off a balance.
type DepositOrder struct {
	Party string

	// CollateralAmount is pulled from the party's own holdings, it may be
	// zero for a purely flash funded entry.
	CollateralAmount *num.Uint

	// FlashAmount is the debt borrowed from the flash provider.
	FlashAmount *num.Uint

	// CollateralFromSwap is the exact output requested when swapping the
	// flash borrowed debt into collateral.
	CollateralFromSwap *num.Uint

	// MaxSwapIn bounds the debt the swap may consume, the slippage guard.
	MaxSwapIn *num.Uint

	// DebtToBorrow is what the vault borrows against the new collateral,
	// it has to cover the flash repayment together with the swap change.
	DebtToBorrow *num.Uint

	// Routing is venue specific swap routing data.
	Routing []byte
}

// RedeemOrder describes one leveraged exit: flash borrow enough debt to
// clear the party's slice of the vault debt, redeem, swap part of the
// released collateral back to debt to repay the loan, pay out the rest.
type RedeemOrder struct {
	Party       string
	Shares      *num.Uint
	FlashAmount *num.Uint

	// MaxSwapIn bounds the collateral sold to cover the flash repayment.
	MaxSwapIn *num.Uint

	// Routing is venue specific swap routing data.
	Routing []byte
}

// Engine is the flash loan orchestrator. It owns a ledger account of its
// own that funds pass through, and terminates every flow on the vault
// accounting core.
type Engine struct {
	Config
	log *logging.Logger

	account    string
	accounting Accounting
	tokens     TokenLedger
	flash      FlashLoanProvider
	swap       SwapExecutor
	broker     Broker

	mu sync.Mutex
}

// New instantiates a new instance of the orchestrator. The swap venue is
// fixed at construction, one orchestrator serves one venue.
func New(log *logging.Logger, conf Config, account string, accounting Accounting, tokens TokenLedger, flash FlashLoanProvider, swap SwapExecutor, broker Broker) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(conf.Level.Get())

	return &Engine{
		Config:     conf,
		log:        log,
		account:    account,
		accounting: accounting,
		tokens:     tokens,
		flash:      flash,
		swap:       swap,
		broker:     broker,
	}
}

// ReloadConf update the internal configuration of the orchestrator.
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

// Account returns the orchestrator's own ledger account.
func (e *Engine) Account() string {
	return e.account
}

// DepositWithLeverage runs one atomic leveraged entry: flash borrow the
// debt asset, swap it into collateral with an exact output swap, deposit
// the party's collateral plus the swapped collateral into the vault
// borrowing enough debt to repay the loan, and fold whatever debt is left
// after repayment into the party's shares. Returns the shares minted.
func (e *Engine) DepositWithLeverage(ctx context.Context, order DepositOrder) (shares *num.Uint, rerr error) {
	timer := metrics.NewTimeCounter(e.accounting.Vault().ID, "periphery", "DepositWithLeverage")
	defer timer.EngineTimeCounterAdd()

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(order.Party) == 0 {
		return nil, ErrEmptyParty
	}
	if order.FlashAmount == nil || order.FlashAmount.IsZero() ||
		order.CollateralFromSwap == nil || order.CollateralFromSwap.IsZero() ||
		order.DebtToBorrow == nil || order.DebtToBorrow.IsZero() {
		return nil, types.ErrZeroAmount
	}

	vlt := e.accounting.Vault()
	vaultSnap := e.accounting.SnapshotState()
	ledgerSnap := e.tokens.Snapshot()
	defer func() {
		if rerr != nil {
			e.accounting.RevertState(vaultSnap)
			e.tokens.RevertToSnapshot(ledgerSnap)
			metrics.VaultOperationCounterInc("leveraged-deposit", "error")
			return
		}
		e.accounting.DiscardSnapshot(vaultSnap)
		e.tokens.DiscardSnapshot(ledgerSnap)
		metrics.VaultOperationCounterInc("leveraged-deposit", "ok")
	}()

	// the party's own collateral moves through the orchestrator account
	if order.CollateralAmount != nil && !order.CollateralAmount.IsZero() {
		if err := e.tokens.Transfer(ctx, order.Party, e.account, vlt.CollateralAsset, order.CollateralAmount); err != nil {
			return nil, err
		}
	}

	var (
		swapSpent = num.UintZero()
		leftover  = num.UintZero()
	)
	err := e.flash.FlashLoan(ctx, e.account, vlt.DebtAsset, order.FlashAmount, order.Routing,
		func(ctx context.Context, _, asset string, amount, fee *num.Uint, _ []byte) ([]byte, error) {
			if asset != vlt.DebtAsset {
				return nil, ErrUnexpectedAsset
			}
			if err := e.checkFlashFee(amount, fee); err != nil {
				return nil, err
			}

			// swap flash borrowed debt into collateral, exact output
			spent, err := e.verifiedSwap(ctx, vlt.DebtAsset, vlt.CollateralAsset,
				order.CollateralFromSwap, order.MaxSwapIn, order.Routing)
			if err != nil {
				return nil, err
			}
			swapSpent = spent

			// whatever debt the swap did not consume, plus the vault
			// borrow, covers the repayment; the surplus is folded into the
			// deposit before shares are struck
			owed := num.UintZero().Add(amount, fee)
			available := num.UintZero().Add(e.tokens.BalanceOf(e.account, vlt.DebtAsset), order.DebtToBorrow)
			if available.LT(owed) {
				return nil, types.ErrFlashLoanShortfall
			}
			leftover = num.UintZero().Sub(available, owed)

			collateralIn := num.UintZero().Add(orZero(order.CollateralAmount), order.CollateralFromSwap)
			sh, err := e.accounting.DepositWithRemainder(ctx, order.Party, collateralIn, order.DebtToBorrow, leftover)
			if err != nil {
				return nil, err
			}
			shares = sh

			// settle the vault leg: collateral went into the market
			// position, the borrowed debt came back, the remainder went
			// straight back in
			if err := e.tokens.Debit(e.account, vlt.CollateralAsset, collateralIn); err != nil {
				return nil, err
			}
			e.tokens.Credit(e.account, vlt.DebtAsset, order.DebtToBorrow)
			if !leftover.IsZero() {
				if err := e.tokens.Debit(e.account, vlt.DebtAsset, leftover); err != nil {
					return nil, err
				}
			}
			return CallbackToken(), nil
		})
	if err != nil {
		return nil, err
	}

	collateralIn := num.UintZero().Add(orZero(order.CollateralAmount), order.CollateralFromSwap)
	if e.log.IsDebug() {
		e.log.Debug("leveraged deposit completed",
			logging.VaultID(vlt.ID),
			logging.PartyID(order.Party),
			logging.BigUint("flash-borrowed", order.FlashAmount),
			logging.BigUint("swap-spent", swapSpent),
			logging.BigUint("collateral-in", collateralIn),
			logging.BigUint("shares", shares),
			logging.BigUint("leftover", leftover),
		)
	}
	e.broker.Send(events.NewLeveragedDepositEvent(ctx, order.Party, order.FlashAmount, swapSpent, collateralIn, shares, leftover))

	return shares, nil
}

// RedeemWithLeverage runs one atomic leveraged exit: flash borrow debt to
// clear the party's slice of the vault position, redeem their shares, sell
// just enough of the released collateral to repay the loan, and pay all
// remaining collateral out to the party. Returns the collateral paid out.
func (e *Engine) RedeemWithLeverage(ctx context.Context, order RedeemOrder) (payout *num.Uint, rerr error) {
	timer := metrics.NewTimeCounter(e.accounting.Vault().ID, "periphery", "RedeemWithLeverage")
	defer timer.EngineTimeCounterAdd()

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(order.Party) == 0 {
		return nil, ErrEmptyParty
	}
	if order.Shares == nil || order.Shares.IsZero() ||
		order.FlashAmount == nil || order.FlashAmount.IsZero() {
		return nil, types.ErrZeroAmount
	}

	vlt := e.accounting.Vault()
	vaultSnap := e.accounting.SnapshotState()
	ledgerSnap := e.tokens.Snapshot()
	defer func() {
		if rerr != nil {
			e.accounting.RevertState(vaultSnap)
			e.tokens.RevertToSnapshot(ledgerSnap)
			metrics.VaultOperationCounterInc("leveraged-redeem", "error")
			return
		}
		e.accounting.DiscardSnapshot(vaultSnap)
		e.tokens.DiscardSnapshot(ledgerSnap)
		metrics.VaultOperationCounterInc("leveraged-redeem", "ok")
	}()

	var collateralSold = num.UintZero()
	err := e.flash.FlashLoan(ctx, e.account, vlt.DebtAsset, order.FlashAmount, order.Routing,
		func(ctx context.Context, _, asset string, amount, fee *num.Uint, _ []byte) ([]byte, error) {
			if asset != vlt.DebtAsset {
				return nil, ErrUnexpectedAsset
			}
			if err := e.checkFlashFee(amount, fee); err != nil {
				return nil, err
			}

			collateralOut, debtRepaid, err := e.accounting.Redeem(ctx, order.Party, order.Shares)
			if err != nil {
				return nil, err
			}
			// the repaid debt came out of the flash borrowed funds, the
			// withdrawn collateral lands on the orchestrator account
			if !debtRepaid.IsZero() {
				if err := e.tokens.Debit(e.account, vlt.DebtAsset, debtRepaid); err != nil {
					return nil, types.ErrFlashLoanShortfall
				}
			}
			if !collateralOut.IsZero() {
				e.tokens.Credit(e.account, vlt.CollateralAsset, collateralOut)
			}

			// sell only what the repayment still needs
			owed := num.UintZero().Add(amount, fee)
			held := e.tokens.BalanceOf(e.account, vlt.DebtAsset)
			if held.LT(owed) {
				need := num.UintZero().Sub(owed, held)
				sold, err := e.verifiedSwap(ctx, vlt.CollateralAsset, vlt.DebtAsset,
					need, order.MaxSwapIn, order.Routing)
				if err != nil {
					return nil, err
				}
				collateralSold = sold
			}
			return CallbackToken(), nil
		})
	if err != nil {
		return nil, err
	}

	// everything left on the account, collateral and any debt dust the
	// repayment did not need, belongs to the party
	payout = e.tokens.BalanceOf(e.account, vlt.CollateralAsset)
	if !payout.IsZero() {
		if err := e.tokens.Transfer(ctx, e.account, order.Party, vlt.CollateralAsset, payout); err != nil {
			return nil, err
		}
	}
	if dust := e.tokens.BalanceOf(e.account, vlt.DebtAsset); !dust.IsZero() {
		if err := e.tokens.Transfer(ctx, e.account, order.Party, vlt.DebtAsset, dust); err != nil {
			return nil, err
		}
	}

	if e.log.IsDebug() {
		e.log.Debug("leveraged redeem completed",
			logging.VaultID(vlt.ID),
			logging.PartyID(order.Party),
			logging.BigUint("shares", order.Shares),
			logging.BigUint("flash-borrowed", order.FlashAmount),
			logging.BigUint("collateral-sold", collateralSold),
			logging.BigUint("payout", payout),
		)
	}
	e.broker.Send(events.NewLeveragedRedeemEvent(ctx, order.Party, order.Shares, order.FlashAmount, collateralSold, payout))

	return payout, nil
}

// verifiedSwap runs an exact output swap and re-checks both legs on the
// ledger: the output balance has to have increased by at least desiredOut
// and the input spend has to stay within maxIn. The venue's returned
// amount is not trusted for either.
func (e *Engine) verifiedSwap(ctx context.Context, tokenIn, tokenOut string, desiredOut, maxIn *num.Uint, routing []byte) (*num.Uint, error) {
	inBefore := e.tokens.BalanceOf(e.account, tokenIn)
	outBefore := e.tokens.BalanceOf(e.account, tokenOut)

	if _, err := e.swap.SwapExactOutput(ctx, e.account, tokenIn, tokenOut, desiredOut, maxIn, routing); err != nil {
		return nil, err
	}

	inAfter := e.tokens.BalanceOf(e.account, tokenIn)
	outAfter := e.tokens.BalanceOf(e.account, tokenOut)

	received, neg := num.UintZero().Delta(outAfter, outBefore)
	if neg {
		received = num.UintZero()
	}
	spent, neg := num.UintZero().Delta(inBefore, inAfter)
	if neg {
		spent = num.UintZero()
	}
	if received.LT(desiredOut) || (maxIn != nil && spent.GT(maxIn)) {
		e.log.Error("swap settlement out of bounds",
			logging.String("token-in", tokenIn),
			logging.String("token-out", tokenOut),
			logging.BigUint("desired-out", desiredOut),
			logging.BigUint("received", received),
			logging.BigUint("spent", spent),
		)
		return nil, &types.SwapError{
			TokenIn:    tokenIn,
			TokenOut:   tokenOut,
			DesiredOut: desiredOut.Clone(),
			Received:   received,
			MaxIn:      orZero(maxIn),
			Spent:      spent,
		}
	}
	return spent, nil
}

func (e *Engine) checkFlashFee(amount, fee *num.Uint) error {
	maxFee := num.UintZero().Mul(amount, num.NewUint(e.MaxFlashFeeBps))
	maxFee.DivCeil(maxFee, num.NewUint(types.LeverageOneBps))
	if fee.GT(maxFee) {
		return ErrFlashFeeTooHigh
	}
	return nil
}

func orZero(u *num.Uint) *num.Uint {
	if u == nil {
		return num.UintZero()
	}
	return u.Clone()
}
