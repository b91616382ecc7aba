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

package types

import (
	"errors"
	"fmt"

	"code.vegaprotocol.io/loopvault/libs/num"
)

var (
	ErrZeroTargetLeverage         = errors.New("target leverage is zero")
	ErrLeverageBoundsNotAboveOne  = errors.New("leverage bounds must be strictly above 1x")
	ErrLeverageBoundsOutOfOrder   = errors.New("leverage bounds must satisfy lower <= target <= upper")
	ErrMaxSubsidyTooLarge         = errors.New("max subsidy cannot exceed 10000 bps")
	ErrMissingAsset               = errors.New("missing collateral or debt asset")
	ErrSameCollateralAndDebtAsset = errors.New("collateral and debt asset must differ")
	ErrUnknownAsset               = errors.New("unknown asset")
	ErrZeroAmount                 = errors.New("amount must be a positive integer")
	ErrNonPositiveEquity          = errors.New("collateral value does not exceed debt value")
	ErrLeverageOverflow           = errors.New("leverage does not fit in 64 bits")
	ErrNegativeNetAssetValue      = errors.New("net asset value would turn negative")
	ErrTargetUnreachable          = errors.New("target leverage not reachable with the given subsidy factor")
	ErrVaultCapExceeded           = errors.New("vault total value cap exceeded")
	ErrInsufficientShares         = errors.New("party does not hold enough shares")
	ErrNoSharesOutstanding        = errors.New("no shares outstanding")
	ErrStalePrice                 = errors.New("oracle price is stale")
	ErrFlashLoanShortfall         = errors.New("flash loan repayment shortfall")
	ErrShareSupplyChanged         = errors.New("share supply changed during a rebalance")
)

// MarketOp identifies the lending market operation that a balance delta
// verification relates to.
type MarketOp int

const (
	MarketOpUnspecified MarketOp = iota
	MarketOpSupply
	MarketOpWithdraw
	MarketOpBorrow
	MarketOpRepay
)

func (op MarketOp) String() string {
	switch op {
	case MarketOpSupply:
		return "supply"
	case MarketOpWithdraw:
		return "withdraw"
	case MarketOpBorrow:
		return "borrow"
	case MarketOpRepay:
		return "repay"
	default:
		return "unspecified"
	}
}

// MarketIntegrityError is returned when the lending market position moved
// by less than what was asked of it, beyond the configured tolerance.
// These are fatal, the whole operation they occurred in is reverted.
type MarketIntegrityError struct {
	Op        MarketOp
	Asset     string
	Requested *num.Uint
	Observed  *num.Uint
}

func (e *MarketIntegrityError) Error() string {
	return fmt.Sprintf("market integrity violation on %s of asset %s: requested %s, observed delta %s",
		e.Op.String(), e.Asset, e.Requested.String(), e.Observed.String())
}

// BoundsErrorKind says which leverage window check failed.
type BoundsErrorKind int

const (
	BoundsKindUnspecified BoundsErrorKind = iota
	// BoundsKindDepositWindow the post-deposit leverage left [lower, upper].
	BoundsKindDepositWindow
	// BoundsKindIncreaseWindow increase-leverage did not land in (current, target].
	BoundsKindIncreaseWindow
	// BoundsKindDecreaseWindow decrease-leverage did not land in [target, current).
	BoundsKindDecreaseWindow
	// BoundsKindMinMove the caller-required minimum leverage move was not reached.
	BoundsKindMinMove
)

func (k BoundsErrorKind) String() string {
	switch k {
	case BoundsKindDepositWindow:
		return "deposit leverage window"
	case BoundsKindIncreaseWindow:
		return "increase leverage window"
	case BoundsKindDecreaseWindow:
		return "decrease leverage window"
	case BoundsKindMinMove:
		return "minimum leverage move"
	default:
		return "unspecified"
	}
}

// BoundsError is returned when a leverage window check fails after an
// operation was applied. All figures are basis points, it carries the
// values the failed check actually compared.
type BoundsError struct {
	Kind       BoundsErrorKind
	CurrentBps uint64
	NewBps     uint64
	TargetBps  uint64
	LowerBps   uint64
	UpperBps   uint64
}

func (e *BoundsError) Error() string {
	switch e.Kind {
	case BoundsKindDepositWindow:
		return fmt.Sprintf("%s violated: leverage %d bps outside [%d, %d]",
			e.Kind.String(), e.NewBps, e.LowerBps, e.UpperBps)
	case BoundsKindIncreaseWindow:
		return fmt.Sprintf("%s violated: leverage moved %d -> %d bps, target %d",
			e.Kind.String(), e.CurrentBps, e.NewBps, e.TargetBps)
	case BoundsKindDecreaseWindow:
		return fmt.Sprintf("%s violated: leverage moved %d -> %d bps, target %d",
			e.Kind.String(), e.CurrentBps, e.NewBps, e.TargetBps)
	case BoundsKindMinMove:
		return fmt.Sprintf("%s not reached: leverage moved %d -> %d bps",
			e.Kind.String(), e.CurrentBps, e.NewBps)
	default:
		return fmt.Sprintf("%s: current %d, new %d, target %d bps",
			e.Kind.String(), e.CurrentBps, e.NewBps, e.TargetBps)
	}
}

// SubsidyError is returned when a rebalance consumed more vault value than
// the subsidy allowance for the value it moved. All figures are base units.
type SubsidyError struct {
	MovedValue *num.Uint
	Paid       *num.Uint
	Allowance  *num.Uint
}

func (e *SubsidyError) Error() string {
	return fmt.Sprintf("subsidy overrun: moved value %s, nav decreased by %s, allowance %s",
		e.MovedValue.String(), e.Paid.String(), e.Allowance.String())
}

// SwapError is returned when an exact output swap either did not deliver
// the output it was asked for, or consumed more input than allowed.
type SwapError struct {
	TokenIn    string
	TokenOut   string
	DesiredOut *num.Uint
	Received   *num.Uint
	MaxIn      *num.Uint
	Spent      *num.Uint
}

func (e *SwapError) Error() string {
	return fmt.Sprintf("swap %s -> %s failed: desired out %s, received %s, max in %s, spent %s",
		e.TokenIn, e.TokenOut, e.DesiredOut.String(), e.Received.String(),
		e.MaxIn.String(), e.Spent.String())
}
