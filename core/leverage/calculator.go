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

// Package leverage holds the pure calculations behind the vault leverage
// window: current leverage, the collateral/debt deltas required to reach a
// target, and the subsidy owed to a rebalancer.
//
// Everything works on values expressed in the common base unit, never on
// native token units. Rounding directions are chosen so results never
// overshoot past the target on their own: amounts the vault must reach are
// rounded up, amounts granted to a caller are rounded down.
package leverage

import (
	"math"

	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/libs/num"
)

var bpsUnit = num.NewUint(types.LeverageOneBps)

// LeverageBps returns the current leverage in basis points,
// 10000 * collateral / (collateral - debt), rounded down.
// A vault with no debt sits at exactly 1x.
func LeverageBps(collateralValue, debtValue *num.Uint) (uint64, error) {
	if collateralValue.LTE(debtValue) {
		return 0, types.ErrNonPositiveEquity
	}
	equity := num.UintZero().Sub(collateralValue, debtValue)
	lev := num.UintZero().Mul(collateralValue, bpsUnit)
	lev.Div(lev, equity)
	if !lev.LTEUint64(math.MaxUint64) {
		return 0, types.ErrLeverageOverflow
	}
	return lev.Uint64(), nil
}

// BorrowValueForTarget returns the extra debt value to borrow so the
// position lands on the target leverage, given its current collateral and
// debt. Rounded down, borrowing a unit less keeps the position at or below
// target where borrowing a unit more would overshoot it. Returns zero when
// the position already sits at or above target.
func BorrowValueForTarget(collateralValue, debtValue *num.Uint, targetBps uint64) (*num.Uint, error) {
	if targetBps == 0 {
		return nil, types.ErrZeroTargetLeverage
	}
	if targetBps <= types.LeverageOneBps {
		return nil, types.ErrLeverageBoundsNotAboveOne
	}
	// debt at target = collateral * (target - 10000) / target
	debtAtTarget := num.UintZero().Mul(collateralValue, num.NewUint(targetBps-types.LeverageOneBps))
	debtAtTarget.Div(debtAtTarget, num.NewUint(targetBps))
	if debtAtTarget.LTE(debtValue) {
		return num.UintZero(), nil
	}
	return debtAtTarget.Sub(debtAtTarget, debtValue), nil
}

// CollateralValueForTarget returns the collateral value needed to back the
// given debt at the target leverage. Rounded up, holding a unit more
// collateral keeps the position at or below target.
func CollateralValueForTarget(debtValue *num.Uint, targetBps uint64) (*num.Uint, error) {
	if targetBps == 0 {
		return nil, types.ErrZeroTargetLeverage
	}
	if targetBps <= types.LeverageOneBps {
		return nil, types.ErrLeverageBoundsNotAboveOne
	}
	// collateral at target = debt * target / (target - 10000)
	c := num.UintZero().Mul(debtValue, num.NewUint(targetBps))
	return c.DivCeil(c, num.NewUint(targetBps-types.LeverageOneBps)), nil
}

// RepayValueForTarget returns the debt value to repay so the position comes
// down onto the target leverage, accounting for the collateral withdrawn to
// refund the repayer plus their subsidy.
//
// Solving target = C' / (C' - D') with C' = C - (1+k)*repay and
// D' = D - repay gives
//
//	repay = (C - T*(C-D)) / (1 + k - T*k)
//
// with T the target as a multiplier and k the subsidy fraction. The T*k
// term in the denominator matters: dropping it under-repays and leaves the
// position above target. A zero or negative denominator means the subsidy
// factor makes the target unreachable.
//
// Rounded down so the repay never pushes the position below target.
func RepayValueForTarget(collateralValue, debtValue *num.Uint, targetBps, subsidyBps uint64) (*num.Uint, error) {
	if targetBps == 0 {
		return nil, types.ErrZeroTargetLeverage
	}
	if collateralValue.LTE(debtValue) {
		return nil, types.ErrNonPositiveEquity
	}

	// numerator, scaled by bps twice to keep integer precision:
	// (C*10000 - T*(C-D)) * 10000
	equity := num.UintZero().Sub(collateralValue, debtValue)
	target := num.NewUint(targetBps)
	lhs := num.UintZero().Mul(collateralValue, bpsUnit)
	rhs := num.UintZero().Mul(target, equity)
	if lhs.LTE(rhs) {
		// already at or below target, nothing to repay
		return num.UintZero(), nil
	}
	numerator := lhs.Sub(lhs, rhs)
	numerator.Mul(numerator, bpsUnit)

	// denominator: 10000^2 + k*10000 - T*k
	subsidy := num.NewUint(subsidyBps)
	den := num.UintZero().Mul(bpsUnit, bpsUnit)
	den.AddSum(num.UintZero().Mul(subsidy, bpsUnit))
	tk := num.UintZero().Mul(target, subsidy)
	if den.LTE(tk) {
		return nil, types.ErrTargetUnreachable
	}
	den.Sub(den, tk)

	return numerator.Div(numerator, den), nil
}

// SubsidyBps returns the subsidy rate owed for moving the position from
// the current leverage toward target, proportional to the deviation
// relative to target and capped at maxSubsidyBps. Rounded down.
func SubsidyBps(currentBps, targetBps, maxSubsidyBps uint64) uint64 {
	if targetBps == 0 || maxSubsidyBps == 0 {
		return 0
	}
	deviation := currentBps - targetBps
	if targetBps > currentBps {
		deviation = targetBps - currentBps
	}
	if deviation >= targetBps {
		return maxSubsidyBps
	}
	k := num.UintZero().Mul(num.NewUint(maxSubsidyBps), num.NewUint(deviation))
	k.Div(k, num.NewUint(targetBps))
	return k.Uint64()
}

// SubsidyValue returns the subsidy owed on the given moved value at the
// given rate, rounded down, clamped to the absolute cap when one is set.
// The absolute cap keeps a caller who inflates the vault within a single
// transaction from extracting a subsidy that scales with the inflated size.
func SubsidyValue(movedValue *num.Uint, subsidyBps uint64, maxValue *num.Uint) *num.Uint {
	v := num.UintZero().Mul(movedValue, num.NewUint(subsidyBps))
	v.Div(v, bpsUnit)
	if maxValue != nil && !maxValue.IsZero() && v.GT(maxValue) {
		return maxValue.Clone()
	}
	return v
}
