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

package leverage_test

import (
	"testing"

	"code.vegaprotocol.io/loopvault/core/leverage"
	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/libs/num"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeverageBps(t *testing.T) {
	tcs := []struct {
		name       string
		collateral uint64
		debt       uint64
		expected   uint64
	}{
		{"two times", 200000, 100000, 20000},
		{"three times", 300000, 200000, 30000},
		{"no debt is one time", 5000, 0, 10000},
		{"rounds down", 100, 33, 14925},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			lev, err := leverage.LeverageBps(num.NewUint(tc.collateral), num.NewUint(tc.debt))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, lev)
		})
	}

	t.Run("equity at or below zero errors", func(t *testing.T) {
		_, err := leverage.LeverageBps(num.NewUint(100), num.NewUint(100))
		assert.ErrorIs(t, err, types.ErrNonPositiveEquity)

		_, err = leverage.LeverageBps(num.NewUint(100), num.NewUint(150))
		assert.ErrorIs(t, err, types.ErrNonPositiveEquity)
	})
}

func TestBorrowValueForTarget(t *testing.T) {
	t.Run("reaches target exactly on round numbers", func(t *testing.T) {
		borrow, err := leverage.BorrowValueForTarget(num.NewUint(300000), num.NewUint(100000), 30000)
		require.NoError(t, err)
		require.Equal(t, uint64(100000), borrow.Uint64())

		debtAfter := num.UintZero().Add(num.NewUint(100000), borrow)
		lev, err := leverage.LeverageBps(num.NewUint(300000), debtAfter)
		require.NoError(t, err)
		assert.Equal(t, uint64(30000), lev)
	})

	t.Run("zero when already at or above target", func(t *testing.T) {
		borrow, err := leverage.BorrowValueForTarget(num.NewUint(200000), num.NewUint(150000), 20000)
		require.NoError(t, err)
		assert.True(t, borrow.IsZero())
	})

	t.Run("rounds down so target is never overshot", func(t *testing.T) {
		borrow, err := leverage.BorrowValueForTarget(num.NewUint(100), num.UintZero(), 15000)
		require.NoError(t, err)
		assert.Equal(t, uint64(33), borrow.Uint64())

		lev, err := leverage.LeverageBps(num.NewUint(100), borrow)
		require.NoError(t, err)
		assert.LessOrEqual(t, lev, uint64(15000))

		// one more unit of debt would push past the target
		overshoot, err := leverage.LeverageBps(num.NewUint(100), num.NewUint(34))
		require.NoError(t, err)
		assert.Greater(t, overshoot, uint64(15000))
	})

	t.Run("invalid targets rejected", func(t *testing.T) {
		_, err := leverage.BorrowValueForTarget(num.NewUint(100), num.UintZero(), 0)
		assert.ErrorIs(t, err, types.ErrZeroTargetLeverage)

		_, err = leverage.BorrowValueForTarget(num.NewUint(100), num.UintZero(), 10000)
		assert.ErrorIs(t, err, types.ErrLeverageBoundsNotAboveOne)
	})
}

func TestCollateralValueForTarget(t *testing.T) {
	t.Run("exact backing", func(t *testing.T) {
		c, err := leverage.CollateralValueForTarget(num.NewUint(200000), 30000)
		require.NoError(t, err)
		assert.Equal(t, uint64(300000), c.Uint64())
	})

	t.Run("rounds up so the backing is sufficient", func(t *testing.T) {
		c, err := leverage.CollateralValueForTarget(num.NewUint(101), 30000)
		require.NoError(t, err)
		assert.Equal(t, uint64(152), c.Uint64())

		lev, err := leverage.LeverageBps(c, num.NewUint(101))
		require.NoError(t, err)
		assert.LessOrEqual(t, lev, uint64(30000))
	})
}

func TestRepayValueForTarget(t *testing.T) {
	t.Run("no subsidy, lands exactly on target", func(t *testing.T) {
		repay, err := leverage.RepayValueForTarget(num.NewUint(300000), num.NewUint(200000), 20000, 0)
		require.NoError(t, err)
		require.Equal(t, uint64(100000), repay.Uint64())

		after := num.UintZero().Sub(num.NewUint(300000), repay)
		debtAfter := num.UintZero().Sub(num.NewUint(200000), repay)
		lev, err := leverage.LeverageBps(after, debtAfter)
		require.NoError(t, err)
		assert.Equal(t, uint64(20000), lev)
	})

	t.Run("subsidy term in the denominator repays enough", func(t *testing.T) {
		const subsidyBps = 100
		repay, err := leverage.RepayValueForTarget(num.NewUint(300000), num.NewUint(200000), 20000, subsidyBps)
		require.NoError(t, err)
		require.Equal(t, uint64(101010), repay.Uint64())

		// apply the rebalance: repay debt, withdraw repay*(1+k) collateral
		withdrawn := num.UintZero().Mul(repay, num.NewUint(10000+subsidyBps))
		withdrawn.Div(withdrawn, num.NewUint(10000))
		collateralAfter := num.UintZero().Sub(num.NewUint(300000), withdrawn)
		debtAfter := num.UintZero().Sub(num.NewUint(200000), repay)
		lev, err := leverage.LeverageBps(collateralAfter, debtAfter)
		require.NoError(t, err)
		assert.Equal(t, uint64(20000), lev)

		// the naive 1+k denominator under-repays and leaves the vault
		// above target
		naive := num.UintZero().Mul(num.NewUint(100000), num.NewUint(10000))
		naive.Div(naive, num.NewUint(10000+subsidyBps))
		require.Less(t, naive.Uint64(), repay.Uint64())
		naiveWithdrawn := num.UintZero().Mul(naive, num.NewUint(10000+subsidyBps))
		naiveWithdrawn.Div(naiveWithdrawn, num.NewUint(10000))
		naiveLev, err := leverage.LeverageBps(
			num.UintZero().Sub(num.NewUint(300000), naiveWithdrawn),
			num.UintZero().Sub(num.NewUint(200000), naive),
		)
		require.NoError(t, err)
		assert.Greater(t, naiveLev, uint64(20000))
	})

	t.Run("unreachable target on denominator sign flip", func(t *testing.T) {
		_, err := leverage.RepayValueForTarget(num.NewUint(300000), num.NewUint(200000), 30000, 5000)
		assert.ErrorIs(t, err, types.ErrTargetUnreachable)
	})

	t.Run("zero when already at or below target", func(t *testing.T) {
		repay, err := leverage.RepayValueForTarget(num.NewUint(300000), num.NewUint(50000), 20000, 0)
		require.NoError(t, err)
		assert.True(t, repay.IsZero())
	})

	t.Run("no equity errors", func(t *testing.T) {
		_, err := leverage.RepayValueForTarget(num.NewUint(100), num.NewUint(100), 20000, 0)
		assert.ErrorIs(t, err, types.ErrNonPositiveEquity)
	})
}

func TestSubsidyBps(t *testing.T) {
	tcs := []struct {
		name     string
		current  uint64
		target   uint64
		max      uint64
		expected uint64
	}{
		{"above target, half deviation", 30000, 20000, 50, 25},
		{"below target", 20000, 30000, 60, 20},
		{"deviation beyond target hits the cap", 45000, 20000, 50, 50},
		{"zero max is zero", 30000, 20000, 0, 0},
		{"on target is zero", 20000, 20000, 50, 0},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, leverage.SubsidyBps(tc.current, tc.target, tc.max))
		})
	}
}

func TestSubsidyValue(t *testing.T) {
	t.Run("bps of the moved value", func(t *testing.T) {
		v := leverage.SubsidyValue(num.NewUint(100000), 25, num.NewUint(1000))
		assert.Equal(t, uint64(250), v.Uint64())
	})

	t.Run("absolute cap clamps", func(t *testing.T) {
		v := leverage.SubsidyValue(num.NewUint(100000), 25, num.NewUint(100))
		assert.Equal(t, uint64(100), v.Uint64())
	})

	t.Run("zero cap means uncapped", func(t *testing.T) {
		v := leverage.SubsidyValue(num.NewUint(100000), 25, num.UintZero())
		assert.Equal(t, uint64(250), v.Uint64())

		v = leverage.SubsidyValue(num.NewUint(100000), 25, nil)
		assert.Equal(t, uint64(250), v.Uint64())
	})
}
