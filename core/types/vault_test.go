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

package types_test

import (
	"testing"

	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/libs/num"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() types.LeverageParameters {
	return types.LeverageParameters{
		TargetLeverageBps: 25000,
		LowerBoundBps:     20000,
		UpperBoundBps:     30000,
		MaxSubsidyBps:     50,
		MaxSubsidyValue:   num.NewUint(1000),
	}
}

func TestLeverageParametersValidation(t *testing.T) {
	t.Run("valid parameters", func(t *testing.T) {
		require.NoError(t, validParams().Validate())
	})

	t.Run("zero target rejected", func(t *testing.T) {
		p := validParams()
		p.TargetLeverageBps = 0
		assert.ErrorIs(t, p.Validate(), types.ErrZeroTargetLeverage)
	})

	t.Run("lower bound at or below 1x rejected", func(t *testing.T) {
		p := validParams()
		p.LowerBoundBps = 10000
		assert.ErrorIs(t, p.Validate(), types.ErrLeverageBoundsNotAboveOne)
	})

	t.Run("unordered bounds rejected", func(t *testing.T) {
		p := validParams()
		p.UpperBoundBps = 20000
		p.TargetLeverageBps = 25000
		assert.ErrorIs(t, p.Validate(), types.ErrLeverageBoundsOutOfOrder)

		p = validParams()
		p.LowerBoundBps = 26000
		assert.ErrorIs(t, p.Validate(), types.ErrLeverageBoundsOutOfOrder)
	})

	t.Run("subsidy bps above 1 rejected", func(t *testing.T) {
		p := validParams()
		p.MaxSubsidyBps = 10001
		assert.ErrorIs(t, p.Validate(), types.ErrMaxSubsidyTooLarge)
	})
}

func TestVaultValidation(t *testing.T) {
	vault := &types.Vault{
		ID:              "1",
		Owner:           "treasury",
		CollateralAsset: "wstETH",
		DebtAsset:       "WETH",
		Parameters:      validParams(),
	}
	require.NoError(t, vault.Validate())

	t.Run("missing asset rejected", func(t *testing.T) {
		v := vault.DeepClone()
		v.DebtAsset = ""
		assert.ErrorIs(t, v.Validate(), types.ErrMissingAsset)
	})

	t.Run("same collateral and debt asset rejected", func(t *testing.T) {
		v := vault.DeepClone()
		v.DebtAsset = v.CollateralAsset
		assert.ErrorIs(t, v.Validate(), types.ErrSameCollateralAndDebtAsset)
	})

	t.Run("deep clone does not share pointers", func(t *testing.T) {
		v := vault.DeepClone()
		v.Parameters.MaxSubsidyValue.AddSum(num.NewUint(1))
		assert.True(t, vault.Parameters.MaxSubsidyValue.EQ(num.NewUint(1000)))
	})
}
