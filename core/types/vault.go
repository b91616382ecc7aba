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
	"code.vegaprotocol.io/loopvault/libs/num"
)

// LeverageOneBps is a leverage of exactly 1x expressed in basis points.
const LeverageOneBps uint64 = 10000

// PriceScale returns the fixed point scale oracle prices are quoted in:
// the base unit value of one native token unit, times 10^18.
func PriceScale() *num.Uint {
	return num.UintZero().Exp(num.NewUint(10), num.NewUint(18))
}

// Vault describes a single leveraged position vault: one collateral asset,
// one correlated debt asset, and the governance parameters driving its
// target leverage window.
type Vault struct {
	ID              string
	Owner           string
	CollateralAsset string
	DebtAsset       string
	Parameters      LeverageParameters

	// MaxTotalValue caps the vault net asset value on deposits,
	// a zero value means uncapped.
	MaxTotalValue *num.Uint
}

// LeverageParameters is the governance-set leverage window of a vault.
// All leverage figures are in basis points where 10000 == 1x.
type LeverageParameters struct {
	TargetLeverageBps uint64
	LowerBoundBps     uint64
	UpperBoundBps     uint64

	// MaxSubsidyBps caps the rebalancing subsidy as a fraction of the
	// value moved by the rebalance.
	MaxSubsidyBps uint64

	// MaxSubsidyValue caps the subsidy paid by a single rebalance in
	// absolute base units, a zero value means no absolute cap.
	MaxSubsidyValue *num.Uint
}

// Validate checks the parameters describe a usable leverage window:
// strictly above 1x, ordered, with a sane subsidy cap.
func (p LeverageParameters) Validate() error {
	if p.TargetLeverageBps == 0 {
		return ErrZeroTargetLeverage
	}
	if p.LowerBoundBps <= LeverageOneBps {
		return ErrLeverageBoundsNotAboveOne
	}
	if p.LowerBoundBps > p.TargetLeverageBps || p.TargetLeverageBps > p.UpperBoundBps {
		return ErrLeverageBoundsOutOfOrder
	}
	if p.MaxSubsidyBps > LeverageOneBps {
		return ErrMaxSubsidyTooLarge
	}
	return nil
}

// DeepClone returns a full copy of the parameters.
func (p LeverageParameters) DeepClone() LeverageParameters {
	cpy := p
	if p.MaxSubsidyValue != nil {
		cpy.MaxSubsidyValue = p.MaxSubsidyValue.Clone()
	}
	return cpy
}

// Validate checks the vault definition is complete and coherent.
func (v *Vault) Validate() error {
	if len(v.CollateralAsset) == 0 || len(v.DebtAsset) == 0 {
		return ErrMissingAsset
	}
	if v.CollateralAsset == v.DebtAsset {
		return ErrSameCollateralAndDebtAsset
	}
	return v.Parameters.Validate()
}

// DeepClone returns a full copy of the vault definition.
func (v *Vault) DeepClone() *Vault {
	cpy := *v
	cpy.Parameters = v.Parameters.DeepClone()
	if v.MaxTotalValue != nil {
		cpy.MaxTotalValue = v.MaxTotalValue.Clone()
	}
	return &cpy
}
