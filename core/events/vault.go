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

package events

import (
	"context"

	"code.vegaprotocol.io/loopvault/libs/num"
)

// VaultDeposit is emitted when a party deposits collateral and is minted
// vault shares against the net asset value increase.
type VaultDeposit struct {
	*Base
	party        string
	collateralIn *num.Uint
	debtBorrowed *num.Uint
	sharesMinted *num.Uint
	leverageBps  uint64
}

func NewVaultDepositEvent(ctx context.Context, party string, collateralIn, debtBorrowed, sharesMinted *num.Uint, leverageBps uint64) *VaultDeposit {
	return &VaultDeposit{
		Base:         newBase(ctx, VaultDepositEvent),
		party:        party,
		collateralIn: collateralIn.Clone(),
		debtBorrowed: debtBorrowed.Clone(),
		sharesMinted: sharesMinted.Clone(),
		leverageBps:  leverageBps,
	}
}

func (v VaultDeposit) PartyID() string          { return v.party }
func (v VaultDeposit) CollateralIn() *num.Uint  { return v.collateralIn.Clone() }
func (v VaultDeposit) DebtBorrowed() *num.Uint  { return v.debtBorrowed.Clone() }
func (v VaultDeposit) SharesMinted() *num.Uint  { return v.sharesMinted.Clone() }
func (v VaultDeposit) LeverageBps() uint64      { return v.leverageBps }
func (v VaultDeposit) IsParty(id string) bool   { return v.party == id }

// VaultRedeem is emitted when a party burns vault shares and receives their
// proportional slice of the position.
type VaultRedeem struct {
	*Base
	party         string
	sharesBurned  *num.Uint
	collateralOut *num.Uint
	debtRepaid    *num.Uint
}

func NewVaultRedeemEvent(ctx context.Context, party string, sharesBurned, collateralOut, debtRepaid *num.Uint) *VaultRedeem {
	return &VaultRedeem{
		Base:          newBase(ctx, VaultRedeemEvent),
		party:         party,
		sharesBurned:  sharesBurned.Clone(),
		collateralOut: collateralOut.Clone(),
		debtRepaid:    debtRepaid.Clone(),
	}
}

func (v VaultRedeem) PartyID() string          { return v.party }
func (v VaultRedeem) SharesBurned() *num.Uint  { return v.sharesBurned.Clone() }
func (v VaultRedeem) CollateralOut() *num.Uint { return v.collateralOut.Clone() }
func (v VaultRedeem) DebtRepaid() *num.Uint    { return v.debtRepaid.Clone() }
func (v VaultRedeem) IsParty(id string) bool   { return v.party == id }
