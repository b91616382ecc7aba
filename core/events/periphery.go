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

// LeveragedDeposit is emitted when a flash loan orchestrated deposit
// completed, folding any swap leftover into the depositor's shares.
type LeveragedDeposit struct {
	*Base
	party         string
	flashBorrowed *num.Uint
	swapSpent     *num.Uint
	collateralIn  *num.Uint
	sharesMinted  *num.Uint
	leftover      *num.Uint
}

func NewLeveragedDepositEvent(ctx context.Context, party string, flashBorrowed, swapSpent, collateralIn, sharesMinted, leftover *num.Uint) *LeveragedDeposit {
	return &LeveragedDeposit{
		Base:          newBase(ctx, LeveragedDepositEvent),
		party:         party,
		flashBorrowed: flashBorrowed.Clone(),
		swapSpent:     swapSpent.Clone(),
		collateralIn:  collateralIn.Clone(),
		sharesMinted:  sharesMinted.Clone(),
		leftover:      leftover.Clone(),
	}
}

func (l LeveragedDeposit) PartyID() string          { return l.party }
func (l LeveragedDeposit) FlashBorrowed() *num.Uint { return l.flashBorrowed.Clone() }
func (l LeveragedDeposit) SwapSpent() *num.Uint     { return l.swapSpent.Clone() }
func (l LeveragedDeposit) CollateralIn() *num.Uint  { return l.collateralIn.Clone() }
func (l LeveragedDeposit) SharesMinted() *num.Uint  { return l.sharesMinted.Clone() }
func (l LeveragedDeposit) Leftover() *num.Uint      { return l.leftover.Clone() }

// LeveragedRedeem is emitted when a flash loan orchestrated redemption
// completed and the remaining collateral was paid out.
type LeveragedRedeem struct {
	*Base
	party          string
	sharesBurned   *num.Uint
	flashBorrowed  *num.Uint
	collateralSold *num.Uint
	collateralOut  *num.Uint
}

func NewLeveragedRedeemEvent(ctx context.Context, party string, sharesBurned, flashBorrowed, collateralSold, collateralOut *num.Uint) *LeveragedRedeem {
	return &LeveragedRedeem{
		Base:           newBase(ctx, LeveragedRedeemEvent),
		party:          party,
		sharesBurned:   sharesBurned.Clone(),
		flashBorrowed:  flashBorrowed.Clone(),
		collateralSold: collateralSold.Clone(),
		collateralOut:  collateralOut.Clone(),
	}
}

func (l LeveragedRedeem) PartyID() string           { return l.party }
func (l LeveragedRedeem) SharesBurned() *num.Uint   { return l.sharesBurned.Clone() }
func (l LeveragedRedeem) FlashBorrowed() *num.Uint  { return l.flashBorrowed.Clone() }
func (l LeveragedRedeem) CollateralSold() *num.Uint { return l.collateralSold.Clone() }
func (l LeveragedRedeem) CollateralOut() *num.Uint  { return l.collateralOut.Clone() }
