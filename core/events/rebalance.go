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

// LeverageIncreased is emitted when a permissionless rebalance moved the
// vault leverage up towards target.
type LeverageIncreased struct {
	*Base
	party           string
	collateralAdded *num.Uint
	debtBorrowed    *num.Uint
	subsidyPaid     *num.Uint
	fromBps         uint64
	toBps           uint64
}

func NewLeverageIncreasedEvent(ctx context.Context, party string, collateralAdded, debtBorrowed, subsidyPaid *num.Uint, fromBps, toBps uint64) *LeverageIncreased {
	return &LeverageIncreased{
		Base:            newBase(ctx, LeverageIncreasedEvent),
		party:           party,
		collateralAdded: collateralAdded.Clone(),
		debtBorrowed:    debtBorrowed.Clone(),
		subsidyPaid:     subsidyPaid.Clone(),
		fromBps:         fromBps,
		toBps:           toBps,
	}
}

func (l LeverageIncreased) PartyID() string            { return l.party }
func (l LeverageIncreased) CollateralAdded() *num.Uint { return l.collateralAdded.Clone() }
func (l LeverageIncreased) DebtBorrowed() *num.Uint    { return l.debtBorrowed.Clone() }
func (l LeverageIncreased) SubsidyPaid() *num.Uint     { return l.subsidyPaid.Clone() }
func (l LeverageIncreased) FromBps() uint64            { return l.fromBps }
func (l LeverageIncreased) ToBps() uint64              { return l.toBps }

// LeverageDecreased is emitted when a permissionless rebalance moved the
// vault leverage down towards target.
type LeverageDecreased struct {
	*Base
	party              string
	debtRepaid         *num.Uint
	collateralReleased *num.Uint
	subsidyPaid        *num.Uint
	fromBps            uint64
	toBps              uint64
}

func NewLeverageDecreasedEvent(ctx context.Context, party string, debtRepaid, collateralReleased, subsidyPaid *num.Uint, fromBps, toBps uint64) *LeverageDecreased {
	return &LeverageDecreased{
		Base:               newBase(ctx, LeverageDecreasedEvent),
		party:              party,
		debtRepaid:         debtRepaid.Clone(),
		collateralReleased: collateralReleased.Clone(),
		subsidyPaid:        subsidyPaid.Clone(),
		fromBps:            fromBps,
		toBps:              toBps,
	}
}

func (l LeverageDecreased) PartyID() string               { return l.party }
func (l LeverageDecreased) DebtRepaid() *num.Uint         { return l.debtRepaid.Clone() }
func (l LeverageDecreased) CollateralReleased() *num.Uint { return l.collateralReleased.Clone() }
func (l LeverageDecreased) SubsidyPaid() *num.Uint        { return l.subsidyPaid.Clone() }
func (l LeverageDecreased) FromBps() uint64               { return l.fromBps }
func (l LeverageDecreased) ToBps() uint64                 { return l.toBps }
