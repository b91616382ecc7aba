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

package vault

import (
	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/libs/num"
)

// shareLedger tracks the outstanding vault shares per party. Parties with a
// zero balance are removed from the map so iteration stays proportional to
// actual holders.
type shareLedger struct {
	supply   *num.Uint
	balances map[string]*num.Uint
}

func newShareLedger() *shareLedger {
	return &shareLedger{
		supply:   num.UintZero(),
		balances: map[string]*num.Uint{},
	}
}

func (l *shareLedger) mint(party string, amount *num.Uint) error {
	if len(party) == 0 {
		return ErrEmptyParty
	}
	if amount == nil || amount.IsZero() {
		return types.ErrZeroAmount
	}
	bal, ok := l.balances[party]
	if !ok {
		bal = num.UintZero()
		l.balances[party] = bal
	}
	bal.AddSum(amount)
	l.supply.AddSum(amount)
	return nil
}

func (l *shareLedger) burn(party string, amount *num.Uint) error {
	if amount == nil || amount.IsZero() {
		return types.ErrZeroAmount
	}
	bal, ok := l.balances[party]
	if !ok || bal.LT(amount) {
		return types.ErrInsufficientShares
	}
	bal.Sub(bal, amount)
	if bal.IsZero() {
		delete(l.balances, party)
	}
	l.supply.Sub(l.supply, amount)
	return nil
}

func (l *shareLedger) transfer(from, to string, amount *num.Uint) error {
	if len(to) == 0 {
		return ErrEmptyParty
	}
	if err := l.burn(from, amount); err != nil {
		return err
	}
	return l.mint(to, amount)
}

func (l *shareLedger) balanceOf(party string) *num.Uint {
	if bal, ok := l.balances[party]; ok {
		return bal.Clone()
	}
	return num.UintZero()
}

func (l *shareLedger) totalSupply() *num.Uint {
	return l.supply.Clone()
}

func (l *shareLedger) clone() *shareLedger {
	cpy := &shareLedger{
		supply:   l.supply.Clone(),
		balances: make(map[string]*num.Uint, len(l.balances)),
	}
	for party, bal := range l.balances {
		cpy.balances[party] = bal.Clone()
	}
	return cpy
}

// holdings tracks liquid token balances sitting with the vault outside the
// lending market, unsolicited donations included. These never count toward
// the net asset value and never inflate an amount a wrapper must move.
type holdings struct {
	balances map[string]*num.Uint
}

func newHoldings() *holdings {
	return &holdings{balances: map[string]*num.Uint{}}
}

func (h *holdings) credit(asset string, amount *num.Uint) error {
	if amount == nil || amount.IsZero() {
		return types.ErrZeroAmount
	}
	bal, ok := h.balances[asset]
	if !ok {
		bal = num.UintZero()
		h.balances[asset] = bal
	}
	bal.AddSum(amount)
	return nil
}

func (h *holdings) balanceOf(asset string) *num.Uint {
	if bal, ok := h.balances[asset]; ok {
		return bal.Clone()
	}
	return num.UintZero()
}

func (h *holdings) clone() *holdings {
	cpy := &holdings{balances: make(map[string]*num.Uint, len(h.balances))}
	for asset, bal := range h.balances {
		cpy.balances[asset] = bal.Clone()
	}
	return cpy
}
