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

package marketsim

import (
	"context"
	"errors"
	"sync"

	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/libs/num"
)

var ErrInsufficientBalance = errors.New("insufficient token balance")

// Ledger is the in-memory stand-in for the token contracts: free balances
// per account and asset. Tokens entering the lending market position leave
// the ledger (Debit) and come back out of it on withdrawal (Credit), the
// market tracks position state itself. Snapshots stack like the market's.
type Ledger struct {
	mu        sync.Mutex
	balances  map[string]map[string]*num.Uint
	snapshots map[uint64]map[string]map[string]*num.Uint
	nextSnap  uint64
}

// NewLedger returns an empty token ledger.
func NewLedger() *Ledger {
	return &Ledger{
		balances:  map[string]map[string]*num.Uint{},
		snapshots: map[uint64]map[string]map[string]*num.Uint{},
		nextSnap:  1,
	}
}

// BalanceOf returns the free balance the account holds in the asset.
func (l *Ledger) BalanceOf(account, asset string) *num.Uint {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceLocked(account, asset).Clone()
}

// Credit mints the amount onto the account.
func (l *Ledger) Credit(account, asset string, amount *num.Uint) {
	if amount == nil || amount.IsZero() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balanceLocked(account, asset).AddSum(amount)
}

// Debit burns the amount off the account, failing if the balance does not
// cover it.
func (l *Ledger) Debit(account, asset string, amount *num.Uint) error {
	if amount == nil || amount.IsZero() {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	bal := l.balanceLocked(account, asset)
	if bal.LT(amount) {
		return ErrInsufficientBalance
	}
	bal.Sub(bal, amount)
	return nil
}

// Transfer moves the amount between accounts.
func (l *Ledger) Transfer(_ context.Context, from, to, asset string, amount *num.Uint) error {
	if amount == nil || amount.IsZero() {
		return types.ErrZeroAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	src := l.balanceLocked(from, asset)
	if src.LT(amount) {
		return ErrInsufficientBalance
	}
	src.Sub(src, amount)
	l.balanceLocked(to, asset).AddSum(amount)
	return nil
}

// Snapshot captures all balances, returning a handle for RevertToSnapshot.
// Snapshots stack.
func (l *Ledger) Snapshot() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextSnap
	l.nextSnap++
	l.snapshots[id] = l.cloneLocked()
	return id
}

// RevertToSnapshot rolls the ledger back, discarding the given snapshot and
// any taken after it. Unknown handles are ignored.
func (l *Ledger) RevertToSnapshot(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	snap, ok := l.snapshots[id]
	if !ok {
		return
	}
	l.balances = snap
	for k := range l.snapshots {
		if k >= id {
			delete(l.snapshots, k)
		}
	}
}

// DiscardSnapshot drops a snapshot, keeping all changes made since.
func (l *Ledger) DiscardSnapshot(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.snapshots, id)
}

func (l *Ledger) balanceLocked(account, asset string) *num.Uint {
	accBals, ok := l.balances[account]
	if !ok {
		accBals = map[string]*num.Uint{}
		l.balances[account] = accBals
	}
	bal, ok := accBals[asset]
	if !ok {
		bal = num.UintZero()
		accBals[asset] = bal
	}
	return bal
}

func (l *Ledger) cloneLocked() map[string]map[string]*num.Uint {
	cpy := make(map[string]map[string]*num.Uint, len(l.balances))
	for account, accBals := range l.balances {
		c := make(map[string]*num.Uint, len(accBals))
		for asset, bal := range accBals {
			c[asset] = bal.Clone()
		}
		cpy[account] = c
	}
	return cpy
}
