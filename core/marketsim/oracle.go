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
	"sync"
	"time"

	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/libs/num"
)

type pricePoint struct {
	price *num.Uint
	at    time.Time
}

// Oracle is a settable price source. Prices are quoted per native token
// unit, scaled by types.PriceScale, and stamped with the simulated time
// they were set at so staleness policies can be exercised.
type Oracle struct {
	mu     sync.Mutex
	clock  *Clock
	prices map[string]pricePoint
}

func NewOracle(clock *Clock) *Oracle {
	return &Oracle{
		clock:  clock,
		prices: map[string]pricePoint{},
	}
}

// SetPrice sets the asset price, stamped with the current simulated time.
func (o *Oracle) SetPrice(asset string, price *num.Uint) {
	o.SetPriceAt(asset, price, o.clock.GetTimeNow())
}

// SetPriceAt sets the asset price with an explicit update time.
func (o *Oracle) SetPriceAt(asset string, price *num.Uint, at time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.prices[asset] = pricePoint{
		price: price.Clone(),
		at:    at,
	}
}

func (o *Oracle) Price(_ context.Context, asset string) (*num.Uint, time.Time, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	pp, ok := o.prices[asset]
	if !ok {
		return nil, time.Time{}, types.ErrUnknownAsset
	}
	return pp.price.Clone(), pp.at, nil
}
