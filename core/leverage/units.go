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

package leverage

import (
	"errors"

	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/libs/num"
)

// ErrZeroPrice is returned by unit conversions handed a zero oracle price.
var ErrZeroPrice = errors.New("oracle price is zero")

// ValueOfUnits converts native token units into base value at the given
// oracle price, rounded down.
func ValueOfUnits(units, price *num.Uint) (*num.Uint, error) {
	if price == nil || price.IsZero() {
		return nil, ErrZeroPrice
	}
	v := num.UintZero().Mul(units, price)
	return v.Div(v, types.PriceScale()), nil
}

// UnitsForValueFloor converts base value into native token units at the
// given oracle price, rounded down. Used when sizing an amount granted out.
func UnitsForValueFloor(value, price *num.Uint) (*num.Uint, error) {
	if price == nil || price.IsZero() {
		return nil, ErrZeroPrice
	}
	u := num.UintZero().Mul(value, types.PriceScale())
	return u.Div(u, price), nil
}

// UnitsForValueCeil converts base value into native token units at the
// given oracle price, rounded up. Used when sizing an amount that must
// cover at least the given value.
func UnitsForValueCeil(value, price *num.Uint) (*num.Uint, error) {
	if price == nil || price.IsZero() {
		return nil, ErrZeroPrice
	}
	u := num.UintZero().Mul(value, types.PriceScale())
	return u.DivCeil(u, price), nil
}
