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
	"testing"

	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/libs/num"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareLedgerMintBurn(t *testing.T) {
	l := newShareLedger()

	require.NoError(t, l.mint("party-1", num.NewUint(100)))
	require.NoError(t, l.mint("party-2", num.NewUint(50)))
	require.NoError(t, l.mint("party-1", num.NewUint(25)))

	assert.True(t, l.balanceOf("party-1").EQ(num.NewUint(125)))
	assert.True(t, l.balanceOf("party-2").EQ(num.NewUint(50)))
	assert.True(t, l.totalSupply().EQ(num.NewUint(175)))

	require.NoError(t, l.burn("party-1", num.NewUint(125)))
	assert.True(t, l.balanceOf("party-1").IsZero())
	assert.True(t, l.totalSupply().EQ(num.NewUint(50)))

	assert.ErrorIs(t, l.mint("", num.NewUint(1)), ErrEmptyParty)
	assert.ErrorIs(t, l.mint("party-1", num.UintZero()), types.ErrZeroAmount)
	assert.ErrorIs(t, l.burn("party-2", num.NewUint(51)), types.ErrInsufficientShares)
	assert.ErrorIs(t, l.burn("unknown", num.NewUint(1)), types.ErrInsufficientShares)
}

func TestShareLedgerTransfer(t *testing.T) {
	l := newShareLedger()
	require.NoError(t, l.mint("party-1", num.NewUint(100)))

	require.NoError(t, l.transfer("party-1", "party-2", num.NewUint(40)))
	assert.True(t, l.balanceOf("party-1").EQ(num.NewUint(60)))
	assert.True(t, l.balanceOf("party-2").EQ(num.NewUint(40)))
	// supply is untouched by transfers
	assert.True(t, l.totalSupply().EQ(num.NewUint(100)))

	assert.ErrorIs(t, l.transfer("party-1", "", num.NewUint(1)), ErrEmptyParty)
	assert.ErrorIs(t, l.transfer("party-2", "party-1", num.NewUint(41)), types.ErrInsufficientShares)
}

func TestShareLedgerClone(t *testing.T) {
	l := newShareLedger()
	require.NoError(t, l.mint("party-1", num.NewUint(100)))

	cpy := l.clone()
	require.NoError(t, l.mint("party-1", num.NewUint(100)))
	require.NoError(t, l.mint("party-2", num.NewUint(10)))

	assert.True(t, cpy.balanceOf("party-1").EQ(num.NewUint(100)))
	assert.True(t, cpy.balanceOf("party-2").IsZero())
	assert.True(t, cpy.totalSupply().EQ(num.NewUint(100)))
}

func TestHoldings(t *testing.T) {
	h := newHoldings()

	require.NoError(t, h.credit("WETH", num.NewUint(10)))
	require.NoError(t, h.credit("WETH", num.NewUint(5)))
	assert.True(t, h.balanceOf("WETH").EQ(num.NewUint(15)))
	assert.True(t, h.balanceOf("wstETH").IsZero())

	assert.ErrorIs(t, h.credit("WETH", num.UintZero()), types.ErrZeroAmount)

	cpy := h.clone()
	require.NoError(t, h.credit("WETH", num.NewUint(100)))
	assert.True(t, cpy.balanceOf("WETH").EQ(num.NewUint(15)))
}
