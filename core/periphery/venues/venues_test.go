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

package venues_test

import (
	"context"
	"testing"

	"code.vegaprotocol.io/loopvault/core/marketsim"
	"code.vegaprotocol.io/loopvault/core/periphery/venues"
	"code.vegaprotocol.io/loopvault/libs/num"
	"code.vegaprotocol.io/loopvault/logging"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBook = venues.AddressBook{
	"wstETH": common.HexToAddress("0x7f39C581F595B53c5cb19bD0b3f8dA6c935E2Ca0"),
	"WETH":   common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
}

func TestUniswapPathEncoding(t *testing.T) {
	router := common.HexToAddress("0xE592427A0AEce92De3Edee1F18E0157C05861564")
	v := venues.NewUniswapV3(router, 500, testBook, nil)

	// exact output paths run in reverse: tokenOut, fee, tokenIn
	path, err := v.EncodePath("WETH", "wstETH")
	require.NoError(t, err)
	assert.Equal(t,
		"0x7f39c581f595b53c5cb19bd0b3f8da6c935e2ca0"+"0001f4"+"c02aaa39b223fe8d0a0e5c4f27ead9083c756cc2",
		hexutil.Encode(path))

	_, err = v.EncodePath("WETH", "DAI")
	assert.ErrorIs(t, err, venues.ErrUnknownToken)
}

func TestAggregatorCallEncoding(t *testing.T) {
	router := common.HexToAddress("0x1111111254EEB25477B68fb85Ed929f73A960582")
	a := venues.NewAggregator(router, testBook, nil)

	data, err := a.EncodeCall("WETH", "wstETH", num.NewUint(19600), num.NewUint(40000))
	require.NoError(t, err)
	require.Len(t, data, 4+4*32)

	enc := hexutil.Encode(data)
	// selector, then each argument left padded to a word
	selector := crypto.Keccak256([]byte("swapExactOutput(address,address,uint256,uint256)"))[:4]
	assert.Equal(t, hexutil.Encode(selector), enc[:10])
	assert.Contains(t, enc, "c02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
	assert.Contains(t, enc, "7f39c581f595b53c5cb19bd0b3f8da6c935e2ca0")
	// 19600 = 0x4c90, 40000 = 0x9c40
	assert.Contains(t, enc, "4c90")
	assert.Contains(t, enc, "9c40")
}

func TestVenueDelegatesToExecutor(t *testing.T) {
	log := logging.NewTestLogger()
	conf := marketsim.NewDefaultConfig()
	conf.SwapFeeBps = 0
	ledger := marketsim.NewLedger()
	amm := marketsim.NewAMM(log, conf, ledger, "amm", "wstETH", "WETH")
	amm.Fund(num.NewUint(1000000), num.NewUint(2000000))
	ledger.Credit("trader", "WETH", num.NewUint(50000))

	v := venues.NewUniswapV3(common.Address{}, 500, testBook, amm)
	spent, err := v.SwapExactOutput(context.Background(), "trader", "WETH", "wstETH",
		num.NewUint(19600), num.NewUint(40000), nil)
	require.NoError(t, err)
	assert.True(t, spent.EQ(num.NewUint(39984)), "got %s", spent.String())
	assert.True(t, ledger.BalanceOf("trader", "wstETH").EQ(num.NewUint(19600)))
}
