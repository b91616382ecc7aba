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

package venues

import (
	"context"

	"code.vegaprotocol.io/loopvault/libs/num"

	"github.com/ethereum/go-ethereum/common"
)

// UniswapV3 routes swaps through a Uniswap v3 style router with a single
// pool hop at a fixed fee tier.
type UniswapV3 struct {
	router common.Address
	feePpm uint32
	tokens AddressBook
	inner  Executor
}

// NewUniswapV3 returns the adapter, feePpm is the pool fee tier in parts
// per million (500, 3000, 10000).
func NewUniswapV3(router common.Address, feePpm uint32, tokens AddressBook, inner Executor) *UniswapV3 {
	return &UniswapV3{
		router: router,
		feePpm: feePpm,
		tokens: tokens,
		inner:  inner,
	}
}

// Router returns the router address the adapter targets.
func (u *UniswapV3) Router() common.Address {
	return u.router
}

// SwapExactOutput encodes the pool path for the pair and delegates.
func (u *UniswapV3) SwapExactOutput(ctx context.Context, account, tokenIn, tokenOut string, desiredOut, maxIn *num.Uint, routing []byte) (*num.Uint, error) {
	if len(routing) == 0 {
		path, err := u.EncodePath(tokenIn, tokenOut)
		if err != nil {
			return nil, err
		}
		routing = path
	}
	return u.inner.SwapExactOutput(ctx, account, tokenIn, tokenOut, desiredOut, maxIn, routing)
}

// EncodePath packs the single hop path the way the v3 router expects for
// exact output swaps: tokenOut, fee, tokenIn, the reverse of the trade
// direction.
func (u *UniswapV3) EncodePath(tokenIn, tokenOut string) ([]byte, error) {
	in, err := u.tokens.lookup(tokenIn)
	if err != nil {
		return nil, err
	}
	out, err := u.tokens.lookup(tokenOut)
	if err != nil {
		return nil, err
	}
	path := make([]byte, 0, 2*common.AddressLength+3)
	path = append(path, out.Bytes()...)
	path = append(path, byte(u.feePpm>>16), byte(u.feePpm>>8), byte(u.feePpm))
	path = append(path, in.Bytes()...)
	return path, nil
}
