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
	"github.com/ethereum/go-ethereum/crypto"
)

// aggregatorSig is the exact output entry point an aggregator router
// exposes, the routing data carries its selector plus packed arguments.
const aggregatorSig = "swapExactOutput(address,address,uint256,uint256)"

// Aggregator routes swaps through an opaque calldata aggregator: the
// routing data is the full call the aggregator executes, built from the
// swap parameters when the caller supplied none.
type Aggregator struct {
	router common.Address
	tokens AddressBook
	inner  Executor
}

// NewAggregator returns the adapter.
func NewAggregator(router common.Address, tokens AddressBook, inner Executor) *Aggregator {
	return &Aggregator{
		router: router,
		tokens: tokens,
		inner:  inner,
	}
}

// Router returns the router address the adapter targets.
func (a *Aggregator) Router() common.Address {
	return a.router
}

// SwapExactOutput builds the aggregator calldata and delegates.
func (a *Aggregator) SwapExactOutput(ctx context.Context, account, tokenIn, tokenOut string, desiredOut, maxIn *num.Uint, routing []byte) (*num.Uint, error) {
	if len(routing) == 0 {
		data, err := a.EncodeCall(tokenIn, tokenOut, desiredOut, maxIn)
		if err != nil {
			return nil, err
		}
		routing = data
	}
	return a.inner.SwapExactOutput(ctx, account, tokenIn, tokenOut, desiredOut, maxIn, routing)
}

// EncodeCall packs the aggregator call: 4 byte selector, then each
// argument left padded to 32 bytes.
func (a *Aggregator) EncodeCall(tokenIn, tokenOut string, desiredOut, maxIn *num.Uint) ([]byte, error) {
	in, err := a.tokens.lookup(tokenIn)
	if err != nil {
		return nil, err
	}
	out, err := a.tokens.lookup(tokenOut)
	if err != nil {
		return nil, err
	}
	if maxIn == nil {
		maxIn = num.MaxUint()
	}

	data := make([]byte, 0, 4+4*32)
	data = append(data, crypto.Keccak256([]byte(aggregatorSig))[:4]...)
	data = append(data, common.LeftPadBytes(in.Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(out.Bytes(), 32)...)
	outBytes := desiredOut.Bytes()
	data = append(data, outBytes[:]...)
	maxBytes := maxIn.Bytes()
	data = append(data, maxBytes[:]...)
	return data, nil
}
