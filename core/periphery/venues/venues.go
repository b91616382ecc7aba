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

// Package venues holds the swap venue adapters. Each adapter implements
// the orchestrator's SwapExecutor by building venue specific routing data
// for the pair and handing the swap to the raw executor behind it, which
// venue to construct is a deployment choice. Routing data passed in by the
// caller wins over anything the adapter would build.
package venues

import (
	"context"
	"errors"

	"code.vegaprotocol.io/loopvault/libs/num"

	"github.com/ethereum/go-ethereum/common"
)

var ErrUnknownToken = errors.New("no token address known for asset")

// Executor is the raw venue call the adapters decorate, the marketsim AMM
// in simulations.
type Executor interface {
	SwapExactOutput(ctx context.Context, account, tokenIn, tokenOut string, desiredOut, maxIn *num.Uint, routing []byte) (*num.Uint, error)
}

// AddressBook maps asset identifiers to their token contract addresses.
type AddressBook map[string]common.Address

func (b AddressBook) lookup(asset string) (common.Address, error) {
	addr, ok := b[asset]
	if !ok {
		return common.Address{}, ErrUnknownToken
	}
	return addr, nil
}
