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
	"code.vegaprotocol.io/loopvault/config/encoding"
	"code.vegaprotocol.io/loopvault/logging"
)

const namedLogger = "marketsim"

// Config represents the configuration of the simulated venues.
type Config struct {
	Level         encoding.LogLevel `long:"log-level"`
	BorrowRateBps uint64            `long:"borrow-rate-bps" description:"annual interest applied to outstanding debt, in basis points"`
	MaxLtvBps     uint64            `long:"max-ltv-bps" description:"loan to value limit the market enforces, in basis points"`
	DeltaJitter   uint64            `long:"delta-jitter" description:"maximum units the market may shave off any balance movement"`
	JitterSeed    int64             `long:"jitter-seed" description:"seed for the balance shaving sequence"`
	FlashFeeBps   uint64            `long:"flash-fee-bps" description:"fee the flash lender charges, in basis points"`
	SwapFeeBps    uint64            `long:"swap-fee-bps" description:"fee the swap venue charges on the input amount, in basis points"`
}

// NewDefaultConfig creates an instance of config with default values.
func NewDefaultConfig() Config {
	return Config{
		Level:         encoding.LogLevel{Level: logging.InfoLevel},
		BorrowRateBps: 250,
		MaxLtvBps:     9300,
		DeltaJitter:   0,
		JitterSeed:    42,
		FlashFeeBps:   0,
		SwapFeeBps:    5,
	}
}
