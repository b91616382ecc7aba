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

	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/libs/num"
	"code.vegaprotocol.io/loopvault/logging"
)

var (
	ErrUnknownPair          = errors.New("swap venue does not carry the pair")
	ErrInsufficientReserves = errors.New("requested output exceeds pool reserves")
	ErrSwapExceedsMaxIn     = errors.New("swap input exceeds the allowed maximum")
)

// AMM is a constant product pool over one asset pair, keeping its reserves
// as ledger balances on its own account so swaps settle on the same ledger
// as everything else. The fee is charged on the input amount.
type AMM struct {
	log     *logging.Logger
	conf    Config
	ledger  *Ledger
	account string
	assetA  string
	assetB  string
}

// NewAMM returns a pool for the pair, empty until funded through the
// ledger.
func NewAMM(log *logging.Logger, conf Config, ledger *Ledger, account, assetA, assetB string) *AMM {
	log = log.Named(namedLogger)
	log.SetLevel(conf.Level.Get())
	return &AMM{
		log:     log,
		conf:    conf,
		ledger:  ledger,
		account: account,
		assetA:  assetA,
		assetB:  assetB,
	}
}

// Fund credits both reserves.
func (a *AMM) Fund(reserveA, reserveB *num.Uint) {
	a.ledger.Credit(a.account, a.assetA, reserveA)
	a.ledger.Credit(a.account, a.assetB, reserveB)
}

// SwapExactOutput delivers exactly desiredOut of tokenOut to the account
// and pulls the constant product input, fee included and rounded against
// the trader, bounded by maxIn. Routing data is ignored, a single pool has
// nothing to route.
func (a *AMM) SwapExactOutput(ctx context.Context, account, tokenIn, tokenOut string, desiredOut, maxIn *num.Uint, _ []byte) (*num.Uint, error) {
	if desiredOut == nil || desiredOut.IsZero() {
		return nil, types.ErrZeroAmount
	}
	if !(tokenIn == a.assetA && tokenOut == a.assetB) && !(tokenIn == a.assetB && tokenOut == a.assetA) {
		return nil, ErrUnknownPair
	}

	reserveIn := a.ledger.BalanceOf(a.account, tokenIn)
	reserveOut := a.ledger.BalanceOf(a.account, tokenOut)
	if desiredOut.GTE(reserveOut) {
		return nil, ErrInsufficientReserves
	}

	// in = ceil(reserveIn * out / (reserveOut - out)), then gross the fee
	// up on the input side, both rounded against the trader
	amountIn := num.UintZero().Mul(reserveIn, desiredOut)
	amountIn.DivCeil(amountIn, num.UintZero().Sub(reserveOut, desiredOut))
	gross := num.UintZero().Mul(amountIn, bpsUnit)
	gross.DivCeil(gross, num.NewUint(types.LeverageOneBps-a.conf.SwapFeeBps))

	if maxIn != nil && gross.GT(maxIn) {
		return nil, ErrSwapExceedsMaxIn
	}
	if err := a.ledger.Transfer(ctx, account, a.account, tokenIn, gross); err != nil {
		return nil, err
	}
	if err := a.ledger.Transfer(ctx, a.account, account, tokenOut, desiredOut); err != nil {
		return nil, err
	}

	if a.log.IsDebug() {
		a.log.Debug("exact output swap settled",
			logging.String("token-in", tokenIn),
			logging.String("token-out", tokenOut),
			logging.BigUint("out", desiredOut),
			logging.BigUint("in", gross),
		)
	}
	return gross, nil
}
