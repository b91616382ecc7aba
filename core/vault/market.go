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
	"context"

	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/libs/num"
	"code.vegaprotocol.io/loopvault/logging"
)

// The verified wrappers are the only way the engine touches the lending
// market. Each one reads the relevant balance before and after the call
// and requires the observed delta to match the requested amount: shortfall
// beyond the configured tolerance is an integrity violation, over-delivery
// is kept (it only ever favours the vault). The nominal amounts returned
// by the market are ignored on purpose.

// SupplyVerified supplies collateral to the market position.
func (e *Engine) SupplyVerified(ctx context.Context, amount *num.Uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.supplyVerifiedLocked(ctx, amount)
}

// WithdrawVerified withdraws collateral from the market position.
func (e *Engine) WithdrawVerified(ctx context.Context, amount *num.Uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.withdrawVerifiedLocked(ctx, amount)
}

// BorrowVerified draws debt on the market position.
func (e *Engine) BorrowVerified(ctx context.Context, amount *num.Uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.borrowVerifiedLocked(ctx, amount)
}

// RepayVerified pays debt back on the market position.
func (e *Engine) RepayVerified(ctx context.Context, amount *num.Uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.repayVerifiedLocked(ctx, amount)
}

func (e *Engine) supplyVerifiedLocked(ctx context.Context, amount *num.Uint) error {
	return e.verifiedCall(ctx, types.MarketOpSupply, e.vault.CollateralAsset, amount,
		e.market.CollateralBalance, e.market.Supply, false)
}

func (e *Engine) withdrawVerifiedLocked(ctx context.Context, amount *num.Uint) error {
	return e.verifiedCall(ctx, types.MarketOpWithdraw, e.vault.CollateralAsset, amount,
		e.market.CollateralBalance, e.market.WithdrawCollateral, true)
}

func (e *Engine) borrowVerifiedLocked(ctx context.Context, amount *num.Uint) error {
	return e.verifiedCall(ctx, types.MarketOpBorrow, e.vault.DebtAsset, amount,
		e.market.DebtBalance, e.market.Borrow, false)
}

func (e *Engine) repayVerifiedLocked(ctx context.Context, amount *num.Uint) error {
	return e.verifiedCall(ctx, types.MarketOpRepay, e.vault.DebtAsset, amount,
		e.market.DebtBalance, e.market.Repay, true)
}

func (e *Engine) verifiedCall(
	ctx context.Context,
	op types.MarketOp,
	asset string,
	amount *num.Uint,
	read func(context.Context, string) (*num.Uint, error),
	call func(context.Context, string, *num.Uint) (*num.Uint, error),
	decreases bool,
) error {
	if amount == nil || amount.IsZero() {
		return types.ErrZeroAmount
	}

	before, err := read(ctx, asset)
	if err != nil {
		return err
	}
	if _, err := call(ctx, asset, amount); err != nil {
		return err
	}
	after, err := read(ctx, asset)
	if err != nil {
		return err
	}

	observed, neg := num.UintZero().Delta(after, before)
	if decreases {
		observed, neg = num.UintZero().Delta(before, after)
	}
	if neg {
		// the balance moved against the direction of the operation, no
		// progress was made on the requested amount at all
		observed = num.UintZero()
	}

	if observed.LT(amount) {
		short := num.UintZero().Sub(amount, observed)
		if short.GTUint64(e.DeltaTolerance) {
			e.log.Error("market balance delta out of tolerance",
				logging.String("operation", op.String()),
				logging.AssetID(asset),
				logging.BigUint("requested", amount),
				logging.BigUint("observed", observed),
			)
			return &types.MarketIntegrityError{
				Op:        op,
				Asset:     asset,
				Requested: amount.Clone(),
				Observed:  observed,
			}
		}
	}
	return nil
}
