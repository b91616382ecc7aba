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
	"bytes"
	"context"
	"errors"

	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/libs/num"
	"code.vegaprotocol.io/loopvault/logging"

	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrBadFlashConfirmation = errors.New("flash loan callback returned a bad confirmation token")

	// flashConfirmation must match what the periphery borrower returns,
	// the convention of ERC-3156 style lenders
	flashConfirmation = crypto.Keccak256([]byte("loopvault.FlashBorrower.onFlashLoan"))
)

// FlashLender is a deterministic flash loan provider with unlimited
// liquidity: it mints the loan onto the borrower's account, runs the
// borrower's callback and burns the repayment. A borrower failing to
// confirm or to leave amount plus fee on its account fails the loan, the
// caller is expected to revert whatever the callback did.
type FlashLender struct {
	log    *logging.Logger
	conf   Config
	ledger *Ledger
}

// NewFlashLender returns a lender settling on the given ledger.
func NewFlashLender(log *logging.Logger, conf Config, ledger *Ledger) *FlashLender {
	log = log.Named(namedLogger)
	log.SetLevel(conf.Level.Get())
	return &FlashLender{
		log:    log,
		conf:   conf,
		ledger: ledger,
	}
}

// Fee returns the flash fee charged on the amount, rounded up.
func (f *FlashLender) Fee(amount *num.Uint) *num.Uint {
	fee := num.UintZero().Mul(amount, num.NewUint(f.conf.FlashFeeBps))
	return fee.DivCeil(fee, bpsUnit)
}

// FlashLoan credits the amount to the account, invokes the callback with
// the quoted fee and pulls amount plus fee back when it returns. No partial
// repayment exists, a shortfall fails the whole loan.
func (f *FlashLender) FlashLoan(
	ctx context.Context,
	account, asset string,
	amount *num.Uint,
	data []byte,
	callback func(ctx context.Context, initiator, asset string, amount, fee *num.Uint, data []byte) ([]byte, error),
) error {
	if amount == nil || amount.IsZero() {
		return types.ErrZeroAmount
	}
	fee := f.Fee(amount)

	f.ledger.Credit(account, asset, amount)
	token, err := callback(ctx, account, asset, amount.Clone(), fee.Clone(), data)
	if err != nil {
		return err
	}
	if !bytes.Equal(token, flashConfirmation) {
		return ErrBadFlashConfirmation
	}

	owed := num.UintZero().Add(amount, fee)
	if err := f.ledger.Debit(account, asset, owed); err != nil {
		if f.log.IsDebug() {
			f.log.Debug("flash loan repayment failed",
				logging.AssetID(asset),
				logging.BigUint("owed", owed),
				logging.BigUint("held", f.ledger.BalanceOf(account, asset)),
			)
		}
		return types.ErrFlashLoanShortfall
	}
	return nil
}
