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

package marketsim_test

import (
	"context"
	"testing"
	"time"

	"code.vegaprotocol.io/loopvault/core/marketsim"
	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/libs/num"
	"code.vegaprotocol.io/loopvault/logging"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	collateralAsset = "wstETH"
	debtAsset       = "WETH"
)

type testMarket struct {
	*marketsim.Market
	clock  *marketsim.Clock
	oracle *marketsim.Oracle
}

func getTestMarket(t *testing.T, conf marketsim.Config) *testMarket {
	t.Helper()
	clock := marketsim.NewClock(time.Unix(1600000000, 0))
	oracle := marketsim.NewOracle(clock)
	oracle.SetPrice(collateralAsset, num.MustUintFromString("2000000000000000000"))
	oracle.SetPrice(debtAsset, num.MustUintFromString("1000000000000000000"))
	return &testMarket{
		Market: marketsim.NewMarket(logging.NewTestLogger(), conf, clock, oracle),
		clock:  clock,
		oracle: oracle,
	}
}

func quietConf() marketsim.Config {
	conf := marketsim.NewDefaultConfig()
	conf.DeltaJitter = 0
	conf.SwapFeeBps = 0
	conf.FlashFeeBps = 0
	return conf
}

func TestMarketInterestAccrual(t *testing.T) {
	ctx := context.Background()
	tm := getTestMarket(t, quietConf())

	_, err := tm.Supply(ctx, collateralAsset, num.NewUint(100000))
	require.NoError(t, err)
	delivered, err := tm.Borrow(ctx, debtAsset, num.NewUint(50000))
	require.NoError(t, err)
	assert.True(t, delivered.EQ(num.NewUint(50000)))

	// no time passed, no interest
	debt, err := tm.DebtBalance(ctx, debtAsset)
	require.NoError(t, err)
	assert.True(t, debt.EQ(num.NewUint(50000)))

	// a full year at the default 250 bps accrues 2.5 percent, linear
	tm.clock.AdvanceTime(365 * 24 * time.Hour)
	debt, err = tm.DebtBalance(ctx, debtAsset)
	require.NoError(t, err)
	assert.True(t, debt.EQ(num.NewUint(51250)), debt.String())

	// collateral does not accrue
	coll, err := tm.CollateralBalance(ctx, collateralAsset)
	require.NoError(t, err)
	assert.True(t, coll.EQ(num.NewUint(100000)))
}

func TestMarketInterestCompoundsAcrossReads(t *testing.T) {
	ctx := context.Background()
	tm := getTestMarket(t, quietConf())

	_, err := tm.Supply(ctx, collateralAsset, num.NewUint(100000))
	require.NoError(t, err)
	_, err = tm.Borrow(ctx, debtAsset, num.NewUint(50000))
	require.NoError(t, err)

	// the same 365 days split in two accruals compounds slightly more
	tm.clock.AdvanceTime(180 * 24 * time.Hour)
	_, err = tm.DebtBalance(ctx, debtAsset)
	require.NoError(t, err)
	tm.clock.AdvanceTime(185 * 24 * time.Hour)
	debt, err := tm.DebtBalance(ctx, debtAsset)
	require.NoError(t, err)
	assert.True(t, debt.EQ(num.NewUint(51258)), debt.String())
}

func TestMarketEnforcesLoanToValue(t *testing.T) {
	ctx := context.Background()
	tm := getTestMarket(t, quietConf())

	_, err := tm.Supply(ctx, collateralAsset, num.NewUint(1000))
	require.NoError(t, err)

	// collateral value 2000, the default 9300 bps limit caps debt at 1860
	_, err = tm.Borrow(ctx, debtAsset, num.NewUint(1900))
	require.ErrorIs(t, err, marketsim.ErrPositionUnhealthy)

	// the failed borrow left no debt behind
	debt, err := tm.DebtBalance(ctx, debtAsset)
	require.NoError(t, err)
	assert.True(t, debt.IsZero())

	_, err = tm.Borrow(ctx, debtAsset, num.NewUint(1860))
	require.NoError(t, err)

	// releasing collateral that would breach the limit reverts too
	_, err = tm.WithdrawCollateral(ctx, collateralAsset, num.NewUint(10))
	require.ErrorIs(t, err, marketsim.ErrPositionUnhealthy)
	coll, err := tm.CollateralBalance(ctx, collateralAsset)
	require.NoError(t, err)
	assert.True(t, coll.EQ(num.NewUint(1000)))
}

func TestMarketRepayNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	tm := getTestMarket(t, quietConf())

	_, err := tm.Supply(ctx, collateralAsset, num.NewUint(1000))
	require.NoError(t, err)
	_, err = tm.Borrow(ctx, debtAsset, num.NewUint(500))
	require.NoError(t, err)

	_, err = tm.Repay(ctx, debtAsset, num.NewUint(5000))
	require.NoError(t, err)

	debt, err := tm.DebtBalance(ctx, debtAsset)
	require.NoError(t, err)
	assert.True(t, debt.IsZero())
}

func TestMarketJitterShavesDeltas(t *testing.T) {
	ctx := context.Background()
	conf := quietConf()
	conf.DeltaJitter = 3
	tm := getTestMarket(t, conf)

	credited, err := tm.Supply(ctx, collateralAsset, num.NewUint(1000))
	require.NoError(t, err)

	// the shave is bounded by the configured jitter and the return value
	// reports what actually landed in the position
	assert.True(t, credited.LTE(num.NewUint(1000)))
	assert.True(t, credited.GTE(num.NewUint(997)), credited.String())
	coll, err := tm.CollateralBalance(ctx, collateralAsset)
	require.NoError(t, err)
	assert.True(t, coll.EQ(credited))
}

func TestMarketSnapshotsStack(t *testing.T) {
	ctx := context.Background()
	tm := getTestMarket(t, quietConf())

	_, err := tm.Supply(ctx, collateralAsset, num.NewUint(1000))
	require.NoError(t, err)

	snap1 := tm.Snapshot()
	_, err = tm.Borrow(ctx, debtAsset, num.NewUint(500))
	require.NoError(t, err)
	snap2 := tm.Snapshot()
	_, err = tm.Borrow(ctx, debtAsset, num.NewUint(200))
	require.NoError(t, err)

	// rolling back to the first snapshot discards the second one too
	tm.RevertToSnapshot(snap1)
	debt, err := tm.DebtBalance(ctx, debtAsset)
	require.NoError(t, err)
	assert.True(t, debt.IsZero())
	coll, err := tm.CollateralBalance(ctx, collateralAsset)
	require.NoError(t, err)
	assert.True(t, coll.EQ(num.NewUint(1000)))

	// the second handle is gone, reverting to it is a no-op now
	_, err = tm.Borrow(ctx, debtAsset, num.NewUint(100))
	require.NoError(t, err)
	tm.RevertToSnapshot(snap2)
	debt, err = tm.DebtBalance(ctx, debtAsset)
	require.NoError(t, err)
	assert.True(t, debt.EQ(num.NewUint(100)))
}

func TestLedgerBalances(t *testing.T) {
	ctx := context.Background()
	ledger := marketsim.NewLedger()

	ledger.Credit("party-1", debtAsset, num.NewUint(100))
	assert.True(t, ledger.BalanceOf("party-1", debtAsset).EQ(num.NewUint(100)))

	require.ErrorIs(t, ledger.Debit("party-1", debtAsset, num.NewUint(101)), marketsim.ErrInsufficientBalance)
	require.NoError(t, ledger.Debit("party-1", debtAsset, num.NewUint(40)))
	assert.True(t, ledger.BalanceOf("party-1", debtAsset).EQ(num.NewUint(60)))

	require.ErrorIs(t, ledger.Transfer(ctx, "party-1", "party-2", debtAsset, num.NewUint(61)), marketsim.ErrInsufficientBalance)
	require.NoError(t, ledger.Transfer(ctx, "party-1", "party-2", debtAsset, num.NewUint(60)))
	assert.True(t, ledger.BalanceOf("party-1", debtAsset).IsZero())
	assert.True(t, ledger.BalanceOf("party-2", debtAsset).EQ(num.NewUint(60)))
}

func TestLedgerSnapshotsStack(t *testing.T) {
	ledger := marketsim.NewLedger()
	ledger.Credit("party-1", debtAsset, num.NewUint(100))

	snap1 := ledger.Snapshot()
	ledger.Credit("party-1", debtAsset, num.NewUint(50))
	snap2 := ledger.Snapshot()
	ledger.Credit("party-1", debtAsset, num.NewUint(25))

	ledger.RevertToSnapshot(snap1)
	assert.True(t, ledger.BalanceOf("party-1", debtAsset).EQ(num.NewUint(100)))

	// snap2 went with the revert
	ledger.Credit("party-1", debtAsset, num.NewUint(1))
	ledger.RevertToSnapshot(snap2)
	assert.True(t, ledger.BalanceOf("party-1", debtAsset).EQ(num.NewUint(101)))
}

func TestLedgerDiscardKeepsChanges(t *testing.T) {
	ledger := marketsim.NewLedger()
	ledger.Credit("party-1", debtAsset, num.NewUint(100))

	snap := ledger.Snapshot()
	ledger.Credit("party-1", debtAsset, num.NewUint(50))
	ledger.DiscardSnapshot(snap)

	// discard drops the handle, not the changes
	ledger.RevertToSnapshot(snap)
	assert.True(t, ledger.BalanceOf("party-1", debtAsset).EQ(num.NewUint(150)))
}

func flashConfirmation() []byte {
	return crypto.Keccak256([]byte("loopvault.FlashBorrower.onFlashLoan"))
}

func TestFlashLoanRepaysWithFee(t *testing.T) {
	ctx := context.Background()
	conf := quietConf()
	conf.FlashFeeBps = 10
	ledger := marketsim.NewLedger()
	lender := marketsim.NewFlashLender(logging.NewTestLogger(), conf, ledger)

	assert.True(t, lender.Fee(num.NewUint(40000)).EQ(num.NewUint(40)))

	var seenAmount, seenFee *num.Uint
	err := lender.FlashLoan(ctx, "borrower-1", debtAsset, num.NewUint(40000), nil,
		func(_ context.Context, initiator, asset string, amount, fee *num.Uint, _ []byte) ([]byte, error) {
			seenAmount, seenFee = amount, fee
			assert.Equal(t, "borrower-1", initiator)
			assert.Equal(t, debtAsset, asset)
			// the borrower covers the fee from elsewhere
			ledger.Credit("borrower-1", debtAsset, fee)
			return flashConfirmation(), nil
		})
	require.NoError(t, err)
	assert.True(t, seenAmount.EQ(num.NewUint(40000)))
	assert.True(t, seenFee.EQ(num.NewUint(40)))
	assert.True(t, ledger.BalanceOf("borrower-1", debtAsset).IsZero())
}

func TestFlashLoanRejectsBadConfirmation(t *testing.T) {
	ctx := context.Background()
	ledger := marketsim.NewLedger()
	lender := marketsim.NewFlashLender(logging.NewTestLogger(), quietConf(), ledger)

	err := lender.FlashLoan(ctx, "borrower-1", debtAsset, num.NewUint(100), nil,
		func(_ context.Context, _, _ string, _, _ *num.Uint, _ []byte) ([]byte, error) {
			return []byte("not-the-token"), nil
		})
	require.ErrorIs(t, err, marketsim.ErrBadFlashConfirmation)
}

func TestFlashLoanShortfallFailsTheLoan(t *testing.T) {
	ctx := context.Background()
	ledger := marketsim.NewLedger()
	lender := marketsim.NewFlashLender(logging.NewTestLogger(), quietConf(), ledger)

	err := lender.FlashLoan(ctx, "borrower-1", debtAsset, num.NewUint(100), nil,
		func(_ context.Context, _, _ string, _, _ *num.Uint, _ []byte) ([]byte, error) {
			// the borrower spends part of the loan and cannot repay
			require.NoError(t, ledger.Debit("borrower-1", debtAsset, num.NewUint(1)))
			return flashConfirmation(), nil
		})
	require.ErrorIs(t, err, types.ErrFlashLoanShortfall)
}

func TestFlashLoanCallbackErrorPropagates(t *testing.T) {
	ctx := context.Background()
	ledger := marketsim.NewLedger()
	lender := marketsim.NewFlashLender(logging.NewTestLogger(), quietConf(), ledger)

	wantErr := types.ErrStalePrice
	err := lender.FlashLoan(ctx, "borrower-1", debtAsset, num.NewUint(100), nil,
		func(_ context.Context, _, _ string, _, _ *num.Uint, _ []byte) ([]byte, error) {
			return nil, wantErr
		})
	require.ErrorIs(t, err, wantErr)
}

func fundedAMM(t *testing.T, conf marketsim.Config) (*marketsim.AMM, *marketsim.Ledger) {
	t.Helper()
	ledger := marketsim.NewLedger()
	amm := marketsim.NewAMM(logging.NewTestLogger(), conf, ledger, "amm-pool", collateralAsset, debtAsset)
	amm.Fund(num.NewUint(1000000), num.NewUint(2000000))
	return amm, ledger
}

func TestAMMExactOutputPricing(t *testing.T) {
	ctx := context.Background()
	amm, ledger := fundedAMM(t, quietConf())
	ledger.Credit("trader-1", debtAsset, num.NewUint(50000))

	// constant product, rounded against the trader
	spent, err := amm.SwapExactOutput(ctx, "trader-1", debtAsset, collateralAsset, num.NewUint(19600), num.NewUint(40000), nil)
	require.NoError(t, err)
	assert.True(t, spent.EQ(num.NewUint(39984)), spent.String())
	assert.True(t, ledger.BalanceOf("trader-1", collateralAsset).EQ(num.NewUint(19600)))
	assert.True(t, ledger.BalanceOf("trader-1", debtAsset).EQ(num.NewUint(10016)))
	assert.True(t, ledger.BalanceOf("amm-pool", collateralAsset).EQ(num.NewUint(980400)))
	assert.True(t, ledger.BalanceOf("amm-pool", debtAsset).EQ(num.NewUint(2039984)))
}

func TestAMMFeeGrossesUpInput(t *testing.T) {
	ctx := context.Background()
	conf := quietConf()
	conf.SwapFeeBps = 5
	amm, ledger := fundedAMM(t, conf)
	ledger.Credit("trader-1", debtAsset, num.NewUint(50000))

	// the same trade with a 5 bps input fee breaches a 40000 cap
	_, err := amm.SwapExactOutput(ctx, "trader-1", debtAsset, collateralAsset, num.NewUint(19600), num.NewUint(40000), nil)
	require.ErrorIs(t, err, marketsim.ErrSwapExceedsMaxIn)

	spent, err := amm.SwapExactOutput(ctx, "trader-1", debtAsset, collateralAsset, num.NewUint(19600), nil, nil)
	require.NoError(t, err)
	assert.True(t, spent.EQ(num.NewUint(40005)), spent.String())
}

func TestAMMRejectsBadOrders(t *testing.T) {
	ctx := context.Background()
	amm, ledger := fundedAMM(t, quietConf())
	ledger.Credit("trader-1", debtAsset, num.NewUint(100))

	_, err := amm.SwapExactOutput(ctx, "trader-1", debtAsset, collateralAsset, num.UintZero(), nil, nil)
	require.ErrorIs(t, err, types.ErrZeroAmount)

	_, err = amm.SwapExactOutput(ctx, "trader-1", "DAI", collateralAsset, num.NewUint(10), nil, nil)
	require.ErrorIs(t, err, marketsim.ErrUnknownPair)

	_, err = amm.SwapExactOutput(ctx, "trader-1", debtAsset, collateralAsset, num.NewUint(1000000), nil, nil)
	require.ErrorIs(t, err, marketsim.ErrInsufficientReserves)
}

func TestOracleStampsPrices(t *testing.T) {
	ctx := context.Background()
	clock := marketsim.NewClock(time.Unix(1600000000, 0))
	oracle := marketsim.NewOracle(clock)

	oracle.SetPrice(collateralAsset, num.NewUint(42))
	clock.AdvanceTime(time.Hour)

	price, at, err := oracle.Price(ctx, collateralAsset)
	require.NoError(t, err)
	assert.True(t, price.EQ(num.NewUint(42)))
	assert.Equal(t, time.Unix(1600000000, 0), at)

	_, _, err = oracle.Price(ctx, "DAI")
	require.ErrorIs(t, err, types.ErrUnknownAsset)
}
