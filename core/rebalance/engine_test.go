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

package rebalance_test

import (
	"context"
	"testing"
	"time"

	bmocks "code.vegaprotocol.io/loopvault/core/broker/mocks"
	"code.vegaprotocol.io/loopvault/core/marketsim"
	"code.vegaprotocol.io/loopvault/core/rebalance"
	"code.vegaprotocol.io/loopvault/core/rebalance/mocks"
	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/core/vault"
	"code.vegaprotocol.io/loopvault/libs/num"
	"code.vegaprotocol.io/loopvault/logging"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	collateralAsset = "wstETH"
	debtAsset       = "WETH"
)

func testVault() *types.Vault {
	return &types.Vault{
		ID:              "vault-1",
		Owner:           "owner-1",
		CollateralAsset: collateralAsset,
		DebtAsset:       debtAsset,
		Parameters: types.LeverageParameters{
			TargetLeverageBps: 30000,
			LowerBoundBps:     15000,
			UpperBoundBps:     35000,
			MaxSubsidyBps:     50,
			MaxSubsidyValue:   num.NewUint(1000000),
		},
	}
}

type testEngine struct {
	*rebalance.Engine
	ctrl       *gomock.Controller
	broker     *bmocks.MockBroker
	accounting *vault.Engine
	market     *marketsim.Market
	oracle     *marketsim.Oracle
	clock      *marketsim.Clock
}

func getTestEngine(t *testing.T, v *types.Vault) *testEngine {
	t.Helper()
	ctrl := gomock.NewController(t)
	broker := bmocks.NewMockBroker(ctrl)
	broker.EXPECT().Send(gomock.Any()).AnyTimes()
	log := logging.NewTestLogger()
	clock := marketsim.NewClock(time.Unix(1600000000, 0))
	oracle := marketsim.NewOracle(clock)
	// the debt asset is the unit of account, collateral trades at 2
	oracle.SetPrice(collateralAsset, num.MustUintFromString("2000000000000000000"))
	oracle.SetPrice(debtAsset, num.MustUintFromString("1000000000000000000"))
	conf := marketsim.NewDefaultConfig()
	conf.BorrowRateBps = 0
	market := marketsim.NewMarket(log, conf, clock, oracle)

	acc, err := vault.New(log, vault.NewDefaultConfig(), v, market, oracle, clock, broker)
	require.NoError(t, err)
	eng := rebalance.New(log, rebalance.NewDefaultConfig(), acc, broker)
	return &testEngine{
		Engine:     eng,
		ctrl:       ctrl,
		broker:     broker,
		accounting: acc,
		market:     market,
		oracle:     oracle,
		clock:      clock,
	}
}

// seed puts the vault position at 2x leverage: 100000 collateral units at
// price 2 against 100000 borrowed debt units at price 1.
func seed(t *testing.T, te *testEngine) {
	t.Helper()
	_, err := te.accounting.Deposit(context.Background(), "depositor-1", num.NewUint(100000), num.NewUint(100000))
	require.NoError(t, err)
	lev, err := te.accounting.CurrentLeverageBps(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(20000), lev)
}

func TestIncreaseLeverageMovesTowardTarget(t *testing.T) {
	te := getTestEngine(t, testVault())
	defer te.ctrl.Finish()
	ctx := context.Background()
	seed(t, te)

	// 5000 collateral units are worth 10000, the subsidy at a 10000 bps
	// deviation from a 30000 target is 16 bps of that
	debtOut, subsidy, err := te.IncreaseLeverage(ctx, "keeper-1", num.NewUint(5000), 0)
	require.NoError(t, err)
	assert.True(t, debtOut.EQ(num.NewUint(10016)), "got %s", debtOut.String())
	assert.True(t, subsidy.EQ(num.NewUint(16)), "got %s", subsidy.String())

	lev, err := te.accounting.CurrentLeverageBps(ctx)
	require.NoError(t, err)
	assert.Greater(t, lev, uint64(20000))
	assert.LessOrEqual(t, lev, uint64(30000))

	// no shares were minted or burned by the rebalance
	assert.True(t, te.accounting.ShareSupply().EQ(num.NewUint(100000)))
}

func TestIncreaseLeverageNeverOvershootsTarget(t *testing.T) {
	te := getTestEngine(t, testVault())
	defer te.ctrl.Finish()
	ctx := context.Background()
	seed(t, te)

	// 100000 collateral value would allow exactly reaching target, the
	// borrow cap swallows the subsidy and the vault lands on 30000 sharp
	debtOut, subsidy, err := te.IncreaseLeverage(ctx, "keeper-1", num.NewUint(50000), 0)
	require.NoError(t, err)
	assert.True(t, debtOut.EQ(num.NewUint(100000)), "got %s", debtOut.String())
	assert.True(t, subsidy.IsZero())

	lev, err := te.accounting.CurrentLeverageBps(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(30000), lev)

	// a second increase has nothing left to do
	_, _, err = te.IncreaseLeverage(ctx, "keeper-1", num.NewUint(1000), 0)
	assert.ErrorIs(t, err, rebalance.ErrAlreadyAtOrAboveTarget)
}

func TestIncreaseLeverageMinGainNotReached(t *testing.T) {
	te := getTestEngine(t, testVault())
	defer te.ctrl.Finish()
	ctx := context.Background()
	seed(t, te)

	levBefore, err := te.accounting.CurrentLeverageBps(ctx)
	require.NoError(t, err)
	cvBefore, dvBefore, err := te.accounting.Valuations(ctx)
	require.NoError(t, err)

	// a tiny top-up cannot move leverage by 5000 bps
	_, _, err = te.IncreaseLeverage(ctx, "keeper-1", num.NewUint(100), 5000)
	var berr *types.BoundsError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, types.BoundsKindMinMove, berr.Kind)

	// the failed attempt left no trace on the position
	lev, err := te.accounting.CurrentLeverageBps(ctx)
	require.NoError(t, err)
	assert.Equal(t, levBefore, lev)
	cv, dv, err := te.accounting.Valuations(ctx)
	require.NoError(t, err)
	assert.True(t, cv.EQ(cvBefore))
	assert.True(t, dv.EQ(dvBefore))
}

func TestIncreaseLeverageRejectsActualOvershoot(t *testing.T) {
	// prediction and execution succeed, but the actual leverage read back
	// from the market overshot the target, interest accrued mid-flight.
	// The whole operation has to unwind.
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	broker := bmocks.NewMockBroker(ctrl)
	acc := mocks.NewMockAccounting(ctrl)
	eng := rebalance.New(logging.NewTestLogger(), rebalance.NewDefaultConfig(), acc, broker)
	ctx := context.Background()

	v := testVault()
	acc.EXPECT().Vault().Times(2).Return(v)
	acc.EXPECT().ShareSupply().Return(num.NewUint(100000))
	acc.EXPECT().SnapshotState().Return(uint64(7))
	acc.EXPECT().Valuations(gomock.Any()).Return(num.NewUint(200000), num.NewUint(100000), nil)
	acc.EXPECT().AssetPrices(gomock.Any()).Return(
		num.MustUintFromString("2000000000000000000"),
		num.MustUintFromString("1000000000000000000"), nil)
	acc.EXPECT().SupplyVerified(gomock.Any(), gomock.Any()).Return(nil)
	acc.EXPECT().BorrowVerified(gomock.Any(), gomock.Any()).Return(nil)
	acc.EXPECT().CurrentLeverageBps(gomock.Any()).Return(uint64(30303), nil)
	acc.EXPECT().RevertState(uint64(7))

	_, _, err := eng.IncreaseLeverage(ctx, "keeper-1", num.NewUint(50000), 0)
	var berr *types.BoundsError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, types.BoundsKindIncreaseWindow, berr.Kind)
	assert.Equal(t, uint64(30303), berr.NewBps)
	assert.Equal(t, uint64(30000), berr.TargetBps)
}

func overLeveredVault() *types.Vault {
	v := testVault()
	v.Parameters.TargetLeverageBps = 20000
	v.Parameters.UpperBoundBps = 30000
	return v
}

// seedHigh puts the vault position at 2.5x: 100000 collateral units at
// price 2 against 120000 borrowed debt units at price 1.
func seedHigh(t *testing.T, te *testEngine) {
	t.Helper()
	_, err := te.accounting.Deposit(context.Background(), "depositor-1", num.NewUint(100000), num.NewUint(120000))
	require.NoError(t, err)
	lev, err := te.accounting.CurrentLeverageBps(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(25000), lev)
}

func TestDecreaseLeverageMovesTowardTarget(t *testing.T) {
	te := getTestEngine(t, overLeveredVault())
	defer te.ctrl.Finish()
	ctx := context.Background()
	seedHigh(t, te)

	collateralOut, subsidy, err := te.DecreaseLeverage(ctx, "keeper-1", nil, 0)
	require.NoError(t, err)
	// the calculator asks for a 40048 repay, the subsidy on it is 12 bps,
	// the caller walks away with collateral worth repay plus subsidy
	assert.True(t, collateralOut.EQ(num.NewUint(20048)), "got %s", collateralOut.String())
	assert.True(t, subsidy.EQ(num.NewUint(48)), "got %s", subsidy.String())

	lev, err := te.accounting.CurrentLeverageBps(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, lev, uint64(20000))
	assert.Less(t, lev, uint64(25000))
	assert.True(t, te.accounting.ShareSupply().EQ(num.NewUint(80000)))
}

func TestDecreaseLeverageAlreadyAtTarget(t *testing.T) {
	te := getTestEngine(t, testVault())
	defer te.ctrl.Finish()
	ctx := context.Background()
	seed(t, te)

	// leverage sits at 20000, target is 30000, there is nothing to unwind
	_, _, err := te.DecreaseLeverage(ctx, "keeper-1", nil, 0)
	assert.ErrorIs(t, err, rebalance.ErrAlreadyAtOrBelowTarget)
}

func TestDonationsDoNotInflateRequirements(t *testing.T) {
	te := getTestEngine(t, overLeveredVault())
	defer te.ctrl.Finish()
	ctx := context.Background()
	seedHigh(t, te)

	// a griefer dumps unsolicited tokens on the vault before the call
	require.NoError(t, te.accounting.CreditHoldings(debtAsset, num.NewUint(1000000000)))
	require.NoError(t, te.accounting.CreditHoldings(collateralAsset, num.NewUint(1000000000)))

	collateralOut, _, err := te.DecreaseLeverage(ctx, "keeper-1", nil, 0)
	require.NoError(t, err)
	// the required amounts come from the calculator alone, the donation
	// changed nothing
	assert.True(t, collateralOut.EQ(num.NewUint(20048)), "got %s", collateralOut.String())

	lev, err := te.accounting.CurrentLeverageBps(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, lev, uint64(20000))
}

func TestCallerOfferNeverShrinksRequirement(t *testing.T) {
	te := getTestEngine(t, overLeveredVault())
	defer te.ctrl.Finish()
	ctx := context.Background()
	seedHigh(t, te)

	// offering more than the calculator asks repays more, which undershoots
	// the target and reverts, the window check binds on the actual state
	_, _, err := te.DecreaseLeverage(ctx, "keeper-1", num.NewUint(110000), 0)
	var berr *types.BoundsError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, types.BoundsKindDecreaseWindow, berr.Kind)

	// offering less than required does not shrink the requirement, the
	// calculator's 40048 repay still happens in full
	collateralOut, _, err := te.DecreaseLeverage(ctx, "keeper-1", num.NewUint(1000), 0)
	require.NoError(t, err)
	assert.True(t, collateralOut.EQ(num.NewUint(20048)), "got %s", collateralOut.String())
	lev, err := te.accounting.CurrentLeverageBps(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(20000), lev)
}

func TestSubsidyAbsoluteCap(t *testing.T) {
	v := overLeveredVault()
	v.Parameters.MaxSubsidyValue = num.NewUint(10)
	te := getTestEngine(t, v)
	defer te.ctrl.Finish()
	ctx := context.Background()
	seedHigh(t, te)

	// the bps subsidy on a 40048 move would be 48, the absolute cap wins:
	// however large the vault is made, 10 is all a rebalancer can extract
	_, subsidy, err := te.DecreaseLeverage(ctx, "keeper-1", nil, 0)
	require.NoError(t, err)
	assert.True(t, subsidy.EQ(num.NewUint(10)), "got %s", subsidy.String())
}

func TestDecreaseThenFullRedeemLeavesNoDust(t *testing.T) {
	te := getTestEngine(t, overLeveredVault())
	defer te.ctrl.Finish()
	ctx := context.Background()
	seedHigh(t, te)

	sharesB, err := te.accounting.Deposit(ctx, "depositor-2", num.NewUint(50000), num.NewUint(60000))
	require.NoError(t, err)

	_, _, err = te.DecreaseLeverage(ctx, "keeper-1", nil, 0)
	require.NoError(t, err)

	// both depositors exit completely, the rounding of the rebalance must
	// not strand debt the last one out cannot clear
	_, _, err = te.accounting.Redeem(ctx, "depositor-1", te.accounting.ShareBalance("depositor-1"))
	require.NoError(t, err)
	_, _, err = te.accounting.Redeem(ctx, "depositor-2", sharesB)
	require.NoError(t, err)

	debt, err := te.market.DebtBalance(ctx, debtAsset)
	require.NoError(t, err)
	assert.True(t, debt.LTE(num.NewUint(1)), "residual debt %s", debt.String())
}

func TestZeroAmountAndEmptyParty(t *testing.T) {
	te := getTestEngine(t, testVault())
	defer te.ctrl.Finish()
	ctx := context.Background()
	seed(t, te)

	_, _, err := te.IncreaseLeverage(ctx, "", num.NewUint(100), 0)
	assert.ErrorIs(t, err, rebalance.ErrEmptyParty)
	_, _, err = te.IncreaseLeverage(ctx, "keeper-1", num.UintZero(), 0)
	assert.ErrorIs(t, err, types.ErrZeroAmount)
	_, _, err = te.DecreaseLeverage(ctx, "", nil, 0)
	assert.ErrorIs(t, err, rebalance.ErrEmptyParty)
}
