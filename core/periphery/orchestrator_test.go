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

package periphery_test

import (
	"context"
	"testing"
	"time"

	bmocks "code.vegaprotocol.io/loopvault/core/broker/mocks"
	"code.vegaprotocol.io/loopvault/core/marketsim"
	"code.vegaprotocol.io/loopvault/core/periphery"
	"code.vegaprotocol.io/loopvault/core/periphery/mocks"
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
	orchAccount     = "periphery"
	ammAccount      = "amm"
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

type testOrchestrator struct {
	*periphery.Engine
	ctrl       *gomock.Controller
	broker     *bmocks.MockBroker
	accounting *vault.Engine
	ledger     *marketsim.Ledger
	lender     *marketsim.FlashLender
	amm        *marketsim.AMM
	market     *marketsim.Market
}

func getTestOrchestrator(t *testing.T, simConf marketsim.Config) *testOrchestrator {
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
	market := marketsim.NewMarket(log, simConf, clock, oracle)
	ledger := marketsim.NewLedger()
	lender := marketsim.NewFlashLender(log, simConf, ledger)
	amm := marketsim.NewAMM(log, simConf, ledger, ammAccount, collateralAsset, debtAsset)
	// reserves priced like the oracle, 1 collateral for 2 debt
	amm.Fund(num.NewUint(1000000), num.NewUint(2000000))

	acc, err := vault.New(log, vault.NewDefaultConfig(), testVault(), market, oracle, clock, broker)
	require.NoError(t, err)
	eng := periphery.New(log, periphery.NewDefaultConfig(), orchAccount, acc, ledger, lender, amm, broker)
	return &testOrchestrator{
		Engine:     eng,
		ctrl:       ctrl,
		broker:     broker,
		accounting: acc,
		ledger:     ledger,
		lender:     lender,
		amm:        amm,
		market:     market,
	}
}

func cleanSimConf() marketsim.Config {
	conf := marketsim.NewDefaultConfig()
	conf.BorrowRateBps = 0
	conf.SwapFeeBps = 0
	conf.FlashFeeBps = 0
	return conf
}

func depositOrder() periphery.DepositOrder {
	return periphery.DepositOrder{
		Party:              "party-1",
		CollateralAmount:   num.NewUint(10000),
		FlashAmount:        num.NewUint(40000),
		CollateralFromSwap: num.NewUint(19600),
		MaxSwapIn:          num.NewUint(40000),
		DebtToBorrow:       num.NewUint(40000),
	}
}

func TestDepositWithLeverage(t *testing.T) {
	to := getTestOrchestrator(t, cleanSimConf())
	defer to.ctrl.Finish()
	ctx := context.Background()
	to.ledger.Credit("party-1", collateralAsset, num.NewUint(10000))

	// the swap costs 39984 of the 40000 flash borrowed debt, the spare 16
	// plus the 40000 vault borrow repay the loan with 16 left over, which
	// has to land in the depositor's shares
	shares, err := to.DepositWithLeverage(ctx, depositOrder())
	require.NoError(t, err)
	assert.True(t, shares.EQ(num.NewUint(19216)), "got %s", shares.String())
	assert.True(t, to.accounting.ShareBalance("party-1").EQ(num.NewUint(19216)))

	nav, err := to.accounting.TotalAssets(ctx)
	require.NoError(t, err)
	assert.True(t, nav.EQ(num.NewUint(19216)), "got %s", nav.String())

	// nothing sticks to the orchestrator account
	assert.True(t, to.ledger.BalanceOf(orchAccount, collateralAsset).IsZero())
	assert.True(t, to.ledger.BalanceOf(orchAccount, debtAsset).IsZero())
	assert.True(t, to.ledger.BalanceOf("party-1", collateralAsset).IsZero())

	lev, err := to.accounting.CurrentLeverageBps(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(30807), lev)
}

func TestDepositWithLeverageFlashFee(t *testing.T) {
	conf := cleanSimConf()
	conf.FlashFeeBps = 10
	to := getTestOrchestrator(t, conf)
	defer to.ctrl.Finish()
	ctx := context.Background()
	to.ledger.Credit("party-1", collateralAsset, num.NewUint(10000))

	// fee on 40000 is 40, the vault borrow has to cover it, eating the
	// whole swap change
	order := depositOrder()
	order.DebtToBorrow = num.NewUint(40024)
	shares, err := to.DepositWithLeverage(ctx, order)
	require.NoError(t, err)
	assert.True(t, shares.EQ(num.NewUint(19176)), "got %s", shares.String())
	assert.True(t, to.ledger.BalanceOf(orchAccount, debtAsset).IsZero())
}

func TestDepositWithLeverageShortfallAborts(t *testing.T) {
	to := getTestOrchestrator(t, cleanSimConf())
	defer to.ctrl.Finish()
	ctx := context.Background()
	to.ledger.Credit("party-1", collateralAsset, num.NewUint(10000))

	// the vault borrow cannot cover the flash repayment, the whole
	// sequence unwinds without a trace
	order := depositOrder()
	order.DebtToBorrow = num.NewUint(30000)
	_, err := to.DepositWithLeverage(ctx, order)
	assert.ErrorIs(t, err, types.ErrFlashLoanShortfall)

	assert.True(t, to.ledger.BalanceOf("party-1", collateralAsset).EQ(num.NewUint(10000)))
	assert.True(t, to.ledger.BalanceOf(orchAccount, collateralAsset).IsZero())
	assert.True(t, to.ledger.BalanceOf(orchAccount, debtAsset).IsZero())
	assert.True(t, to.accounting.ShareSupply().IsZero())
	cb, err := to.market.CollateralBalance(ctx, collateralAsset)
	require.NoError(t, err)
	assert.True(t, cb.IsZero())
}

func TestDepositWithLeverageSlippageGuard(t *testing.T) {
	to := getTestOrchestrator(t, cleanSimConf())
	defer to.ctrl.Finish()
	ctx := context.Background()
	to.ledger.Credit("party-1", collateralAsset, num.NewUint(10000))

	// the swap would need 39984 in, the guard allows 39000
	order := depositOrder()
	order.MaxSwapIn = num.NewUint(39000)
	_, err := to.DepositWithLeverage(ctx, order)
	assert.ErrorIs(t, err, marketsim.ErrSwapExceedsMaxIn)
	assert.True(t, to.ledger.BalanceOf("party-1", collateralAsset).EQ(num.NewUint(10000)))
}

func TestDepositWithLeverageFeeGuard(t *testing.T) {
	conf := cleanSimConf()
	conf.FlashFeeBps = 200
	to := getTestOrchestrator(t, conf)
	defer to.ctrl.Finish()
	ctx := context.Background()
	to.ledger.Credit("party-1", collateralAsset, num.NewUint(10000))

	// a 2% flash fee is above the configured 1% maximum
	_, err := to.DepositWithLeverage(ctx, depositOrder())
	assert.ErrorIs(t, err, periphery.ErrFlashFeeTooHigh)
}

func TestLyingSwapVenueIsCaughtOnBalances(t *testing.T) {
	to := getTestOrchestrator(t, cleanSimConf())
	defer to.ctrl.Finish()
	ctx := context.Background()
	to.ledger.Credit("party-1", collateralAsset, num.NewUint(10000))

	// a venue reporting success without ever settling: the orchestrator
	// checks its own output balance, in the right direction, and rejects
	lying := mocks.NewMockSwapExecutor(to.ctrl)
	lying.EXPECT().SwapExactOutput(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(num.NewUint(1), nil)
	eng := periphery.New(logging.NewTestLogger(), periphery.NewDefaultConfig(), orchAccount,
		to.accounting, to.ledger, to.lender, lying, to.broker)

	_, err := eng.DepositWithLeverage(ctx, depositOrder())
	var serr *types.SwapError
	require.ErrorAs(t, err, &serr)
	assert.True(t, serr.Received.IsZero())
	assert.True(t, serr.DesiredOut.EQ(num.NewUint(19600)))
	assert.True(t, to.ledger.BalanceOf("party-1", collateralAsset).EQ(num.NewUint(10000)))
}

func TestRedeemWithLeverage(t *testing.T) {
	to := getTestOrchestrator(t, cleanSimConf())
	defer to.ctrl.Finish()
	ctx := context.Background()
	to.ledger.Credit("party-1", collateralAsset, num.NewUint(10000))

	shares, err := to.DepositWithLeverage(ctx, depositOrder())
	require.NoError(t, err)

	// full exit: the flash loan clears the 39984 debt, 19601 of the
	// 29600 released collateral buys the repayment back, the rest pays out
	payout, err := to.RedeemWithLeverage(ctx, periphery.RedeemOrder{
		Party:       "party-1",
		Shares:      shares,
		FlashAmount: num.NewUint(40000),
		MaxSwapIn:   num.NewUint(25000),
	})
	require.NoError(t, err)
	assert.True(t, payout.EQ(num.NewUint(9999)), "got %s", payout.String())
	assert.True(t, to.ledger.BalanceOf("party-1", collateralAsset).EQ(num.NewUint(9999)))

	assert.True(t, to.accounting.ShareSupply().IsZero())
	db, err := to.market.DebtBalance(ctx, debtAsset)
	require.NoError(t, err)
	assert.True(t, db.IsZero())
	assert.True(t, to.ledger.BalanceOf(orchAccount, collateralAsset).IsZero())
	assert.True(t, to.ledger.BalanceOf(orchAccount, debtAsset).IsZero())
}

func TestRedeemWithLeverageFlashTooSmall(t *testing.T) {
	to := getTestOrchestrator(t, cleanSimConf())
	defer to.ctrl.Finish()
	ctx := context.Background()
	to.ledger.Credit("party-1", collateralAsset, num.NewUint(10000))

	shares, err := to.DepositWithLeverage(ctx, depositOrder())
	require.NoError(t, err)

	// the loan cannot cover the 39984 debt the redemption repays
	_, err = to.RedeemWithLeverage(ctx, periphery.RedeemOrder{
		Party:       "party-1",
		Shares:      shares,
		FlashAmount: num.NewUint(30000),
		MaxSwapIn:   num.NewUint(25000),
	})
	assert.ErrorIs(t, err, types.ErrFlashLoanShortfall)

	// the failed exit left the position and the shares untouched
	assert.True(t, to.accounting.ShareBalance("party-1").EQ(shares))
	nav, err := to.accounting.TotalAssets(ctx)
	require.NoError(t, err)
	assert.True(t, nav.EQ(num.NewUint(19216)))
}

func TestOrderValidation(t *testing.T) {
	to := getTestOrchestrator(t, cleanSimConf())
	defer to.ctrl.Finish()
	ctx := context.Background()

	_, err := to.DepositWithLeverage(ctx, periphery.DepositOrder{})
	assert.ErrorIs(t, err, periphery.ErrEmptyParty)

	order := depositOrder()
	order.FlashAmount = num.UintZero()
	_, err = to.DepositWithLeverage(ctx, order)
	assert.ErrorIs(t, err, types.ErrZeroAmount)

	_, err = to.RedeemWithLeverage(ctx, periphery.RedeemOrder{Party: "party-1"})
	assert.ErrorIs(t, err, types.ErrZeroAmount)
}
