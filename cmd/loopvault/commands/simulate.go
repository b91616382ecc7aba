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

package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"code.vegaprotocol.io/loopvault/config"
	"code.vegaprotocol.io/loopvault/core/broker"
	"code.vegaprotocol.io/loopvault/core/events"
	"code.vegaprotocol.io/loopvault/core/leverage"
	"code.vegaprotocol.io/loopvault/core/marketsim"
	"code.vegaprotocol.io/loopvault/core/metrics"
	"code.vegaprotocol.io/loopvault/core/periphery"
	"code.vegaprotocol.io/loopvault/core/rebalance"
	"code.vegaprotocol.io/loopvault/core/types"
	"code.vegaprotocol.io/loopvault/core/vault"
	vgjson "code.vegaprotocol.io/loopvault/libs/json"
	"code.vegaprotocol.io/loopvault/libs/num"
	"code.vegaprotocol.io/loopvault/logging"
	"code.vegaprotocol.io/loopvault/paths"

	"github.com/jessevdk/go-flags"
)

const (
	simCollateralAsset = "wstETH"
	simDebtAsset       = "WETH"

	simDepositor = "depositor-1"
	simKeeper    = "keeper-1"
	simRouter    = "router-1"
	simPool      = "amm-pool"
)

type SimulateCmd struct {
	ctx context.Context

	config.HomeFlag
	config.OutputFlag

	Steps    uint64 `default:"30" description:"Number of day long steps to run" long:"steps"`
	DriftBps uint64 `default:"100" description:"Per step collateral price drift, in basis points" long:"drift-bps"`
}

var simulateCmd SimulateCmd

type stepResult struct {
	Day         uint64 `json:"day"`
	LeverageBps uint64 `json:"leverageBps"`
	NAV         string `json:"nav"`
	Action      string `json:"action"`
}

type simulationResult struct {
	SharesMinted string       `json:"sharesMinted"`
	Steps        []stepResult `json:"steps"`
	FinalPayout  string       `json:"finalPayout"`
	DebtDust     string       `json:"debtDust"`
}

// eventLogger traces every event coming out of the engines.
type eventLogger struct {
	log *logging.Logger
	id  int
}

func (s *eventLogger) Push(evts ...events.Event) {
	for _, e := range evts {
		s.log.Debug("event",
			logging.String("type", e.Type().String()),
			logging.String("trace-id", e.TraceID()),
		)
	}
}

func (s *eventLogger) Skip() <-chan struct{}    { return nil }
func (s *eventLogger) Closed() <-chan struct{}  { return nil }
func (s *eventLogger) C() chan<- []events.Event { return nil }
func (s *eventLogger) Types() []events.Type     { return nil }
func (s *eventLogger) SetID(id int)             { s.id = id }
func (s *eventLogger) ID() int                  { return s.id }
func (s *eventLogger) Ack() bool                { return true }

func (cmd *SimulateCmd) Execute(_ []string) error {
	output, err := cmd.OutputFlag.GetOutput()
	if err != nil {
		return err
	}

	loopvaultPaths := paths.New(cmd.Home)

	_, cfg, err := config.EnsureNodeConfig(loopvaultPaths)
	if err != nil {
		return err
	}

	log := logging.NewLoggerFromConfig(cfg.Logging)
	defer log.AtExit()

	if cfg.Metrics.Enabled {
		metrics.Start(cfg.Metrics)
	}

	ctx, cancel := context.WithCancel(cmd.ctx)
	defer cancel()

	confWatcher, err := config.NewWatcher(ctx, log, loopvaultPaths)
	if err != nil {
		return fmt.Errorf("couldn't start the configuration watcher: %w", err)
	}

	result, err := cmd.run(ctx, log, cfg, confWatcher)
	if err != nil {
		return err
	}

	if output.IsJSON() {
		return vgjson.Print(result)
	}

	log.Info("simulation finished",
		logging.String("shares-minted", result.SharesMinted),
		logging.String("final-payout", result.FinalPayout),
		logging.String("debt-dust", result.DebtDust),
	)
	return nil
}

func (cmd *SimulateCmd) run(ctx context.Context, log *logging.Logger, cfg *config.Config, confWatcher *config.Watcher) (*simulationResult, error) {
	// a fixed start keeps interest accrual and the whole run reproducible
	clock := marketsim.NewClock(time.Unix(1600000000, 0))

	oracle := marketsim.NewOracle(clock)
	oracle.SetPrice(simCollateralAsset, num.MustUintFromString("2000000000000000000"))
	oracle.SetPrice(simDebtAsset, num.MustUintFromString("1000000000000000000"))

	market := marketsim.NewMarket(log, cfg.MarketSim, clock, oracle)
	ledger := marketsim.NewLedger()
	flash := marketsim.NewFlashLender(log, cfg.MarketSim, ledger)
	amm := marketsim.NewAMM(log, cfg.MarketSim, ledger, simPool, simCollateralAsset, simDebtAsset)
	amm.Fund(num.NewUint(1000000), num.NewUint(2000000))

	eventBus := broker.New(ctx, log, cfg.Broker)
	eventBus.Subscribe(&eventLogger{log: log.Named("events")})

	vlt := &types.Vault{
		ID:              "vault-1",
		Owner:           "owner-1",
		CollateralAsset: simCollateralAsset,
		DebtAsset:       simDebtAsset,
		Parameters: types.LeverageParameters{
			TargetLeverageBps: 30000,
			LowerBoundBps:     25000,
			UpperBoundBps:     35000,
			MaxSubsidyBps:     50,
			MaxSubsidyValue:   num.NewUint(1000000),
		},
	}

	accounting, err := vault.New(log, cfg.Vault, vlt, market, oracle, clock, eventBus)
	if err != nil {
		return nil, fmt.Errorf("couldn't create the vault engine: %w", err)
	}
	rebalancer := rebalance.New(log, cfg.Rebalance, accounting, eventBus)
	router := periphery.New(log, cfg.Periphery, simRouter, accounting, ledger, flash, amm, eventBus)

	confWatcher.OnConfigUpdate(func(c config.Config) {
		accounting.ReloadConf(c.Vault)
		rebalancer.ReloadConf(c.Rebalance)
		router.ReloadConf(c.Periphery)
	})

	// the depositor brings collateral and one flash assisted deposit opens
	// the leveraged position
	depositCollateral := num.NewUint(10000)
	flashAmount := num.NewUint(40000)
	ledger.Credit(simDepositor, simCollateralAsset, depositCollateral.Clone())

	collateralFromSwap, maxIn, err := cmd.sizeSwap(ctx, accounting, flashAmount)
	if err != nil {
		return nil, err
	}
	debtToBorrow := num.UintZero().Add(flashAmount, flash.Fee(flashAmount))

	shares, err := router.DepositWithLeverage(ctx, periphery.DepositOrder{
		Party:              simDepositor,
		CollateralAmount:   depositCollateral,
		FlashAmount:        flashAmount,
		CollateralFromSwap: collateralFromSwap,
		MaxSwapIn:          maxIn,
		DebtToBorrow:       debtToBorrow,
	})
	if err != nil {
		return nil, fmt.Errorf("leveraged deposit failed: %w", err)
	}

	result := &simulationResult{
		SharesMinted: shares.String(),
		Steps:        make([]stepResult, 0, cmd.Steps),
	}

	for day := uint64(1); day <= cmd.Steps; day++ {
		now := clock.AdvanceTime(24 * time.Hour)
		confWatcher.OnTimeUpdate(ctx, now)
		cmd.driftPrice(oracle, day)

		action, err := cmd.rebalanceIfNeeded(ctx, log, vlt, accounting, rebalancer)
		if err != nil {
			return nil, err
		}

		lev, err := accounting.CurrentLeverageBps(ctx)
		if err != nil {
			return nil, err
		}
		nav, err := accounting.TotalAssets(ctx)
		if err != nil {
			return nil, err
		}
		metrics.NAVGaugeSet(vlt.ID, nav.Float64())

		result.Steps = append(result.Steps, stepResult{
			Day:         day,
			LeverageBps: lev,
			NAV:         nav.String(),
			Action:      action,
		})
	}

	payout, dust, err := cmd.unwind(ctx, accounting, market, flash, ledger, router, shares)
	if err != nil {
		return nil, err
	}
	result.FinalPayout = payout.String()
	result.DebtDust = dust.String()

	return result, nil
}

// sizeSwap requests 97 percent of the flash loan's value in collateral
// units, the slack absorbs the venue fee and the constant product slippage.
func (cmd *SimulateCmd) sizeSwap(ctx context.Context, accounting *vault.Engine, flashAmount *num.Uint) (*num.Uint, *num.Uint, error) {
	cp, dp, err := accounting.AssetPrices(ctx)
	if err != nil {
		return nil, nil, err
	}
	flashValue, err := leverage.ValueOfUnits(flashAmount, dp)
	if err != nil {
		return nil, nil, err
	}
	trimmed := num.UintZero().Mul(flashValue, num.NewUint(9700))
	trimmed.Div(trimmed, num.NewUint(10000))
	desiredOut, err := leverage.UnitsForValueFloor(trimmed, cp)
	if err != nil {
		return nil, nil, err
	}
	return desiredOut, flashAmount.Clone(), nil
}

// driftPrice walks the collateral price down for the first half of the run
// and back up for the second half, so leverage crosses both bounds.
func (cmd *SimulateCmd) driftPrice(oracle *marketsim.Oracle, day uint64) {
	ctx := context.Background()
	cur, _, err := oracle.Price(ctx, simCollateralAsset)
	if err != nil {
		return
	}
	next := num.UintZero()
	if day <= cmd.Steps/2 {
		next.Mul(cur, num.NewUint(10000-cmd.DriftBps))
	} else {
		next.Mul(cur, num.NewUint(10000+cmd.DriftBps))
	}
	next.Div(next, num.NewUint(10000))
	oracle.SetPrice(simCollateralAsset, next)
}

func (cmd *SimulateCmd) rebalanceIfNeeded(ctx context.Context, log *logging.Logger, vlt *types.Vault, accounting *vault.Engine, rebalancer *rebalance.Engine) (string, error) {
	lev, err := accounting.CurrentLeverageBps(ctx)
	if err != nil {
		return "", err
	}
	params := vlt.Parameters

	switch {
	case lev > params.UpperBoundBps:
		_, subsidy, err := rebalancer.DecreaseLeverage(ctx, simKeeper, num.UintZero(), 0)
		if err != nil {
			if errors.Is(err, rebalance.ErrAlreadyAtOrBelowTarget) {
				return "hold", nil
			}
			return "", fmt.Errorf("decrease leverage failed: %w", err)
		}
		log.Info("deleveraged back to target",
			logging.Uint64("from-bps", lev),
			logging.BigUint("subsidy", subsidy),
		)
		return "decrease", nil
	case lev < params.LowerBoundBps:
		extra, err := cmd.keeperCollateral(ctx, accounting)
		if err != nil {
			return "", err
		}
		_, subsidy, err := rebalancer.IncreaseLeverage(ctx, simKeeper, extra, 0)
		if err != nil {
			if errors.Is(err, rebalance.ErrAlreadyAtOrAboveTarget) {
				return "hold", nil
			}
			return "", fmt.Errorf("increase leverage failed: %w", err)
		}
		log.Info("releveraged towards target",
			logging.Uint64("from-bps", lev),
			logging.BigUint("subsidy", subsidy),
		)
		return "increase", nil
	default:
		return "hold", nil
	}
}

// keeperCollateral sizes the keeper's contribution at 2 percent of the
// position's collateral value, small moves converge on the target over a
// few steps without ever overshooting it.
func (cmd *SimulateCmd) keeperCollateral(ctx context.Context, accounting *vault.Engine) (*num.Uint, error) {
	cv, _, err := accounting.Valuations(ctx)
	if err != nil {
		return nil, err
	}
	cp, _, err := accounting.AssetPrices(ctx)
	if err != nil {
		return nil, err
	}
	slice := num.UintZero().Div(cv, num.NewUint(50))
	units, err := leverage.UnitsForValueCeil(slice, cp)
	if err != nil {
		return nil, err
	}
	if units.IsZero() {
		units = num.UintOne()
	}
	return units, nil
}

// unwind burns every share through a flash assisted redeem, the loan has to
// cover the position's entire debt.
func (cmd *SimulateCmd) unwind(ctx context.Context, accounting *vault.Engine, market *marketsim.Market, flash *marketsim.FlashLender, ledger *marketsim.Ledger, router *periphery.Engine, shares *num.Uint) (*num.Uint, *num.Uint, error) {
	vlt := accounting.Vault()

	debtUnits, err := market.DebtBalance(ctx, vlt.DebtAsset)
	if err != nil {
		return nil, nil, err
	}
	// one extra unit covers the repay side rounding up
	flashAmount := num.UintZero().Add(debtUnits, num.UintOne())
	collateral, err := market.CollateralBalance(ctx, vlt.CollateralAsset)
	if err != nil {
		return nil, nil, err
	}

	payout, err := router.RedeemWithLeverage(ctx, periphery.RedeemOrder{
		Party:       simDepositor,
		Shares:      shares,
		FlashAmount: flashAmount,
		MaxSwapIn:   collateral,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("leveraged redeem failed: %w", err)
	}

	dust := ledger.BalanceOf(simDepositor, vlt.DebtAsset)
	return payout, dust, nil
}

func Simulate(ctx context.Context, parser *flags.Parser) error {
	simulateCmd = SimulateCmd{
		ctx: ctx,
	}

	_, err := parser.AddCommand("simulate", "Run a deterministic vault simulation", "Run the vault, rebalancing and periphery engines against the simulated venues for a number of day long steps", &simulateCmd)
	return err
}
