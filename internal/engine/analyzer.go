package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"trading-analysis-bot/internal/analysis"
	"trading-analysis-bot/internal/instrument"
	"trading-analysis-bot/internal/market"
	"trading-analysis-bot/internal/risk"
	"trading-analysis-bot/internal/strategy"
)

// Config holds the evaluation constants of the pipeline
type Config struct {
	MinCandles          int     // minimum series length for classification
	ATRPeriod           int     // ATR lookback
	SLMult              float64 // stop distance in ATR multiples
	TPMult              float64 // target distance in ATR multiples
	MinRR               float64 // minimum reward:risk for a valid structure
	MinSLPips           float64 // stop distances below this are untradable
	SpreadRatio         float64 // max spread as a fraction of the stop distance
	StopHuntWindow      int     // candles inspected for liquidity traps
	ConfidenceThreshold float64 // composite score gate
	NewsBufferMinutes   int     // blackout around high-impact events
	FetchLimit          int     // candles requested per evaluation
	HighlightConfidence float64 // dispatch highlight: minimum confidence
	HighlightRR         float64 // dispatch highlight: minimum reward:risk
}

// DefaultConfig returns the canonical constants of the pipeline
func DefaultConfig() Config {
	return Config{
		MinCandles:          60,
		ATRPeriod:           analysis.DefaultATRPeriod,
		SLMult:              risk.DefaultSLMult,
		TPMult:              risk.DefaultTPMult,
		MinRR:               risk.DefaultMinRR,
		MinSLPips:           10,
		SpreadRatio:         0.25,
		StopHuntWindow:      analysis.DefaultStopHuntWindow,
		ConfidenceThreshold: analysis.DefaultConfidenceThreshold,
		NewsBufferMinutes:   analysis.DefaultNewsBufferMinutes,
		FetchLimit:          market.DefaultFetchLimit,
		HighlightConfidence: 80,
		HighlightRR:         2.5,
	}
}

// Dispatcher delivers an allowed decision to the outside world. Called at
// most once per evaluation; failures stay inside the implementation.
type Dispatcher interface {
	DispatchDecision(decision *TradeDecision, highlighted bool)
}

// RecheckScheduler schedules a follow-up for a blocked evaluation.
// Failures stay inside the implementation.
type RecheckScheduler interface {
	Schedule(ctx context.Context, symbol string, advisory *analysis.RecheckAdvisory)
}

// Deps are the collaborators injected into the analyzer
type Deps struct {
	Data       market.Provider
	Strategy   strategy.Strategy
	Trend      *strategy.TrendClassifier
	Sessions   *analysis.SessionEngine
	News       analysis.NewsProvider
	Scores     analysis.ScoreProvider
	Recheck    *analysis.RecheckEngine
	Registry   *instrument.Registry
	Sizer      *risk.PositionSizer
	Dispatcher Dispatcher
	Scheduler  RecheckScheduler
	Logger     zerolog.Logger
	Now        func() time.Time
}

// Analyzer runs the decision pipeline: session/news gates, data
// sufficiency, classification, volatility targets, cost and liquidity
// filters, structural validation, sizing, confidence gate and recheck
// advisory, folded into one TradeDecision per request. Stateless; safe
// for concurrent evaluations.
type Analyzer struct {
	cfg  Config
	deps Deps
}

// NewAnalyzer creates an analyzer from config and collaborators
func NewAnalyzer(cfg Config, deps Deps) *Analyzer {
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Analyzer{cfg: cfg, deps: deps}
}

// Validate rejects invalid request parameters before any market fetch
func (r *Request) Validate() error {
	if r.Symbol == "" {
		return NewEvalError(CodeInvalidRequest, "symbol is required", "Provide a symbol such as EURUSD or BTCUSDT", nil)
	}
	if r.Interval == "" {
		return NewEvalError(CodeInvalidRequest, "interval is required", "Provide an interval such as 1h", nil)
	}
	if r.AccountBalance <= 0 {
		return NewEvalError(CodeInvalidRequest, "account_balance must be positive", "Provide the account balance in quote currency", nil)
	}
	if r.RiskPercent <= 0 || r.RiskPercent > 100 {
		return NewEvalError(CodeInvalidRequest, "risk_percent out of range", "Use a risk percent between 0 and 100", nil)
	}
	return nil
}

// Analyze evaluates one (symbol, interval, account, risk) request and
// returns exactly one TradeDecision, or a typed EvalError when the
// evaluation cannot produce a decision at all.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*TradeDecision, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	decision := &TradeDecision{
		ID:           uuid.New().String(),
		Symbol:       instrument.Normalize(req.Symbol),
		Interval:     req.Interval,
		Signal:       strategy.SignalNoTrade,
		RiskPercent:  req.RiskPercent,
		LotMode:      LotModeAuto,
		TradeAllowed: false,
		EvaluatedAt:  a.deps.Now(),
	}

	// Session and news gates short-circuit before any market fetch
	if a.deps.Sessions != nil && !a.deps.Sessions.IsOpen() {
		decision.block(BlockMarketClosed)
		return decision, nil
	}
	if analysis.IsNewsTime(ctx, a.deps.News, a.deps.Now(), a.cfg.NewsBufferMinutes) {
		decision.block(BlockNewsBlackout)
		return decision, nil
	}

	candles, err := a.deps.Data.FetchSeries(ctx, req.Symbol, req.Interval, a.cfg.FetchLimit)
	if err != nil {
		return nil, NewEvalError(
			CodeDataUnavailable,
			fmt.Sprintf("Failed to fetch market data for %s (%s)", req.Symbol, req.Interval),
			"Check symbol, interval, or data source connectivity",
			err,
		)
	}

	if len(candles) < a.cfg.MinCandles {
		decision.block(BlockInsufficientData)
		return decision, nil
	}

	eval, err := a.deps.Strategy.Evaluate(candles)
	if err != nil {
		return nil, NewEvalError(
			CodeClassifierFailure,
			"Failed to generate trading signal",
			"Check strategy configuration",
			err,
		)
	}

	decision.Signal = eval.Signal
	decision.Trend = a.deps.Trend.Classify(candles)
	decision.EntryPrice = round4(candles.Last().Close)
	decision.Volatility = analysis.CalculateRangeVolatility(candles, a.cfg.ATRPeriod)

	if eval.Signal.IsDirectional() {
		if err := a.evaluateSetup(decision, req, candles, eval); err != nil {
			return nil, err
		}
	} else {
		decision.block(BlockNoSignal)
	}

	decision.ConfidencePercent = analysis.CalculateConfidence(a.deps.Scores.Scores(candles))
	if decision.TradeAllowed && decision.ConfidencePercent < a.cfg.ConfidenceThreshold {
		decision.block(BlockLowConfidence)
	}

	a.finalize(ctx, decision, eval)

	a.deps.Logger.Debug().
		Str("symbol", decision.Symbol).
		Str("interval", decision.Interval).
		Str("signal", string(decision.Signal)).
		Bool("trade_allowed", decision.TradeAllowed).
		Str("block_reason", string(decision.BlockReason)).
		Float64("confidence", decision.ConfidencePercent).
		Msg("evaluation complete")

	return decision, nil
}

// evaluateSetup runs the directional part of the pipeline: targets, cost
// and liquidity filters, structural validation and sizing. The decision
// starts blocked and is only marked allowed once every gate passes.
func (a *Analyzer) evaluateSetup(decision *TradeDecision, req Request, candles market.Series, eval *strategy.Evaluation) error {
	atr := analysis.CalculateATR(candles, a.cfg.ATRPeriod)
	targets, err := risk.ATRTargets(decision.EntryPrice, atr, eval.Signal, a.cfg.SLMult, a.cfg.TPMult)
	if err != nil {
		return NewEvalError(
			CodeInvalidATR,
			"Cannot derive stop placement from current volatility",
			"Wait for more candles or a higher timeframe",
			err,
		)
	}

	decision.ATR = atr
	stop := round4(targets.StopLoss)
	takeProfit := round4(targets.TakeProfit)
	decision.StopLoss = &stop
	decision.TakeProfit = &takeProfit

	rr := risk.RewardRiskRatio(decision.EntryPrice, stop, takeProfit)
	rrRounded := math.Round(rr*100) / 100
	decision.RRRatio = &rrRounded

	spec, err := a.deps.Registry.Lookup(decision.Symbol)
	if err != nil {
		return NewEvalError(
			CodeNoInstrumentSpec,
			fmt.Sprintf("No instrument spec for %s", decision.Symbol),
			"Register pip size, pip value and lot size for this symbol",
			err,
		)
	}

	// Cost filters: a stop too tight is untradable before spread is even
	// considered, so the SL check fires first.
	decision.SpreadPips = a.deps.Registry.SpreadPips(decision.Symbol)
	decision.SLPips = math.Abs(decision.EntryPrice-stop) / spec.PipSize

	if decision.SLPips < a.cfg.MinSLPips {
		decision.Signal = strategy.SignalHold
		decision.block(BlockSLTooSmall)
	} else if SpreadTooHigh(decision.SpreadPips, decision.SLPips, a.cfg.SpreadRatio) {
		decision.Signal = strategy.SignalHold
		decision.block(BlockSpreadTooHigh)
	}

	// Liquidity-trap filter
	hunts := analysis.DetectStopHunts(candles, a.cfg.StopHuntWindow)
	decision.BuyStopHunt = hunts.BuyStopHunt
	decision.SellStopHunt = hunts.SellStopHunt
	if decision.Signal == strategy.SignalBuy && hunts.BuyStopHunt {
		decision.Signal = strategy.SignalHold
		decision.block(BlockBuyStopHunt)
	}
	if decision.Signal == strategy.SignalSell && hunts.SellStopHunt {
		decision.Signal = strategy.SignalHold
		decision.block(BlockSellStopHunt)
	}

	// Once the signal is forced to HOLD the remaining gates are skipped
	if decision.Signal == strategy.SignalHold {
		return nil
	}

	if !risk.ValidateTrade(decision.Signal, decision.Trend, decision.EntryPrice, stop, takeProfit, a.cfg.MinRR) {
		decision.block(BlockStructureInvalid)
		return nil
	}

	return a.size(decision, req, stop)
}

// size runs the position sizing engine in auto or manual mode
func (a *Analyzer) size(decision *TradeDecision, req Request, stop float64) error {
	var (
		sizing *risk.SizingResult
		err    error
	)

	if req.LotSize != nil {
		decision.LotMode = LotModeManual
		sizing, err = a.deps.Sizer.CalculateFromLot(decision.Symbol, req.AccountBalance, *req.LotSize, decision.EntryPrice, stop)
	} else {
		sizing, err = a.deps.Sizer.CalculatePosition(decision.Symbol, req.AccountBalance, decision.RiskPercent, decision.EntryPrice, stop)
	}

	switch {
	case err == nil:
		decision.Sizing = sizing
		decision.TradeAllowed = true
		return nil
	case errors.Is(err, risk.ErrLotTooSmall):
		decision.block(BlockLotTooSmall)
		return nil
	case errors.Is(err, risk.ErrInvalidStopDistance):
		return NewEvalError(
			CodeInvalidStopDistance,
			"Stop loss distance is zero",
			"Check OHLCV data integrity",
			err,
		)
	case errors.Is(err, risk.ErrLotOutOfRange):
		return NewEvalError(
			CodeSizingFailed,
			"Manual lot size outside allowed bounds",
			"Use a lot size within the configured limits",
			err,
		)
	default:
		decision.block(BlockSizingFailed)
		return nil
	}
}

// finalize attaches the recheck advisory to blocked decisions and
// dispatches allowed ones. Side effects run at most once and never
// alter the already-computed decision.
func (a *Analyzer) finalize(ctx context.Context, decision *TradeDecision, eval *strategy.Evaluation) {
	if !decision.TradeAllowed {
		if a.deps.Recheck != nil {
			rsi := eval.RSI
			vol := decision.Volatility
			slope := eval.EMASlope
			state := a.deps.Recheck.DetermineState(decision.Signal, decision.Trend, &rsi, &vol, &slope)
			decision.Recheck = a.deps.Recheck.BuildAdvisory(state, decision.Interval)

			if a.deps.Scheduler != nil {
				a.deps.Scheduler.Schedule(ctx, decision.Symbol, decision.Recheck)
			}
		}
		return
	}

	if a.deps.Dispatcher != nil && decision.Sizing != nil {
		highlighted := decision.ConfidencePercent >= a.cfg.HighlightConfidence &&
			decision.RRRatio != nil && *decision.RRRatio >= a.cfg.HighlightRR
		a.deps.Dispatcher.DispatchDecision(decision, highlighted)
	}
}

// SpreadTooHigh reports whether the estimated spread eats too much of
// the stop distance: spread_pips > ratio * sl_pips.
func SpreadTooHigh(spreadPips, slPips, ratio float64) bool {
	if ratio <= 0 {
		ratio = 0.25
	}
	return spreadPips > ratio*slPips
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
