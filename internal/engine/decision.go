package engine

import (
	"time"

	"trading-analysis-bot/internal/analysis"
	"trading-analysis-bot/internal/risk"
	"trading-analysis-bot/internal/strategy"
)

// BlockReason explains why a trade was not allowed
type BlockReason string

const (
	BlockMarketClosed     BlockReason = "MARKET_CLOSED"
	BlockNewsBlackout     BlockReason = "NEWS_BLACKOUT"
	BlockInsufficientData BlockReason = "INSUFFICIENT_DATA"
	BlockNoSignal         BlockReason = "NO_SIGNAL"
	BlockSLTooSmall       BlockReason = "SL_TOO_SMALL"
	BlockSpreadTooHigh    BlockReason = "SPREAD_TOO_HIGH"
	BlockBuyStopHunt      BlockReason = "BUY_STOP_HUNT"
	BlockSellStopHunt     BlockReason = "SELL_STOP_HUNT"
	BlockStructureInvalid BlockReason = "STRUCTURE_INVALID"
	BlockLotTooSmall      BlockReason = "LOT_TOO_SMALL"
	BlockSizingFailed     BlockReason = "SIZING_FAILED"
	BlockLowConfidence    BlockReason = "LOW_CONFIDENCE"
)

// LotMode records how the position was sized
type LotMode string

const (
	LotModeAuto   LotMode = "auto"
	LotModeManual LotMode = "manual"
)

// Request is one evaluation request. Validated before any market fetch.
type Request struct {
	Symbol         string   `json:"symbol"`
	Interval       string   `json:"interval"`
	AccountBalance float64  `json:"account_balance"`
	RiskPercent    float64  `json:"risk_percent"`
	LotSize        *float64 `json:"lot_size,omitempty"`
}

// TradeDecision is the final output of one evaluation: either a fully
// sized trade or a block with an advisory on when to re-evaluate.
type TradeDecision struct {
	ID                string                    `json:"id"`
	Symbol            string                    `json:"symbol"`
	Interval          string                    `json:"interval"`
	Signal            strategy.Signal           `json:"signal"`
	Trend             strategy.Trend            `json:"trend,omitempty"`
	EntryPrice        float64                   `json:"entry_price,omitempty"`
	StopLoss          *float64                  `json:"stop_loss,omitempty"`
	TakeProfit        *float64                  `json:"take_profit,omitempty"`
	ATR               float64                   `json:"atr,omitempty"`
	Volatility        float64                   `json:"volatility,omitempty"`
	SpreadPips        float64                   `json:"spread_pips,omitempty"`
	SLPips            float64                   `json:"sl_pips,omitempty"`
	BuyStopHunt       bool                      `json:"buy_stop_hunt"`
	SellStopHunt      bool                      `json:"sell_stop_hunt"`
	RRRatio           *float64                  `json:"rr_ratio,omitempty"`
	ConfidencePercent float64                   `json:"confidence_percent"`
	TradeAllowed      bool                      `json:"trade_allowed"`
	BlockReason       BlockReason               `json:"block_reason,omitempty"`
	RiskPercent       float64                   `json:"risk_percent"`
	LotMode           LotMode                   `json:"lot_mode"`
	Sizing            *risk.SizingResult        `json:"sizing,omitempty"`
	Recheck           *analysis.RecheckAdvisory `json:"recheck_advice,omitempty"`
	EvaluatedAt       time.Time                 `json:"evaluated_at"`
}

// block records the first triggered block reason; later reasons never
// overwrite it.
func (d *TradeDecision) block(reason BlockReason) {
	d.TradeAllowed = false
	if d.BlockReason == "" {
		d.BlockReason = reason
	}
}
