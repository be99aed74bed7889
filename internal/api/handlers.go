package api

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"trading-analysis-bot/internal/engine"
)

// parseAnalyzeRequest validates query parameters before any market fetch
func (s *Server) parseAnalyzeRequest(c *gin.Context) (engine.Request, error) {
	req := engine.Request{
		Symbol:         strings.ToUpper(strings.TrimSpace(c.Query("symbol"))),
		Interval:       c.DefaultQuery("interval", "1h"),
		AccountBalance: s.bounds.DefaultBalance,
		RiskPercent:    s.bounds.DefaultRiskPercent,
	}

	if req.Symbol == "" {
		return req, fmt.Errorf("symbol is required")
	}

	if v := c.Query("account_balance"); v != "" {
		balance, err := strconv.ParseFloat(v, 64)
		if err != nil || balance <= 0 {
			return req, fmt.Errorf("invalid account_balance")
		}
		req.AccountBalance = balance
	}

	if v := c.Query("risk_percent"); v != "" {
		riskPercent, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, fmt.Errorf("invalid risk_percent")
		}
		req.RiskPercent = riskPercent
	}
	if req.RiskPercent < s.bounds.MinRiskPercent || req.RiskPercent > s.bounds.MaxRiskPercent {
		return req, fmt.Errorf("risk_percent must be between %.1f%% and %.1f%%",
			s.bounds.MinRiskPercent, s.bounds.MaxRiskPercent)
	}

	if v := c.Query("lot_size"); v != "" {
		lotSize, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, fmt.Errorf("invalid lot_size")
		}
		if lotSize < s.bounds.MinLot || lotSize > s.bounds.MaxLot {
			return req, fmt.Errorf("lot_size must be between %.3f and %.1f",
				s.bounds.MinLot, s.bounds.MaxLot)
		}
		req.LotSize = &lotSize
	}

	return req, nil
}

// handleAnalyze evaluates one symbol and returns its trade decision
func (s *Server) handleAnalyze(c *gin.Context) {
	req, err := s.parseAnalyzeRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision, err := s.analyzer.Analyze(c.Request.Context(), req)
	if err != nil {
		s.renderEvalError(c, err)
		return
	}

	s.hub.BroadcastDecision(decision)
	c.JSON(http.StatusOK, decision)
}

// scanEntry is one row of the scan response, sorted by confidence
type scanEntry struct {
	Symbol     string                `json:"symbol"`
	Decision   *engine.TradeDecision `json:"decision,omitempty"`
	Error      string                `json:"error,omitempty"`
	Suggestion string                `json:"suggestion,omitempty"`
}

// handleScan evaluates a comma-separated symbol list concurrently.
// Per-symbol failures become error rows instead of failing the scan.
func (s *Server) handleScan(c *gin.Context) {
	symbolsParam := c.Query("symbols")
	if symbolsParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbols is required (comma-separated)"})
		return
	}

	interval := c.DefaultQuery("interval", "1h")

	symbols := make([]string, 0)
	for _, s := range strings.Split(symbolsParam, ",") {
		if trimmed := strings.ToUpper(strings.TrimSpace(s)); trimmed != "" {
			symbols = append(symbols, trimmed)
		}
	}
	if len(symbols) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid symbols supplied"})
		return
	}

	entries := make([]scanEntry, len(symbols))
	var wg sync.WaitGroup

	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()

			req := engine.Request{
				Symbol:         symbol,
				Interval:       interval,
				AccountBalance: s.bounds.DefaultBalance,
				RiskPercent:    s.bounds.DefaultRiskPercent,
			}

			decision, err := s.analyzer.Analyze(c.Request.Context(), req)
			if err != nil {
				entry := scanEntry{Symbol: symbol, Error: err.Error()}
				if evalErr, ok := engine.AsEvalError(err); ok {
					entry.Error = evalErr.Message
					entry.Suggestion = evalErr.Suggestion
				}
				entries[i] = entry
				return
			}

			s.hub.BroadcastDecision(decision)
			entries[i] = scanEntry{Symbol: symbol, Decision: decision}
		}(i, symbol)
	}
	wg.Wait()

	sort.SliceStable(entries, func(a, b int) bool {
		confA, confB := -1.0, -1.0
		if entries[a].Decision != nil {
			confA = entries[a].Decision.ConfidencePercent
		}
		if entries[b].Decision != nil {
			confB = entries[b].Decision.ConfidencePercent
		}
		return confA > confB
	})

	c.JSON(http.StatusOK, gin.H{
		"interval": interval,
		"results":  entries,
	})
}

// renderEvalError maps the evaluation error taxonomy to HTTP statuses
func (s *Server) renderEvalError(c *gin.Context, err error) {
	evalErr, ok := engine.AsEvalError(err)
	if !ok {
		s.logger.Error().Err(err).Msg("unexpected evaluation failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	status := http.StatusUnprocessableEntity
	switch evalErr.Code {
	case engine.CodeInvalidRequest:
		status = http.StatusBadRequest
	case engine.CodeDataUnavailable:
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{
		"code":       evalErr.Code,
		"error":      evalErr.Message,
		"suggestion": evalErr.Suggestion,
	})
}
