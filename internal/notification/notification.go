package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"trading-analysis-bot/internal/analysis"
	"trading-analysis-bot/internal/engine"
)

// Type labels what a notification is about
type Type string

const (
	NotifySignal   Type = "signal"
	NotifyAdvisory Type = "advisory"
	NotifyError    Type = "error"
)

// Notification is one outbound message
type Notification struct {
	Type      Type
	Title     string
	Message   string
	Symbol    string
	Timestamp time.Time
}

// Notifier delivers notifications through one channel
type Notifier interface {
	Send(notification *Notification) error
	Name() string
	IsEnabled() bool
}

// Manager fans notifications out to all enabled providers. Send errors
// are logged and never propagated to the evaluation pipeline.
type Manager struct {
	notifiers []Notifier
	logger    zerolog.Logger
}

// NewManager creates an empty notification manager
func NewManager(logger zerolog.Logger) *Manager {
	return &Manager{
		notifiers: make([]Notifier, 0),
		logger:    logger,
	}
}

// AddNotifier registers a notification provider
func (m *Manager) AddNotifier(n Notifier) {
	m.notifiers = append(m.notifiers, n)
}

// Send delivers a notification to every enabled provider
func (m *Manager) Send(notification *Notification) {
	for _, n := range m.notifiers {
		if !n.IsEnabled() {
			continue
		}
		if err := n.Send(notification); err != nil {
			m.logger.Error().Err(err).Str("provider", n.Name()).Str("symbol", notification.Symbol).
				Msg("notification delivery failed")
		}
	}
}

// DispatchDecision sends an allowed trade decision as a signal alert.
// Implements engine.Dispatcher.
func (m *Manager) DispatchDecision(decision *engine.TradeDecision, highlighted bool) {
	emoji := "🟢"
	if decision.Signal == "SELL" {
		emoji = "🔴"
	}

	title := fmt.Sprintf("%s Signal: %s", emoji, decision.Symbol)
	if highlighted {
		title = "⭐ " + title
	}

	var stop, takeProfit, lots, rr float64
	if decision.StopLoss != nil {
		stop = *decision.StopLoss
	}
	if decision.TakeProfit != nil {
		takeProfit = *decision.TakeProfit
	}
	if decision.Sizing != nil {
		lots = decision.Sizing.Lots
	}
	if decision.RRRatio != nil {
		rr = *decision.RRRatio
	}

	message := fmt.Sprintf(
		"%s %s @ %.4f\nSL: %.4f | TP: %.4f\nRR: %.2f | Lots: %.3f\nConfidence: %.2f%%",
		decision.Signal, decision.Symbol, decision.EntryPrice,
		stop, takeProfit, rr, lots, decision.ConfidencePercent,
	)

	m.Send(&Notification{
		Type:      NotifySignal,
		Title:     title,
		Message:   message,
		Symbol:    decision.Symbol,
		Timestamp: time.Now(),
	})
}

// SendAdvisory sends a recheck advisory for a blocked evaluation
func (m *Manager) SendAdvisory(symbol string, advisory *analysis.RecheckAdvisory) {
	message := fmt.Sprintf(
		"State: %s\nRecheck in: %d candles (%s, ~%d min)\nHint: %s",
		advisory.MarketState, advisory.RecheckAfterCandles,
		advisory.RecheckTimeframe, advisory.EstimatedWaitMinutes,
		advisory.NextCheckHint,
	)

	m.Send(&Notification{
		Type:      NotifyAdvisory,
		Title:     fmt.Sprintf("📊 Market Update: %s", symbol),
		Message:   message,
		Symbol:    symbol,
		Timestamp: time.Now(),
	})
}

// =============================================================================
// TELEGRAM NOTIFIER
// =============================================================================

// TelegramNotifier sends notifications via the Telegram bot API
type TelegramNotifier struct {
	botToken string
	chatID   string
	enabled  bool
	client   *http.Client
}

// TelegramConfig holds Telegram configuration
type TelegramConfig struct {
	BotToken string
	ChatID   string
	Enabled  bool
}

// NewTelegramNotifier creates a new Telegram notifier
func NewTelegramNotifier(config TelegramConfig) *TelegramNotifier {
	return &TelegramNotifier{
		botToken: config.BotToken,
		chatID:   config.ChatID,
		enabled:  config.Enabled && config.BotToken != "" && config.ChatID != "",
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *TelegramNotifier) Name() string {
	return "telegram"
}

func (t *TelegramNotifier) IsEnabled() bool {
	return t.enabled
}

func (t *TelegramNotifier) Send(notification *Notification) error {
	if !t.enabled {
		return nil
	}

	message := fmt.Sprintf("*%s*\n\n%s", notification.Title, notification.Message)

	payload := map[string]interface{}{
		"chat_id":    t.chatID,
		"text":       message,
		"parse_mode": "Markdown",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.botToken)
	resp, err := t.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	return nil
}

// =============================================================================
// DISCORD NOTIFIER
// =============================================================================

// DiscordNotifier sends notifications via a Discord webhook
type DiscordNotifier struct {
	webhookURL string
	enabled    bool
	client     *http.Client
}

// DiscordConfig holds Discord configuration
type DiscordConfig struct {
	WebhookURL string
	Enabled    bool
}

// NewDiscordNotifier creates a new Discord notifier
func NewDiscordNotifier(config DiscordConfig) *DiscordNotifier {
	return &DiscordNotifier{
		webhookURL: config.WebhookURL,
		enabled:    config.Enabled && config.WebhookURL != "",
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *DiscordNotifier) Name() string {
	return "discord"
}

func (d *DiscordNotifier) IsEnabled() bool {
	return d.enabled
}

func (d *DiscordNotifier) Send(notification *Notification) error {
	if !d.enabled {
		return nil
	}

	payload := map[string]interface{}{
		"content": fmt.Sprintf("**%s**\n%s", notification.Title, notification.Message),
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal discord payload: %w", err)
	}

	resp, err := d.client.Post(d.webhookURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send discord message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}

	return nil
}
