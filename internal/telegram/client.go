// Package telegram dispatches fired alerts via the Telegram Bot API.
package telegram

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"orderpulse/internal/models"
)

// Client handles Telegram notifications.
type Client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewClient creates a new Telegram client.
func NewClient(botToken, chatID string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	return &Client{
		bot:    bot,
		chatID: chatIDInt,
	}, nil
}

// Send dispatches one alert as a single plain-text message. No retry: a
// failed dispatch is the caller's to log, and the next qualifying cycle
// produces a fresh alert anyway.
func (c *Client) Send(alert models.Alert) error {
	msg := tgbotapi.NewMessage(c.chatID, formatMessage(alert))
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send alert for %s: %w", alert.Symbol, err)
	}
	return nil
}

// formatMessage renders the fixed alert template: directional glyph, symbol,
// best bid, matched quantity, buy notional, and 24h change.
func formatMessage(alert models.Alert) string {
	return fmt.Sprintf("%s%s @ %s\n%s Quantity %s\nAmount $%s\nchange (%.2f%%)",
		directionGlyph(alert.Direction),
		alert.Symbol,
		formatPrice(alert.BestBid),
		alert.Direction,
		formatGrouped(alert.TotalQuantity),
		formatGrouped(alert.Notional),
		alert.PercentChange,
	)
}

// directionGlyph maps the order direction to its colored marker.
func directionGlyph(direction string) string {
	switch direction {
	case "Buy":
		return "🟢"
	case "Sell":
		return "🔴"
	default:
		return ""
	}
}

// formatPrice renders a price with trailing zeros stripped.
func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// formatGrouped renders a value with two decimals and thousands separators.
func formatGrouped(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}
