package telegram

import (
	"testing"
	"time"

	"orderpulse/internal/models"
)

func TestFormatMessage(t *testing.T) {
	alert := models.Alert{
		ID:            "test-id",
		Symbol:        "ABCUSDT",
		Direction:     "Buy",
		BestBid:       100.50,
		TotalQuantity: 1234.5,
		Notional:      15000,
		PercentChange: 6.0,
		DetectedAt:    time.Now(),
	}

	got := formatMessage(alert)
	want := "🟢ABCUSDT @ 100.5\nBuy Quantity 1,234.50\nAmount $15,000.00\nchange (6.00%)"
	if got != want {
		t.Errorf("formatMessage() = %q, want %q", got, want)
	}
}

func TestFormatMessageSell(t *testing.T) {
	alert := models.Alert{
		Symbol:        "DEFUSDT",
		Direction:     "Sell",
		BestBid:       0.004561,
		TotalQuantity: 98765.432,
		Notional:      12345.678,
		PercentChange: -7.25,
	}

	got := formatMessage(alert)
	want := "🔴DEFUSDT @ 0.004561\nSell Quantity 98,765.43\nAmount $12,345.68\nchange (-7.25%)"
	if got != want {
		t.Errorf("formatMessage() = %q, want %q", got, want)
	}
}

func TestDirectionGlyph(t *testing.T) {
	tests := []struct {
		direction string
		want      string
	}{
		{"Buy", "🟢"},
		{"Sell", "🔴"},
		{"", ""},
		{"Hold", ""},
	}

	for _, tt := range tests {
		if got := directionGlyph(tt.direction); got != tt.want {
			t.Errorf("directionGlyph(%q) = %q, want %q", tt.direction, got, tt.want)
		}
	}
}

func TestFormatPriceStripsTrailingZeros(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{100.0, "100"},
		{100.50, "100.5"},
		{0.00012, "0.00012"},
		{42180.5, "42180.5"},
	}

	for _, tt := range tests {
		if got := formatPrice(tt.price); got != tt.want {
			t.Errorf("formatPrice(%v) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestNewClientInvalidChatID(t *testing.T) {
	// Chat ID parsing is the only constructor path testable without the
	// network; the bot token handshake happens first against the live API,
	// so an empty token fails either way.
	if _, err := NewClient("", "not-a-number"); err == nil {
		t.Error("Expected error for invalid chat ID, got nil")
	}
}
