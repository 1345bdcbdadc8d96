// Package models defines the core domain entities: ticker records, order
// books, imbalance results, and alerts.
package models

import (
	"errors"
	"time"
)

// PriceChangeRecord is one symbol's 24-hour price movement from the spot
// ticker snapshot. The percent is already parsed from the feed's decimal
// string; records that fail to parse never make it this far.
type PriceChangeRecord struct {
	Symbol             string
	PriceChangePercent float64
}

// BookLevel is a single price level of an order book. Price and Quantity are
// kept as the feed's decimal strings; parsing to float happens in the
// imbalance evaluator so a bad level is a per-symbol failure, not a decode
// failure.
type BookLevel struct {
	Price    string
	Quantity string
}

// OrderBook is a point-in-time depth snapshot for one symbol, best levels
// first on both sides.
type OrderBook struct {
	Symbol string
	Bids   []BookLevel
	Asks   []BookLevel
}

// Validate checks that the book has the structure the evaluator expects.
func (b *OrderBook) Validate() error {
	if b.Symbol == "" {
		return errors.New("order book symbol must not be empty")
	}
	if len(b.Bids) == 0 {
		return errors.New("order book has no bid levels")
	}
	if len(b.Asks) == 0 {
		return errors.New("order book has no ask levels")
	}
	for _, l := range b.Bids {
		if l.Price == "" || l.Quantity == "" {
			return errors.New("bid level missing price or quantity")
		}
	}
	for _, l := range b.Asks {
		if l.Price == "" || l.Quantity == "" {
			return errors.New("ask level missing price or quantity")
		}
	}
	return nil
}

// ImbalanceResult aggregates one order book into notional totals.
type ImbalanceResult struct {
	TotalBuyNotional  float64
	TotalSellNotional float64
	TotalBidQuantity  float64
}

// Alert is a fired signal ready for dispatch.
type Alert struct {
	ID            string
	Symbol        string
	Direction     string // "Buy" or "Sell"
	BestBid       float64
	TotalQuantity float64
	Notional      float64
	PercentChange float64
	DetectedAt    time.Time
}
