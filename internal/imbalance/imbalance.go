// Package imbalance computes aggregate order-book pressure from a depth
// snapshot.
package imbalance

import (
	"fmt"
	"strconv"

	"orderpulse/internal/models"
)

// Evaluate sums price×quantity over both sides of the book and total bid
// quantity. Pure: the only failure mode is an unparseable price or quantity
// string, which the caller treats as a per-symbol skip.
func Evaluate(book models.OrderBook) (models.ImbalanceResult, error) {
	var result models.ImbalanceResult

	for _, level := range book.Bids {
		price, quantity, err := parseLevel(level, "bid")
		if err != nil {
			return models.ImbalanceResult{}, err
		}
		result.TotalBuyNotional += price * quantity
		result.TotalBidQuantity += quantity
	}

	for _, level := range book.Asks {
		price, quantity, err := parseLevel(level, "ask")
		if err != nil {
			return models.ImbalanceResult{}, err
		}
		result.TotalSellNotional += price * quantity
	}

	return result, nil
}

// BestBid parses the top bid price of the book.
func BestBid(book models.OrderBook) (float64, error) {
	if len(book.Bids) == 0 {
		return 0, fmt.Errorf("order book for %s has no bids", book.Symbol)
	}
	price, err := strconv.ParseFloat(book.Bids[0].Price, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse best bid price %q: %w", book.Bids[0].Price, err)
	}
	return price, nil
}

func parseLevel(level models.BookLevel, side string) (float64, float64, error) {
	price, err := strconv.ParseFloat(level.Price, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse %s price %q: %w", side, level.Price, err)
	}
	quantity, err := strconv.ParseFloat(level.Quantity, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse %s quantity %q: %w", side, level.Quantity, err)
	}
	return price, quantity, nil
}
