// Package monitor implements the alert decision pipeline: per-cycle
// eligibility filtering, order-book imbalance evaluation, and per-symbol
// alert deduplication.
package monitor

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"orderpulse/internal/imbalance"
	"orderpulse/internal/logger"
	"orderpulse/internal/models"
)

// Config parameterizes one scan pipeline. The values are deliberate
// constants, not runtime flags; DefaultConfig is the single source of truth
// for the strategy.
type Config struct {
	PollInterval               time.Duration
	OrderBookDepth             int
	QuoteSuffix                string
	PercentChangeThreshold     float64
	ImbalanceNotionalThreshold float64
	DedupDeltaThreshold        float64
	MaxRetries                 int
	DefaultRetryAfter          time.Duration
}

// DefaultConfig returns the fixed strategy parameters.
func DefaultConfig() Config {
	return Config{
		PollInterval:               5 * time.Second,
		OrderBookDepth:             5,
		QuoteSuffix:                "USDT",
		PercentChangeThreshold:     5.0,
		ImbalanceNotionalThreshold: 10000,
		DedupDeltaThreshold:        1.0,
		MaxRetries:                 5,
		DefaultRetryAfter:          5 * time.Second,
	}
}

// SnapshotFetcher retrieves the per-symbol 24-hour change snapshot.
type SnapshotFetcher interface {
	FetchTicker24h(ctx context.Context) ([]models.PriceChangeRecord, error)
}

// DepthFetcher retrieves the order book for one symbol.
type DepthFetcher interface {
	FetchDepth(ctx context.Context, symbol string, limit int) (models.OrderBook, error)
}

// Universe answers futures-market membership for a symbol.
type Universe interface {
	Contains(symbol string) bool
}

// Notifier dispatches a fired alert.
type Notifier interface {
	Send(alert models.Alert) error
}

// Monitor drives one polling cycle at a time over the snapshot, order book,
// and dedup state.
type Monitor struct {
	snapshots SnapshotFetcher
	depth     DepthFetcher
	universe  Universe
	notifier  Notifier
	states    *StateStore
	config    Config
}

// New creates a monitor. notifier may be nil, in which case fired alerts are
// only logged.
func New(snapshots SnapshotFetcher, depth DepthFetcher, universe Universe, notifier Notifier, config Config) *Monitor {
	return &Monitor{
		snapshots: snapshots,
		depth:     depth,
		universe:  universe,
		notifier:  notifier,
		states:    NewStateStore(),
		config:    config,
	}
}

// RunCycle performs one full scan: snapshot fetch, then sequential per-symbol
// evaluation. A snapshot failure aborts the cycle; per-symbol failures skip
// only that symbol.
func (m *Monitor) RunCycle(ctx context.Context) error {
	startTime := time.Now()

	records, err := m.snapshots.FetchTicker24h(ctx)
	if err != nil {
		return err
	}

	var evaluated, fired int
	for _, record := range records {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !m.eligible(record) {
			continue
		}
		evaluated++
		if m.evaluateSymbol(ctx, record) {
			fired++
		}
	}

	logger.Info("Cycle complete: %d symbols in snapshot, %d evaluated, %d alerts fired, %d tracked, took %v",
		len(records), evaluated, fired, m.states.Len(), time.Since(startTime))
	return nil
}

// eligible is the pure pre-filter: quote suffix, percent-change magnitude,
// and futures-market membership. Failing it mutates no state.
func (m *Monitor) eligible(record models.PriceChangeRecord) bool {
	if !strings.HasSuffix(record.Symbol, m.config.QuoteSuffix) {
		return false
	}
	if math.Abs(record.PriceChangePercent) < m.config.PercentChangeThreshold {
		return false
	}
	return m.universe.Contains(record.Symbol)
}

// evaluateSymbol runs the book fetch, significance test, and dedup decision
// for one eligible record. Reports whether an alert fired.
func (m *Monitor) evaluateSymbol(ctx context.Context, record models.PriceChangeRecord) bool {
	symbol := record.Symbol

	book, err := m.depth.FetchDepth(ctx, symbol, m.config.OrderBookDepth)
	if err != nil {
		logger.Warn("Skipping %s this cycle: %v", symbol, err)
		return false
	}

	result, err := imbalance.Evaluate(book)
	if err != nil {
		logger.Warn("Skipping %s this cycle: %v", symbol, err)
		return false
	}

	state := m.states.GetOrCreate(symbol)
	fired := false

	if m.significant(result) {
		direction := "Sell"
		if result.TotalBuyNotional > result.TotalSellNotional {
			direction = "Buy"
		}

		if m.shouldFire(state, record.PriceChangePercent) {
			m.fire(record, book, result, direction)
			pct := record.PriceChangePercent
			state.LastAlertedChange = &pct
			fired = true
		} else {
			logger.Debug("Suppressed repeat alert for %s: change %.2f%% within %.1f of last alerted %.2f%%",
				symbol, record.PriceChangePercent, m.config.DedupDeltaThreshold, *state.LastAlertedChange)
		}
	}

	state.CumulativeBuyNotional += result.TotalBuyNotional
	state.CumulativeSellNotional += result.TotalSellNotional
	state.UpdatedAt = time.Now()
	return fired
}

// significant applies the imbalance gate: the buy/sell gap and the buy side
// itself must both strictly exceed the notional threshold.
func (m *Monitor) significant(result models.ImbalanceResult) bool {
	gap := math.Abs(result.TotalBuyNotional - result.TotalSellNotional)
	return gap > m.config.ImbalanceNotionalThreshold &&
		result.TotalBuyNotional > m.config.ImbalanceNotionalThreshold
}

// shouldFire decides fire-versus-suppress: the first qualifying event for a
// symbol always fires, afterwards only when the percent change moved by more
// than the dedup delta since the last fired alert.
func (m *Monitor) shouldFire(state *models.SymbolState, percentChange float64) bool {
	if state.LastAlertedChange == nil {
		return true
	}
	return math.Abs(percentChange-*state.LastAlertedChange) > m.config.DedupDeltaThreshold
}

func (m *Monitor) fire(record models.PriceChangeRecord, book models.OrderBook, result models.ImbalanceResult, direction string) {
	bestBid, err := imbalance.BestBid(book)
	if err != nil {
		// Evaluate already parsed this level, so this is unreachable in
		// practice; fire with a zero price rather than drop the signal.
		logger.Error("Failed to parse best bid for %s: %v", record.Symbol, err)
	}

	alert := models.Alert{
		ID:            uuid.New().String(),
		Symbol:        record.Symbol,
		Direction:     direction,
		BestBid:       bestBid,
		TotalQuantity: result.TotalBidQuantity,
		Notional:      result.TotalBuyNotional,
		PercentChange: record.PriceChangePercent,
		DetectedAt:    time.Now(),
	}

	logger.Info("Alert %s: %s %s notional %.2f (change %.2f%%)",
		alert.ID, alert.Direction, alert.Symbol, alert.Notional, alert.PercentChange)

	if m.notifier == nil {
		return
	}
	if err := m.notifier.Send(alert); err != nil {
		logger.Error("Failed to send alert %s for %s: %v", alert.ID, alert.Symbol, err)
	}
}

// States exposes the dedup store for inspection.
func (m *Monitor) States() *StateStore {
	return m.states
}
