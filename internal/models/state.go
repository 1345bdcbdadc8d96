package models

import (
	"time"
)

// SymbolState is the per-symbol dedup state. One entry exists per symbol that
// ever passed the eligibility filter with a successful book fetch; entries
// live for the process lifetime and are mutated only by the decision engine.
type SymbolState struct {
	Symbol string

	// LastAlertedChange is the priceChangePercent of the last fired alert.
	// nil until the first alert fires, so a legitimate 0.0 still counts as
	// "seen" and does not re-fire on every cycle.
	LastAlertedChange *float64

	// Accumulated across cycles but not read by any decision. Kept for
	// compatibility with downstream consumers of the state dump.
	CumulativeBuyNotional  float64
	CumulativeSellNotional float64

	UpdatedAt time.Time
}
