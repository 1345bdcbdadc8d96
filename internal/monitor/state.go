package monitor

import (
	"time"

	"orderpulse/internal/models"
)

// StateStore owns the per-symbol dedup state for the process lifetime.
// Entries are created on first qualifying observation and never removed.
// The monitor evaluates symbols sequentially, so access is single-threaded
// and needs no locking.
type StateStore struct {
	states map[string]*models.SymbolState
}

// NewStateStore creates an empty store.
func NewStateStore() *StateStore {
	return &StateStore{
		states: make(map[string]*models.SymbolState),
	}
}

// GetOrCreate returns the state for symbol, creating a zeroed entry on first
// sight.
func (s *StateStore) GetOrCreate(symbol string) *models.SymbolState {
	if state, exists := s.states[symbol]; exists {
		return state
	}
	state := &models.SymbolState{
		Symbol:    symbol,
		UpdatedAt: time.Now(),
	}
	s.states[symbol] = state
	return state
}

// Get returns the state for symbol, or nil if the symbol has never qualified.
func (s *StateStore) Get(symbol string) *models.SymbolState {
	return s.states[symbol]
}

// Len returns the number of tracked symbols.
func (s *StateStore) Len() int {
	return len(s.states)
}
