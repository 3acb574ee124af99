// Package pairs implements the statistical-arbitrage pairs-trading engine:
// cointegration screening with multiple-testing correction, hedge-ratio and
// spread estimation, stationarity and half-life analysis, rolling z-score
// signal generation and a cost-aware backtest simulator.
//
// The package performs no I/O. Price history is handed in as an aligned
// Panel by the caller and every derived entity (candidates, spreads, signal
// series, backtest results) is a pure function of that input.
package pairs

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// PricePoint is a single observation of one instrument.
type PricePoint struct {
	Time  time.Time
	Price float64
}

// PriceSeries is the ordered price history of one instrument. Timestamps
// must be strictly increasing. Missing observations are expected to be
// forward-filled by the provider before the series enters the engine.
type PriceSeries struct {
	Symbol string
	Points []PricePoint
}

// Validate checks the series invariants: non-empty symbol, strictly
// increasing timestamps and finite prices.
func (s PriceSeries) Validate() error {
	if s.Symbol == "" {
		return &DataAlignmentError{Symbol: "?", Reason: "empty symbol"}
	}
	for i, p := range s.Points {
		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			return &DataAlignmentError{Symbol: s.Symbol, Reason: fmt.Sprintf("non-finite price at index %d", i)}
		}
		if i > 0 && !s.Points[i-1].Time.Before(p.Time) {
			return &DataAlignmentError{Symbol: s.Symbol, Reason: fmt.Sprintf("timestamps not strictly increasing at index %d", i)}
		}
	}
	return nil
}

// Panel holds price series for several instruments aligned to a common
// timestamp index. It is read-only once built and safe to share across
// workers without locking.
type Panel struct {
	index   []time.Time
	symbols []string
	columns map[string][]float64
}

// NewPanel inner-joins the given series to the timestamps present in every
// one of them and drops instruments whose aligned history is shorter than
// minObs. Series failing validation are rejected.
func NewPanel(series []PriceSeries, minObs int) (*Panel, error) {
	if minObs < 1 {
		return nil, &ConfigurationError{Field: "minObs", Reason: "must be at least 1"}
	}
	for _, s := range series {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	// Count how many series carry each timestamp; the common index is the
	// set carried by all of them.
	counts := make(map[int64]int)
	for _, s := range series {
		for _, p := range s.Points {
			counts[p.Time.UnixNano()]++
		}
	}
	var index []time.Time
	for _, s := range series {
		for _, p := range s.Points {
			if counts[p.Time.UnixNano()] == len(series) {
				index = append(index, p.Time)
			}
		}
		break // timestamps are unique per series, one pass is enough
	}
	sort.Slice(index, func(i, j int) bool { return index[i].Before(index[j]) })

	if len(index) < minObs {
		return &Panel{index: index, columns: map[string][]float64{}}, nil
	}

	wanted := make(map[int64]int, len(index))
	for i, t := range index {
		wanted[t.UnixNano()] = i
	}

	columns := make(map[string][]float64, len(series))
	var symbols []string
	for _, s := range series {
		col := make([]float64, len(index))
		for _, p := range s.Points {
			if i, ok := wanted[p.Time.UnixNano()]; ok {
				col[i] = p.Price
			}
		}
		columns[s.Symbol] = col
		symbols = append(symbols, s.Symbol)
	}
	sort.Strings(symbols)

	return &Panel{index: index, symbols: symbols, columns: columns}, nil
}

// Len returns the number of aligned observations.
func (p *Panel) Len() int { return len(p.index) }

// Symbols returns the instrument identifiers in sorted order.
func (p *Panel) Symbols() []string { return p.symbols }

// Index returns the common timestamp index.
func (p *Panel) Index() []time.Time { return p.index }

// Column returns the aligned price column for symbol, or nil if absent.
// The returned slice is owned by the panel and must not be mutated.
func (p *Panel) Column(symbol string) []float64 { return p.columns[symbol] }
