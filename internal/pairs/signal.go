package pairs

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Position states of the signal state machine.
const (
	LongSpread  = 1
	Flat        = 0
	ShortSpread = -1
)

// SignalSeries holds the discrete position per bar together with the
// z-score sequence it was derived from. It is fully determined by the
// spread and the window: same input, same signal path.
type SignalSeries struct {
	Window    int
	ZScores   []float64
	Positions []int
}

// GenerateSignals converts a spread into position signals using a rolling
// z-score over window observations and the default entry/exit bands.
func GenerateSignals(spread []float64, window int) (*SignalSeries, error) {
	cfg := DefaultConfig()
	return generateSignals(spread, window, cfg.EntryZ, cfg.ExitZ)
}

// generateSignals is the band-parameterised implementation. Per bar:
// z > entry opens a short spread, z < -entry opens a long spread, z inside
// the open interval (-exit, exit) flattens, and anything in between carries
// the previous state forward. That hysteresis keeps the signal from
// chattering near the thresholds. The first window-1 bars, and bars where
// the rolling deviation is zero, have no valid z-score and carry forward
// (flat at the start).
func generateSignals(spread []float64, window int, entry, exit float64) (*SignalSeries, error) {
	if window <= 1 {
		return nil, &ConfigurationError{Field: "Window", Reason: "must be at least 2"}
	}
	if window > len(spread) {
		return nil, &ConfigurationError{Field: "Window", Reason: "exceeds series length"}
	}
	if entry <= exit || exit <= 0 {
		return nil, &ConfigurationError{Field: "EntryZ/ExitZ", Reason: "entry band must enclose exit band"}
	}

	n := len(spread)
	z := make([]float64, n)
	positions := make([]int, n)
	state := Flat

	for t := 0; t < n; t++ {
		if t < window-1 {
			z[t] = math.NaN()
			positions[t] = Flat
			continue
		}
		win := spread[t-window+1 : t+1]
		mean, std := stat.MeanStdDev(win, nil)
		if std == 0 || math.IsNaN(std) {
			z[t] = math.NaN()
			positions[t] = state
			continue
		}
		z[t] = (spread[t] - mean) / std
		state = nextState(state, z[t], entry, exit)
		positions[t] = state
	}

	return &SignalSeries{Window: window, ZScores: z, Positions: positions}, nil
}

// nextState is the band transition of the {long, flat, short} machine. An
// open position is held until the z-score re-enters the exit band, so a
// direct flip from long to short (or back) is impossible: leaving a
// position always goes through flat.
func nextState(state int, z, entry, exit float64) int {
	if state != Flat {
		if z > -exit && z < exit {
			return Flat
		}
		return state
	}
	switch {
	case z > entry:
		return ShortSpread
	case z < -entry:
		return LongSpread
	default:
		return Flat
	}
}

// slice returns the tail of the series starting at from, preserving the
// window metadata. Used to hand the held-out test segment to the simulator.
func (s *SignalSeries) slice(from int) *SignalSeries {
	return &SignalSeries{
		Window:    s.Window,
		ZScores:   s.ZScores[from:],
		Positions: s.Positions[from:],
	}
}
