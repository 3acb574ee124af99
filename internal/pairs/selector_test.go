package pairs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportWith(sym1, sym2 string, finalReturn, halfLife float64) PairReport {
	return PairReport{
		Pair:     CandidatePair{Symbol1: sym1, Symbol2: sym2},
		HalfLife: halfLife,
		Result:   &BacktestResult{FinalReturn: finalReturn},
	}
}

func TestSelectBest(t *testing.T) {
	tests := []struct {
		name    string
		reports []PairReport
		want    string
		wantErr error
	}{
		{
			name:    "empty set",
			wantErr: ErrNoCandidates,
		},
		{
			name: "highest final return wins",
			reports: []PairReport{
				reportWith("A", "B", 1.04, 5),
				reportWith("C", "D", 1.11, 20),
				reportWith("E", "F", 0.97, 2),
			},
			want: "C",
		},
		{
			name: "tie broken by shorter half-life",
			reports: []PairReport{
				reportWith("A", "B", 1.08, 9),
				reportWith("C", "D", 1.08, 4),
			},
			want: "C",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, err := SelectBest(tt.reports)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, best.Pair.Symbol1)
		})
	}
}
