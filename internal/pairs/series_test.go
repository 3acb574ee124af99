package pairs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(i int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
}

func seriesOf(symbol string, start int, prices ...float64) PriceSeries {
	s := PriceSeries{Symbol: symbol}
	for i, p := range prices {
		s.Points = append(s.Points, PricePoint{Time: day(start + i), Price: p})
	}
	return s
}

func TestPriceSeriesValidate(t *testing.T) {
	tests := []struct {
		name    string
		series  PriceSeries
		wantErr bool
	}{
		{
			name:   "valid series",
			series: seriesOf("AAA", 0, 1, 2, 3),
		},
		{
			name: "duplicate timestamp",
			series: PriceSeries{Symbol: "AAA", Points: []PricePoint{
				{Time: day(0), Price: 1},
				{Time: day(0), Price: 2},
			}},
			wantErr: true,
		},
		{
			name: "decreasing timestamp",
			series: PriceSeries{Symbol: "AAA", Points: []PricePoint{
				{Time: day(1), Price: 1},
				{Time: day(0), Price: 2},
			}},
			wantErr: true,
		},
		{
			name:    "empty symbol",
			series:  seriesOf("", 0, 1),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.series.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewPanelInnerJoin(t *testing.T) {
	// AAA covers days 0..9, BBB days 2..11: the aligned index is days 2..9.
	a := seriesOf("AAA", 0, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19)
	b := seriesOf("BBB", 2, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29)

	panel, err := NewPanel([]PriceSeries{a, b}, 1)
	require.NoError(t, err)

	assert.Equal(t, 8, panel.Len())
	assert.Equal(t, []string{"AAA", "BBB"}, panel.Symbols())
	assert.Equal(t, day(2), panel.Index()[0])
	assert.Equal(t, day(9), panel.Index()[7])
	assert.Equal(t, []float64{12, 13, 14, 15, 16, 17, 18, 19}, panel.Column("AAA"))
	assert.Equal(t, []float64{20, 21, 22, 23, 24, 25, 26, 27}, panel.Column("BBB"))
	assert.Nil(t, panel.Column("CCC"))
}

func TestNewPanelInsufficientOverlap(t *testing.T) {
	a := seriesOf("AAA", 0, 1, 2, 3)
	b := seriesOf("BBB", 10, 1, 2, 3)

	panel, err := NewPanel([]PriceSeries{a, b}, 2)
	require.NoError(t, err)
	assert.Zero(t, panel.Len())
	assert.Empty(t, panel.Symbols())
}
