package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA_Basic(t *testing.T) {
	out := SMA([]float64{1, 2, 3, 4, 5}, 3)
	require.Len(t, out, 5)
	assert.False(t, Defined(out[0]))
	assert.False(t, Defined(out[1]))
	assert.InDelta(t, 2.0, out[2], 1e-9)
	assert.InDelta(t, 3.0, out[3], 1e-9)
	assert.InDelta(t, 4.0, out[4], 1e-9)
}

func TestSMA_Degenerate(t *testing.T) {
	assert.Nil(t, SMA(nil, 3))
	assert.Nil(t, SMA([]float64{1, 2}, 3))
	assert.Nil(t, SMA([]float64{1, 2, 3}, 0))
	assert.Nil(t, SMA([]float64{1, 2, 3}, -1))
}

func TestEMA_RunningAverageSeed(t *testing.T) {
	out := EMA([]float64{2, 4, 6, 8, 10}, 3)
	require.Len(t, out, 5)
	assert.False(t, Defined(out[0]))
	assert.False(t, Defined(out[1]))
	// Seed at index period-1 is the simple average of the first 3 values.
	assert.InDelta(t, 4.0, out[2], 1e-9)
	// multiplier = 2/(3+1) = 0.5
	assert.InDelta(t, 6.0, out[3], 1e-9)
	assert.InDelta(t, 8.0, out[4], 1e-9)
}

func TestEMA_Degenerate(t *testing.T) {
	assert.Nil(t, EMA([]float64{1, 2}, 3))
	assert.Nil(t, EMA([]float64{1, 2, 3}, 0))
}

func TestRSI_AllGainsIs100(t *testing.T) {
	// Fourteen flat bars then a rise: average loss is exactly zero, and the
	// zero-loss branch must yield 100 instead of dividing by zero.
	data := []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 12}
	out := RSI(data, 14)
	require.Len(t, out, 15)
	for i := 0; i < 14; i++ {
		assert.False(t, Defined(out[i]), "index %d should be warm-up", i)
	}
	assert.InDelta(t, 100.0, out[14], 1e-9)
}

func TestRSI_BalancedMovesIs50(t *testing.T) {
	// Alternating +1/-1 deltas keep average gain equal to average loss.
	data := []float64{10, 11, 10, 11, 10, 11, 10}
	out := RSI(data, 2)
	require.Len(t, out, 7)
	assert.InDelta(t, 50.0, out[2], 1e-9)
}

func TestRSI_Bounds(t *testing.T) {
	data := []float64{44, 47, 45, 50, 43, 48, 52, 41, 55, 49, 53, 47, 51, 45, 58, 42, 56}
	out := RSI(data, 14)
	require.NotNil(t, out)
	for i, v := range out {
		if !Defined(v) {
			continue
		}
		assert.GreaterOrEqual(t, v, 0.0, "index %d", i)
		assert.LessOrEqual(t, v, 100.0, "index %d", i)
	}
}

func TestRSI_Degenerate(t *testing.T) {
	assert.Nil(t, RSI([]float64{1, 2, 3}, 14))
	assert.Nil(t, RSI(make([]float64, 14), 14)) // needs period+1 points
	assert.Nil(t, RSI([]float64{1, 2, 3}, 0))
}

func TestMACD_DIFMatchesEMADifference(t *testing.T) {
	data := make([]float64, 40)
	for i := range data {
		data[i] = 100 + float64(i)*0.5 + float64(i%5)
	}
	series := MACD(data, 12, 26, 9)
	require.NotNil(t, series.DIF)
	require.Len(t, series.DIF, 40)

	fast := EMA(data, 12)
	slow := EMA(data, 26)
	for i := 0; i < 25; i++ {
		assert.False(t, Defined(series.DIF[i]), "index %d should be warm-up", i)
	}
	for i := 25; i < 40; i++ {
		assert.InDelta(t, fast[i]-slow[i], series.DIF[i], 1e-9, "index %d", i)
		assert.InDelta(t, (series.DIF[i]-series.DEA[i])*2, series.Histogram[i], 1e-9, "index %d", i)
	}
	// DEA is seeded with the first DIF value, not a windowed average.
	assert.InDelta(t, series.DIF[25], series.DEA[25], 1e-9)
}

func TestMACD_TooShort(t *testing.T) {
	series := MACD(make([]float64, 34), 12, 26, 9) // needs slow+signal = 35
	assert.Nil(t, series.DIF)
	assert.Nil(t, series.DEA)
	assert.Nil(t, series.Histogram)
}

func TestBollinger_KnownValues(t *testing.T) {
	bands := BollingerBands([]float64{1, 2, 3, 4, 5}, 5, 2)
	require.NotNil(t, bands.Middle)
	// Population stddev of 1..5 is sqrt(2).
	sd := math.Sqrt(2)
	assert.InDelta(t, 3.0, bands.Middle[4], 1e-9)
	assert.InDelta(t, 3.0+2*sd, bands.Upper[4], 1e-9)
	assert.InDelta(t, 3.0-2*sd, bands.Lower[4], 1e-9)
}

func TestBollinger_FlatSeriesCollapses(t *testing.T) {
	data := make([]float64, 25)
	for i := range data {
		data[i] = 5
	}
	bands := BollingerBands(data, 20, 2)
	require.NotNil(t, bands.Middle)
	last := len(data) - 1
	assert.InDelta(t, 5.0, bands.Middle[last], 1e-9)
	assert.InDelta(t, 5.0, bands.Upper[last], 1e-9)
	assert.InDelta(t, 5.0, bands.Lower[last], 1e-9)
}

func TestKDJ_FlatSeriesStaysAt50(t *testing.T) {
	n := 15
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		high[i], low[i], closes[i] = 10, 10, 10
	}
	series := KDJ(high, low, closes, 9)
	require.NotNil(t, series.K)
	last := n - 1
	// Zero range means RSV 50, and the 50-seeded smoothing never moves.
	assert.InDelta(t, 50.0, series.K[last], 1e-9)
	assert.InDelta(t, 50.0, series.D[last], 1e-9)
	assert.InDelta(t, 50.0, series.J[last], 1e-9)
}

func TestKDJ_JIdentity(t *testing.T) {
	n := 20
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		high[i] = 10 + float64(i%4)
		low[i] = 8 + float64(i%3)
		closes[i] = 9 + float64(i%2)
	}
	series := KDJ(high, low, closes, 9)
	require.NotNil(t, series.K)
	for i := 8; i < n; i++ {
		assert.InDelta(t, 3*series.K[i]-2*series.D[i], series.J[i], 1e-9, "index %d", i)
		assert.GreaterOrEqual(t, series.K[i], 0.0, "index %d", i)
		assert.LessOrEqual(t, series.K[i], 100.0, "index %d", i)
		assert.GreaterOrEqual(t, series.D[i], 0.0, "index %d", i)
		assert.LessOrEqual(t, series.D[i], 100.0, "index %d", i)
	}
}

func TestWilliamsR_Bounds(t *testing.T) {
	high := []float64{12, 13, 14, 13, 15, 16, 14, 13, 15, 17}
	low := []float64{10, 11, 12, 11, 13, 14, 12, 11, 13, 15}
	closes := []float64{11, 12, 13, 12, 14, 15, 13, 12, 14, 16}
	out := WilliamsR(high, low, closes, 5)
	require.NotNil(t, out)
	for i, v := range out {
		if !Defined(v) {
			continue
		}
		assert.GreaterOrEqual(t, v, -100.0, "index %d", i)
		assert.LessOrEqual(t, v, 0.0, "index %d", i)
	}
}

func TestWilliamsR_ZeroRangeIsMinus50(t *testing.T) {
	flat := []float64{10, 10, 10, 10, 10}
	out := WilliamsR(flat, flat, flat, 5)
	require.NotNil(t, out)
	assert.InDelta(t, -50.0, out[4], 1e-9)
}

func TestOBV_LinearRise(t *testing.T) {
	closes := make([]float64, 10)
	volumes := make([]float64, 10)
	for i := range closes {
		closes[i] = 100 + float64(i)*10.0/9.0
		volumes[i] = 1000
	}
	out := OBV(closes, volumes)
	require.Len(t, out, 10)
	assert.Equal(t, 0.0, out[0])
	assert.InDelta(t, 9000.0, out[9], 1e-9)
}

func TestOBV_MixedDirections(t *testing.T) {
	out := OBV([]float64{10, 11, 11, 10}, []float64{1000, 5000, 2000, 3000})
	require.Len(t, out, 4)
	assert.Equal(t, []float64{0, 5000, 5000, 2000}, out)
}

func TestOBV_LengthMismatch(t *testing.T) {
	assert.Nil(t, OBV([]float64{1, 2}, []float64{100}))
	assert.Nil(t, OBV(nil, nil))
}

func TestATR_FirstBarUsesHighLowOnly(t *testing.T) {
	high := []float64{12, 14, 13}
	low := []float64{10, 11, 12}
	closes := []float64{11, 13, 12.5}
	out := ATR(high, low, closes, 1)
	require.Len(t, out, 3)
	// Bar 0 has no previous close: TR = high - low.
	assert.InDelta(t, 2.0, out[0], 1e-9)
	// Bar 1: max(14-11, |14-11|, |11-11|) = 3.
	assert.InDelta(t, 3.0, out[1], 1e-9)
}
