package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMAConvergence_FlatSeries(t *testing.T) {
	data := make([]float64, 30)
	for i := range data {
		data[i] = 100
	}
	conv, ok := LatestConvergence(data, []int{5, 10, 20}, 2)
	require.True(t, ok)
	assert.Equal(t, 0.0, conv.Ratio)
	assert.True(t, conv.Converging)
	assert.Equal(t, []float64{100, 100, 100}, conv.MAValues)
}

func TestMAConvergence_SteepTrendDiverges(t *testing.T) {
	data := make([]float64, 30)
	for i := range data {
		data[i] = 100 + float64(i)*5
	}
	conv, ok := LatestConvergence(data, []int{5, 10, 20}, 2)
	require.True(t, ok)
	assert.Greater(t, conv.Ratio, 2.0)
	assert.False(t, conv.Converging)
}

func TestMAConvergence_BoundaryInclusive(t *testing.T) {
	data := make([]float64, 30)
	for i := range data {
		data[i] = 100
	}
	conv, ok := LatestConvergence(data, []int{5, 10, 20}, 0)
	require.True(t, ok)
	// Ratio exactly at the threshold still counts as converging.
	assert.True(t, conv.Converging)
}

func TestMAConvergence_AlignedLength(t *testing.T) {
	data := make([]float64, 30)
	for i := range data {
		data[i] = float64(i)
	}
	series := MAConvergence(data, []int{5, 10, 20}, 2)
	require.NotNil(t, series)
	assert.Len(t, series, 30-20+1)
}

func TestMAConvergence_Degenerate(t *testing.T) {
	assert.Nil(t, MAConvergence(make([]float64, 10), []int{5, 10, 20}, 2))
	assert.Nil(t, MAConvergence(make([]float64, 30), nil, 2))
	_, ok := LatestConvergence(make([]float64, 5), []int{5, 10, 20}, 2)
	assert.False(t, ok)
}

func TestMAProximity(t *testing.T) {
	prox := MAProximity(102, 100, 2)
	assert.InDelta(t, 2.0, prox.Distance, 1e-9)
	assert.True(t, prox.Near)         // 2 <= 2, boundary inclusive
	assert.False(t, prox.WithinRange) // 2 > 2/2
	assert.Equal(t, DirectionAbove, prox.Direction)

	prox = MAProximity(99.5, 100, 2)
	assert.InDelta(t, 0.5, prox.Distance, 1e-9)
	assert.True(t, prox.Near)
	assert.True(t, prox.WithinRange)
	assert.Equal(t, DirectionBelow, prox.Direction)

	prox = MAProximity(100, 100, 2)
	assert.Equal(t, 0.0, prox.Distance)
	assert.Equal(t, DirectionOn, prox.Direction)
}

func TestCrossover_StrictBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		prev     float64
		cur      float64
		target   float64
		dir      Direction
		expected bool
	}{
		{"crosses up", 99, 101, 100, DirectionAbove, true},
		{"sits on target then rises", 100, 101, 100, DirectionAbove, false},
		{"rises to target exactly", 99, 100, 100, DirectionAbove, false},
		{"already above", 101, 102, 100, DirectionAbove, false},
		{"crosses down", 101, 99, 100, DirectionBelow, true},
		{"sits on target then falls", 100, 99, 100, DirectionBelow, false},
		{"falls to target exactly", 101, 100, 100, DirectionBelow, false},
		{"already below", 99, 98, 100, DirectionBelow, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Crossover(tt.prev, tt.cur, tt.target, tt.dir))
		})
	}
}
