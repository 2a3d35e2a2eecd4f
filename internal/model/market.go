package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Quote is a live snapshot for a single symbol.
type Quote struct {
	Symbol    string
	Price     float64
	Open      float64
	High      float64
	Low       float64
	Volume    float64
	Timestamp time.Time
}

// PatchLastBar folds a live price into the still-forming last bar:
// close becomes the live price, high/low widen to include it.
// The input slice is not modified; a patched copy is returned.
func PatchLastBar(bars []OHLCV, livePrice float64) []OHLCV {
	if len(bars) == 0 || livePrice <= 0 {
		return bars
	}
	patched := make([]OHLCV, len(bars))
	copy(patched, bars)
	last := &patched[len(patched)-1]
	last.Close = livePrice
	if livePrice > last.High {
		last.High = livePrice
	}
	if livePrice < last.Low {
		last.Low = livePrice
	}
	return patched
}

// Closes extracts the close prices from a bar sequence.
func Closes(bars []OHLCV) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Highs extracts the high prices from a bar sequence.
func Highs(bars []OHLCV) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.High
	}
	return out
}

// Lows extracts the low prices from a bar sequence.
func Lows(bars []OHLCV) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Low
	}
	return out
}

// Volumes extracts the volumes from a bar sequence.
func Volumes(bars []OHLCV) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Volume
	}
	return out
}
