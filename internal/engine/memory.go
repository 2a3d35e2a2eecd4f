package engine

// valueMemory remembers the previous value per rule key so crossover and
// convergence-transition conditions can compare against the prior cycle.
// Cycles are single-flight, so access is confined to one goroutine at a
// time and no locking is needed.
type valueMemory struct {
	values map[string]float64
	states map[string]bool
}

func newValueMemory() *valueMemory {
	return &valueMemory{
		values: make(map[string]float64),
		states: make(map[string]bool),
	}
}

// Swap stores the current value under key and returns the previous one.
// The first observation of a key returns ok=false.
func (m *valueMemory) Swap(key string, current float64) (previous float64, ok bool) {
	previous, ok = m.values[key]
	m.values[key] = current
	return previous, ok
}

// SwapState stores the current boolean state under key and returns the
// previous one. The first observation of a key returns ok=false.
func (m *valueMemory) SwapState(key string, current bool) (previous, ok bool) {
	previous, ok = m.states[key]
	m.states[key] = current
	return previous, ok
}
