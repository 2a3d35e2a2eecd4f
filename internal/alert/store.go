package alert

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"StockSentry/internal/model"
)

// Store is the in-memory alert registry: the single source of truth for rule
// state and trigger bookkeeping. UI mutations and engine bookkeeping are
// serialized behind one mutex.
type Store struct {
	mu    sync.RWMutex
	rules map[string]*model.AlertRule
	order []string // insertion order for stable evaluation
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{rules: make(map[string]*model.AlertRule)}
}

// Add validates and registers a rule. A missing id is assigned; CreatedAt is
// stamped when unset. The stored copy is returned.
func (s *Store) Add(rule model.AlertRule) (model.AlertRule, error) {
	if err := Validate(&rule); err != nil {
		return model.AlertRule{}, err
	}
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rules[rule.ID]; !exists {
		s.order = append(s.order, rule.ID)
	}
	stored := rule
	s.rules[rule.ID] = &stored
	return rule, nil
}

// Remove deletes a rule. It reports whether the rule existed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[id]; !ok {
		return false
	}
	delete(s.rules, id)
	for i, rid := range s.order {
		if rid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// SetActive toggles a rule. It reports whether the rule existed.
func (s *Store) SetActive(id string, active bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rules[id]
	if !ok {
		return false
	}
	r.Active = active
	return true
}

// Get returns a copy of one rule.
func (s *Store) Get(id string) (model.AlertRule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rules[id]
	if !ok {
		return model.AlertRule{}, false
	}
	return *r, true
}

// All returns copies of every rule in insertion order.
func (s *Store) All() []model.AlertRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.AlertRule, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.rules[id])
	}
	return out
}

// Active returns copies of every active rule in insertion order.
func (s *Store) Active() []model.AlertRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.AlertRule, 0, len(s.order))
	for _, id := range s.order {
		if s.rules[id].Active {
			out = append(out, *s.rules[id])
		}
	}
	return out
}

// RecordTrigger stamps the trigger time and increments the trigger count.
// Both fields are monotonic: the count never decreases and an out-of-order
// timestamp never rewinds LastTriggered. Cooldown enforcement belongs to the
// caller; this is bookkeeping only.
func (s *Store) RecordTrigger(id string, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rules[id]
	if !ok {
		return false
	}
	if at.After(r.LastTriggered) {
		r.LastTriggered = at
	}
	r.TriggerCount++
	return true
}

// Rehydrate loads previously persisted rules, preserving their trigger
// bookkeeping. Rules failing validation are skipped with a warning. Returns
// the number of rules loaded.
func (s *Store) Rehydrate(rules []model.AlertRule) int {
	loaded := 0
	for _, r := range rules {
		if _, err := s.Add(r); err != nil {
			log.Printf("[WARN] skipping persisted rule %s: %v", r.ID, err)
			continue
		}
		loaded++
	}
	return loaded
}
