package lint

import (
	"fmt"
	"sort"
	"sync"
)

// Rule is an in-process lint rule. Check must not retain doc.
type Rule interface {
	ID() string
	Check(doc *Document, opts Options) []Diagnostic
}

// Registry holds the rules a Linter can enable by id.
type Registry struct {
	rules map[string]Rule
	mu    sync.RWMutex
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[string]Rule),
	}
}

// DefaultRegistry returns a registry holding every built-in rule.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, rule := range BuiltinRules() {
		r.MustRegister(rule)
	}
	return r
}

// Register adds rule. Registering the same id twice is an error.
func (r *Registry) Register(rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := rule.ID()
	if _, exists := r.rules[id]; exists {
		return fmt.Errorf("rule %s already registered", id)
	}
	r.rules[id] = rule
	return nil
}

// MustRegister is Register that panics on duplicates.
func (r *Registry) MustRegister(rule Rule) {
	if err := r.Register(rule); err != nil {
		panic(err)
	}
}

// Get returns the rule registered under id.
func (r *Registry) Get(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

// IDs lists the registered rule ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.rules))
	for id := range r.rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
