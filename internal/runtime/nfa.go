package runtime

import (
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
)

type symbolKey struct {
	state  string
	symbol string
}

// NFA holds the compiled transition relation of a nondeterministic automaton.
// It is immutable after construction; the active-set lives with the caller.
type NFA struct {
	start     string
	accepting domain.StateSet
	alphabet  map[string]bool
	delta     map[symbolKey][]string
}

// NewNFA compiles a validated definition.
func NewNFA(def *schema.Definition) *NFA {
	n := &NFA{
		start:     def.Start,
		accepting: domain.NewStateSet(def.Accepting...),
		alphabet:  make(map[string]bool, len(def.Alphabet)),
		delta:     make(map[symbolKey][]string),
	}
	for _, sym := range def.Alphabet {
		n.alphabet[sym] = true
	}
	for _, t := range def.Transitions {
		key := symbolKey{t.From, t.Symbol}
		n.delta[key] = append(n.delta[key], t.To...)
	}
	return n
}

// Closure epsilon-closes the given states.
func (n *NFA) Closure(states domain.StateSet) domain.StateSet {
	return EpsilonClosure(states, func(state string) []string {
		return n.delta[symbolKey{state, domain.Epsilon}]
	})
}

// Start returns the closed initial active-set.
func (n *NFA) Start() domain.StateSet {
	return n.Closure(domain.NewStateSet(n.start))
}

// Recognizes reports whether symbol is epsilon or part of the alphabet.
func (n *NFA) Recognizes(symbol string) bool {
	return symbol == domain.Epsilon || n.alphabet[symbol]
}

// Step applies symbol to an epsilon-closed active-set. It returns the closed
// successor set and every edge used, in active-set order. An empty set means
// no path survived. A symbol outside the alphabet yields *SymbolError and no
// state change.
func (n *NFA) Step(active domain.StateSet, symbol string) (domain.StateSet, []domain.Edge, error) {
	if !n.Recognizes(symbol) {
		return active, nil, &SymbolError{Symbol: symbol}
	}

	var (
		targets []string
		edges   []domain.Edge
	)
	for _, state := range active {
		for _, to := range n.delta[symbolKey{state, symbol}] {
			targets = append(targets, to)
			edges = append(edges, domain.Edge{From: state, Symbol: symbol, To: to})
		}
	}
	if len(targets) == 0 {
		return domain.NewStateSet(), edges, nil
	}
	return n.Closure(domain.NewStateSet(targets...)), edges, nil
}

// Accepts reports whether the active-set intersects the accepting states.
func (n *NFA) Accepts(active domain.StateSet) bool {
	return active.Intersects(n.accepting)
}
