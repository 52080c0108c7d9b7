package runtime

import (
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
)

// DFA is a deterministic finite automaton together with its run state.
type DFA struct {
	start     string
	accepting map[string]bool
	alphabet  map[string]bool
	delta     map[symbolKey]string

	state    string
	input    []string
	position int
}

// NewDFA compiles a validated definition. The machine starts reset on empty input.
func NewDFA(def *schema.Definition) *DFA {
	d := &DFA{
		start:     def.Start,
		accepting: make(map[string]bool, len(def.Accepting)),
		alphabet:  make(map[string]bool, len(def.Alphabet)),
		delta:     make(map[symbolKey]string, len(def.Transitions)),
	}
	for _, s := range def.Accepting {
		d.accepting[s] = true
	}
	for _, sym := range def.Alphabet {
		d.alphabet[sym] = true
	}
	for _, t := range def.Transitions {
		d.delta[symbolKey{t.From, t.Symbol}] = t.Target()
	}
	d.Reset("")
	return d
}

// Reset stores input, moves to the start state and rewinds the position.
func (d *DFA) Reset(input string) {
	d.input = domain.Tokenize(input)
	d.state = d.start
	d.position = 0
}

// Next is the pure transition function.
func (d *DFA) Next(state, symbol string) (string, bool) {
	to, ok := d.delta[symbolKey{state, symbol}]
	return to, ok
}

// Step consumes one symbol. On any status other than StepMoved the machine is unchanged.
func (d *DFA) Step() (StepStatus, domain.Edge) {
	if d.position >= len(d.input) {
		return StepNoMoreInput, domain.Edge{}
	}
	symbol := d.input[d.position]
	if !d.alphabet[symbol] {
		return StepUnrecognizedSymbol, domain.Edge{From: d.state, Symbol: symbol}
	}
	to, ok := d.Next(d.state, symbol)
	if !ok {
		return StepNoTransition, domain.Edge{From: d.state, Symbol: symbol}
	}

	edge := domain.Edge{From: d.state, Symbol: symbol, To: to}
	d.state = to
	d.position++
	return StepMoved, edge
}

// IsAccepting reports whether the current state is accepting.
func (d *DFA) IsAccepting() bool {
	return d.accepting[d.state]
}

// Accepting reports whether state is accepting.
func (d *DFA) Accepting(state string) bool {
	return d.accepting[state]
}

// State returns the current state.
func (d *DFA) State() string { return d.state }

// Position returns the number of symbols consumed.
func (d *DFA) Position() int { return d.position }

// Remaining returns how many symbols are left to read.
func (d *DFA) Remaining() int { return len(d.input) - d.position }

// Restore sets state and position, used when the history is rewound or resumed.
func (d *DFA) Restore(state string, position int) {
	d.state = state
	d.position = max(0, min(position, len(d.input)))
}
