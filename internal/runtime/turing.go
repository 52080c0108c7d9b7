package runtime

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
)

type action struct {
	to    string
	write string
	move  domain.Move
}

// Turing is a single-tape deterministic Turing machine with its run state.
type Turing struct {
	start    string
	final    map[string]bool
	alphabet map[string]bool
	blank    string
	delta    map[symbolKey]action

	state string
	tape  *Tape
}

// NewTuring compiles a validated definition. The machine starts on an empty tape.
// A move that does not parse is a configuration error.
func NewTuring(def *schema.Definition) (*Turing, error) {
	blank := def.Blank
	if blank == "" {
		blank = domain.DefaultBlank
	}
	m := &Turing{
		start:    def.Start,
		final:    make(map[string]bool, len(def.Accepting)),
		alphabet: make(map[string]bool, len(def.Alphabet)+1),
		blank:    blank,
		delta:    make(map[symbolKey]action, len(def.Transitions)),
	}
	for _, s := range def.Accepting {
		m.final[s] = true
	}
	for _, sym := range def.Alphabet {
		m.alphabet[sym] = true
	}
	if len(m.alphabet) > 0 {
		m.alphabet[blank] = true
	}
	for _, t := range def.Transitions {
		move, err := domain.ParseMove(string(t.Move))
		if err != nil {
			return nil, fmt.Errorf("%w: transition (%s, '%s'): %v", domain.ErrInvalidDefinition, t.From, t.Symbol, err)
		}
		m.delta[symbolKey{t.From, t.Symbol}] = action{to: t.Target(), write: t.Write, move: move}
	}
	m.Initialize("")
	return m, nil
}

// Initialize loads a new tape and moves to the start state.
func (m *Turing) Initialize(input string) {
	m.tape = NewTape(input, m.blank)
	m.state = m.start
}

// lookup resolves the transition for the current configuration without applying it.
func (m *Turing) lookup() (StepStatus, string, action) {
	if m.final[m.state] {
		return StepFinalState, "", action{}
	}
	symbol := m.tape.Read()
	if len(m.alphabet) > 0 && !m.alphabet[symbol] {
		return StepUnrecognizedSymbol, symbol, action{}
	}
	act, ok := m.delta[symbolKey{m.state, symbol}]
	if !ok {
		return StepNoTransition, symbol, action{}
	}
	return StepMoved, symbol, act
}

// Step applies one transition. It returns StepFinalState when already in a
// final state and StepNoTransition when the table has no entry; both are halts
// and leave the machine unchanged.
func (m *Turing) Step() (StepStatus, domain.Edge) {
	status, symbol, act := m.lookup()
	if status != StepMoved {
		return status, domain.Edge{From: m.state, Symbol: symbol}
	}

	m.tape.Write(act.write)
	edge := domain.Edge{From: m.state, Symbol: symbol, To: act.to, Write: act.write, Move: act.move}
	m.state = act.to
	m.tape.Move(act.move)
	return StepMoved, edge
}

// Run steps until the machine halts and returns the tape contents.
// When maxSteps > 0 and the machine could still move after that many steps,
// it returns the partial tape and ErrStepLimit.
func (m *Turing) Run(maxSteps int) (string, error) {
	for steps := 0; ; steps++ {
		status, symbol, _ := m.lookup()
		switch status {
		case StepFinalState, StepNoTransition:
			return m.tape.String(), nil
		case StepUnrecognizedSymbol:
			return m.tape.String(), &SymbolError{Symbol: symbol, Position: m.tape.Head()}
		}
		if maxSteps > 0 && steps >= maxSteps {
			return m.tape.String(), fmt.Errorf("%w: %d steps", domain.ErrStepLimit, maxSteps)
		}
		m.Step()
	}
}

// IsFinal reports whether the current state is final.
func (m *Turing) IsFinal() bool { return m.final[m.state] }

// Final reports whether state is final.
func (m *Turing) Final(state string) bool { return m.final[state] }

// State returns the current state.
func (m *Turing) State() string { return m.state }

// Tape exposes the tape for reading.
func (m *Turing) Tape() *Tape { return m.tape }

// Restore sets state, tape and head from a stored configuration.
func (m *Turing) Restore(state string, cells []string, head int) {
	m.state = state
	m.tape.restore(cells, head)
}
