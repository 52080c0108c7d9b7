package runtime

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
)

// Machine is the kind independent view of an engine that a session drives.
// Implementations are not safe for concurrent use.
type Machine interface {
	Kind() domain.Kind

	// Begin resets the machine for input and returns the initial configuration.
	Begin(input string, cyclic bool) (domain.Configuration, error)

	// Advance computes and applies the next step from the current configuration.
	Advance() StepResult

	// Current returns a copy of the current configuration.
	Current() domain.Configuration

	// Restore makes cfg the current configuration.
	Restore(cfg domain.Configuration)

	// Accepting reports whether cfg is accepting (finite automata) or final (Turing).
	Accepting(cfg domain.Configuration) bool
}

// StepResult describes the effect of one Machine.Advance call.
// When Applied is false nothing changed and no record must be stored.
type StepResult struct {
	Applied bool
	Symbol  string
	Edges   []domain.Edge
	After   domain.Configuration
	Outcome domain.Outcome
	Reason  domain.Reason
}

// Compile builds the engine for a validated definition.
func Compile(def *schema.Definition) (Machine, error) {
	switch def.Kind {
	case domain.KindNFA:
		return &nfaMachine{nfa: NewNFA(def)}, nil
	case domain.KindDFA:
		return &dfaMachine{dfa: NewDFA(def)}, nil
	case domain.KindTuring:
		tm, err := NewTuring(def)
		if err != nil {
			return nil, err
		}
		return &turingMachine{tm: tm}, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidDefinition, def.Kind)
}

func endOfInput(accepting bool) (domain.Outcome, domain.Reason) {
	if accepting {
		return domain.OutcomeAccepted, domain.ReasonNone
	}
	return domain.OutcomeRejected, domain.ReasonNotAccepting
}

// --- NFA ---

type nfaMachine struct {
	nfa *NFA

	input    []string
	cyclic   bool
	active   domain.StateSet
	position int
}

func (m *nfaMachine) Kind() domain.Kind { return domain.KindNFA }

func (m *nfaMachine) Begin(input string, cyclic bool) (domain.Configuration, error) {
	symbols := domain.Tokenize(input)
	if cyclic && len(symbols) == 0 {
		return domain.Configuration{}, domain.ErrEmptyCyclicInput
	}
	m.input = symbols
	m.cyclic = cyclic
	m.active = m.nfa.Start()
	m.position = 0
	return m.Current(), nil
}

// symbolAt wraps around the base string in cyclic mode.
func (m *nfaMachine) symbolAt(i int) (string, bool) {
	if m.cyclic {
		return m.input[i%len(m.input)], true
	}
	if i >= len(m.input) {
		return "", false
	}
	return m.input[i], true
}

func (m *nfaMachine) Advance() StepResult {
	symbol, ok := m.symbolAt(m.position)
	if !ok {
		outcome, reason := endOfInput(m.nfa.Accepts(m.active))
		return StepResult{After: m.Current(), Outcome: outcome, Reason: reason}
	}

	next, edges, err := m.nfa.Step(m.active, symbol)
	if err != nil {
		return StepResult{Symbol: symbol, After: m.Current(), Outcome: domain.OutcomeRejected, Reason: domain.ReasonUnrecognizedSymbol}
	}
	if next.Empty() {
		return StepResult{Symbol: symbol, After: m.Current(), Outcome: domain.OutcomeRejected, Reason: domain.ReasonNoSurvivingStates}
	}

	m.active = next
	m.position++

	adv := StepResult{Applied: true, Symbol: symbol, Edges: edges, After: m.Current(), Outcome: domain.OutcomeContinue}
	if !m.cyclic && m.position == len(m.input) {
		adv.Outcome, adv.Reason = endOfInput(m.nfa.Accepts(m.active))
	}
	return adv
}

func (m *nfaMachine) Current() domain.Configuration {
	return domain.Configuration{
		Kind:     domain.KindNFA,
		Active:   append(domain.StateSet{}, m.active...),
		Position: m.position,
	}
}

func (m *nfaMachine) Restore(cfg domain.Configuration) {
	m.active = domain.NewStateSet(cfg.Active...)
	m.position = cfg.Position
}

func (m *nfaMachine) Accepting(cfg domain.Configuration) bool {
	return m.nfa.Accepts(cfg.Active)
}

// --- DFA ---

type dfaMachine struct {
	dfa *DFA
}

func (m *dfaMachine) Kind() domain.Kind { return domain.KindDFA }

func (m *dfaMachine) Begin(input string, cyclic bool) (domain.Configuration, error) {
	if cyclic {
		return domain.Configuration{}, domain.ErrCyclicUnsupported
	}
	m.dfa.Reset(input)
	return m.Current(), nil
}

func (m *dfaMachine) Advance() StepResult {
	status, edge := m.dfa.Step()
	switch status {
	case StepNoMoreInput:
		outcome, reason := endOfInput(m.dfa.IsAccepting())
		return StepResult{After: m.Current(), Outcome: outcome, Reason: reason}
	case StepUnrecognizedSymbol:
		return StepResult{Symbol: edge.Symbol, After: m.Current(), Outcome: domain.OutcomeRejected, Reason: domain.ReasonUnrecognizedSymbol}
	case StepNoTransition:
		return StepResult{Symbol: edge.Symbol, After: m.Current(), Outcome: domain.OutcomeRejected, Reason: domain.ReasonNoTransition}
	}

	adv := StepResult{Applied: true, Symbol: edge.Symbol, Edges: []domain.Edge{edge}, After: m.Current(), Outcome: domain.OutcomeContinue}
	if m.dfa.Remaining() == 0 {
		adv.Outcome, adv.Reason = endOfInput(m.dfa.IsAccepting())
	}
	return adv
}

func (m *dfaMachine) Current() domain.Configuration {
	return domain.Configuration{Kind: domain.KindDFA, State: m.dfa.State(), Position: m.dfa.Position()}
}

func (m *dfaMachine) Restore(cfg domain.Configuration) {
	m.dfa.Restore(cfg.State, cfg.Position)
}

func (m *dfaMachine) Accepting(cfg domain.Configuration) bool {
	return m.dfa.Accepting(cfg.State)
}

// --- Turing ---

type turingMachine struct {
	tm *Turing
}

func (m *turingMachine) Kind() domain.Kind { return domain.KindTuring }

func (m *turingMachine) Begin(input string, cyclic bool) (domain.Configuration, error) {
	if cyclic {
		return domain.Configuration{}, domain.ErrCyclicUnsupported
	}
	m.tm.Initialize(input)
	return m.Current(), nil
}

func (m *turingMachine) Advance() StepResult {
	status, edge := m.tm.Step()
	switch status {
	case StepFinalState:
		return StepResult{After: m.Current(), Outcome: domain.OutcomeHalted, Reason: domain.ReasonFinalState}
	case StepNoTransition:
		return StepResult{Symbol: edge.Symbol, After: m.Current(), Outcome: domain.OutcomeHalted, Reason: domain.ReasonNoTransition}
	case StepUnrecognizedSymbol:
		return StepResult{Symbol: edge.Symbol, After: m.Current(), Outcome: domain.OutcomeRejected, Reason: domain.ReasonUnrecognizedSymbol}
	}

	adv := StepResult{Applied: true, Symbol: edge.Symbol, Edges: []domain.Edge{edge}, After: m.Current(), Outcome: domain.OutcomeContinue}
	if m.tm.IsFinal() {
		adv.Outcome, adv.Reason = domain.OutcomeHalted, domain.ReasonFinalState
	}
	return adv
}

func (m *turingMachine) Current() domain.Configuration {
	return domain.Configuration{
		Kind:  domain.KindTuring,
		State: m.tm.State(),
		Tape:  m.tm.Tape().Cells(),
		Head:  m.tm.Tape().Head(),
	}
}

func (m *turingMachine) Restore(cfg domain.Configuration) {
	m.tm.Restore(cfg.State, cfg.Tape, cfg.Head)
}

func (m *turingMachine) Accepting(cfg domain.Configuration) bool {
	return m.tm.Final(cfg.State)
}
