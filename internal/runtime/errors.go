package runtime

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// SymbolError reports a symbol outside the declared alphabet.
// It matches domain.ErrUnrecognizedSymbol with errors.Is.
type SymbolError struct {
	Symbol   string
	Position int
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("symbol '%s' at position %d not recognized", e.Symbol, e.Position)
}

func (e *SymbolError) Unwrap() error {
	return domain.ErrUnrecognizedSymbol
}

// StepStatus is the low level outcome of a deterministic engine step.
type StepStatus int

const (
	StepMoved StepStatus = iota
	StepNoMoreInput
	StepNoTransition
	StepUnrecognizedSymbol
	StepFinalState
)

func (s StepStatus) String() string {
	switch s {
	case StepMoved:
		return "moved"
	case StepNoMoreInput:
		return "no_more_input"
	case StepNoTransition:
		return "no_transition"
	case StepUnrecognizedSymbol:
		return "unrecognized_symbol"
	case StepFinalState:
		return "final_state"
	}
	return fmt.Sprintf("StepStatus(%d)", int(s))
}
