package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrDefinitionNotFound is returned when a loader has no automaton with the requested name.
var ErrDefinitionNotFound = errors.New("automaton definition not found")

// ErrInvalidDefinition is matched (errors.Is) by every configuration error.
var ErrInvalidDefinition = errors.New("invalid automaton definition")

// ErrUnrecognizedSymbol is returned when an input symbol is outside the declared alphabet.
var ErrUnrecognizedSymbol = errors.New("symbol not recognized")

var (
	// ErrEmptyCyclicInput is returned when cyclic mode is requested with an empty base string.
	ErrEmptyCyclicInput = errors.New("cyclic mode requires a non-empty input")
	// ErrCyclicUnsupported is returned when cyclic mode is requested for a machine other than an NFA.
	ErrCyclicUnsupported = errors.New("cyclic mode is only supported by nfa")
	// ErrStepLimit is returned by run-to-completion helpers that exceed their step budget.
	ErrStepLimit = errors.New("step limit exceeded")
	// ErrNotAtTail is returned when a record is appended while the history index is not at the last record.
	ErrNotAtTail = errors.New("history index is not at the last record")
)
