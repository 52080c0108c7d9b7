package schema

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/aretw0/automata/pkg/domain"
)

// Validate checks the definition and returns a *ValidationError listing every
// issue, or nil. It does not normalize; call Normalize first for decoded input.
func (d *Definition) Validate() error {
	errs := &ValidationError{Definition: d.Name}

	if d.Name == "" {
		errs.AddIssue(CodeMissingName, "name is required", "name")
	}
	if !d.Kind.Valid() {
		errs.AddIssue(CodeUnknownKind, fmt.Sprintf("unknown kind %q (expected nfa, dfa or turing)", d.Kind), "kind")
	}

	states := d.validateStates(errs)
	alphabet := d.validateAlphabet(errs)
	d.validateTransitions(errs, states, alphabet)

	if errs.HasIssues() {
		return errs
	}
	return nil
}

func (d *Definition) validateStates(errs *ValidationError) map[string]bool {
	states := make(map[string]bool, len(d.States))
	if len(d.States) == 0 {
		errs.AddIssue(CodeNoStates, "at least one state is required", "states")
	}
	for i, s := range d.States {
		if states[s] {
			errs.AddIssue(CodeDuplicateState, fmt.Sprintf("state %q is declared twice", s), "states", strconv.Itoa(i))
		}
		states[s] = true
	}

	switch {
	case d.Start == "":
		errs.AddIssue(CodeMissingStart, "start state is required", "start")
	case !states[d.Start]:
		errs.AddIssue(CodeStartNotFound, fmt.Sprintf("start state %q is not a declared state", d.Start), "start")
	}

	for i, s := range d.Accepting {
		if !states[s] {
			errs.AddIssue(CodeUnknownAccepting, fmt.Sprintf("accepting state %q is not a declared state", s), "accepting", strconv.Itoa(i))
		}
	}
	return states
}

func (d *Definition) validateAlphabet(errs *ValidationError) map[string]bool {
	alphabet := make(map[string]bool, len(d.Alphabet))
	for i, sym := range d.Alphabet {
		path := []string{"alphabet", strconv.Itoa(i)}
		switch {
		case sym == domain.Epsilon || sym == domain.EpsilonAlias:
			errs.AddIssue(CodeReservedSymbol, "epsilon cannot be part of the alphabet", path...)
		case utf8.RuneCountInString(sym) != 1:
			// Input strings are read one rune at a time.
			errs.AddIssue(CodeMultiCharSymbol, fmt.Sprintf("symbol %q must be a single character", sym), path...)
		}
		alphabet[sym] = true
	}
	if d.Kind == domain.KindTuring {
		if utf8.RuneCountInString(d.Blank) != 1 {
			errs.AddIssue(CodeMultiCharSymbol, fmt.Sprintf("blank %q must be a single character", d.Blank), "blank")
		}
		if len(alphabet) > 0 {
			alphabet[d.Blank] = true
		}
	}
	return alphabet
}

type transitionKey struct {
	state, symbol string
}

func (d *Definition) validateTransitions(errs *ValidationError, states, alphabet map[string]bool) {
	deterministic := d.Kind == domain.KindDFA || d.Kind == domain.KindTuring
	seen := make(map[transitionKey]int)

	for i, t := range d.Transitions {
		idx := strconv.Itoa(i)

		if !states[t.From] {
			errs.AddIssue(CodeInvalidSource, fmt.Sprintf("source state %q is not a declared state", t.From), "transitions", idx, "from")
		}

		if len(t.To) == 0 {
			errs.AddIssue(CodeMissingTarget, "at least one target state is required", "transitions", idx, "to")
		}
		for _, to := range t.To {
			if !states[to] {
				errs.AddIssue(CodeInvalidTarget, fmt.Sprintf("target state %q is not a declared state", to), "transitions", idx, "to")
			}
		}

		switch {
		case t.Symbol == domain.Epsilon:
			if deterministic {
				errs.AddIssue(CodeEpsilonNotAllowed, fmt.Sprintf("epsilon moves are not allowed in a %s", d.Kind), "transitions", idx, "symbol")
			}
		case len(alphabet) > 0 && !alphabet[t.Symbol]:
			errs.AddIssue(CodeUnknownSymbol, fmt.Sprintf("symbol %q is not in the alphabet", t.Symbol), "transitions", idx, "symbol")
		case len(alphabet) == 0 && d.Kind != domain.KindTuring:
			errs.AddIssue(CodeUnknownSymbol, fmt.Sprintf("symbol %q is not in the (empty) alphabet", t.Symbol), "transitions", idx, "symbol")
		}

		if deterministic {
			if len(t.To) > 1 {
				errs.AddIssue(CodeNondeterministic, fmt.Sprintf("%s transitions have exactly one target", d.Kind), "transitions", idx, "to")
			}
			key := transitionKey{t.From, t.Symbol}
			if prev, dup := seen[key]; dup {
				errs.AddIssue(CodeNondeterministic,
					fmt.Sprintf("(%s, '%s') is already defined by transition %d", t.From, t.Symbol, prev),
					"transitions", idx)
			} else {
				seen[key] = i
			}
		}

		if d.Kind == domain.KindTuring {
			d.validateTapeAction(errs, t, idx, alphabet)
		}
	}
}

func (d *Definition) validateTapeAction(errs *ValidationError, t Transition, idx string, alphabet map[string]bool) {
	switch {
	case t.Write == "":
		errs.AddIssue(CodeMissingWrite, "turing transitions must declare the symbol to write", "transitions", idx, "write")
	case utf8.RuneCountInString(t.Write) != 1:
		errs.AddIssue(CodeMultiCharSymbol, fmt.Sprintf("write symbol %q must be a single character", t.Write), "transitions", idx, "write")
	case len(alphabet) > 0 && !alphabet[t.Write]:
		errs.AddIssue(CodeUnknownSymbol, fmt.Sprintf("write symbol %q is not in the tape alphabet", t.Write), "transitions", idx, "write")
	}

	if _, err := domain.ParseMove(string(t.Move)); err != nil {
		errs.AddIssue(CodeMalformedMove, err.Error(), "transitions", idx, "move")
	}
}
