package domain

import "fmt"

// Outcome is the tag of a Result.
type Outcome string

const (
	OutcomeContinue Outcome = "continue" // Step applied (or replayed), more may follow
	OutcomeAccepted Outcome = "accepted" // Input consumed and an accepting state is active
	OutcomeRejected Outcome = "rejected" // Run ended without acceptance
	OutcomeHalted   Outcome = "halted"   // Turing machine stopped
	OutcomeBoundary Outcome = "boundary" // Navigation no-op (nothing before/after, or not started)
)

// Terminal reports whether the outcome ends the run.
func (o Outcome) Terminal() bool {
	return o == OutcomeAccepted || o == OutcomeRejected || o == OutcomeHalted
}

// Reason qualifies rejected, halted and boundary outcomes.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonUnrecognizedSymbol Reason = "unrecognized_symbol"
	ReasonNoTransition       Reason = "no_transition"
	ReasonNoSurvivingStates  Reason = "no_surviving_states"
	ReasonNotAccepting       Reason = "not_accepting"
	ReasonFinalState         Reason = "final_state"
	ReasonAtStart            Reason = "at_start"
	ReasonAtEnd              Reason = "at_end"
	ReasonNotStarted         Reason = "not_started"
)

// Result is the tagged answer to a start or step request.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Reason  Reason  `json:"reason,omitempty"`

	// Symbol is the symbol that was consumed, or the offending one on rejection.
	Symbol string `json:"symbol,omitempty"`

	// Config is the configuration published after the request.
	Config Configuration `json:"config"`

	// Accepting reports whether Config is accepting (finite automata) or final (Turing).
	Accepting bool `json:"accepting"`

	// Index is the history index after the request (-1 before start).
	Index int `json:"index"`

	// Verdict is the result that ended the run, set on boundary/at_end.
	Verdict *Result `json:"verdict,omitempty"`
}

// Terminal reports whether the run has ended with this result.
func (r Result) Terminal() bool { return r.Outcome.Terminal() }

// Message renders a human-readable verdict.
func (r Result) Message() string {
	switch r.Outcome {
	case OutcomeContinue:
		return fmt.Sprintf("current configuration: %s", r.Config)
	case OutcomeAccepted:
		return fmt.Sprintf("accepted: final configuration %s", r.Config)
	case OutcomeRejected, OutcomeHalted:
		return fmt.Sprintf("%s: %s", r.Outcome, r.describeReason())
	case OutcomeBoundary:
		switch r.Reason {
		case ReasonAtStart:
			return "already at the first step"
		case ReasonNotStarted:
			return "no simulation started"
		}
		if r.Verdict != nil {
			return fmt.Sprintf("no further steps (%s)", r.Verdict.Message())
		}
		return "no further steps"
	}
	return string(r.Outcome)
}

func (r Result) describeReason() string {
	switch r.Reason {
	case ReasonUnrecognizedSymbol:
		return fmt.Sprintf("symbol '%s' not recognized", r.Symbol)
	case ReasonNoTransition:
		return fmt.Sprintf("no transition from %s on '%s'", r.Config.State, r.Symbol)
	case ReasonNoSurvivingStates:
		return fmt.Sprintf("no states survived reading '%s'", r.Symbol)
	case ReasonNotAccepting:
		if r.Config.Kind == KindNFA {
			return fmt.Sprintf("surviving states %s are all non-accepting", r.Config.Active)
		}
		return fmt.Sprintf("state %s is not accepting", r.Config.State)
	case ReasonFinalState:
		return fmt.Sprintf("reached final state %s", r.Config.State)
	}
	return string(r.Reason)
}
