package domain

import "fmt"

// Kind identifies the family of machine a definition describes.
type Kind string

const (
	KindNFA    Kind = "nfa"    // Nondeterministic, epsilon moves allowed
	KindDFA    Kind = "dfa"    // Deterministic finite automaton
	KindTuring Kind = "turing" // Single-tape deterministic Turing machine
)

// ParseKind normalizes user supplied kind names ("NFA", "tm", "turing").
func ParseKind(s string) (Kind, error) {
	switch s {
	case "nfa", "NFA", "afnd", "enfa":
		return KindNFA, nil
	case "dfa", "DFA", "afd":
		return KindDFA, nil
	case "turing", "tm", "TM", "Turing":
		return KindTuring, nil
	}
	return "", fmt.Errorf("unknown automaton kind %q", s)
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k == KindNFA || k == KindDFA || k == KindTuring
}
