package domain

import (
	"fmt"
	"strings"
)

// Epsilon is the symbol of a non-consuming NFA move.
const Epsilon = ""

// EpsilonAlias is accepted in definition files as a readable spelling of Epsilon.
const EpsilonAlias = "ε"

// DefaultBlank is the blank tape symbol used when a definition does not declare one.
const DefaultBlank = "_"

// Move is the head movement of a Turing machine transition.
type Move string

const (
	MoveLeft  Move = "L"
	MoveRight Move = "R"
	MoveStay  Move = "S"
)

// ParseMove accepts L/R/S in any case as well as left/right/stay (and "N" for none).
func ParseMove(s string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left", "<":
		return MoveLeft, nil
	case "r", "right", ">":
		return MoveRight, nil
	case "s", "stay", "n", "none", "-":
		return MoveStay, nil
	}
	return "", fmt.Errorf("malformed move code %q (expected L, R or S)", s)
}

// Tokenize splits an input string into one symbol per rune.
func Tokenize(input string) []string {
	symbols := make([]string, 0, len(input))
	for _, r := range input {
		symbols = append(symbols, string(r))
	}
	return symbols
}

// DisplaySymbol renders the epsilon symbol visibly.
func DisplaySymbol(symbol string) string {
	if symbol == Epsilon {
		return EpsilonAlias
	}
	return symbol
}
