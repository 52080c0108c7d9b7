package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Issue is a single problem found in a definition.
type Issue struct {
	Code    string   // e.g. "INVALID_TARGET", "MALFORMED_MOVE"
	Message string   // Human-readable description
	Path    []string // e.g. ["transitions", "3", "to"]
}

func (i Issue) String() string {
	if len(i.Path) > 0 {
		return fmt.Sprintf("[%s] %s (at %s)", i.Code, i.Message, strings.Join(i.Path, "."))
	}
	return fmt.Sprintf("[%s] %s", i.Code, i.Message)
}

// ValidationError aggregates every issue found in one definition.
type ValidationError struct {
	Definition string
	Issues     []Issue
}

func (e *ValidationError) Error() string {
	prefix := "invalid automaton definition"
	if e.Definition != "" {
		prefix = fmt.Sprintf("invalid automaton definition %q", e.Definition)
	}
	switch len(e.Issues) {
	case 0:
		return prefix
	case 1:
		return prefix + ": " + e.Issues[0].String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d issues:\n", prefix, len(e.Issues))
	for i, issue := range e.Issues {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, issue.String())
	}
	return b.String()
}

// Is lets callers test for domain.ErrInvalidDefinition.
func (e *ValidationError) Is(target error) bool {
	return target == domain.ErrInvalidDefinition
}

// AddIssue appends an issue.
func (e *ValidationError) AddIssue(code, message string, path ...string) {
	e.Issues = append(e.Issues, Issue{Code: code, Message: message, Path: path})
}

// HasIssues reports whether anything was found.
func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

// Codes returns the issue codes in order, mostly useful in tests and logs.
func (e *ValidationError) Codes() []string {
	codes := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		codes[i] = issue.Code
	}
	return codes
}

// Issues returns all issues if err is (or wraps) a *ValidationError.
// Otherwise returns nil.
func Issues(err error) []Issue {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Issues
	}
	return nil
}

// Validation issue codes.
const (
	CodeMissingName       = "MISSING_NAME"
	CodeUnknownKind       = "UNKNOWN_KIND"
	CodeNoStates          = "NO_STATES"
	CodeDuplicateState    = "DUPLICATE_STATE"
	CodeMissingStart      = "MISSING_START"
	CodeStartNotFound     = "START_NOT_FOUND"
	CodeUnknownAccepting  = "UNKNOWN_ACCEPTING"
	CodeReservedSymbol    = "RESERVED_SYMBOL"
	CodeMultiCharSymbol   = "MULTI_CHAR_SYMBOL"
	CodeInvalidSource     = "INVALID_SOURCE"
	CodeMissingTarget     = "MISSING_TARGET"
	CodeInvalidTarget     = "INVALID_TARGET"
	CodeUnknownSymbol     = "UNKNOWN_SYMBOL"
	CodeEpsilonNotAllowed = "EPSILON_NOT_ALLOWED"
	CodeNondeterministic  = "NONDETERMINISTIC"
	CodeMalformedMove     = "MALFORMED_MOVE"
	CodeMissingWrite      = "MISSING_WRITE"
)
