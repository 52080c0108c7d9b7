// Package schema describes automaton definitions as data and validates them.
//
// A Definition is what a shell supplies once per automaton: states, alphabet,
// start state, accepting (or final) states and the transition relation. It can be
// built in code or decoded from YAML/JSON:
//
//	def, err := schema.LoadFile("examples/definitions/contains-one.yaml")
//	if err != nil {
//	    // decoding or validation failed
//	}
//
// Decoding is weakly typed so that hand written files stay short: a single target
// may be written as `to: q1` instead of `to: [q1]`, and numeric symbols such as
// `0` are read as the string "0". The symbol "ε" (or an empty symbol) denotes an
// epsilon move.
//
// Validate collects every problem instead of stopping at the first one. The
// returned *ValidationError matches domain.ErrInvalidDefinition with errors.Is.
package schema
